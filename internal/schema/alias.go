package schema

// AliasEntry maps a non-conforming column name directly to a component
// and field kind, bypassing the naming-convention rules entirely.
type AliasEntry struct {
	RealName  string    `json:"real_name"`
	Component string    `json:"component"`
	Kind      FieldKind `json:"field_kind"`
}

// AliasMap is the name-keyed lookup built from the stored alias list.
type AliasMap map[string]AliasEntry

// BuildAliasMap converts the persisted entry list into an O(1) lookup.
// RealName is expected to be unique; if the stored list violates that,
// the later entry wins.
func BuildAliasMap(entries []AliasEntry) AliasMap {
	m := make(AliasMap, len(entries))
	for _, e := range entries {
		m[e.RealName] = e
	}
	return m
}

// Resolve returns the alias for a column name, if one exists.
func (m AliasMap) Resolve(column string) (AliasEntry, bool) {
	e, ok := m[column]
	return e, ok
}

// DefaultAliases covers three historically misnamed interval columns
// that predate the "{component}_intervalo" convention. Used when no
// stored alias list exists.
func DefaultAliases() []AliasEntry {
	return []AliasEntry{
		{RealName: "intervalo_cambio_aceite", Component: "aceite_motor", Kind: KindInterval},
		{RealName: "intervalo_cambio_transmision", Component: "aceite_transmision", Kind: KindInterval},
		{RealName: "intervalo_cambio_diferencial", Component: "aceite_diferencial", Kind: KindInterval},
	}
}
