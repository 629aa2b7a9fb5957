package schema

// ExclusionSet holds column names that are never maintenance data:
// vehicle identity, audit timestamps and a handful of legacy columns.
type ExclusionSet map[string]struct{}

// NewExclusionSet builds a set from a flat name list.
func NewExclusionSet(names []string) ExclusionSet {
	set := make(ExclusionSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Contains reports whether the column is excluded from the schema.
func (s ExclusionSet) Contains(column string) bool {
	_, ok := s[column]
	return ok
}

// Names returns the set as a sorted-insensitive flat list, suitable for
// persisting as the stored override document.
func (s ExclusionSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}

// DefaultExclusions is the fallback set used when no stored override
// exists or the config store is unreachable. It covers the identity and
// attribute columns of the vehicle record plus three legacy interval
// columns that predate the naming convention and carry no maintenance
// data.
func DefaultExclusions() []string {
	return []string{
		"id",
		"numero_economico",
		"placas",
		"marca",
		"tipo",
		"anio",
		"serie",
		"operador",
		"kilometraje_actual",
		"horas_actuales",
		"activo",
		"created_at",
		"updated_at",
		// Legacy interval columns kept in the table but never scheduled.
		"intervalo_reporte",
		"intervalo_garantia",
		"intervalo_seguro",
	}
}
