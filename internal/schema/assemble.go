package schema

import (
	"log/slog"
	"sort"
)

// Component is one logical maintenance item assembled from the raw
// columns that classified to the same id. Fields maps each field kind
// to the raw column name that carries it.
type Component struct {
	ID     string               `json:"id"`
	Label  string               `json:"label"`
	Fields map[FieldKind]string `json:"fields"`
}

// CategoryGroup pairs one category with its components, sorted by label.
type CategoryGroup struct {
	Category   CategoryDefinition `json:"category"`
	Components []Component        `json:"components"`
}

// CategoryTree is the full assembled schema in display order. Categories
// with zero components are dropped.
type CategoryTree []CategoryGroup

// Components flattens the tree back to a single component list, in tree
// order.
func (t CategoryTree) Components() []Component {
	var out []Component
	for _, g := range t {
		out = append(out, g.Components...)
	}
	return out
}

// Assembler folds a raw column list into the category tree. The three
// registries are plain inputs loaded by the caller, so Assemble is a
// pure function and safe for concurrent use.
type Assembler struct {
	Exclusions ExclusionSet
	Aliases    AliasMap
	Categories CategoryConfig
	Logger     *slog.Logger
}

// Assemble classifies every column, merges same-component columns into
// Components, and partitions them into the category tree.
//
// When two columns classify to the same (component, kind) pair the
// later column wins and the collision is logged; well-formed ledgers
// never hit this path.
func (a *Assembler) Assemble(columns []string) CategoryTree {
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}

	components := make(map[string]*Component)
	var order []string

	for _, column := range columns {
		c := Classify(column, a.Exclusions, a.Aliases)
		if c.Outcome != OutcomeAliased && c.Outcome != OutcomePattern {
			continue
		}

		comp, ok := components[c.Component]
		if !ok {
			comp = &Component{ID: c.Component, Fields: make(map[FieldKind]string)}
			components[c.Component] = comp
			order = append(order, c.Component)
		}
		if prev, dup := comp.Fields[c.Kind]; dup {
			logger.Warn("column collision, keeping later column",
				"component", c.Component,
				"kind", c.Kind.String(),
				"previous", prev,
				"column", column,
			)
		}
		comp.Fields[c.Kind] = column
	}

	for _, id := range order {
		components[id].Label = Label(id)
	}

	return a.partition(components, order)
}

// partition distributes components into configured categories (in
// stored order), appends the implicit uncategorized bucket, sorts each
// bucket by label, and drops empty buckets.
func (a *Assembler) partition(components map[string]*Component, order []string) CategoryTree {
	defs := append([]CategoryDefinition{}, a.Categories.Categories...)
	defs = append(defs, Uncategorized())

	known := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		known[def.ID] = struct{}{}
	}

	buckets := make(map[string][]Component)
	for _, id := range order {
		categoryID := a.Categories.Categorize(id)
		// A stale assignment naming a deleted category must not lose
		// the component.
		if _, ok := known[categoryID]; !ok {
			categoryID = UncategorizedID
		}
		buckets[categoryID] = append(buckets[categoryID], *components[id])
	}

	tree := make(CategoryTree, 0, len(defs))
	for _, def := range defs {
		comps := buckets[def.ID]
		if len(comps) == 0 {
			continue
		}
		sort.Slice(comps, func(i, j int) bool {
			if comps[i].Label != comps[j].Label {
				return comps[i].Label < comps[j].Label
			}
			return comps[i].ID < comps[j].ID
		})
		tree = append(tree, CategoryGroup{Category: def, Components: comps})
	}
	return tree
}
