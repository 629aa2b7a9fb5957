package core

// service_mutations.go is the write side: registry saves and manual
// service-record overrides. Every save validates fully before writing;
// a bad entry blocks the whole document so a half-edited registry never
// lands in the store.

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/JonMunkholm/fleetledger/internal/schema"
	"github.com/JonMunkholm/fleetledger/internal/store"
)

// SaveExclusions replaces the stored exclusion list.
func (s *Service) SaveExclusions(ctx context.Context, columns []string) error {
	cleaned := make([]string, 0, len(columns))
	for _, column := range columns {
		column = strings.TrimSpace(column)
		if column == "" {
			continue
		}
		cleaned = append(cleaned, column)
	}
	return s.saveConfigDoc(ctx, store.ConfigIDExclusions, "exclusions",
		exclusionsDoc{ExcludedColumns: cleaned})
}

// SaveAliases replaces the stored alias list. Duplicate real names are
// rejected up front rather than silently resolved at lookup time.
func (s *Service) SaveAliases(ctx context.Context, entries []schema.AliasEntry) error {
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.RealName) == "" {
			return fmt.Errorf("invalid alias entry %d: real_name is required", i)
		}
		if strings.TrimSpace(e.Component) == "" {
			return fmt.Errorf("invalid alias entry %q: component is required", e.RealName)
		}
		if seen[e.RealName] {
			return fmt.Errorf("invalid alias entry %q: duplicate real_name", e.RealName)
		}
		seen[e.RealName] = true
	}
	return s.saveConfigDoc(ctx, store.ConfigIDAliases, "aliases", aliasesDoc{Aliases: entries})
}

// SaveCategories replaces the whole category configuration: both the
// definition list and the assignment table, as one unit.
func (s *Service) SaveCategories(ctx context.Context, cfg schema.CategoryConfig) error {
	seen := make(map[string]bool, len(cfg.Categories))
	for i, def := range cfg.Categories {
		if strings.TrimSpace(def.ID) == "" {
			return fmt.Errorf("invalid category %d: id is required", i)
		}
		if def.ID == schema.UncategorizedID {
			return fmt.Errorf("invalid category %q: the uncategorized bucket is implicit", def.ID)
		}
		if seen[def.ID] {
			return fmt.Errorf("invalid category %q: duplicate id", def.ID)
		}
		seen[def.ID] = true
	}
	for _, a := range cfg.Assignments {
		if !seen[a.CategoryID] {
			return fmt.Errorf("invalid assignment %q: unknown category %q", a.ComponentID, a.CategoryID)
		}
	}
	return s.saveConfigDoc(ctx, store.ConfigIDCategories, "categories", cfg)
}

// ServiceUpdate is a manual edit of one component's service fields on
// one vehicle. Values arrive as the raw form strings; numeric fields
// are validated here and nothing is written if any value fails.
type ServiceUpdate struct {
	VehicleID   int64             `json:"vehicle_id"`
	ComponentID string            `json:"component_id"`
	Values      map[string]string `json:"values"` // field kind name -> raw value
}

// numericKinds are the field kinds that must parse as integers.
var numericKinds = map[schema.FieldKind]bool{
	schema.KindKm:       true,
	schema.KindInterval: true,
	schema.KindHours:    true,
	schema.KindLiters:   true,
}

// UpdateComponentService resolves the component's columns through the
// assembled schema and writes the supplied values. Unknown components,
// unknown field kinds and non-integer numeric values are rejected
// before any write.
func (s *Service) UpdateComponentService(ctx context.Context, update ServiceUpdate) error {
	tree, err := s.AssembleSchema(ctx)
	if err != nil {
		return err
	}

	var target *schema.Component
	for _, comp := range tree.Components() {
		if comp.ID == update.ComponentID {
			c := comp
			target = &c
			break
		}
	}
	if target == nil {
		return fmt.Errorf("component %q not found in schema", update.ComponentID)
	}

	columns := make(map[string]any, len(update.Values))
	for kindName, raw := range update.Values {
		var kind schema.FieldKind
		if err := kind.UnmarshalText([]byte(kindName)); err != nil {
			return fmt.Errorf("invalid field kind %q", kindName)
		}
		column, ok := target.Fields[kind]
		if !ok {
			return fmt.Errorf("component %q has no %s field", update.ComponentID, kind)
		}

		raw = strings.TrimSpace(raw)
		if numericKinds[kind] {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer for %s: %q", kind, raw)
			}
			columns[column] = n
			continue
		}
		columns[column] = raw
	}
	if len(columns) == 0 {
		return fmt.Errorf("no values to update")
	}

	return s.store.UpdateVehicleColumns(ctx, update.VehicleID, columns)
}
