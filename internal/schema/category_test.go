package schema

import "testing"

func TestCategorize(t *testing.T) {
	cfg := DefaultCategoryConfig()

	tests := []struct {
		componentID string
		want        string
	}{
		{"aceite_motor", "aceites_filtros"},
		{"filtro_combustible", "aceites_filtros"},
		{"aceite_transmision", "transmision"},
		{"balatas_c", "frenos"},
		{"suspencion_b", "suspension"},
		{"bateria", "electrico"},
		{"marca_general_llantas", "llantas"},
		{"componente_desconocido", UncategorizedID},
	}

	for _, tt := range tests {
		t.Run(tt.componentID, func(t *testing.T) {
			if got := cfg.Categorize(tt.componentID); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.componentID, got, tt.want)
			}
		})
	}
}

func TestCategorize_DuplicateAssignmentLastWins(t *testing.T) {
	cfg := CategoryConfig{
		Categories: []CategoryDefinition{
			{ID: "frenos", Name: "Frenos"},
			{ID: "motor", Name: "Motor"},
		},
		Assignments: []CategoryAssignment{
			{ComponentID: "clutch", CategoryID: "frenos"},
			{ComponentID: "clutch", CategoryID: "motor"},
		},
	}

	if got := cfg.Categorize("clutch"); got != "motor" {
		t.Errorf("Categorize(clutch) = %q, want motor (later assignment wins)", got)
	}
}

func TestDefaultCategoryConfig_EightCategories(t *testing.T) {
	cfg := DefaultCategoryConfig()

	if len(cfg.Categories) != 8 {
		t.Fatalf("got %d default categories, want 8", len(cfg.Categories))
	}

	seen := make(map[string]bool)
	for _, def := range cfg.Categories {
		if def.ID == "" || def.Name == "" {
			t.Errorf("category %+v missing id or name", def)
		}
		if seen[def.ID] {
			t.Errorf("duplicate category id %q", def.ID)
		}
		seen[def.ID] = true
	}
	if seen[UncategorizedID] {
		t.Error("uncategorized bucket must stay implicit, not part of the stored list")
	}

	// Every starter assignment must point at a real category.
	for _, a := range cfg.Assignments {
		if !seen[a.CategoryID] {
			t.Errorf("assignment %q -> %q names an unknown category", a.ComponentID, a.CategoryID)
		}
	}
}

func TestBuildAliasMap_LastWriteWins(t *testing.T) {
	m := BuildAliasMap([]AliasEntry{
		{RealName: "col", Component: "first", Kind: KindKm},
		{RealName: "col", Component: "second", Kind: KindDate},
	})

	e, ok := m.Resolve("col")
	if !ok {
		t.Fatal("alias not found")
	}
	if e.Component != "second" || e.Kind != KindDate {
		t.Errorf("got (%q, %v), want the later entry (second, date)", e.Component, e.Kind)
	}
}

func TestExclusionSet_Contains(t *testing.T) {
	set := NewExclusionSet([]string{"id", "placas"})

	if !set.Contains("id") {
		t.Error("Contains(id) = false, want true")
	}
	if set.Contains("aceite_motor_km") {
		t.Error("Contains(aceite_motor_km) = true, want false")
	}
}
