package schema

import "testing"

func defaultRegistries() (ExclusionSet, AliasMap) {
	return NewExclusionSet(DefaultExclusions()), BuildAliasMap(DefaultAliases())
}

func TestClassify_DefaultExclusions(t *testing.T) {
	exclusions, aliases := defaultRegistries()

	for _, column := range DefaultExclusions() {
		c := Classify(column, exclusions, aliases)
		if c.Outcome != OutcomeExcluded {
			t.Errorf("Classify(%q) outcome = %v, want excluded", column, c.Outcome)
		}
	}
}

func TestClassify_AliasBeatsPattern(t *testing.T) {
	// A column that would match the bare-suffix rule on its own, but
	// has an explicit alias pointing elsewhere.
	aliases := BuildAliasMap([]AliasEntry{
		{RealName: "frenos_km", Component: "balatas_a", Kind: KindInterval},
	})

	c := Classify("frenos_km", NewExclusionSet(nil), aliases)
	if c.Outcome != OutcomeAliased {
		t.Fatalf("outcome = %v, want aliased", c.Outcome)
	}
	if c.Component != "balatas_a" || c.Kind != KindInterval {
		t.Errorf("got (%q, %v), want (balatas_a, interval)", c.Component, c.Kind)
	}
}

func TestClassify_ExclusionBeatsAlias(t *testing.T) {
	exclusions := NewExclusionSet([]string{"intervalo_cambio_aceite"})
	_, aliases := defaultRegistries()

	c := Classify("intervalo_cambio_aceite", exclusions, aliases)
	if c.Outcome != OutcomeExcluded {
		t.Errorf("outcome = %v, want excluded (exclusion wins over alias)", c.Outcome)
	}
}

func TestClassify_LegacyIntervalAlias(t *testing.T) {
	exclusions, aliases := defaultRegistries()

	c := Classify("intervalo_cambio_aceite", exclusions, aliases)
	if c.Outcome != OutcomeAliased {
		t.Fatalf("outcome = %v, want aliased", c.Outcome)
	}
	if c.Component != "aceite_motor" {
		t.Errorf("component = %q, want aceite_motor", c.Component)
	}
	if c.Kind != KindInterval {
		t.Errorf("kind = %v, want interval", c.Kind)
	}
}

func TestClassify_PositionalSuffix(t *testing.T) {
	exclusions, aliases := defaultRegistries()

	tests := []struct {
		column    string
		component string
		kind      FieldKind
	}{
		{"suspencion_km_a", "suspencion_a", KindKm},
		{"suspencion_fecha_a", "suspencion_a", KindDate},
		{"suspencion_modelo_a", "suspencion_a", KindModel},
		{"balatas_km_b", "balatas_b", KindKm},
		{"balatas_intervalo_c", "balatas_c", KindInterval},
		{"llantas_fecha_d", "llantas_d", KindDate},
		{"llantas_modelo_D", "llantas_d", KindModel}, // suffix letter is case-insensitive
		{"motor_hr_a", "motor_a", KindHours},
		{"hidraulico_litros_b", "hidraulico_b", KindLiters},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			c := Classify(tt.column, exclusions, aliases)
			if c.Outcome != OutcomePattern {
				t.Fatalf("outcome = %v, want pattern", c.Outcome)
			}
			if c.Rule != "positional-suffix" {
				t.Errorf("rule = %q, want positional-suffix (must never fall through to bare-suffix)", c.Rule)
			}
			if c.Component != tt.component {
				t.Errorf("component = %q, want %q", c.Component, tt.component)
			}
			if c.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", c.Kind, tt.kind)
			}
		})
	}
}

func TestClassify_BareSuffix(t *testing.T) {
	exclusions, aliases := defaultRegistries()

	tests := []struct {
		column    string
		component string
		kind      FieldKind
	}{
		{"aceite_motor_km", "aceite_motor", KindKm},
		{"aceite_motor_fecha", "aceite_motor", KindDate},
		{"aceite_motor_modelo", "aceite_motor", KindModel},
		{"aceite_motor_intervalo", "aceite_motor", KindInterval},
		{"aceite_motor_litros", "aceite_motor", KindLiters},
		{"aceite_motor_hr", "aceite_motor", KindHours},
		{"filtro_aire_km", "filtro_aire", KindKm},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			c := Classify(tt.column, exclusions, aliases)
			if c.Outcome != OutcomePattern {
				t.Fatalf("outcome = %v, want pattern", c.Outcome)
			}
			if c.Rule != "bare-suffix" {
				t.Errorf("rule = %q, want bare-suffix", c.Rule)
			}
			if c.Component != tt.component {
				t.Errorf("component = %q, want %q", c.Component, tt.component)
			}
			if c.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", c.Kind, tt.kind)
			}
		})
	}
}

func TestClassify_TireLiteral(t *testing.T) {
	exclusions, aliases := defaultRegistries()

	c := Classify("marca_general_llantas", exclusions, aliases)
	if c.Outcome != OutcomePattern {
		t.Fatalf("outcome = %v, want pattern", c.Outcome)
	}
	if c.Component != "marca_general_llantas" {
		t.Errorf("component = %q, want marca_general_llantas", c.Component)
	}
	if c.Kind != KindModel {
		t.Errorf("kind = %v, want model", c.Kind)
	}
}

func TestClassify_Unrecognized(t *testing.T) {
	exclusions, aliases := defaultRegistries()

	for _, column := range []string{
		"observaciones",
		"color",
		"km",      // bare suffix with no base
		"_km",     // no base either
		"fecha_x", // looks positional but has no kind segment
		"aceite_motor_kms",
	} {
		t.Run(column, func(t *testing.T) {
			c := Classify(column, exclusions, aliases)
			if c.Outcome != OutcomeUnrecognized {
				t.Errorf("Classify(%q) outcome = %v, want unrecognized", column, c.Outcome)
			}
		})
	}
}

func TestClassify_RuleOrderIsStable(t *testing.T) {
	// The matcher list is the priority contract; a refactor that
	// reorders it silently changes classification semantics.
	want := []string{"exclusion", "alias", "positional-suffix", "bare-suffix", "tire-literal"}
	if len(matcherRules) != len(want) {
		t.Fatalf("got %d rules, want %d", len(matcherRules), len(want))
	}
	for i, rule := range matcherRules {
		if rule.Name != want[i] {
			t.Errorf("rule[%d] = %q, want %q", i, rule.Name, want[i])
		}
	}
}
