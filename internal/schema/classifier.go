package schema

import "strings"

// Outcome is the result category of classifying one column name.
type Outcome int

const (
	// OutcomeExcluded means the column is explicitly not maintenance data.
	OutcomeExcluded Outcome = iota
	// OutcomeAliased means an explicit alias override resolved the column.
	OutcomeAliased
	// OutcomePattern means the naming convention resolved the column.
	OutcomePattern
	// OutcomeUnrecognized means the column matched nothing and is dropped
	// from the maintenance schema.
	OutcomeUnrecognized
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExcluded:
		return "excluded"
	case OutcomeAliased:
		return "aliased"
	case OutcomePattern:
		return "pattern"
	default:
		return "unrecognized"
	}
}

// Classification is the decision for one column: whether it belongs to
// the maintenance schema and, if so, which component and field kind.
type Classification struct {
	Outcome   Outcome
	Component string
	Kind      FieldKind
	// Rule names the matcher that fired, for logs and tests.
	Rule string
}

// suffixKinds maps the convention's name suffixes to field kinds, in
// the order they are tried.
var suffixKinds = []struct {
	Suffix string
	Kind   FieldKind
}{
	{"km", KindKm},
	{"fecha", KindDate},
	{"modelo", KindModel},
	{"intervalo", KindInterval},
	{"litros", KindLiters},
	{"hr", KindHours},
}

// tireBrandColumn is the one legacy column that carries the general
// tire brand/model without any suffix. It classifies as its own
// component with a model field.
const tireBrandColumn = "marca_general_llantas"

// matcherRule is one step of the classification pipeline. Rules are
// evaluated in order and the first match wins; the order itself is the
// priority contract (exclusion > alias > positional > bare suffix >
// tire literal) and must not be rearranged.
type matcherRule struct {
	Name  string
	Match func(column string, exclusions ExclusionSet, aliases AliasMap) (Classification, bool)
}

var matcherRules = []matcherRule{
	{
		Name: "exclusion",
		Match: func(column string, exclusions ExclusionSet, _ AliasMap) (Classification, bool) {
			if exclusions.Contains(column) {
				return Classification{Outcome: OutcomeExcluded, Rule: "exclusion"}, true
			}
			return Classification{}, false
		},
	},
	{
		Name: "alias",
		Match: func(column string, _ ExclusionSet, aliases AliasMap) (Classification, bool) {
			entry, ok := aliases.Resolve(column)
			if !ok {
				return Classification{}, false
			}
			return Classification{
				Outcome:   OutcomeAliased,
				Component: entry.Component,
				Kind:      entry.Kind,
				Rule:      "alias",
			}, true
		},
	},
	{
		// "{base}_{kind}_{letter}" encodes positional variants of one
		// logical component (wheel positions, brake pads) as separate
		// component identities "{base}_{letter}". Must run before the
		// bare-suffix rule or positional columns would spawn bogus
		// components like "suspencion_km_a".
		Name: "positional-suffix",
		Match: func(column string, _ ExclusionSet, _ AliasMap) (Classification, bool) {
			base, kind, letter, ok := splitPositional(column)
			if !ok {
				return Classification{}, false
			}
			return Classification{
				Outcome:   OutcomePattern,
				Component: base + "_" + letter,
				Kind:      kind,
				Rule:      "positional-suffix",
			}, true
		},
	},
	{
		Name: "bare-suffix",
		Match: func(column string, _ ExclusionSet, _ AliasMap) (Classification, bool) {
			for _, sk := range suffixKinds {
				suffix := "_" + sk.Suffix
				if strings.HasSuffix(column, suffix) && len(column) > len(suffix) {
					return Classification{
						Outcome:   OutcomePattern,
						Component: strings.TrimSuffix(column, suffix),
						Kind:      sk.Kind,
						Rule:      "bare-suffix",
					}, true
				}
			}
			return Classification{}, false
		},
	},
	{
		Name: "tire-literal",
		Match: func(column string, _ ExclusionSet, _ AliasMap) (Classification, bool) {
			if column != tireBrandColumn {
				return Classification{}, false
			}
			return Classification{
				Outcome:   OutcomePattern,
				Component: tireBrandColumn,
				Kind:      KindModel,
				Rule:      "tire-literal",
			}, true
		},
	},
}

// Classify decides whether one column name belongs to the maintenance
// schema. Explicit overrides (exclusions, aliases) always win over the
// naming convention; anything matching no rule is silently dropped as
// an unrelated vehicle attribute.
func Classify(column string, exclusions ExclusionSet, aliases AliasMap) Classification {
	for _, rule := range matcherRules {
		if c, ok := rule.Match(column, exclusions, aliases); ok {
			return c
		}
	}
	return Classification{Outcome: OutcomeUnrecognized, Rule: "none"}
}

// splitPositional matches "{base}_{kind}_{letter}" where letter is a
// single ASCII letter (case-insensitive) and kind is one of the known
// suffixes. Returns the base, kind and lowercased letter.
func splitPositional(column string) (base string, kind FieldKind, letter string, ok bool) {
	last := strings.LastIndexByte(column, '_')
	if last <= 0 || last != len(column)-2 {
		return "", 0, "", false
	}
	c := column[len(column)-1]
	if !isASCIILetter(c) {
		return "", 0, "", false
	}
	stem := column[:last]
	for _, sk := range suffixKinds {
		suffix := "_" + sk.Suffix
		if strings.HasSuffix(stem, suffix) && len(stem) > len(suffix) {
			return strings.TrimSuffix(stem, suffix), sk.Kind, strings.ToLower(string(c)), true
		}
	}
	return "", 0, "", false
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
