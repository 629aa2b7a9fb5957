package schema

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// labelOverrides maps known component ids to their display labels.
// Checked before the generic tokenizer, so new special cases are
// additive data rather than new branches. Covers accented stems the
// tokenizer cannot recover from the ascii column names, plus the odd
// legacy literal.
var labelOverrides = map[string]string{
	"suspencion_a":          "Suspensión A",
	"suspencion_b":          "Suspensión B",
	"suspencion_c":          "Suspensión C",
	"suspencion_d":          "Suspensión D",
	"aceite_transmision":    "Aceite de Transmisión",
	"afinacion_motor":       "Afinación de Motor",
	"marca_general_llantas": "Marca y Modelo General de Llantas",
}

// upperTokens are short tokens the tokenizer renders fully uppercase.
var upperTokens = map[string]struct{}{
	"km":  {},
	"hr":  {},
	"abs": {},
}

// Label produces the human-readable title for a component id. Known
// ids come from the override table; everything else title-cases each
// underscore-delimited token, forcing units, single letters and the
// ABS acronym to uppercase.
func Label(componentID string) string {
	if label, ok := labelOverrides[componentID]; ok {
		return label
	}

	titler := cases.Title(language.Spanish)
	tokens := strings.Split(componentID, "_")
	for i, tok := range tokens {
		if _, ok := upperTokens[tok]; ok || len(tok) == 1 {
			tokens[i] = strings.ToUpper(tok)
			continue
		}
		tokens[i] = titler.String(tok)
	}
	return strings.Join(tokens, " ")
}
