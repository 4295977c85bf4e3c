package dataprocessing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// columnSynonyms maps normalized column labels to the canonical names the
// rest of the pipeline expects. Identity entries keep the map stable under
// re-application: normalizing an already-canonical name is a no-op.
var columnSynonyms = map[string]string{
	"aerolinea":        "aerolinea",
	"aerolineas":       "aerolinea",
	"aerolinea_nombre": "aerolinea",
	"categoria":        "categoria",
	"categorias":       "categoria",
	"origen":           "origen",
	"destino":          "destino",
	"fecha":            "fecha",
	"titulo":           "titulo",
	"url":              "url",
	"nid":              "nid",
	"tramo":            "tramo",
	"internacional":    "internacional",
}

// NormalizeText lower-cases, trims and strips accents/diacritics from s via
// Unicode canonical decomposition. It is pure and total: it never fails and
// empty input yields the empty string. Used for both column-name
// normalization and accent/case-insensitive category matching.
func NormalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	// The transformer is stateful, so build a fresh chain per call.
	stripMarks := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		// Fall back to the case-folded input rather than failing.
		return s
	}
	return out
}

// NormalizeColumnName converts an arbitrary spreadsheet column label into its
// canonical form: accent-stripped lower case, non-alphanumeric runs collapsed
// to single underscores, then mapped through the synonym table. Unmapped
// labels pass through unchanged so extra columns are preserved.
func NormalizeColumnName(name string) string {
	s := NormalizeText(name)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}

	parts := strings.Split(b.String(), "_")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	s = strings.Join(kept, "_")

	if canonical, ok := columnSynonyms[s]; ok {
		return canonical
	}
	return s
}
