package analytics

import (
	"reclamos/internal/dataprocessing"
)

// DefaultColor is the neutral color shared by non-highlighted categories.
const DefaultColor = "#E0E0E0"

// highlighted maps the accent/case-normalized form of the four recognized
// categories to their display label and distinct color. Presentation only;
// it never affects row membership. The keys are Spanish-specific and fixed.
var highlighted = map[string]struct {
	Label string
	Color string
}{
	"cancelacion":              {Label: "Cancelación", Color: "#FF6B6B"},
	"overbooking":              {Label: "Overbooking", Color: "#4ECDC4"},
	"retraso":                  {Label: "Retraso", Color: "#45B7D1"},
	"perdida o dano de maleta": {Label: "Pérdida o daño de maleta", Color: "#96CEB4"},
}

// highlightKeyOrder keeps the merged highlighted table in a stable order.
var highlightKeyOrder = []string{
	"cancelacion", "overbooking", "retraso", "perdida o dano de maleta",
}

// categoryColor returns the color for an arbitrary free-text category label,
// matched insensitively to accents and case.
func categoryColor(categoria string) (color string, label string, ok bool) {
	h, ok := highlighted[dataprocessing.NormalizeText(categoria)]
	if !ok {
		return DefaultColor, "", false
	}
	return h.Color, h.Label, true
}
