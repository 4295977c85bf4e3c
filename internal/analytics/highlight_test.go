package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryColor(t *testing.T) {
	tests := []struct {
		name      string
		categoria string
		wantColor string
		wantOK    bool
	}{
		{"exact normalized", "cancelacion", "#FF6B6B", true},
		{"accented variant", "Cancelación", "#FF6B6B", true},
		{"upper case", "OVERBOOKING", "#4ECDC4", true},
		{"retraso", "Retraso", "#45B7D1", true},
		{"baggage with accents", "Pérdida o daño de maleta", "#96CEB4", true},
		{"unrecognized", "Otra cosa", DefaultColor, false},
		{"missing", "", DefaultColor, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color, label, ok := categoryColor(tt.categoria)
			assert.Equal(t, tt.wantColor, color)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.NotEmpty(t, label)
			} else {
				assert.Empty(t, label)
			}
		})
	}
}

func TestHighlightKeyOrderMatchesTable(t *testing.T) {
	assert.Len(t, highlightKeyOrder, len(highlighted))
	for _, key := range highlightKeyOrder {
		_, ok := highlighted[key]
		assert.True(t, ok, "key %q has no highlight entry", key)
	}
}
