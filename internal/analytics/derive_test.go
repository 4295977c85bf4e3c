package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reclamos/pkg/contracts/domain"
)

func TestDeriveScope(t *testing.T) {
	tests := []struct {
		name string
		c    domain.Complaint
		want string
	}{
		{"truthy flag", domain.Complaint{Internacional: "Sí"}, ScopeInternacional},
		{"falsy flag", domain.Complaint{Internacional: "NO"}, ScopeNacional},
		{"numeric flag", domain.Complaint{Internacional: "1"}, ScopeInternacional},
		{"unknown token", domain.Complaint{Internacional: "quizas"}, ""},
		{"flag wins over tramo", domain.Complaint{Internacional: "no", Tramo: "Vuelo Internacional"}, ScopeNacional},
		{"tramo international", domain.Complaint{Tramo: "Vuelo Internacional SCL-MIA"}, ScopeInternacional},
		{"tramo intl shorthand", domain.Complaint{Tramo: "tramo INTL"}, ScopeInternacional},
		{"tramo domestic", domain.Complaint{Tramo: "cabotaje nacional"}, ScopeNacional},
		{"nothing derivable", domain.Complaint{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveScope(tt.c))
		})
	}
}

func TestBuildViewRows(t *testing.T) {
	records := []domain.Complaint{
		{
			NID:      "1",
			Fecha:    time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), // a Friday
			HasFecha: true,
			Tramo:    "internacional",
		},
		{NID: "2"},
	}

	rows := buildViewRows(records)
	assert.Len(t, rows, 2)

	assert.Equal(t, "Viernes", rows[0].DiaSemana)
	assert.Equal(t, "2024-01", rows[0].AnioMes)
	assert.Equal(t, ScopeInternacional, rows[0].Ambito)

	assert.Empty(t, rows[1].DiaSemana)
	assert.Empty(t, rows[1].AnioMes)
	assert.Empty(t, rows[1].Ambito)
}

func TestWeekdayNamesCoverWholeWeek(t *testing.T) {
	assert.Len(t, weekdayNames, 7)
	for _, name := range weekdayOrder {
		found := false
		for _, v := range weekdayNames {
			if v == name {
				found = true
				break
			}
		}
		assert.True(t, found, "weekday %q missing from names map", name)
	}
}
