package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reclamos/pkg/contracts/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func filterFixture() []domain.Complaint {
	return []domain.Complaint{
		{NID: "1", Aerolinea: "Alfa", Categoria: "Cancelación", Fecha: date(2024, 1, 5), HasFecha: true},
		{NID: "2", Aerolinea: "Beta", Categoria: "cancelacion", Fecha: date(2024, 1, 20), HasFecha: true},
		{NID: "3", Aerolinea: "Alfa", Categoria: "Retraso", Fecha: date(2024, 2, 10), HasFecha: true},
		{NID: "4", Aerolinea: "Alfa", Categoria: "Retraso"},
	}
}

func TestApplyFilter(t *testing.T) {
	records := filterFixture()

	tests := []struct {
		name string
		f    domain.Filter
		want []string
	}{
		{"empty filter keeps everything", domain.Filter{}, []string{"1", "2", "3", "4"}},
		{"by airline", domain.Filter{Airlines: []string{"Beta"}}, []string{"2"}},
		{"by literal category", domain.Filter{Categories: []string{"Retraso"}}, []string{"3", "4"}},
		{"airline and category conjunction", domain.Filter{Airlines: []string{"Alfa"}, Categories: []string{"Cancelación"}}, []string{"1"}},
		{"date range inclusive bounds", domain.Filter{From: datePtr(2024, 1, 5), To: datePtr(2024, 1, 20)}, []string{"1", "2"}},
		{"date range excludes undated rows", domain.Filter{From: datePtr(2024, 1, 1)}, []string{"1", "2", "3"}},
		{"upper bound only", domain.Filter{To: datePtr(2024, 1, 31)}, []string{"1", "2"}},
		{"no survivors", domain.Filter{Airlines: []string{"Gamma"}}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyFilter(records, tt.f)
			ids := make([]string, 0, len(got))
			for _, c := range got {
				ids = append(ids, c.NID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

// Adding a filter axis can only shrink the surviving set.
func TestApplyFilterMonotonic(t *testing.T) {
	records := filterFixture()

	loose := applyFilter(records, domain.Filter{Airlines: []string{"Alfa"}})
	tight := applyFilter(records, domain.Filter{
		Airlines:   []string{"Alfa"},
		Categories: []string{"Retraso"},
		From:       datePtr(2024, 1, 1),
	})

	assert.LessOrEqual(t, len(tight), len(loose))
	for _, c := range tight {
		assert.Contains(t, loose, c)
	}
}

func TestApplyFilterIgnoresTimeOfDay(t *testing.T) {
	records := []domain.Complaint{
		{NID: "1", Fecha: time.Date(2024, 1, 20, 23, 30, 0, 0, time.UTC), HasFecha: true},
	}
	got := applyFilter(records, domain.Filter{To: datePtr(2024, 1, 20)})
	assert.Len(t, got, 1)
}
