package analytics

import (
	"time"

	"reclamos/pkg/contracts/domain"
)

// applyFilter returns the records that survive the conjunctive filter:
// airline allowed AND category allowed AND date within the closed interval.
// Rows without a valid date are excluded once a date filter is active.
func applyFilter(records []domain.Complaint, f domain.Filter) []domain.Complaint {
	airlines := toSet(f.Airlines)
	categories := toSet(f.Categories)

	out := make([]domain.Complaint, 0, len(records))
	for _, c := range records {
		if len(airlines) > 0 && !airlines[c.Aerolinea] {
			continue
		}
		if len(categories) > 0 && !categories[c.Categoria] {
			continue
		}
		if f.HasDateRange() {
			if !c.HasFecha {
				continue
			}
			d := dateOnly(c.Fecha)
			if f.From != nil && d.Before(dateOnly(*f.From)) {
				continue
			}
			if f.To != nil && d.After(dateOnly(*f.To)) {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// dateOnly truncates a timestamp to day granularity so interval bounds stay
// inclusive regardless of time-of-day components.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
