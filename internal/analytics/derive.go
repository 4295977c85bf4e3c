package analytics

import (
	"strings"
	"time"

	"reclamos/internal/dataprocessing"
	"reclamos/pkg/contracts/domain"
)

// weekdayNames maps Go weekdays to their Spanish display names.
var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miércoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

// weekdayOrder is the fixed calendar-week presentation order.
var weekdayOrder = []string{
	"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo",
}

const monthKeyLayout = "2006-01"

// Scope values for the domestic/international flag.
const (
	ScopeNacional      = "nacional"
	ScopeInternacional = "internacional"
)

// Recognized boolean-like tokens for the internacional column, compared after
// accent/case normalization. Anything else maps to missing.
var (
	truthyTokens = map[string]bool{
		"si": true, "true": true, "1": true, "x": true,
		"verdadero": true, "internacional": true, "intl": true,
	}
	falsyTokens = map[string]bool{
		"no": true, "false": true, "0": true,
		"falso": true, "nacional": true, "nac": true,
	}
)

// deriveScope classifies a record as domestic or international. A
// boolean-like internacional column wins; otherwise the tramo free text is
// classified by substring. International markers are checked first because
// "internacional" contains "nacional". Returns "" when not derivable.
func deriveScope(c domain.Complaint) string {
	if c.Internacional != domain.Missing {
		token := dataprocessing.NormalizeText(c.Internacional)
		switch {
		case truthyTokens[token]:
			return ScopeInternacional
		case falsyTokens[token]:
			return ScopeNacional
		default:
			return ""
		}
	}
	if c.Tramo != domain.Missing {
		t := dataprocessing.NormalizeText(c.Tramo)
		switch {
		case strings.Contains(t, "internacional"), strings.Contains(t, "intl"):
			return ScopeInternacional
		case strings.Contains(t, "nacional"), strings.Contains(t, "nac"):
			return ScopeNacional
		}
	}
	return ""
}

// buildViewRows computes the derived columns for each filtered record:
// Spanish weekday name and year-month bucket for rows with a valid date, and
// the domestic/international flag when derivable.
func buildViewRows(records []domain.Complaint) []domain.ViewRow {
	rows := make([]domain.ViewRow, 0, len(records))
	for _, c := range records {
		row := domain.ViewRow{Complaint: c}
		if c.HasFecha {
			row.DiaSemana = weekdayNames[c.Fecha.Weekday()]
			row.AnioMes = c.Fecha.Format(monthKeyLayout)
		}
		row.Ambito = deriveScope(c)
		rows = append(rows, row)
	}
	return rows
}
