package dataprocessing

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "reclamos/internal/errors"
	"reclamos/pkg/contracts/domain"
)

// Loader parses raw spreadsheet bytes into a canonical record set.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader with the given logger.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "loader"))}
}

// Load parses data as an Excel workbook, falling back to delimited text only
// when the bytes are not a workbook at all. Both strategies failing is the
// only fatal parse outcome; everything else degrades to quality warnings on
// the result. The sheet selector is a sheet name or zero-based index; empty
// means the first sheet.
func (l *Loader) Load(ctx context.Context, data []byte, sheet string) (*domain.RecordSet, error) {
	rows, err := l.readRows(ctx, data, sheet)
	if err != nil {
		return nil, err
	}

	set := l.buildRecordSet(ctx, rows)

	l.logger.InfoContext(ctx, "record set loaded",
		slog.Int("records", len(set.Records)),
		slog.Int("columns", len(set.Columns)),
		slog.Int("warnings", len(set.Warnings)))

	return set, nil
}

// readRows extracts the selected sheet as rows of cell strings. A readable
// workbook with a bad sheet selector is a caller error, never a reason to
// reinterpret the workbook bytes as delimited text.
func (l *Loader) readRows(ctx context.Context, data []byte, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		l.logger.WarnContext(ctx, "workbook open failed, retrying as delimited text",
			slog.String("error", err.Error()))
		rows, derr := readDelimited(data)
		if derr != nil {
			return nil, apperrors.NewParsingError("file could not be read", derr)
		}
		return rows, nil
	}
	defer f.Close()

	name, err := resolveSheet(f, sheet)
	if err != nil {
		return nil, apperrors.NewAppValidationError(err.Error())
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("sheet %q could not be read", name), err)
	}
	return rows, nil
}

// resolveSheet picks a sheet by name, by zero-based index, or defaults to the
// first sheet when the selector is empty.
func resolveSheet(f *excelize.File, sel string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	if sel == "" {
		return sheets[0], nil
	}
	for _, name := range sheets {
		if name == sel {
			return name, nil
		}
	}
	if idx, err := strconv.Atoi(sel); err == nil && idx >= 0 && idx < len(sheets) {
		return sheets[idx], nil
	}
	return "", fmt.Errorf("sheet %q not found", sel)
}

// readDelimited is the fallback parsing strategy: comma-separated first, then
// semicolon, which covers regional CSV exports.
func readDelimited(data []byte) ([][]string, error) {
	for _, delim := range []rune{',', ';'} {
		r := csv.NewReader(bytes.NewReader(data))
		r.Comma = delim
		r.FieldsPerRecord = -1
		r.LazyQuotes = true

		rows, err := r.ReadAll()
		if err != nil || len(rows) == 0 {
			continue
		}
		// A single-column result usually means the wrong delimiter, or bytes
		// that are not delimited text at all.
		if len(rows[0]) < 2 {
			continue
		}
		return rows, nil
	}
	return nil, fmt.Errorf("content is not valid delimited text")
}

// buildRecordSet normalizes the header row, ensures the eight core columns
// exist, coerces dates and cleans text fields. Unparseable dates become the
// missing marker and are counted toward a quality warning instead of failing
// the load.
func (l *Loader) buildRecordSet(ctx context.Context, rows [][]string) *domain.RecordSet {
	set := &domain.RecordSet{}

	headerIdx := findHeaderRow(rows)
	if headerIdx < 0 {
		// Empty sheet: still a valid (empty) record set with all core columns.
		set.Columns = append(set.Columns, domain.CoreColumns...)
		for _, col := range domain.CoreColumns {
			set.Warnings = append(set.Warnings, domain.QualityWarning{
				Code:    domain.WarnMissingColumn,
				Message: fmt.Sprintf("columna %q ausente, creada vacía", col),
			})
		}
		set.Warnings = append(set.Warnings, domain.QualityWarning{
			Code:    domain.WarnNoFechaColumn,
			Message: "sin columna fecha: vistas por día y por mes no disponibles",
		})
		return set
	}

	// Synonym collapse can map several source labels onto one canonical
	// column, so keep every contributing index per name.
	colIndex := make(map[string][]int)
	var extraOrder []string
	for j, label := range rows[headerIdx] {
		name := NormalizeColumnName(label)
		if name == "" {
			continue
		}
		if _, seen := colIndex[name]; !seen && !isCoreColumn(name) && name != "tramo" && name != "internacional" {
			extraOrder = append(extraOrder, name)
		}
		colIndex[name] = append(colIndex[name], j)
	}

	set.Columns = append(set.Columns, domain.CoreColumns...)
	set.Columns = append(set.Columns, extraOrder...)

	_, set.HasFechaColumn = colIndex[domain.ColFecha]
	_, hasTramo := colIndex["tramo"]
	_, hasIntl := colIndex["internacional"]
	set.HasScopeColumn = hasTramo || hasIntl

	for _, col := range domain.CoreColumns {
		if _, ok := colIndex[col]; !ok {
			set.Warnings = append(set.Warnings, domain.QualityWarning{
				Code:    domain.WarnMissingColumn,
				Message: fmt.Sprintf("columna %q ausente, creada vacía", col),
			})
		}
	}
	if !set.HasFechaColumn {
		set.Warnings = append(set.Warnings, domain.QualityWarning{
			Code:    domain.WarnNoFechaColumn,
			Message: "sin columna fecha: vistas por día y por mes no disponibles",
		})
	}

	// Categories and airlines repeat heavily relative to row count, so
	// intern their values instead of keeping one string per cell.
	dict := make(map[string]string)
	intern := func(s string) string {
		if v, ok := dict[s]; ok {
			return v
		}
		dict[s] = s
		return s
	}

	// cellAt returns the first non-blank value among the columns that
	// collapsed onto the same canonical name.
	cellAt := func(row []string, name string) string {
		for _, j := range colIndex[name] {
			if j < len(row) {
				if v := strings.TrimSpace(row[j]); v != "" {
					return v
				}
			}
		}
		return ""
	}

	var dateCells, dateFailures int

	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}

		c := domain.Complaint{
			NID:           cleanText(cellAt(row, domain.ColNID)),
			Categoria:     intern(cleanText(cellAt(row, domain.ColCategoria))),
			Aerolinea:     intern(cleanText(cellAt(row, domain.ColAerolinea))),
			Origen:        cleanText(cellAt(row, domain.ColOrigen)),
			Destino:       cleanText(cellAt(row, domain.ColDestino)),
			Titulo:        cleanText(cellAt(row, domain.ColTitulo)),
			URL:           cleanText(cellAt(row, domain.ColURL)),
			Tramo:         cleanText(cellAt(row, "tramo")),
			Internacional: cleanText(cellAt(row, "internacional")),
		}

		if set.HasFechaColumn {
			if raw := cellAt(row, domain.ColFecha); raw != "" {
				dateCells++
				if t, ok := parseDate(raw); ok {
					c.Fecha = t
					c.HasFecha = true
				} else {
					dateFailures++
				}
			}
		}

		for _, name := range extraOrder {
			if v := cleanText(cellAt(row, name)); v != domain.Missing {
				if c.Extra == nil {
					c.Extra = make(map[string]string)
				}
				c.Extra[name] = v
			}
		}

		set.Records = append(set.Records, c)
	}

	if dateFailures > 0 {
		set.Warnings = append(set.Warnings, domain.QualityWarning{
			Code:    domain.WarnUnparseableDates,
			Message: fmt.Sprintf("%d de %d fechas no se pudieron interpretar", dateFailures, dateCells),
			Count:   dateFailures,
		})
		if dateFailures*2 > dateCells {
			l.logger.WarnContext(ctx, "over half of date values are unparseable",
				slog.Int("failed", dateFailures),
				slog.Int("total", dateCells))
		}
	}

	return set
}

// findHeaderRow returns the index of the first row with any non-blank cell.
func findHeaderRow(rows [][]string) int {
	for i, row := range rows {
		if !isBlankRow(row) {
			return i
		}
	}
	return -1
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isCoreColumn(name string) bool {
	for _, col := range domain.CoreColumns {
		if name == col {
			return true
		}
	}
	return false
}

// cleanText trims a raw cell value and collapses the literal textual forms
// of "missing" back into the explicit marker.
func cleanText(s string) string {
	t := strings.TrimSpace(s)
	switch strings.ToLower(t) {
	case "", "nan", "null", "none":
		return domain.Missing
	}
	return t
}

// dateLayouts covers ISO dates, the day-first forms common in the source
// spreadsheets, and the short form excelize renders for date-styled cells.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"01-02-06",
	time.RFC3339,
}

// excelEpoch is day zero of the 1900 date system used by xlsx serials.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseDate coerces a cell value to a date. It tries the known layouts, then
// an Excel serial number. Failure is reported, never raised.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 59 && serial < 300000 {
		days := int(serial)
		frac := serial - float64(days)
		t := excelEpoch.AddDate(0, 0, days).Add(time.Duration(frac * 24 * float64(time.Hour)))
		return t, true
	}
	return time.Time{}, false
}
