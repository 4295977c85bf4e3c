package exporter

import (
	"strconv"

	"reclamos/pkg/contracts/domain"
)

const exportDateLayout = "2006-01-02"

// viewRecords renders filtered rows as CSV cells: dates formatted as
// YYYY-MM-DD, missing values as empty cells. Rows keep the order they arrive
// in (date descending from the aggregator).
func viewRecords(rows []domain.ViewRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		fecha := ""
		if r.HasFecha {
			fecha = r.Fecha.Format(exportDateLayout)
		}
		records = append(records, []string{
			r.NID, fecha, r.Aerolinea, r.Categoria,
			r.Origen, r.Destino, r.Titulo, r.URL,
		})
	}
	return records
}

// summaryHeaders returns the two-column header of a summary table.
func summaryHeaders(s domain.Summary) []string {
	return []string{s.Name, "reclamos"}
}

// summaryRecords renders a summary table as key/count cells.
func summaryRecords(s domain.Summary) [][]string {
	records := make([][]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		records = append(records, []string{row.Key, strconv.Itoa(row.Count)})
	}
	return records
}

// ViewCSV serializes a filtered view as a downloadable CSV with the eight
// core columns in display order.
func ViewCSV(rows []domain.ViewRow) ([]byte, error) {
	return Encode(domain.CoreColumns, viewRecords(rows))
}

// SummaryCSV serializes one summary table as key/count records.
func SummaryCSV(s domain.Summary) ([]byte, error) {
	return Encode(summaryHeaders(s), summaryRecords(s))
}

// WriteView writes a filtered view to a CSV file under the writer's output
// directory.
func (w *CSVWriter) WriteView(name string, rows []domain.ViewRow) error {
	return w.WriteFile(name, domain.CoreColumns, viewRecords(rows))
}

// WriteSummary writes one summary table to <name>.csv under the writer's
// output directory.
func (w *CSVWriter) WriteSummary(s domain.Summary) error {
	return w.WriteFile(s.Name+".csv", summaryHeaders(s), summaryRecords(s))
}
