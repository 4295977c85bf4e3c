package analytics

import (
	"context"
	"log/slog"
	"sort"

	"reclamos/internal/dataprocessing"
	"reclamos/pkg/contracts/domain"
)

// Summary table names as exposed to the display layer.
const (
	SummaryByAirline   = "por_aerolinea"
	SummaryByWeekday   = "por_dia_semana"
	SummaryByMonth     = "por_mes"
	SummaryTopRoutes   = "rutas_top"
	SummaryTopDestinos = "destinos_top"
	SummaryTopOrigenes = "origenes_top"
	SummaryByScope     = "por_ambito"
)

// RoutePlaceholder renders a missing route endpoint so every route row stays
// displayable.
const RoutePlaceholder = "?"

// RouteSeparator joins the two endpoints of a route label.
const RouteSeparator = " → "

// Aggregator derives filtered views and grouped summary tables from a
// canonical record set.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator with the given logger.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger.With(slog.String("component", "aggregator"))}
}

// Aggregate applies the filter selection and produces the dashboard: derived
// view rows sorted by date descending plus every summary table. It never
// fails; summaries whose input columns are absent come back unavailable.
func (a *Aggregator) Aggregate(ctx context.Context, set *domain.RecordSet, f domain.Filter) *domain.Dashboard {
	filtered := applyFilter(set.Records, f)
	rows := buildViewRows(filtered)

	// Date descending for the detail table; rows without a date sink to the
	// bottom. Stable so source order is kept within equal keys.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].HasFecha != rows[j].HasFecha {
			return rows[i].HasFecha
		}
		return rows[i].Fecha.After(rows[j].Fecha)
	})

	topN := f.EffectiveTopN()

	d := &domain.Dashboard{
		Rows:     rows,
		Warnings: set.Warnings,
	}
	d.KPIs = buildKPIs(rows)
	d.ByCategory, d.Destacadas = buildCategorySummaries(rows)
	d.ByAirline = domain.Summary{
		Name:      SummaryByAirline,
		Available: true,
		Rows: sortByCountDesc(countBy(rows, func(r domain.ViewRow) string {
			return r.Aerolinea
		})),
	}
	d.ByWeekday = buildWeekdaySummary(rows, set.HasFechaColumn)
	d.ByMonth = buildMonthSummary(rows, set.HasFechaColumn)
	d.TopRoutes = buildRouteSummary(rows, topN)
	d.TopDestinos = domain.Summary{
		Name:      SummaryTopDestinos,
		Available: true,
		Rows: truncate(sortByCountDesc(countBy(rows, func(r domain.ViewRow) string {
			return r.Destino
		})), topN),
	}
	d.TopOrigenes = domain.Summary{
		Name:      SummaryTopOrigenes,
		Available: true,
		Rows: truncate(sortByCountDesc(countBy(rows, func(r domain.ViewRow) string {
			return r.Origen
		})), topN),
	}
	d.ByScope = buildScopeSummary(rows, set.HasScopeColumn)

	a.logger.DebugContext(ctx, "aggregation complete",
		slog.Int("filtered_rows", len(rows)),
		slog.Int("top_n", topN))

	return d
}

func buildKPIs(rows []domain.ViewRow) domain.KPIs {
	categorias := make(map[string]struct{})
	aerolineas := make(map[string]struct{})
	for _, r := range rows {
		if r.Categoria != domain.Missing {
			categorias[r.Categoria] = struct{}{}
		}
		if r.Aerolinea != domain.Missing {
			aerolineas[r.Aerolinea] = struct{}{}
		}
	}
	return domain.KPIs{
		Total:      len(rows),
		Categorias: len(categorias),
		Aerolineas: len(aerolineas),
	}
}

// buildCategorySummaries produces the per-label category counts with
// presentation colors, plus the merged highlighted table where accent/case
// variants of a recognized category collapse into one normalized bucket.
func buildCategorySummaries(rows []domain.ViewRow) ([]domain.CategoryRow, []domain.CategoryRow) {
	counts := countBy(rows, func(r domain.ViewRow) string { return r.Categoria })

	byCategory := make([]domain.CategoryRow, 0, len(counts))
	merged := make(map[string]int)
	for _, row := range sortByCountDesc(counts) {
		color, label, destacada := categoryColor(row.Key)
		byCategory = append(byCategory, domain.CategoryRow{
			Categoria:   row.Key,
			Count:       row.Count,
			Color:       color,
			Destacada:   destacada,
			DisplayName: label,
		})
		if destacada {
			merged[normalizedHighlightKey(row.Key)] += row.Count
		}
	}

	destacadas := make([]domain.CategoryRow, 0, len(merged))
	for _, key := range highlightKeyOrder {
		count, ok := merged[key]
		if !ok {
			continue
		}
		h := highlighted[key]
		destacadas = append(destacadas, domain.CategoryRow{
			Categoria:   key,
			Count:       count,
			Color:       h.Color,
			Destacada:   true,
			DisplayName: h.Label,
		})
	}
	return byCategory, destacadas
}

func buildWeekdaySummary(rows []domain.ViewRow, available bool) domain.Summary {
	s := domain.Summary{Name: SummaryByWeekday, Available: available}
	if !available {
		return s
	}
	counts := make(map[string]int)
	for _, r := range rows {
		if r.DiaSemana != "" {
			counts[r.DiaSemana]++
		}
	}
	// Fixed calendar-week order, not count order.
	for _, day := range weekdayOrder {
		if n, ok := counts[day]; ok {
			s.Rows = append(s.Rows, domain.CountRow{Key: day, Count: n})
		}
	}
	return s
}

func buildMonthSummary(rows []domain.ViewRow, available bool) domain.Summary {
	s := domain.Summary{Name: SummaryByMonth, Available: available}
	if !available {
		return s
	}
	counts := make(map[string]int)
	for _, r := range rows {
		if r.AnioMes != "" {
			counts[r.AnioMes]++
		}
	}
	for key, n := range counts {
		s.Rows = append(s.Rows, domain.CountRow{Key: key, Count: n})
	}
	// Trend is chronological, ascending by month bucket.
	sort.Slice(s.Rows, func(i, j int) bool { return s.Rows[i].Key < s.Rows[j].Key })
	return s
}

func buildRouteSummary(rows []domain.ViewRow, topN int) domain.Summary {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[routeLabel(r.Origen, r.Destino)]++
	}
	return domain.Summary{
		Name:      SummaryTopRoutes,
		Available: true,
		Rows:      truncate(sortByCountDesc(counts), topN),
	}
}

// routeLabel renders "origen → destino" with a placeholder for a missing
// endpoint so the label is never blank.
func routeLabel(origen, destino string) string {
	if origen == domain.Missing {
		origen = RoutePlaceholder
	}
	if destino == domain.Missing {
		destino = RoutePlaceholder
	}
	return origen + RouteSeparator + destino
}

func buildScopeSummary(rows []domain.ViewRow, available bool) domain.Summary {
	s := domain.Summary{Name: SummaryByScope, Available: available}
	if !available {
		return s
	}
	counts := make(map[string]int)
	for _, r := range rows {
		if r.Ambito != "" {
			counts[r.Ambito]++
		}
	}
	s.Rows = sortByCountDesc(counts)
	return s
}

// countBy counts rows per key, skipping the missing marker so absent values
// never show up as a category of their own.
func countBy(rows []domain.ViewRow, key func(domain.ViewRow) string) map[string]int {
	counts := make(map[string]int)
	for _, r := range rows {
		if k := key(r); k != domain.Missing {
			counts[k]++
		}
	}
	return counts
}

// sortByCountDesc orders buckets by count descending, key ascending on ties
// for deterministic output.
func sortByCountDesc(counts map[string]int) []domain.CountRow {
	rows := make([]domain.CountRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, domain.CountRow{Key: k, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

func truncate(rows []domain.CountRow, n int) []domain.CountRow {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

// normalizedHighlightKey is the merged bucket key for a highlighted
// category: its accent/case-normalized form.
func normalizedHighlightKey(categoria string) string {
	return dataprocessing.NormalizeText(categoria)
}
