package domain

// CountRow is one grouped-count bucket in a summary table.
type CountRow struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Summary is a named grouped-count table. Available is false when the input
// column the summary depends on was absent from the source; the rows are then
// empty and the view is reported as unavailable rather than an error.
type Summary struct {
	Name      string     `json:"name"`
	Available bool       `json:"available"`
	Rows      []CountRow `json:"rows"`
}

// CategoryRow extends a category count with presentation hints: the display
// label and color for the four highlighted categories, neutral otherwise.
type CategoryRow struct {
	Categoria   string `json:"categoria"`
	Count       int    `json:"count"`
	Color       string `json:"color"`
	Destacada   bool   `json:"destacada"`
	DisplayName string `json:"display_name,omitempty"`
}

// ViewRow is one filtered record plus its computed columns. Derived fields
// are empty when the row has no valid date or the scope is not derivable.
type ViewRow struct {
	Complaint
	DiaSemana string `json:"dia_semana,omitempty"`
	AnioMes   string `json:"anio_mes,omitempty"`
	Ambito    string `json:"ambito,omitempty"`
}

// KPIs are the headline figures for the filtered view.
type KPIs struct {
	Total      int `json:"total"`
	Categorias int `json:"categorias"`
	Aerolineas int `json:"aerolineas"`
}

// Dashboard is the full aggregation result for one record set and filter
// selection: the derived view plus every named summary table. Recomputed per
// request, never persisted.
type Dashboard struct {
	KPIs KPIs `json:"kpis"`

	Rows []ViewRow `json:"rows"`

	// ByCategory counts each literal category label with its presentation
	// color; Destacadas merges accent/case variants of the four highlighted
	// categories under their normalized key.
	ByCategory []CategoryRow `json:"by_category"`
	Destacadas []CategoryRow `json:"destacadas"`

	ByAirline   Summary `json:"by_airline"`
	ByWeekday   Summary `json:"by_weekday"`
	ByMonth     Summary `json:"by_month"`
	TopRoutes   Summary `json:"top_routes"`
	TopDestinos Summary `json:"top_destinos"`
	TopOrigenes Summary `json:"top_origenes"`
	ByScope     Summary `json:"by_scope"`

	Warnings []QualityWarning `json:"warnings,omitempty"`
}
