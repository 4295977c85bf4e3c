package domain

import (
	"time"
)

// Core canonical column names. Every loaded record set carries all of them,
// synthesized as missing when the source omits the column.
const (
	ColNID       = "nid"
	ColFecha     = "fecha"
	ColCategoria = "categoria"
	ColAerolinea = "aerolinea"
	ColOrigen    = "origen"
	ColDestino   = "destino"
	ColTitulo    = "titulo"
	ColURL       = "url"
)

// CoreColumns lists the eight canonical columns in display order.
var CoreColumns = []string{
	ColNID, ColFecha, ColAerolinea, ColCategoria,
	ColOrigen, ColDestino, ColTitulo, ColURL,
}

// Missing is the explicit absent-value marker for text fields. Literal
// textual representations of "missing" ("nan", "null") collapse to it during
// loading so grouping never treats them as real categories.
const Missing = ""

// Complaint is one canonical complaint event. Text fields hold Missing when
// the source value was absent or unusable; Fecha is valid only when HasFecha
// is set.
type Complaint struct {
	NID       string    `json:"nid"`
	Fecha     time.Time `json:"fecha,omitempty"`
	HasFecha  bool      `json:"has_fecha"`
	Categoria string    `json:"categoria"`
	Aerolinea string    `json:"aerolinea"`
	Origen    string    `json:"origen"`
	Destino   string    `json:"destino"`
	Titulo    string    `json:"titulo"`
	URL       string    `json:"url"`

	// Tramo and Internacional feed the domestic/international flag when the
	// source provides them. Both optional.
	Tramo         string `json:"tramo,omitempty"`
	Internacional string `json:"internacional,omitempty"`

	// Extra preserves unmapped source columns (normalized label -> raw value).
	Extra map[string]string `json:"extra,omitempty"`
}

// QualityWarning is a non-fatal data quality finding surfaced alongside a
// loaded record set. It never stops processing.
type QualityWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// Quality warning codes.
const (
	WarnUnparseableDates = "UNPARSEABLE_DATES"
	WarnMissingColumn    = "MISSING_COLUMN"
	WarnNoFechaColumn    = "NO_FECHA_COLUMN"
)

// RecordSet is the canonical, immutable result of loading one spreadsheet.
// Filtering and aggregation produce derived views and never mutate it.
type RecordSet struct {
	Records  []Complaint      `json:"records"`
	Columns  []string         `json:"columns"`
	Warnings []QualityWarning `json:"warnings,omitempty"`

	// HasFechaColumn reports whether the source carried a fecha column at
	// all. Date-derived summaries are unavailable without it.
	HasFechaColumn bool `json:"has_fecha_column"`

	// HasScopeColumn reports whether either tramo or internacional was
	// present, enabling the domestic/international summary.
	HasScopeColumn bool `json:"has_scope_column"`
}
