// Package http exposes the dashboard pipeline over HTTP with chi: dataset
// registration (upload, bundled file, remote URL), the aggregated dashboard
// view, the filtered CSV export, health and metrics. Errors are rendered as
// RFC 7807 problem details.
package http
