// Package exporter serializes filtered views and summary tables as CSV. All
// output is UTF-8 with a byte-order marker so spreadsheet tools pick the
// encoding up correctly.
package exporter
