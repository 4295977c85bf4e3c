// Package analytics implements the aggregator stage of the complaints
// pipeline: it applies a filter selection to a canonical record set and
// produces the derived view plus the grouped summary tables the dashboard
// renders. Aggregation never fails; a summary whose input column is absent is
// reported as unavailable.
package analytics
