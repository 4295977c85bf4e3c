package domain

import (
	"time"
)

// Top-N bounds for ranked views (routes, origins, destinations).
const (
	TopNMin     = 5
	TopNMax     = 30
	TopNDefault = 15
)

// Filter is the externally supplied filter selection. Every field is
// optional; an empty set or zero interval bound means no restriction on that
// axis. Filters combine conjunctively.
type Filter struct {
	Airlines   []string   `json:"airlines,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
	TopN       int        `json:"top_n,omitempty"`
}

// HasDateRange reports whether at least one interval bound is set. Once
// active, rows without a valid date are excluded.
func (f Filter) HasDateRange() bool {
	return f.From != nil || f.To != nil
}

// EffectiveTopN returns the requested top-N bound clamped to the supported
// range, or the default when unset.
func (f Filter) EffectiveTopN() int {
	if f.TopN == 0 {
		return TopNDefault
	}
	if f.TopN < TopNMin {
		return TopNMin
	}
	if f.TopN > TopNMax {
		return TopNMax
	}
	return f.TopN
}
