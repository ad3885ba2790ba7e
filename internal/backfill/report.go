package backfill

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Report summarizes a run.
type Report struct {
	// Results are in group order.
	Results []Result
}

// NewReport wraps results.
func NewReport(results []Result) *Report {
	return &Report{Results: results}
}

// Count returns how many groups ended in state s.
func (r *Report) Count(s State) int {
	return lo.CountBy(r.Results, func(res Result) bool { return res.State == s })
}

// Failed returns the failed results.
func (r *Report) Failed() []Result {
	return lo.Filter(r.Results, func(res Result, _ int) bool { return res.State == StateFailed })
}

// Err joins the errors of every failed group, or returns nil.
func (r *Report) Err() error {
	errs := lo.Map(r.Failed(), func(res Result, _ int) error { return res.Err })
	return errors.Join(errs...)
}

// Summary is a one-line count of every state that occurred.
func (r *Report) Summary() string {
	var parts []string
	for s := StateUnresolved; s <= StateFailed; s++ {
		if n := r.Count(s); n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", s, n))
		}
	}
	if len(parts) == 0 {
		return "no topics"
	}
	return strings.Join(parts, " ")
}
