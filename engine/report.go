package engine

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/statickit/composer/compose"
	"github.com/statickit/composer/errors"
	"github.com/statickit/composer/json"
	"github.com/statickit/composer/resolver"
)

// Resolution is the outcome of one pipeline run. It is immutable once
// returned and owned by the caller.
type Resolution struct {
	RunID       uuid.UUID
	Application string
	Duration    time.Duration

	// Chain is nil when a structural error halted the run before order
	// resolution.
	Chain *resolver.PrecedenceChain

	// Plans holds per-class composition plans, populated only for clean
	// runs.
	Plans map[string]compose.Plan

	report *errors.Chain
	fatal  *errors.Error
}

// OK reports whether the run finished with no findings.
func (r *Resolution) OK() bool {
	return r.fatal == nil && !r.report.HasErrors()
}

// Fatal returns the structural error that halted the run, or nil.
func (r *Resolution) Fatal() *errors.Error {
	return r.fatal
}

// Errors returns every finding of the run: the fatal structural error, or
// all collected order and conflict findings.
func (r *Resolution) Errors() []*errors.Error {
	return r.report.Errors()
}

// Plan returns the composition plan for one class. For clean runs this is
// a lookup; the zero Plan is returned for untouched classes or unresolved
// runs.
func (r *Resolution) Plan(class string) compose.Plan {
	return r.Plans[class]
}

// Report is the serializable view of a Resolution.
type Report struct {
	RunID       string              `json:"runId"`
	Application string              `json:"application"`
	Resolved    bool                `json:"resolved"`
	DurationMS  int64               `json:"durationMs"`
	Chain       []string            `json:"chain,omitempty"`
	Plans       map[string][]string `json:"plans,omitempty"`
	Errors      []*errors.Error     `json:"errors,omitempty"`
}

// Report builds the serializable view of the run.
func (r *Resolution) Report() Report {
	report := Report{
		RunID:       r.RunID.String(),
		Application: r.Application,
		Resolved:    r.OK(),
		DurationMS:  r.Duration.Milliseconds(),
		Errors:      r.report.Errors(),
	}
	if r.Chain != nil {
		report.Chain = r.Chain.Plugins()
	}
	if len(r.Plans) > 0 {
		report.Plans = make(map[string][]string, len(r.Plans))
		for class, plan := range r.Plans {
			report.Plans[class] = plan.Contributors()
		}
	}
	return report
}

// MarshalReport serializes the run's report as indented JSON.
func (r *Resolution) MarshalReport() ([]byte, error) {
	report := r.Report()
	return json.MarshalIndent(&report, "", "  ")
}

// WriteReport writes the run's report to w as JSON.
func (r *Resolution) WriteReport(w io.Writer) error {
	report := r.Report()
	return json.NewEncoder(w).Encode(&report)
}
