// Package reporting renders a graded lab as student feedback, CI summaries
// and machine-readable artifacts.
package reporting

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jslab/labgrade/internal/models"
	"github.com/jslab/labgrade/internal/source"
)

// Run wraps a GradeReport with the run-specific context needed to render it.
// The report itself stays free of run identifiers.
type Run struct {
	ID          string
	GeneratedAt time.Time
	Report      *models.GradeReport

	// HTMLFile and ScriptFile are display paths; empty when not found.
	HTMLFile   string
	ScriptFile string
	// Link describes how the HTML page references scripts. Nil when either
	// file is missing.
	Link *source.ScriptLink

	// CommitTime is the submission timestamp exactly as reported by git.
	CommitTime string

	// Analytics is nil when timing analytics were unavailable, in which case
	// AnalyticsNote says why.
	Analytics     *models.Analytics
	AnalyticsNote string

	// Location is the zone used to display timestamps.
	Location *time.Location

	// FeedbackPath is where the full feedback file is written, for the
	// pointer at the end of the summary.
	FeedbackPath string
}

// NewRun creates a Run with a fresh ID for report.
func NewRun(report *models.GradeReport) *Run {
	return &Run{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Report:      report,
		Location:    time.UTC,
	}
}

// formatMarks prints a score the way students expect: no trailing zeros.
func formatMarks(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Fraction prints "score/max".
func Fraction(score, max float64) string {
	return formatMarks(score) + "/" + formatMarks(max)
}

// ConsoleLine is the one-line result printed at the end of a run.
func ConsoleLine(r *models.GradeReport) string {
	return "Lab graded: " + Fraction(r.TotalScore, r.TotalMax) +
		" (Submission: " + Fraction(r.Timing.Score, r.Timing.Max) +
		", TODOs: " + Fraction(r.TasksScore, r.TasksMax) + ")."
}
