package build

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// Outcome is the final build status.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeWarning  Outcome = "warning"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Issue is one recorded non-fatal problem, kept for the end-of-build summary.
type Issue struct {
	Stage    string
	Severity berrors.Severity
	Err      *berrors.BlogError
}

// Report accumulates counters and issues across one build run. Issues are
// collected as stages execute and reported once at the end, so a build with
// fifty broken links logs one summary instead of fifty scattered lines.
type Report struct {
	BuildID   string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	Posts     int
	Listed    int
	Tags      int
	Routes    int
	Artifacts int
	Skipped   int
	Feeds     int

	StageDurations map[string]time.Duration
	Issues         []Issue
	Outcome        Outcome
}

// NewReport starts a report with a fresh build ID.
func NewReport() *Report {
	return &Report{
		BuildID:        uuid.NewString(),
		StartTime:      time.Now(),
		StageDurations: make(map[string]time.Duration),
	}
}

// AddIssue records a non-fatal problem for the summary.
func (r *Report) AddIssue(stage string, severity berrors.Severity, err *berrors.BlogError) {
	r.Issues = append(r.Issues, Issue{Stage: stage, Severity: severity, Err: err})
}

// Warnings counts recorded issues at warning severity.
func (r *Report) Warnings() int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == berrors.SeverityWarning {
			n++
		}
	}
	return n
}

// Errors counts recorded issues at error severity.
func (r *Report) Errors() int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == berrors.SeverityError {
			n++
		}
	}
	return n
}

// Finish stamps the end time and resolves the outcome from recorded issues.
// An explicit outcome (failed, canceled) set by the pipeline wins.
func (r *Report) Finish() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	if r.Outcome != "" {
		return
	}
	switch {
	case r.Errors() > 0:
		r.Outcome = OutcomeFailed
	case r.Warnings() > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

// LogSummary emits the single end-of-build summary plus one line per issue.
func (r *Report) LogSummary() {
	for _, issue := range r.Issues {
		attrs := []any{
			logfields.Stage(issue.Stage),
			logfields.Error(issue.Err),
		}
		if issue.Severity == berrors.SeverityWarning {
			slog.Warn("Build issue", attrs...)
		} else {
			slog.Error("Build issue", attrs...)
		}
	}

	slog.Info("Build complete",
		logfields.BuildID(r.BuildID),
		slog.String("outcome", string(r.Outcome)),
		logfields.Posts(r.Posts),
		logfields.Routes(r.Routes),
		logfields.Artifacts(r.Artifacts),
		slog.Int("skipped", r.Skipped),
		slog.Int("tags", r.Tags),
		slog.Int("feeds", r.Feeds),
		slog.Int("warnings", r.Warnings()),
		slog.Int("errors", r.Errors()),
		logfields.DurationMS(float64(r.Duration.Milliseconds())))
}
