package build

import (
	"log/slog"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// applyPolicy routes a batch of detected issues through a configured
// reporting level. throw aborts by returning the first issue as a fatal
// error; error and warn record into the report; log emits immediately at
// info; ignore drops the batch.
func applyPolicy(level config.ReportingLevel, stage string, issues []*berrors.BlogError, report *Report) error {
	if len(issues) == 0 {
		return nil
	}

	switch level {
	case config.LevelIgnore:
		return nil
	case config.LevelLog:
		for _, issue := range issues {
			slog.Info("Build issue", logfields.Stage(stage), logfields.Error(issue))
		}
		return nil
	case config.LevelWarn:
		for _, issue := range issues {
			issue.Severity = berrors.SeverityWarning
			report.AddIssue(stage, berrors.SeverityWarning, issue)
		}
		return nil
	case config.LevelError:
		for _, issue := range issues {
			issue.Severity = berrors.SeverityError
			report.AddIssue(stage, berrors.SeverityError, issue)
		}
		return nil
	case config.LevelThrow:
		first := issues[0]
		first.Severity = berrors.SeverityFatal
		return first
	default:
		// Validation rejects unknown levels; treat a stray one as warn.
		for _, issue := range issues {
			report.AddIssue(stage, berrors.SeverityWarning, issue)
		}
		return nil
	}
}
