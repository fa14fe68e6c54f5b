package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeySource     = "source"
	KeyStage      = "stage"
	KeyTag        = "tag"
	KeyAuthor     = "author"
	KeyRoute      = "route"
	KeyPage       = "page"
	KeyPosts      = "posts"
	KeyRoutes     = "routes"
	KeyArtifacts  = "artifacts"
	KeyFormat     = "format"
	KeyOutput     = "output"
	KeyBuildID    = "build_id"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func Source(s string) slog.Attr         { return slog.String(KeySource, s) }
func Stage(name string) slog.Attr       { return slog.String(KeyStage, name) }
func Tag(t string) slog.Attr            { return slog.String(KeyTag, t) }
func Author(id string) slog.Attr        { return slog.String(KeyAuthor, id) }
func Route(r string) slog.Attr          { return slog.String(KeyRoute, r) }
func Page(n int) slog.Attr              { return slog.Int(KeyPage, n) }
func Posts(n int) slog.Attr             { return slog.Int(KeyPosts, n) }
func Routes(n int) slog.Attr            { return slog.Int(KeyRoutes, n) }
func Artifacts(n int) slog.Attr         { return slog.Int(KeyArtifacts, n) }
func Format(f string) slog.Attr         { return slog.String(KeyFormat, f) }
func Output(dir string) slog.Attr       { return slog.String(KeyOutput, dir) }
func BuildID(id string) slog.Attr       { return slog.String(KeyBuildID, id) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
