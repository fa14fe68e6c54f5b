package config

// ReportingLevel selects how a class of non-structural issues is surfaced,
// following the broken-link handling pattern.
type ReportingLevel string

const (
	LevelIgnore ReportingLevel = "ignore" // drop silently
	LevelLog    ReportingLevel = "log"    // debug log only
	LevelWarn   ReportingLevel = "warn"   // collected warning, build succeeds
	LevelError  ReportingLevel = "error"  // collected error, build fails at the end
	LevelThrow  ReportingLevel = "throw"  // abort immediately
)

// Valid reports whether l is a recognized level.
func (l ReportingLevel) Valid() bool {
	switch l {
	case LevelIgnore, LevelLog, LevelWarn, LevelError, LevelThrow:
		return true
	}
	return false
}

// Fatal reports whether the level aborts the build on first occurrence.
func (l ReportingLevel) Fatal() bool { return l == LevelThrow }
