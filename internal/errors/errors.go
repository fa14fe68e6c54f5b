// Package errors provides the structured error type (BlogError) used across
// the build pipeline for category-based classification and severity handling.
package errors

import (
	"errors"
	"fmt"
)

// Category classifies a BlogError for reporting and policy decisions.
type Category string

const (
	// User-facing input errors
	CategoryConfig     Category = "config"     // conflicting or invalid configuration
	CategoryValidation Category = "validation" // malformed front matter / schema violation
	CategoryReference  Category = "reference"  // unknown author id, unresolved internal link

	// Output errors
	CategoryRoute Category = "route" // duplicate route paths
	CategoryFeed  Category = "feed"  // feed serialization

	// Infrastructure errors
	CategoryFilesystem Category = "filesystem"
	CategoryInternal   Category = "internal"
)

// Severity indicates how critical an error is.
type Severity string

const (
	SeverityFatal   Severity = "fatal"   // aborts the build
	SeverityError   Severity = "error"   // recorded, fails the build at the end
	SeverityWarning Severity = "warning" // recorded, build continues
	SeverityInfo    Severity = "info"    // informational only
)

// ContextFields carries structured context for a BlogError.
type ContextFields map[string]any

// BlogError is a structured error with category, severity, and context.
type BlogError struct {
	Category Category      `json:"category"`
	Severity Severity      `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// New creates a BlogError without an underlying cause.
func New(category Category, severity Severity, message string) *BlogError {
	return &BlogError{Category: category, Severity: severity, Message: message}
}

// Wrap creates a BlogError wrapping an underlying cause.
func Wrap(cause error, category Category, severity Severity, message string) *BlogError {
	return &BlogError{Category: category, Severity: severity, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *BlogError) Error() string {
	msg := e.Message
	for _, key := range []string{"path", "field", "author", "route", "link"} {
		if v, ok := e.Context[key]; ok {
			msg = fmt.Sprintf("%s [%s=%v]", msg, key, v)
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, msg, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, msg)
}

// Unwrap supports errors.Is/errors.As chains.
func (e *BlogError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a context field and returns the error for chaining.
func (e *BlogError) WithContext(key string, value any) *BlogError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// IsFatal reports whether the error severity requires aborting the build.
func (e *BlogError) IsFatal() bool {
	return e.Severity == SeverityFatal
}

// CategoryOf extracts the category from any error, walking wrapped chains.
// Non-BlogError values map to CategoryInternal.
func CategoryOf(err error) Category {
	var be *BlogError
	if errors.As(err, &be) {
		return be.Category
	}
	return CategoryInternal
}

// IsCategory reports whether err (or anything it wraps) is a BlogError of the
// given category.
func IsCategory(err error, category Category) bool {
	var be *BlogError
	if errors.As(err, &be) {
		return be.Category == category
	}
	return false
}
