package errors

// Convenience constructors for common error patterns

// Config errors

func ConfigNotFound(path string) *BlogError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(field, reason string) *BlogError {
	return New(CategoryConfig, SeverityFatal, "invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Front matter errors

func FrontMatterInvalid(path, field, reason string) *BlogError {
	return New(CategoryValidation, SeverityFatal, "malformed front matter").
		WithContext("path", path).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Reference errors

func UnknownAuthor(path, authorID string) *BlogError {
	return New(CategoryReference, SeverityFatal, "unknown author id").
		WithContext("path", path).
		WithContext("author", authorID)
}

func BrokenLink(path, destination string) *BlogError {
	return New(CategoryReference, SeverityFatal, "unresolved internal link").
		WithContext("path", path).
		WithContext("link", destination)
}

// Route errors

func DuplicateRoute(route, firstSource, secondSource string) *BlogError {
	return New(CategoryRoute, SeverityFatal, "duplicate route path").
		WithContext("route", route).
		WithContext("first", firstSource).
		WithContext("second", secondSource)
}

// Infrastructure errors

func ReadFailed(path string, cause error) *BlogError {
	return Wrap(cause, CategoryFilesystem, SeverityFatal, "content file read failed").
		WithContext("path", path)
}

func WriteFailed(path string, cause error) *BlogError {
	return Wrap(cause, CategoryFilesystem, SeverityFatal, "artifact write failed").
		WithContext("path", path)
}

func FeedFailed(format string, cause error) *BlogError {
	return Wrap(cause, CategoryFeed, SeverityFatal, "feed serialization failed").
		WithContext("format", format)
}

func InternalError(message string, cause error) *BlogError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
