package logger

// FormatError exposes the error layout for tests.
var FormatError = formatError
