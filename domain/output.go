package domain

import (
	"context"
	"io"
)

// ReportWriter delivers formatted output. A non-empty outputPath names the
// file to create and hand to writeFunc; otherwise writeFunc gets writer.
// HTML files may be opened in a browser unless noOpen is set.
type ReportWriter interface {
	Write(writer io.Writer, outputPath string, format OutputFormat, noOpen bool, writeFunc func(io.Writer) error) error
}

// ProgressReporter follows the per-class progress of a detection run.
// Advance is called concurrently by the workers.
type ProgressReporter interface {
	// Begin starts a run over total classes
	Begin(total int)

	// Advance records one more analyzed class
	Advance()

	// Finish ends the run
	Finish(success bool)

	// SetWriter redirects the bar; non-terminal writers disable it
	SetWriter(writer io.Writer)

	// Close releases the bar if a run was left open
	Close()
}

// ParallelExecutor runs indexed jobs on a bounded worker pool
type ParallelExecutor interface {
	// ForEach calls job for every index in [0, n). The first error cancels
	// the context handed to the remaining jobs and is returned.
	ForEach(ctx context.Context, n int, job func(ctx context.Context, i int) error) error
}

// ErrorCategory groups errors by the advice shown to the user
type ErrorCategory string

const (
	ErrorCategoryInput      ErrorCategory = "Input Error"
	ErrorCategoryConfig     ErrorCategory = "Configuration Error"
	ErrorCategoryProcessing ErrorCategory = "Processing Error"
	ErrorCategoryOutput     ErrorCategory = "Output Error"
	ErrorCategoryTimeout    ErrorCategory = "Timeout Error"
	ErrorCategoryRefactor   ErrorCategory = "Refactoring Error"
	ErrorCategoryUnknown    ErrorCategory = "Unknown Error"
)

// CategorizedError is an error together with its category and a short
// description of that category
type CategorizedError struct {
	Category ErrorCategory
	Message  string
	Original error
}

func (e *CategorizedError) Error() string {
	if e.Original != nil {
		return e.Original.Error()
	}
	return e.Message
}

func (e *CategorizedError) Unwrap() error { return e.Original }

// ErrorCategorizer maps failures to categories and recovery hints
type ErrorCategorizer interface {
	Categorize(err error) *CategorizedError
	GetRecoverySuggestions(category ErrorCategory) []string
}
