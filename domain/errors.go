package domain

import (
	"fmt"
	"strings"
)

// DomainError represents errors in the domain layer
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	if e.Message == "" {
		if e.Cause != nil {
			return fmt.Sprintf("[%s] %v", e.Code, e.Cause)
		}
		return fmt.Sprintf("[%s]", e.Code)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// Is matches a bare sentinel (code only) against any error carrying the same code
func (e DomainError) Is(target error) bool {
	t, ok := target.(DomainError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Cause == nil && t.Code == e.Code
}

// Domain error codes
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeFileNotFound      = "FILE_NOT_FOUND"
	ErrCodeParseError        = "PARSE_ERROR"
	ErrCodeAnalysisError     = "ANALYSIS_ERROR"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"

	ErrCodeCancelled              = "CANCELLED"
	ErrCodeUnmovableModel         = "UNMOVABLE_MODEL"
	ErrCodeStaleReference         = "STALE_REFERENCE"
	ErrCodeNamingConflict         = "NAMING_CONFLICT"
	ErrCodeUnsupportedRefactoring = "UNSUPPORTED_REFACTORING"
	ErrCodeReferenceCycle         = "REFERENCE_CYCLE"
)

// Sentinels for errors.Is
var (
	ErrCancelled              error = DomainError{Code: ErrCodeCancelled}
	ErrUnmovableModel         error = DomainError{Code: ErrCodeUnmovableModel}
	ErrStaleReference         error = DomainError{Code: ErrCodeStaleReference}
	ErrNamingConflict         error = DomainError{Code: ErrCodeNamingConflict}
	ErrUnsupportedRefactoring error = DomainError{Code: ErrCodeUnsupportedRefactoring}
	ErrReferenceCycle         error = DomainError{Code: ErrCodeReferenceCycle}
)

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewParseError creates a parse error
func NewParseError(file string, cause error) error {
	return NewDomainError(ErrCodeParseError, fmt.Sprintf("failed to parse file: %s", file), cause)
}

// NewAnalysisError creates an analysis error
func NewAnalysisError(message string, cause error) error {
	return NewDomainError(ErrCodeAnalysisError, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported format error
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}

// NewValidationError creates a validation error
func NewValidationError(message string) error {
	return NewDomainError(ErrCodeInvalidInput, message, nil)
}

// NewCancelledError reports that an analysis or edit was cancelled
func NewCancelledError(cause error) error {
	return NewDomainError(ErrCodeCancelled, "operation cancelled", cause)
}

// NewUnmovableModelError reports a class that cannot be split
func NewUnmovableModelError(class, reason string) error {
	return NewDomainError(ErrCodeUnmovableModel, fmt.Sprintf("class %s cannot be split: %s", class, reason), nil)
}

// NewStaleReferenceError reports a candidate that no longer matches the source
func NewStaleReferenceError(class string, missing ...string) error {
	msg := fmt.Sprintf("candidate for %s is stale", class)
	if len(missing) > 0 {
		msg = fmt.Sprintf("%s: unresolved %s", msg, strings.Join(missing, ", "))
	}
	return NewDomainError(ErrCodeStaleReference, msg, nil)
}

// NewNamingConflictError reports that no free target class name was found
func NewNamingConflictError(base string, attempts int) error {
	return NewDomainError(ErrCodeNamingConflict,
		fmt.Sprintf("no free class name derived from %s after %d attempts", base, attempts), nil)
}

// NewUnsupportedRefactoringError reports a refactoring kind the applier does not perform
func NewUnsupportedRefactoringError(kind string) error {
	return NewDomainError(ErrCodeUnsupportedRefactoring, fmt.Sprintf("refactoring %s is not supported", kind), nil)
}

// NewReferenceCycleError reports a mandatory reference cycle an edit would introduce
func NewReferenceCycleError(class string, cycle []string) error {
	return NewDomainError(ErrCodeReferenceCycle,
		fmt.Sprintf("extracting %s introduces a reference cycle: %s", class, strings.Join(cycle, " -> ")), nil)
}
