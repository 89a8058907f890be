package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ludo-technologies/godscn/domain"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	patterns []categoryPatterns
}

type categoryPatterns struct {
	category domain.ErrorCategory
	patterns []string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		patterns: initializeErrorPatterns(),
	}
}

// codeCategories maps domain error codes to categories. Codes win over
// message patterns.
var codeCategories = map[string]domain.ErrorCategory{
	domain.ErrCodeInvalidInput:           domain.ErrorCategoryInput,
	domain.ErrCodeFileNotFound:           domain.ErrorCategoryInput,
	domain.ErrCodeConfigError:            domain.ErrorCategoryConfig,
	domain.ErrCodeParseError:             domain.ErrorCategoryProcessing,
	domain.ErrCodeAnalysisError:          domain.ErrorCategoryProcessing,
	domain.ErrCodeUnmovableModel:         domain.ErrorCategoryProcessing,
	domain.ErrCodeOutputError:            domain.ErrorCategoryOutput,
	domain.ErrCodeUnsupportedFormat:      domain.ErrorCategoryOutput,
	domain.ErrCodeCancelled:              domain.ErrorCategoryTimeout,
	domain.ErrCodeStaleReference:         domain.ErrorCategoryRefactor,
	domain.ErrCodeNamingConflict:         domain.ErrorCategoryRefactor,
	domain.ErrCodeUnsupportedRefactoring: domain.ErrorCategoryRefactor,
	domain.ErrCodeReferenceCycle:         domain.ErrorCategoryRefactor,
}

// initializeErrorPatterns lists message patterns in match order
func initializeErrorPatterns() []categoryPatterns {
	return []categoryPatterns{
		{domain.ErrorCategoryTimeout, []string{
			"timeout",
			"timed out",
			"deadline",
			"context canceled",
			"cancelled",
		}},
		{domain.ErrorCategoryRefactor, []string{
			"stale",
			"naming conflict",
			"no free class name",
			"reference cycle",
			"not supported",
		}},
		{domain.ErrorCategoryConfig, []string{
			"config",
			"configuration",
			"invalid settings",
			"toml",
		}},
		{domain.ErrorCategoryInput, []string{
			"invalid input",
			"no files found",
			"no source files",
			"file not found",
			"cannot access",
			"permission denied",
			"no such file",
			"glob pattern",
		}},
		{domain.ErrorCategoryOutput, []string{
			"write",
			"output",
			"format",
			"cannot create",
			"failed to generate",
		}},
		{domain.ErrorCategoryProcessing, []string{
			"parse",
			"syntax",
			"analysis",
			"frontend",
			"class",
		}},
	}
}

// Categorize determines the category of an error
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	var domainErr domain.DomainError
	if errors.As(err, &domainErr) {
		if category, ok := codeCategories[domainErr.Code]; ok {
			return ec.categorized(category, err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ec.categorized(domain.ErrorCategoryTimeout, err)
	}

	errMsg := strings.ToLower(err.Error())
	for _, cp := range ec.patterns {
		if containsAnyPattern(errMsg, cp.patterns) {
			return ec.categorized(cp.category, err)
		}
	}

	return &domain.CategorizedError{
		Category: domain.ErrorCategoryUnknown,
		Message:  err.Error(),
		Original: err,
	}
}

func (ec *ErrorCategorizerImpl) categorized(category domain.ErrorCategory, err error) *domain.CategorizedError {
	return &domain.CategorizedError{
		Category: category,
		Message:  ec.getCategoryMessage(category),
		Original: err,
	}
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that files/directories exist and contain .java, .py or model files",
			"Check --include and --exclude globs",
			"Ensure you have read permissions for the target files",
		},
		domain.ErrorCategoryConfig: {
			"Verify configuration file format and values",
			"Try: godscn init to generate a valid config file",
			"Check for syntax errors in .godscn.toml",
		},
		domain.ErrorCategoryTimeout: {
			"Increase performance.timeout_seconds or analyze fewer files",
			"Analyze specific files instead of entire directories",
		},
		domain.ErrorCategoryOutput: {
			"Check write permissions and output format validity",
			"Ensure output directory exists and is writable",
		},
		domain.ErrorCategoryProcessing: {
			"Some files may have syntax errors",
			"Run godscn analyze on single files to isolate the problem",
		},
		domain.ErrorCategoryRefactor: {
			"Re-run godscn analyze: the class may have changed since the candidate was computed",
			"Pass --target to choose a free class name",
			"Pick another candidate with --candidate",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
			"Report the issue if it persists",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

// getCategoryMessage returns a user-friendly message for an error category
func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Failed to process input files or directories",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryTimeout:    "Analysis timed out or was cancelled",
		domain.ErrorCategoryOutput:     "Failed to generate or write output",
		domain.ErrorCategoryProcessing: "Error during class analysis",
		domain.ErrorCategoryRefactor:   "The refactoring could not be applied",
		domain.ErrorCategoryUnknown:    "An unexpected error occurred",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

// containsAnyPattern checks if a string contains any of the given patterns
func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}
