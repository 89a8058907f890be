package domain

import (
	"context"
	"io"
)

// ExtractClassRequest selects a candidate of one class and asks for it to be applied
type ExtractClassRequest struct {
	// Detection settings used to rebuild the candidate group
	Analysis GodClassRequest

	// ClassName is the source class to split
	ClassName string

	// Candidate is the 1-based rank of the candidate in the class group
	Candidate int

	// TargetName overrides the generated target class name when non-empty
	TargetName string

	// Output of the resulting structural model
	OutputFormat OutputFormat // yaml or json
	OutputWriter io.Writer
	OutputPath   string
}

// ExtractClassResponse reports an applied Extract Class refactoring
type ExtractClassResponse struct {
	TransactionID string `json:"transaction_id" yaml:"transaction_id"`
	SourceClass   string `json:"source_class" yaml:"source_class"`
	TargetClass   string `json:"target_class" yaml:"target_class"`
	DelegateField string `json:"delegate_field" yaml:"delegate_field"`

	MovedFields       []string `json:"moved_fields" yaml:"moved_fields"`
	MovedMethods      []string `json:"moved_methods" yaml:"moved_methods"`
	RewrittenAccesses int      `json:"rewritten_accesses" yaml:"rewritten_accesses"`
	Score             float64  `json:"score" yaml:"score"`

	// Classes holds the resulting structural model of every touched class
	Classes interface{} `json:"classes" yaml:"classes"`

	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// ExtractClassService applies a selected candidate
type ExtractClassService interface {
	Apply(ctx context.Context, req ExtractClassRequest) (*ExtractClassResponse, error)
}

// DefaultExtractClassRequest returns an ExtractClassRequest applying the top candidate
func DefaultExtractClassRequest() *ExtractClassRequest {
	return &ExtractClassRequest{
		Analysis:     *DefaultGodClassRequest(),
		Candidate:    1,
		OutputFormat: OutputFormatYAML,
	}
}
