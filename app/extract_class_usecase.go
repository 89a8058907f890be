package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/godscn/domain"
	svc "github.com/ludo-technologies/godscn/service"
)

// ExtractClassUseCase runs detection, applies the selected candidate and
// writes the resulting structural model
type ExtractClassUseCase struct {
	service      domain.ExtractClassService
	fileReader   domain.FileReader
	configLoader domain.GodClassConfigurationLoader
	output       domain.ReportWriter
}

// NewExtractClassUseCase creates a new Extract Class use case
func NewExtractClassUseCase(
	service domain.ExtractClassService,
	fileReader domain.FileReader,
	configLoader domain.GodClassConfigurationLoader,
) *ExtractClassUseCase {
	return &ExtractClassUseCase{
		service:      service,
		fileReader:   fileReader,
		configLoader: configLoader,
		output:       svc.NewFileOutputWriter(nil),
	}
}

// WithOutputWriter replaces the report writer used for the model
func (uc *ExtractClassUseCase) WithOutputWriter(output domain.ReportWriter) *ExtractClassUseCase {
	uc.output = output
	return uc
}

// Execute applies the refactoring and writes the model. The response is
// returned for status reporting.
func (uc *ExtractClassUseCase) Execute(ctx context.Context, req domain.ExtractClassRequest) (*domain.ExtractClassResponse, error) {
	analysis, err := mergeGodClassConfig(uc.configLoader, req.Analysis)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	req.Analysis = analysis

	if err := validateExtractClassRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	files, err := resolveSources(uc.fileReader, req.Analysis)
	if err != nil {
		return nil, err
	}
	req.Analysis.Paths = files

	response, err := uc.service.Apply(ctx, req)
	if err != nil {
		return nil, err
	}

	format := req.OutputFormat
	if format == "" {
		format = domain.OutputFormatYAML
	}
	var out io.Writer
	if req.OutputPath == "" {
		out = req.OutputWriter
	}
	if err := uc.output.Write(out, req.OutputPath, format, true, func(w io.Writer) error {
		return svc.WriteModel(w, response, format)
	}); err != nil {
		return nil, domain.NewOutputError("failed to write model", err)
	}
	return response, nil
}

func validateExtractClassRequest(req domain.ExtractClassRequest) error {
	if req.ClassName == "" {
		return fmt.Errorf("a class name is required")
	}
	if req.Candidate < 0 {
		return fmt.Errorf("candidate rank must be positive")
	}
	switch req.OutputFormat {
	case "", domain.OutputFormatYAML, domain.OutputFormatJSON:
	default:
		return fmt.Errorf("the model can only be written as yaml or json, not %s", req.OutputFormat)
	}
	return validateGodClassRequest(req.Analysis, false)
}
