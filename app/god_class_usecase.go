package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/godscn/domain"
	svc "github.com/ludo-technologies/godscn/service"
)

// GodClassUseCase orchestrates the God Class detection workflow
type GodClassUseCase struct {
	service      domain.GodClassService
	fileReader   domain.FileReader
	formatter    domain.GodClassOutputFormatter
	configLoader domain.GodClassConfigurationLoader
	output       domain.ReportWriter
}

// NewGodClassUseCase creates a new God Class use case
func NewGodClassUseCase(
	service domain.GodClassService,
	fileReader domain.FileReader,
	formatter domain.GodClassOutputFormatter,
	configLoader domain.GodClassConfigurationLoader,
) *GodClassUseCase {
	return &GodClassUseCase{
		service:      service,
		fileReader:   fileReader,
		formatter:    formatter,
		configLoader: configLoader,
		output:       svc.NewFileOutputWriter(nil),
	}
}

// prepareAnalysis merges configuration, validates the request and resolves
// the source files. Config is merged first so callers may leave settings at
// zero and rely on the config file or built-in defaults.
func (uc *GodClassUseCase) prepareAnalysis(req domain.GodClassRequest) (domain.GodClassRequest, error) {
	finalReq, err := mergeGodClassConfig(uc.configLoader, req)
	if err != nil {
		return req, domain.NewConfigError("failed to load configuration", err)
	}

	if err := validateGodClassRequest(finalReq, true); err != nil {
		return req, domain.NewInvalidInputError("invalid request", err)
	}

	files, err := resolveSources(uc.fileReader, finalReq)
	if err != nil {
		return req, err
	}
	finalReq.Paths = files
	return finalReq, nil
}

// Execute performs detection and writes the report
func (uc *GodClassUseCase) Execute(ctx context.Context, req domain.GodClassRequest) error {
	finalReq, err := uc.prepareAnalysis(req)
	if err != nil {
		return err
	}

	response, err := uc.service.Analyze(ctx, finalReq)
	if err != nil {
		return domain.NewAnalysisError("God Class detection failed", err)
	}

	var out io.Writer
	if finalReq.OutputPath == "" {
		out = finalReq.OutputWriter
	}
	if err := uc.output.Write(out, finalReq.OutputPath, finalReq.OutputFormat, finalReq.NoOpen, func(w io.Writer) error {
		return uc.formatter.Write(response, finalReq.OutputFormat, w)
	}); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// AnalyzeAndReturn performs detection and returns the response without formatting
func (uc *GodClassUseCase) AnalyzeAndReturn(ctx context.Context, req domain.GodClassRequest) (*domain.GodClassResponse, error) {
	finalReq, err := uc.prepareAnalysis(req)
	if err != nil {
		return nil, err
	}

	response, err := uc.service.Analyze(ctx, finalReq)
	if err != nil {
		return nil, domain.NewAnalysisError("God Class detection failed", err)
	}
	return response, nil
}

// validateGodClassRequest checks a merged detection request. Output checks
// are skipped for requests that only feed another operation.
func validateGodClassRequest(req domain.GodClassRequest, needsOutput bool) error {
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}
	if needsOutput && req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer or output path is required")
	}
	if req.MinScore < 0 || req.MinScore > 1 {
		return fmt.Errorf("minimum score must be between 0 and 1")
	}
	if req.MinCohesionGain < 0 || req.MinCohesionGain > 1 {
		return fmt.Errorf("minimum cohesion gain must be between 0 and 1")
	}
	if req.MaxCandidates < 0 {
		return fmt.Errorf("maximum candidates cannot be negative")
	}
	if req.MinExtractedMembers < 1 {
		return fmt.Errorf("minimum extracted members must be at least 1")
	}
	if req.MaxGoroutines < 0 {
		return fmt.Errorf("max goroutines cannot be negative")
	}
	if needsOutput && !req.OutputFormat.Valid() {
		return fmt.Errorf("unsupported output format: %s", req.OutputFormat)
	}
	if !req.SortBy.Valid() {
		return fmt.Errorf("unsupported sort criteria: %s", req.SortBy)
	}
	return nil
}

// mergeGodClassConfig loads the configured request and overlays req on it
func mergeGodClassConfig(loader domain.GodClassConfigurationLoader, req domain.GodClassRequest) (domain.GodClassRequest, error) {
	if loader == nil {
		return req, nil
	}

	var configReq *domain.GodClassRequest
	if req.ConfigPath != "" {
		var err error
		configReq, err = loader.LoadConfig(req.ConfigPath)
		if err != nil {
			return req, fmt.Errorf("failed to load config from %s: %w", req.ConfigPath, err)
		}
	} else {
		configReq = loader.LoadDefaultConfig()
	}

	if configReq != nil {
		return *loader.MergeConfig(configReq, &req), nil
	}
	return req, nil
}

func resolveSources(fileReader domain.FileReader, req domain.GodClassRequest) ([]string, error) {
	files, err := ResolveFilePaths(
		fileReader,
		req.Paths,
		domain.BoolValue(req.Recursive, true),
		req.IncludePatterns,
		req.ExcludePatterns,
	)
	if err != nil {
		return nil, domain.NewFileNotFoundError("failed to collect files", err)
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no source files found in the specified paths", nil)
	}
	return files, nil
}

// GodClassUseCaseBuilder provides a builder pattern for creating GodClassUseCase
type GodClassUseCaseBuilder struct {
	service      domain.GodClassService
	fileReader   domain.FileReader
	formatter    domain.GodClassOutputFormatter
	configLoader domain.GodClassConfigurationLoader
	output       domain.ReportWriter
}

// NewGodClassUseCaseBuilder creates a new builder
func NewGodClassUseCaseBuilder() *GodClassUseCaseBuilder {
	return &GodClassUseCaseBuilder{}
}

// WithService sets the detection service
func (b *GodClassUseCaseBuilder) WithService(service domain.GodClassService) *GodClassUseCaseBuilder {
	b.service = service
	return b
}

// WithFileReader sets the file reader
func (b *GodClassUseCaseBuilder) WithFileReader(fileReader domain.FileReader) *GodClassUseCaseBuilder {
	b.fileReader = fileReader
	return b
}

// WithFormatter sets the output formatter
func (b *GodClassUseCaseBuilder) WithFormatter(formatter domain.GodClassOutputFormatter) *GodClassUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *GodClassUseCaseBuilder) WithConfigLoader(configLoader domain.GodClassConfigurationLoader) *GodClassUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// WithOutputWriter sets the report writer
func (b *GodClassUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *GodClassUseCaseBuilder {
	b.output = output
	return b
}

// Build creates the GodClassUseCase with the configured dependencies
func (b *GodClassUseCaseBuilder) Build() (*GodClassUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("god class service is required")
	}
	if b.fileReader == nil {
		return nil, fmt.Errorf("file reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	uc := NewGodClassUseCase(b.service, b.fileReader, b.formatter, b.configLoader)
	if b.output != nil {
		uc.output = b.output
	}
	return uc, nil
}
