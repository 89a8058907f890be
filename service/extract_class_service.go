package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/internal/refactor"
	"github.com/ludo-technologies/godscn/internal/source"
	"github.com/ludo-technologies/godscn/internal/version"
)

// ExtractClassServiceImpl re-runs detection and applies one candidate of a
// class group to the loaded workspace
type ExtractClassServiceImpl struct {
	detector *GodClassServiceImpl
	logger   *zap.Logger
}

// NewExtractClassService creates a service sharing detector's loader and collector
func NewExtractClassService(detector *GodClassServiceImpl, logger *zap.Logger) *ExtractClassServiceImpl {
	if detector == nil {
		detector = NewGodClassServiceWithLoader(nil, logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExtractClassServiceImpl{detector: detector, logger: logger}
}

// Apply applies candidate req.Candidate of the group of req.ClassName
func (s *ExtractClassServiceImpl) Apply(ctx context.Context, req domain.ExtractClassRequest) (*domain.ExtractClassResponse, error) {
	if req.ClassName == "" {
		return nil, domain.NewInvalidInputError("a class name is required", nil)
	}
	rank := req.Candidate
	if rank == 0 {
		rank = 1
	}

	d, err := s.detector.detect(ctx, req.Analysis)
	if err != nil {
		return nil, err
	}
	if _, ok := d.workspace().Class(req.ClassName); !ok {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("class %s not found", req.ClassName), nil)
	}
	group := d.group(req.ClassName)
	if group == nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("class %s has no Extract Class candidates", req.ClassName), nil)
	}
	candidate, ok := group.Candidate(rank)
	if !ok {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("candidate %d not found: %s", rank, describeGroup(group)), nil)
	}

	maxAttempts := req.Analysis.MaxNameAttempts
	if maxAttempts <= 0 {
		maxAttempts = domain.DefaultMaxNameAttempts
	}
	applier := refactor.NewApplier(d.workspace(), &refactor.ApplierOptions{MaxNameAttempts: maxAttempts}, s.logger)
	refactoring := refactor.ExtractClass{Candidate: candidate, TargetName: req.TargetName}
	result, err := applier.Apply(ctx, refactoring)
	if err != nil {
		return nil, err
	}
	if s.detector.collector != nil {
		s.detector.collector.RefactoringApplied(refactoring)
	}

	return &domain.ExtractClassResponse{
		TransactionID:     result.TransactionID,
		SourceClass:       result.SourceClass,
		TargetClass:       result.TargetClass,
		DelegateField:     result.DelegateField,
		MovedFields:       result.MovedFields,
		MovedMethods:      result.MovedMethods,
		RewrittenAccesses: result.RewrittenAccesses,
		Score:             candidate.Score,
		Classes:           d.workspace().Classes(),
		GeneratedAt:       time.Now().Format(time.RFC3339),
		Version:           version.Short(),
	}, nil
}

// WriteModel writes the structural model of an applied refactoring as a
// model file the model frontend can read back
func WriteModel(w io.Writer, resp *domain.ExtractClassResponse, format domain.OutputFormat) error {
	classes, ok := resp.Classes.([]*source.Class)
	if !ok {
		return domain.NewOutputError("response carries no class model", nil)
	}
	if format == "" {
		format = domain.OutputFormatYAML
	}
	if format != domain.OutputFormatYAML && format != domain.OutputFormatJSON {
		return domain.NewUnsupportedFormatError(string(format))
	}
	data, err := source.EncodeModel(classes, string(format))
	if err != nil {
		return domain.NewOutputError("failed to encode model", err)
	}
	if _, err := w.Write(data); err != nil {
		return domain.NewOutputError("failed to write model", err)
	}
	return nil
}
