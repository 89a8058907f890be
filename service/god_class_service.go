package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/internal/analyzer"
	"github.com/ludo-technologies/godscn/internal/source"
	"github.com/ludo-technologies/godscn/internal/telemetry"
	"github.com/ludo-technologies/godscn/internal/version"
)

// RefactoringName is the name usage events report for Extract Class
const RefactoringName = "Extract Class"

// GodClassServiceImpl implements the GodClassService interface
type GodClassServiceImpl struct {
	loader    *SourceLoader
	logger    *zap.Logger
	progress  domain.ProgressReporter
	collector *telemetry.Collector
}

// NewGodClassService creates a new God Class service with the default frontends
func NewGodClassService() *GodClassServiceImpl {
	return NewGodClassServiceWithLoader(NewSourceLoader(nil, nil, nil), nil)
}

// NewGodClassServiceWithLoader creates a service reading sources through loader
func NewGodClassServiceWithLoader(loader *SourceLoader, logger *zap.Logger) *GodClassServiceImpl {
	if loader == nil {
		loader = NewSourceLoader(nil, nil, logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GodClassServiceImpl{loader: loader, logger: logger}
}

// SetProgress attaches a reporter advanced once per analyzed class
func (s *GodClassServiceImpl) SetProgress(p domain.ProgressReporter) {
	s.progress = p
}

// SetCollector attaches the usage collector notified of found candidates
func (s *GodClassServiceImpl) SetCollector(c *telemetry.Collector) {
	s.collector = c
}

// detection is one finished analysis run
type detection struct {
	load       *LoadResult
	classes    int
	unmovable  int
	groups     []*analyzer.ExtractClassCandidateGroup
	candidates int
}

// Analyze performs God Class detection on the request's files
func (s *GodClassServiceImpl) Analyze(ctx context.Context, req domain.GodClassRequest) (*domain.GodClassResponse, error) {
	d, err := s.detect(ctx, req)
	if err != nil {
		return nil, err
	}

	warnings := append([]string(nil), d.load.Warnings...)
	if d.classes == 0 {
		warnings = append(warnings, "No classes found to analyze")
	}

	findings := make([]domain.GodClassFinding, 0, len(d.groups))
	for _, g := range d.groups {
		findings = append(findings, toFinding(g))
	}
	findings = sortFindings(findings, req.SortBy)

	return &domain.GodClassResponse{
		Findings:    findings,
		Summary:     summarize(findings, d),
		Warnings:    warnings,
		Errors:      d.load.Errors,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Short(),
		Config:      buildConfigForResponse(req),
	}, nil
}

// AnalyzeFile analyzes the classes of a single file
func (s *GodClassServiceImpl) AnalyzeFile(ctx context.Context, filePath string, req domain.GodClassRequest) (*domain.GodClassResponse, error) {
	single := req
	single.Paths = []string{filePath}
	return s.Analyze(ctx, single)
}

func (s *GodClassServiceImpl) detect(ctx context.Context, req domain.GodClassRequest) (*detection, error) {
	if req.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	load, err := s.loader.Load(ctx, req.Paths, req.MaxGoroutines)
	if err != nil {
		return nil, err
	}
	d := &detection{load: load}

	classes := load.Workspace.Classes()
	d.classes = len(classes)
	if d.classes == 0 {
		return d, nil
	}

	detector := analyzer.NewGodClassDetector(detectorOptions(req))
	groups := make([]*analyzer.ExtractClassCandidateGroup, len(classes))

	if s.progress != nil {
		s.progress.Begin(len(classes))
		defer s.progress.Close()
	}

	var unmovable atomic.Int64
	err = NewParallelExecutor(req.MaxGoroutines, 0).ForEach(ctx, len(classes), func(ctx context.Context, i int) error {
		class := classes[i]
		group, err := detector.DetectClass(ctx, class)
		if s.progress != nil {
			s.progress.Advance()
		}
		if errors.Is(err, domain.ErrUnmovableModel) {
			s.logger.Debug("class not splittable", zap.String("class", class.Name), zap.Error(err))
			unmovable.Add(1)
			return nil
		}
		groups[i] = group
		return err
	})
	if s.progress != nil {
		s.progress.Finish(err == nil)
	}
	if err != nil {
		if analyzer.IsCancelled(ctx) || errors.Is(err, domain.ErrCancelled) {
			return nil, domain.NewCancelledError(ctx.Err())
		}
		return nil, domain.NewAnalysisError("god class detection failed", err)
	}
	if err := analyzer.CheckCancelled(ctx); err != nil {
		return nil, err
	}

	d.unmovable = int(unmovable.Load())
	for _, g := range groups {
		if g == nil {
			continue
		}
		d.groups = append(d.groups, g)
		d.candidates += len(g.Candidates)
	}
	if s.collector != nil {
		s.collector.RefactoringFound(RefactoringName, d.candidates)
	}

	s.logger.Info("god class detection finished",
		zap.Int("classes", d.classes),
		zap.Int("unmovable", d.unmovable),
		zap.Int("god_classes", len(d.groups)),
		zap.Int("candidates", d.candidates))
	return d, nil
}

// workspace exposes the loaded scope to the extract class service
func (d *detection) workspace() *source.Workspace { return d.load.Workspace }

func (d *detection) group(className string) *analyzer.ExtractClassCandidateGroup {
	for _, g := range d.groups {
		if g.SourceClass == className {
			return g
		}
	}
	return nil
}

func detectorOptions(req domain.GodClassRequest) *analyzer.GodClassOptions {
	opts := analyzer.DefaultGodClassOptions()
	opts.MinExtractedMembers = req.MinExtractedMembers
	opts.MinExtractedMethods = req.MinExtractedMethods
	opts.MinExtractedFields = req.MinExtractedFields
	opts.MinRetainedMembers = req.MinRetainedMembers
	opts.MinCohesionGain = req.MinCohesionGain
	opts.MinScore = req.MinScore
	opts.MaxCandidatesPerClass = req.MaxCandidates
	if req.TargetSuffix != "" {
		opts.TargetSuffix = req.TargetSuffix
	}
	opts.PinOverridingMethods = domain.BoolValue(req.PinOverridingMethods, true)
	opts.SkipSerializable = domain.BoolValue(req.SkipSerializable, true)
	return opts
}

func toFinding(g *analyzer.ExtractClassCandidateGroup) domain.GodClassFinding {
	f := domain.GodClassFinding{
		ClassName:     g.SourceClass,
		FilePath:      g.FilePath,
		StartLine:     g.StartLine,
		EndLine:       g.EndLine,
		TotalMembers:  g.TotalMembers,
		PinnedMembers: g.PinnedMembers,
		Fingerprint:   g.Fingerprint,
		Candidates:    make([]domain.ExtractClassCandidate, 0, len(g.Candidates)),
	}
	for i, c := range g.Candidates {
		f.Candidates = append(f.Candidates, toCandidate(i+1, c))
	}
	return f
}

func toCandidate(rank int, c *analyzer.ExtractClassCandidateRefactoring) domain.ExtractClassCandidate {
	members := make([]domain.ExtractedMember, 0, len(c.Entities))
	for _, e := range c.Entities {
		members = append(members, domain.ExtractedMember{
			Name:   e.Name,
			Kind:   string(e.Kind),
			Line:   e.Line,
			Static: e.Static,
		})
	}
	return domain.ExtractClassCandidate{
		Rank:                  rank,
		TargetClass:           c.TargetClass,
		Score:                 c.Score,
		CohesionGain:          c.CohesionGain,
		IntraDistance:         c.IntraDistance,
		CrossDistance:         c.CrossDistance,
		Coupling:              c.Coupling,
		ExtractedFields:       c.ExtractedFieldsCount,
		ExtractedMethods:      c.ExtractedMethodsCount,
		SourceAccessedMembers: c.SourceAccessedMembers,
		TargetAccessedMembers: c.TargetAccessedMembers,
		Members:               members,
	}
}

// sortFindings orders findings; ties fall back to location so output is stable
func sortFindings(findings []domain.GodClassFinding, sortBy domain.SortCriteria) []domain.GodClassFinding {
	sorted := make([]domain.GodClassFinding, len(findings))
	copy(sorted, findings)

	byLocation := func(a, b domain.GodClassFinding) bool {
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		return a.ClassName < b.ClassName
	}

	switch sortBy {
	case domain.SortByName:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].ClassName != sorted[j].ClassName {
				return sorted[i].ClassName < sorted[j].ClassName
			}
			return byLocation(sorted[i], sorted[j])
		})
	case domain.SortByLocation:
		sort.SliceStable(sorted, func(i, j int) bool {
			return byLocation(sorted[i], sorted[j])
		})
	case domain.SortBySize:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].TotalMembers != sorted[j].TotalMembers {
				return sorted[i].TotalMembers > sorted[j].TotalMembers
			}
			return byLocation(sorted[i], sorted[j])
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			si, sj := sorted[i].BestScore(), sorted[j].BestScore()
			if si != sj {
				return si > sj
			}
			return byLocation(sorted[i], sorted[j])
		})
	}
	return sorted
}

func summarize(findings []domain.GodClassFinding, d *detection) domain.GodClassSummary {
	summary := domain.GodClassSummary{
		FilesAnalyzed:    d.load.FilesParsed,
		ClassesAnalyzed:  d.classes,
		UnmovableClasses: d.unmovable,
		GodClasses:       len(findings),
	}
	if len(findings) == 0 {
		return summary
	}

	total := 0.0
	for _, f := range findings {
		summary.TotalCandidates += len(f.Candidates)
		best := f.BestScore()
		total += best
		if best > summary.MaxScore {
			summary.MaxScore = best
		}
	}
	summary.AverageBestScore = total / float64(len(findings))
	return summary
}

func buildConfigForResponse(req domain.GodClassRequest) map[string]any {
	return map[string]any{
		"minScore":            req.MinScore,
		"minCohesionGain":     req.MinCohesionGain,
		"maxCandidates":       req.MaxCandidates,
		"minExtractedMembers": req.MinExtractedMembers,
		"targetSuffix":        req.TargetSuffix,
		"outputFormat":        req.OutputFormat,
		"sortBy":              req.SortBy,
	}
}

// describeGroup is used in log and error messages
func describeGroup(g *analyzer.ExtractClassCandidateGroup) string {
	return fmt.Sprintf("%s (%d candidates)", g.SourceClass, len(g.Candidates))
}
