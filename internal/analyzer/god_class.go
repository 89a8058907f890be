package analyzer

import (
	"context"
	"errors"

	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/internal/source"
)

// GodClassOptions configures God Class detection
type GodClassOptions struct {
	// Split constraints
	MinExtractedMembers int
	MinExtractedMethods int
	MinExtractedFields  int
	MinRetainedMembers  int

	// Ranking
	MinCohesionGain       float64
	MinScore              float64
	MaxCandidatesPerClass int
	TargetSuffix          string

	// Extraction policy
	PinOverridingMethods bool
	SkipSerializable     bool
}

// DefaultGodClassOptions returns default detection options
func DefaultGodClassOptions() *GodClassOptions {
	return &GodClassOptions{
		MinExtractedMembers:   domain.DefaultMinExtractedMembers,
		MinExtractedMethods:   domain.DefaultMinExtractedMethods,
		MinExtractedFields:    domain.DefaultMinExtractedFields,
		MinRetainedMembers:    domain.DefaultMinRetainedMembers,
		MinCohesionGain:       domain.DefaultMinCohesionGain,
		MinScore:              domain.DefaultMinScore,
		MaxCandidatesPerClass: domain.DefaultMaxCandidatesPerClass,
		TargetSuffix:          domain.DefaultTargetSuffix,
		PinOverridingMethods:  true,
		SkipSerializable:      true,
	}
}

// GodClassDetector runs model extraction, clustering and ranking per class
type GodClassDetector struct {
	options   *GodClassOptions
	extractor *ClassModelExtractor
	ranker    *CandidateRanker
}

// NewGodClassDetector creates a new detector
func NewGodClassDetector(options *GodClassOptions) *GodClassDetector {
	if options == nil {
		options = DefaultGodClassOptions()
	}
	return &GodClassDetector{
		options: options,
		extractor: NewClassModelExtractor(&ModelOptions{
			PinOverridingMethods: options.PinOverridingMethods,
			SkipSerializable:     options.SkipSerializable,
		}),
		ranker: NewCandidateRanker(&RankingOptions{
			MinCohesionGain:       options.MinCohesionGain,
			MinScore:              options.MinScore,
			MaxCandidatesPerClass: options.MaxCandidatesPerClass,
			TargetSuffix:          options.TargetSuffix,
		}),
	}
}

// Options returns the detector options
func (d *GodClassDetector) Options() *GodClassOptions { return d.options }

// DetectClass analyzes one class. It returns (nil, nil) when the class has no
// qualifying split, and a domain.ErrUnmovableModel error when the class cannot
// be split at all.
func (d *GodClassDetector) DetectClass(ctx context.Context, class *source.Class) (*ExtractClassCandidateGroup, error) {
	if err := CheckCancelled(ctx); err != nil {
		return nil, err
	}

	model, err := d.extractor.Extract(class)
	if err != nil {
		return nil, err
	}

	matrix := BuildDistanceMatrix(model)
	dendrogram, err := NewClusteringEngine(matrix).Run(ctx)
	if err != nil {
		return nil, err
	}

	splits := dendrogram.Bipartitions(d.splitPolicy(matrix))
	if len(splits) == 0 {
		return nil, nil
	}
	return d.ranker.Rank(model, matrix, splits), nil
}

// Detect analyzes every class of the project. Unmovable classes and classes
// without candidates are skipped. A cancelled run returns no groups.
func (d *GodClassDetector) Detect(ctx context.Context, project ProjectInfo) ([]*ExtractClassCandidateGroup, error) {
	var groups []*ExtractClassCandidateGroup
	for _, class := range project.Classes() {
		group, err := d.DetectClass(ctx, class)
		if err != nil {
			if errors.Is(err, domain.ErrUnmovableModel) {
				continue
			}
			return nil, err
		}
		if group != nil {
			groups = append(groups, group)
		}
	}
	return groups, nil
}

func (d *GodClassDetector) splitPolicy(matrix *DistanceMatrix) SplitPolicy {
	return func(extracted, retained []int) bool {
		if len(extracted) < d.options.MinExtractedMembers || len(retained) < d.options.MinRetainedMembers {
			return false
		}
		fields, methods := 0, 0
		for _, idx := range extracted {
			if matrix.Entity(idx).IsField() {
				fields++
			} else {
				methods++
			}
		}
		return fields >= d.options.MinExtractedFields && methods >= d.options.MinExtractedMethods
	}
}
