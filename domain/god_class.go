package domain

import (
	"context"
	"io"
)

// GodClassRequest represents a request for God Class detection
type GodClassRequest struct {
	// Input files or directories to analyze
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string // Path to save output file (for HTML format)
	NoOpen       bool   // Don't auto-open HTML in browser
	ShowDetails  bool

	// Filtering and sorting
	MinScore      float64
	MaxCandidates int // Per class, 0 means unlimited
	SortBy        SortCriteria

	// Split constraints
	MinExtractedMembers int
	MinExtractedMethods int
	MinExtractedFields  int
	MinRetainedMembers  int
	MinCohesionGain     float64

	// Extraction policy
	TargetSuffix         string
	MaxNameAttempts      int
	PinOverridingMethods *bool
	SkipSerializable     *bool

	// Configuration
	ConfigPath string

	// Analysis options
	Recursive       *bool
	IncludePatterns []string
	ExcludePatterns []string
	MaxGoroutines   int
	TimeoutSeconds  int
}

// ExtractedMember describes one member proposed for extraction
type ExtractedMember struct {
	Name   string `json:"name" yaml:"name"`
	Kind   string `json:"kind" yaml:"kind"`
	Line   int    `json:"line,omitempty" yaml:"line,omitempty"`
	Static bool   `json:"static,omitempty" yaml:"static,omitempty"`
}

// ExtractClassCandidate represents one ranked Extract Class opportunity
type ExtractClassCandidate struct {
	Rank        int    `json:"rank" yaml:"rank"`
	TargetClass string `json:"target_class" yaml:"target_class"`

	Score         float64 `json:"score" yaml:"score"`
	CohesionGain  float64 `json:"cohesion_gain" yaml:"cohesion_gain"`
	IntraDistance float64 `json:"intra_distance" yaml:"intra_distance"`
	CrossDistance float64 `json:"cross_distance" yaml:"cross_distance"`
	Coupling      float64 `json:"coupling" yaml:"coupling"`

	ExtractedFields       int `json:"extracted_fields" yaml:"extracted_fields"`
	ExtractedMethods      int `json:"extracted_methods" yaml:"extracted_methods"`
	SourceAccessedMembers int `json:"source_accessed_members" yaml:"source_accessed_members"`
	TargetAccessedMembers int `json:"target_accessed_members" yaml:"target_accessed_members"`

	Members []ExtractedMember `json:"members" yaml:"members"`
}

// GodClassFinding represents the candidate group of a single class
type GodClassFinding struct {
	ClassName     string `json:"class_name" yaml:"class_name"`
	FilePath      string `json:"file_path" yaml:"file_path"`
	StartLine     int    `json:"start_line" yaml:"start_line"`
	EndLine       int    `json:"end_line" yaml:"end_line"`
	TotalMembers  int    `json:"total_members" yaml:"total_members"`
	PinnedMembers int    `json:"pinned_members" yaml:"pinned_members"`
	Fingerprint   string `json:"fingerprint" yaml:"fingerprint"`

	Candidates []ExtractClassCandidate `json:"candidates" yaml:"candidates"`
}

// BestScore returns the score of the top candidate, or 0
func (f GodClassFinding) BestScore() float64 {
	if len(f.Candidates) == 0 {
		return 0
	}
	return f.Candidates[0].Score
}

// GodClassSummary represents aggregate detection statistics
type GodClassSummary struct {
	FilesAnalyzed    int     `json:"files_analyzed" yaml:"files_analyzed"`
	ClassesAnalyzed  int     `json:"classes_analyzed" yaml:"classes_analyzed"`
	UnmovableClasses int     `json:"unmovable_classes" yaml:"unmovable_classes"`
	GodClasses       int     `json:"god_classes" yaml:"god_classes"`
	TotalCandidates  int     `json:"total_candidates" yaml:"total_candidates"`
	AverageBestScore float64 `json:"average_best_score" yaml:"average_best_score"`
	MaxScore         float64 `json:"max_score" yaml:"max_score"`
}

// GodClassResponse represents the complete God Class detection result
type GodClassResponse struct {
	// Analysis results
	Findings []GodClassFinding `json:"findings" yaml:"findings"`
	Summary  GodClassSummary   `json:"summary" yaml:"summary"`

	// Warnings and issues
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Metadata
	GeneratedAt string      `json:"generated_at" yaml:"generated_at"`
	Version     string      `json:"version" yaml:"version"`
	Config      interface{} `json:"config,omitempty" yaml:"config,omitempty"`
}

// GodClassService defines the core business logic for God Class detection
type GodClassService interface {
	// Analyze performs detection on the given request
	Analyze(ctx context.Context, req GodClassRequest) (*GodClassResponse, error)

	// AnalyzeFile analyzes the classes of a single file
	AnalyzeFile(ctx context.Context, filePath string, req GodClassRequest) (*GodClassResponse, error)
}

// GodClassConfigurationLoader defines the interface for loading detection configuration
type GodClassConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*GodClassRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *GodClassRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *GodClassRequest, override *GodClassRequest) *GodClassRequest
}

// GodClassOutputFormatter defines the interface for formatting detection results
type GodClassOutputFormatter interface {
	// Format formats the analysis response according to the specified format
	Format(response *GodClassResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *GodClassResponse, format OutputFormat, writer io.Writer) error
}

// DefaultGodClassRequest returns a GodClassRequest with default values
// Threshold values are sourced from domain/defaults.go
func DefaultGodClassRequest() *GodClassRequest {
	return &GodClassRequest{
		OutputFormat:         OutputFormatText,
		ShowDetails:          false,
		MinScore:             DefaultMinScore,
		MaxCandidates:        DefaultMaxCandidatesPerClass,
		SortBy:               SortByScore,
		MinExtractedMembers:  DefaultMinExtractedMembers,
		MinExtractedMethods:  DefaultMinExtractedMethods,
		MinExtractedFields:   DefaultMinExtractedFields,
		MinRetainedMembers:   DefaultMinRetainedMembers,
		MinCohesionGain:      DefaultMinCohesionGain,
		TargetSuffix:         DefaultTargetSuffix,
		MaxNameAttempts:      DefaultMaxNameAttempts,
		PinOverridingMethods: BoolPtr(true),
		SkipSerializable:     BoolPtr(true),
		Recursive:            BoolPtr(true),
		IncludePatterns:      append([]string(nil), DefaultIncludePatterns...),
		ExcludePatterns:      []string{},
		MaxGoroutines:        DefaultMaxGoroutines,
		TimeoutSeconds:       DefaultTimeoutSeconds,
	}
}
