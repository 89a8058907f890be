package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/ludo-technologies/godscn/app"
	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/service"
)

// AnalyzeCommand represents the analyze command
type AnalyzeCommand struct {
	// Output format flags
	html   bool
	json   bool
	csv    bool
	yaml   bool
	noOpen bool

	configFile string

	// Filtering and ranking
	minScore        float64
	maxCandidates   int
	minCohesionGain float64
	minExtracted    int
	targetSuffix    string
	sortBy          string
	showDetails     bool

	// File selection
	recursive       bool
	includePatterns []string
	excludePatterns []string

	// Performance
	maxGoroutines  int
	timeoutSeconds int
}

// NewAnalyzeCommand creates a new analyze command
func NewAnalyzeCommand() *AnalyzeCommand {
	return &AnalyzeCommand{
		recursive:       true,
		minCohesionGain: domain.DefaultMinCohesionGain,
		maxCandidates:   domain.DefaultMaxCandidatesPerClass,
		minExtracted:    domain.DefaultMinExtractedMembers,
		targetSuffix:    domain.DefaultTargetSuffix,
		sortBy:          string(domain.SortByScore),
	}
}

// CreateCobraCommand creates the cobra command for God Class detection
func (c *AnalyzeCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Detect God Classes and rank Extract Class candidates",
		Long: `Detect God Classes in Java and Python sources or structural model files
and rank the Extract Class refactorings that would split them.

A class is reported when at least one cluster of its members can be moved to
a new class and leaves both halves more cohesive. Candidates are ranked by
their score, the cohesion gained by the split.

Examples:
  godscn analyze src/
  godscn analyze --details --max-candidates 3 src/
  godscn analyze --min-score 0.25 --html src/
  godscn analyze --json model.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.runAnalyze,
	}

	// Output format flags
	cmd.Flags().BoolVar(&c.html, "html", false, "Generate HTML report file")
	cmd.Flags().BoolVar(&c.json, "json", false, "Generate JSON report file")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Generate CSV report file")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Generate YAML report file")
	cmd.Flags().BoolVar(&c.noOpen, "no-open", false, "Don't auto-open HTML in browser")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")

	// Ranking flags
	cmd.Flags().Float64Var(&c.minScore, "min-score", 0, "Minimum candidate score to report (0.0-1.0)")
	cmd.Flags().IntVar(&c.maxCandidates, "max-candidates", c.maxCandidates, "Maximum candidates per class (0 = unlimited)")
	cmd.Flags().Float64Var(&c.minCohesionGain, "min-cohesion-gain", c.minCohesionGain, "Minimum cohesion gain of a split (0.0-1.0)")
	cmd.Flags().IntVar(&c.minExtracted, "min-extracted-members", c.minExtracted, "Minimum members an extracted class must have")
	cmd.Flags().StringVar(&c.targetSuffix, "target-suffix", c.targetSuffix, "Suffix of generated target class names")
	cmd.Flags().StringVar(&c.sortBy, "sort", c.sortBy, "Sort God Classes by: score, name, location, size")
	cmd.Flags().BoolVar(&c.showDetails, "details", false, "List the members of every candidate")

	// File selection flags
	cmd.Flags().BoolVarP(&c.recursive, "recursive", "r", true, "Recursively analyze directories")
	cmd.Flags().StringSliceVar(&c.includePatterns, "include", nil, "File patterns to include")
	cmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", nil, "File patterns to exclude")

	// Performance flags
	cmd.Flags().IntVar(&c.maxGoroutines, "max-goroutines", 0, "Maximum concurrent file parsers (0 = number of CPUs)")
	cmd.Flags().IntVar(&c.timeoutSeconds, "timeout", 0, "Analysis timeout in seconds (0 = none)")

	return cmd
}

// buildRequest turns the flags into a detection request
func (c *AnalyzeCommand) buildRequest(cmd *cobra.Command, args []string, format domain.OutputFormat) domain.GodClassRequest {
	req := *domain.DefaultGodClassRequest()
	req.Paths = args
	req.OutputFormat = format
	req.OutputWriter = cmd.OutOrStdout()
	req.NoOpen = c.noOpen || !service.IsInteractiveEnvironment()
	req.ShowDetails = c.showDetails
	req.ConfigPath = configTarget(c.configFile, args)

	req.MinScore = c.minScore
	req.MaxCandidates = c.maxCandidates
	req.MinCohesionGain = c.minCohesionGain
	req.MinExtractedMembers = c.minExtracted
	req.TargetSuffix = c.targetSuffix
	req.SortBy = domain.SortCriteria(c.sortBy)

	req.Recursive = domain.BoolPtr(c.recursive)
	if len(c.includePatterns) > 0 {
		req.IncludePatterns = c.includePatterns
	}
	if len(c.excludePatterns) > 0 {
		req.ExcludePatterns = c.excludePatterns
	}
	req.MaxGoroutines = c.maxGoroutines
	req.TimeoutSeconds = c.timeoutSeconds
	return req
}

func (c *AnalyzeCommand) runAnalyze(cmd *cobra.Command, args []string) error {
	resolver := service.NewOutputFormatResolver()
	format, ext, err := resolver.Determine(c.html, c.json, c.csv, c.yaml)
	if err != nil {
		return domain.NewInvalidInputError(err.Error(), nil)
	}

	cfg, err := loadProjectConfig(c.configFile, args)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	collector, stop := startCollector(ctx, cfg, logger)
	defer stop()

	req := c.buildRequest(cmd, args, format)
	if format != domain.OutputFormatText {
		req.OutputPath = resolver.ReportPath(reportDirectory(cfg), ext, time.Now())
	}

	showDetails := cfg.Output.ShowDetails
	if cmd.Flags().Changed("details") {
		showDetails = c.showDetails
	}
	formatter := service.NewGodClassFormatter().WithDetails(showDetails)
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		formatter = formatter.WithoutColor()
	}

	detector := service.NewGodClassServiceWithLoader(service.NewSourceLoader(nil, nil, logger), logger)
	detector.SetCollector(collector)
	progress := service.NewProgressBar()
	progress.SetWriter(cmd.ErrOrStderr())
	defer progress.Close()
	detector.SetProgress(progress)

	useCase, err := app.NewGodClassUseCaseBuilder().
		WithService(detector).
		WithFileReader(service.NewFileReader()).
		WithFormatter(formatter).
		WithConfigLoader(service.NewGodClassConfigurationLoaderWithFlags(GetExplicitFlags(cmd))).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create use case: %w", err)
	}

	logger.Debug("starting God Class detection",
		zap.Strings("paths", args),
		zap.String("format", string(format)))
	return useCase.Execute(ctx, req)
}

// NewAnalyzeCmd creates and returns the analyze cobra command
func NewAnalyzeCmd() *cobra.Command {
	return NewAnalyzeCommand().CreateCobraCommand()
}
