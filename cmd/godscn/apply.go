package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ludo-technologies/godscn/app"
	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/service"
)

// ApplyCommand represents the apply command
type ApplyCommand struct {
	className  string
	candidate  int
	targetName string
	outputPath string
	json       bool
	configFile string

	minCohesionGain float64
	targetSuffix    string
	recursive       bool
	includePatterns []string
	excludePatterns []string
}

// NewApplyCommand creates a new apply command
func NewApplyCommand() *ApplyCommand {
	return &ApplyCommand{
		candidate:       1,
		recursive:       true,
		minCohesionGain: domain.DefaultMinCohesionGain,
		targetSuffix:    domain.DefaultTargetSuffix,
	}
}

// CreateCobraCommand creates the cobra command for applying a candidate
func (c *ApplyCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [paths...] --class NAME",
		Short: "Apply an Extract Class candidate to the structural model",
		Long: `Re-run God Class detection, apply one ranked Extract Class candidate of the
given class and write the resulting structural model.

The model is written as YAML (or JSON with --json) to --output or stdout, and
can be fed back to analyze or apply. A summary of the moved members is
printed to stderr.

Examples:
  godscn apply src/ --class Order
  godscn apply src/ --class Order --candidate 2 --target Shipping
  godscn apply model.yaml --class Order --output refactored.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.runApply,
	}

	cmd.Flags().StringVar(&c.className, "class", "", "Class to split (required)")
	cmd.Flags().IntVar(&c.candidate, "candidate", c.candidate, "Rank of the candidate to apply")
	cmd.Flags().StringVar(&c.targetName, "target", "", "Name of the extracted class (default: generated)")
	cmd.Flags().StringVarP(&c.outputPath, "output", "o", "", "Write the model to this file instead of stdout")
	cmd.Flags().BoolVar(&c.json, "json", false, "Write the model as JSON")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")

	cmd.Flags().Float64Var(&c.minCohesionGain, "min-cohesion-gain", c.minCohesionGain, "Minimum cohesion gain of a split (0.0-1.0)")
	cmd.Flags().StringVar(&c.targetSuffix, "target-suffix", c.targetSuffix, "Suffix of generated target class names")
	cmd.Flags().BoolVarP(&c.recursive, "recursive", "r", true, "Recursively analyze directories")
	cmd.Flags().StringSliceVar(&c.includePatterns, "include", nil, "File patterns to include")
	cmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", nil, "File patterns to exclude")

	_ = cmd.MarkFlagRequired("class")
	return cmd
}

func (c *ApplyCommand) buildRequest(cmd *cobra.Command, args []string) domain.ExtractClassRequest {
	req := *domain.DefaultExtractClassRequest()
	req.ClassName = c.className
	req.Candidate = c.candidate
	req.TargetName = c.targetName
	req.OutputPath = c.outputPath
	req.OutputWriter = cmd.OutOrStdout()
	if c.json {
		req.OutputFormat = domain.OutputFormatJSON
	}

	analysis := &req.Analysis
	analysis.Paths = args
	analysis.ConfigPath = configTarget(c.configFile, args)
	analysis.MinCohesionGain = c.minCohesionGain
	analysis.TargetSuffix = c.targetSuffix
	analysis.Recursive = domain.BoolPtr(c.recursive)
	if len(c.includePatterns) > 0 {
		analysis.IncludePatterns = c.includePatterns
	}
	if len(c.excludePatterns) > 0 {
		analysis.ExcludePatterns = c.excludePatterns
	}
	return req
}

func (c *ApplyCommand) runApply(cmd *cobra.Command, args []string) error {
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

	detector := service.NewGodClassServiceWithLoader(service.NewSourceLoader(nil, nil, logger), logger)
	detector.SetCollector(collector)

	useCase := app.NewExtractClassUseCase(
		service.NewExtractClassService(detector, logger),
		service.NewFileReader(),
		service.NewGodClassConfigurationLoaderWithFlags(GetExplicitFlags(cmd)),
	).WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr()))

	req := c.buildRequest(cmd, args)
	logger.Debug("applying Extract Class",
		zap.String("class", req.ClassName),
		zap.Int("candidate", req.Candidate))

	resp, err := useCase.Execute(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.ErrOrStderr(), service.FormatExtractClassSummary(resp))
	return nil
}

// NewApplyCmd creates and returns the apply cobra command
func NewApplyCmd() *cobra.Command {
	return NewApplyCommand().CreateCobraCommand()
}
