package service

import (
	"os"

	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/internal/config"
)

// GodClassConfigurationLoaderImpl loads detection settings from .godscn.toml
// or an explicit config file and merges them with command line flags
type GodClassConfigurationLoaderImpl struct {
	explicit config.ExplicitFlags
}

// NewGodClassConfigurationLoader creates a loader without explicit flags
func NewGodClassConfigurationLoader() *GodClassConfigurationLoaderImpl {
	return NewGodClassConfigurationLoaderWithFlags(nil)
}

// NewGodClassConfigurationLoaderWithFlags creates a loader that only lets
// explicitly set flags override configuration values
func NewGodClassConfigurationLoaderWithFlags(explicitFlags map[string]bool) *GodClassConfigurationLoaderImpl {
	return &GodClassConfigurationLoaderImpl{
		explicit: config.NewExplicitFlags(explicitFlags),
	}
}

// LoadFullConfig resolves the configuration for path. A regular file is read
// as an explicit config file of any supported format; a directory (or "")
// starts the .godscn.toml search.
func (cl *GodClassConfigurationLoaderImpl) LoadFullConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if info, statErr := os.Stat(path); statErr == nil && !info.IsDir() {
		cfg, err = config.LoadConfig(path)
	} else if path != "" && statErr != nil {
		return nil, domain.NewConfigError("config file not found: "+path, statErr)
	} else {
		cfg, err = config.NewTomlConfigLoader().LoadConfig(path)
	}
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	return cfg, nil
}

// LoadConfig loads the detection request from the configuration at path
func (cl *GodClassConfigurationLoaderImpl) LoadConfig(path string) (*domain.GodClassRequest, error) {
	cfg, err := cl.LoadFullConfig(path)
	if err != nil {
		return nil, err
	}
	req := cfg.GodClassRequest()
	req.ConfigPath = path
	return req, nil
}

// LoadDefaultConfig loads .godscn.toml from the current directory upwards,
// falling back to built-in defaults
func (cl *GodClassConfigurationLoaderImpl) LoadDefaultConfig() *domain.GodClassRequest {
	if req, err := cl.LoadConfig(""); err == nil {
		return req
	}
	return config.DefaultConfig().GodClassRequest()
}

// FindDefaultConfigFile returns the nearest .godscn.toml above the current directory
func (cl *GodClassConfigurationLoaderImpl) FindDefaultConfigFile() string {
	return config.NewTomlConfigLoader().FindConfigFileFromPath("")
}

// MergeConfig overlays the command line request on the configured one.
// Paths and output plumbing always come from the command line; settings
// only when their flag was set explicitly.
func (cl *GodClassConfigurationLoaderImpl) MergeConfig(base *domain.GodClassRequest, override *domain.GodClassRequest) *domain.GodClassRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	explicit := cl.explicit
	merged := *base

	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}

	if override.OutputFormat != "" &&
		(override.OutputFormat != domain.OutputFormatText || explicit.Any("json", "yaml", "csv", "html", "text")) {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	merged.NoOpen = override.NoOpen
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	merged.ShowDetails = config.Pick(explicit, "details", merged.ShowDetails, override.ShowDetails)
	merged.MinScore = config.Pick(explicit, "min-score", merged.MinScore, override.MinScore)
	merged.MaxCandidates = config.Pick(explicit, "max-candidates", merged.MaxCandidates, override.MaxCandidates)
	merged.SortBy = config.Pick(explicit, "sort", merged.SortBy, override.SortBy)

	merged.MinExtractedMembers = config.Pick(explicit, "min-extracted-members", merged.MinExtractedMembers, override.MinExtractedMembers)
	merged.MinCohesionGain = config.Pick(explicit, "min-cohesion-gain", merged.MinCohesionGain, override.MinCohesionGain)
	merged.TargetSuffix = config.Pick(explicit, "target-suffix", merged.TargetSuffix, override.TargetSuffix)

	merged.Recursive = config.PickBoolPtr(explicit, "recursive", merged.Recursive, override.Recursive)
	merged.IncludePatterns = config.PickSlice(explicit, "include", merged.IncludePatterns, override.IncludePatterns)
	merged.ExcludePatterns = config.PickSlice(explicit, "exclude", merged.ExcludePatterns, override.ExcludePatterns)

	merged.MaxGoroutines = config.Pick(explicit, "max-goroutines", merged.MaxGoroutines, override.MaxGoroutines)
	merged.TimeoutSeconds = config.Pick(explicit, "timeout", merged.TimeoutSeconds, override.TimeoutSeconds)

	return &merged
}
