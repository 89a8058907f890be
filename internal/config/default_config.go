package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"github.com/pelletier/go-toml/v2"

	"github.com/ludo-technologies/godscn/domain"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds all values used to render the default config template.
// All values are sourced from the domain package.
type DefaultConfigValues struct {
	MinExtractedMembers   int
	MinExtractedMethods   int
	MinExtractedFields    int
	MinRetainedMembers    int
	MinCohesionGain       float64
	MinScore              float64
	MaxCandidatesPerClass int
	TargetSuffix          string
	MaxNameAttempts       int

	IncludePatterns []string

	MaxGoroutines  int
	TimeoutSeconds int

	HeartbeatInitialDelay string
	HeartbeatInterval     string
}

func newDefaultConfigValues() DefaultConfigValues {
	return DefaultConfigValues{
		MinExtractedMembers:   domain.DefaultMinExtractedMembers,
		MinExtractedMethods:   domain.DefaultMinExtractedMethods,
		MinExtractedFields:    domain.DefaultMinExtractedFields,
		MinRetainedMembers:    domain.DefaultMinRetainedMembers,
		MinCohesionGain:       domain.DefaultMinCohesionGain,
		MinScore:              domain.DefaultMinScore,
		MaxCandidatesPerClass: domain.DefaultMaxCandidatesPerClass,
		TargetSuffix:          domain.DefaultTargetSuffix,
		MaxNameAttempts:       domain.DefaultMaxNameAttempts,
		IncludePatterns:       domain.DefaultIncludePatterns,
		MaxGoroutines:         domain.DefaultMaxGoroutines,
		TimeoutSeconds:        domain.DefaultTimeoutSeconds,
		HeartbeatInitialDelay: domain.DefaultHeartbeatInitialDelay,
		HeartbeatInterval:     domain.DefaultHeartbeatInterval,
	}
}

// GenerateDefaultConfigTOML renders the default config template with domain values
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	return buf.String(), nil
}

// LoadDefaultConfigFromTOML parses the rendered default config
func LoadDefaultConfigFromTOML() (*Config, error) {
	configTOML, err := GenerateDefaultConfigTOML()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal([]byte(configTOML), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse default config: %w", err)
	}
	return cfg, nil
}

// WriteDefaultConfig writes the default configuration to path. An existing
// file is only replaced when force is set.
func WriteDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	content, err := GenerateDefaultConfigTOML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
