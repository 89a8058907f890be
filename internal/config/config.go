package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/ludo-technologies/godscn/domain"
)

// Config represents the godscn configuration
type Config struct {
	GodClass    GodClassConfig    `mapstructure:"god_class" toml:"god_class" yaml:"god_class"`
	Analysis    AnalysisConfig    `mapstructure:"analysis" toml:"analysis" yaml:"analysis"`
	Output      OutputConfig      `mapstructure:"output" toml:"output" yaml:"output"`
	Performance PerformanceConfig `mapstructure:"performance" toml:"performance" yaml:"performance"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry" toml:"telemetry" yaml:"telemetry"`
}

// GodClassConfig holds detection and extraction settings
type GodClassConfig struct {
	// Split constraints
	MinExtractedMembers int `mapstructure:"min_extracted_members" toml:"min_extracted_members" yaml:"min_extracted_members" validate:"gte=1"`
	MinExtractedMethods int `mapstructure:"min_extracted_methods" toml:"min_extracted_methods" yaml:"min_extracted_methods" validate:"gte=0"`
	MinExtractedFields  int `mapstructure:"min_extracted_fields" toml:"min_extracted_fields" yaml:"min_extracted_fields" validate:"gte=0"`
	MinRetainedMembers  int `mapstructure:"min_retained_members" toml:"min_retained_members" yaml:"min_retained_members" validate:"gte=0"`

	// Ranking
	MinCohesionGain       float64 `mapstructure:"min_cohesion_gain" toml:"min_cohesion_gain" yaml:"min_cohesion_gain" validate:"gte=0,lte=1"`
	MinScore              float64 `mapstructure:"min_score" toml:"min_score" yaml:"min_score" validate:"gte=0,lte=1"`
	MaxCandidatesPerClass int     `mapstructure:"max_candidates_per_class" toml:"max_candidates_per_class" yaml:"max_candidates_per_class" validate:"gte=0"`

	// Naming
	TargetSuffix    string `mapstructure:"target_suffix" toml:"target_suffix" yaml:"target_suffix" validate:"required,alphanum"`
	MaxNameAttempts int    `mapstructure:"max_name_attempts" toml:"max_name_attempts" yaml:"max_name_attempts" validate:"gte=1"`

	// Extraction policy
	PinOverridingMethods bool `mapstructure:"pin_overriding_methods" toml:"pin_overriding_methods" yaml:"pin_overriding_methods"`
	SkipSerializable     bool `mapstructure:"skip_serializable" toml:"skip_serializable" yaml:"skip_serializable"`
}

// AnalysisConfig holds file selection settings
type AnalysisConfig struct {
	IncludePatterns []string `mapstructure:"include_patterns" toml:"include_patterns" yaml:"include_patterns" validate:"min=1,dive,required"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" toml:"exclude_patterns" yaml:"exclude_patterns" validate:"dive,required"`
	Recursive       bool     `mapstructure:"recursive" toml:"recursive" yaml:"recursive"`
}

// OutputConfig holds report settings
type OutputConfig struct {
	Format      string `mapstructure:"format" toml:"format" yaml:"format" validate:"oneof=text json yaml csv html"`
	Directory   string `mapstructure:"directory" toml:"directory" yaml:"directory"`
	ShowDetails bool   `mapstructure:"show_details" toml:"show_details" yaml:"show_details"`
	SortBy      string `mapstructure:"sort_by" toml:"sort_by" yaml:"sort_by" validate:"oneof=score name location size"`
}

// PerformanceConfig bounds analysis resources
type PerformanceConfig struct {
	MaxGoroutines  int `mapstructure:"max_goroutines" toml:"max_goroutines" yaml:"max_goroutines" validate:"gte=1"`
	TimeoutSeconds int `mapstructure:"timeout_seconds" toml:"timeout_seconds" yaml:"timeout_seconds" validate:"gte=0"`
}

// TelemetryConfig configures the usage collector. Durations use time.ParseDuration syntax.
type TelemetryConfig struct {
	Enabled               bool   `mapstructure:"enabled" toml:"enabled" yaml:"enabled"`
	HeartbeatInitialDelay string `mapstructure:"heartbeat_initial_delay" toml:"heartbeat_initial_delay" yaml:"heartbeat_initial_delay" validate:"duration"`
	HeartbeatInterval     string `mapstructure:"heartbeat_interval" toml:"heartbeat_interval" yaml:"heartbeat_interval" validate:"duration"`
}

// InitialDelay returns the parsed heartbeat delay
func (t TelemetryConfig) InitialDelay() time.Duration {
	d, _ := time.ParseDuration(t.HeartbeatInitialDelay)
	return d
}

// Interval returns the parsed heartbeat interval
func (t TelemetryConfig) Interval() time.Duration {
	d, _ := time.ParseDuration(t.HeartbeatInterval)
	return d
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		GodClass: GodClassConfig{
			MinExtractedMembers:   domain.DefaultMinExtractedMembers,
			MinExtractedMethods:   domain.DefaultMinExtractedMethods,
			MinExtractedFields:    domain.DefaultMinExtractedFields,
			MinRetainedMembers:    domain.DefaultMinRetainedMembers,
			MinCohesionGain:       domain.DefaultMinCohesionGain,
			MinScore:              domain.DefaultMinScore,
			MaxCandidatesPerClass: domain.DefaultMaxCandidatesPerClass,
			TargetSuffix:          domain.DefaultTargetSuffix,
			MaxNameAttempts:       domain.DefaultMaxNameAttempts,
			PinOverridingMethods:  true,
			SkipSerializable:      true,
		},
		Analysis: AnalysisConfig{
			IncludePatterns: append([]string(nil), domain.DefaultIncludePatterns...),
			ExcludePatterns: []string{},
			Recursive:       true,
		},
		Output: OutputConfig{
			Format: string(domain.OutputFormatText),
			SortBy: string(domain.SortByScore),
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  domain.DefaultMaxGoroutines,
			TimeoutSeconds: domain.DefaultTimeoutSeconds,
		},
		Telemetry: TelemetryConfig{
			Enabled:               false,
			HeartbeatInitialDelay: domain.DefaultHeartbeatInitialDelay,
			HeartbeatInterval:     domain.DefaultHeartbeatInterval,
		},
	}
}

// LoadConfig reads an explicitly named configuration file of any format viper
// understands (toml, yaml, json). Keys missing from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if configPath == "" {
		return config, nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, describeFieldError(fe))
	}
	return errors.New(strings.Join(messages, "; "))
}

// GodClassRequest converts the configuration into a detection request
func (c *Config) GodClassRequest() *domain.GodClassRequest {
	req := domain.DefaultGodClassRequest()

	req.OutputFormat = domain.OutputFormat(c.Output.Format)
	req.ShowDetails = c.Output.ShowDetails
	req.SortBy = domain.SortCriteria(c.Output.SortBy)

	req.MinScore = c.GodClass.MinScore
	req.MaxCandidates = c.GodClass.MaxCandidatesPerClass
	req.MinExtractedMembers = c.GodClass.MinExtractedMembers
	req.MinExtractedMethods = c.GodClass.MinExtractedMethods
	req.MinExtractedFields = c.GodClass.MinExtractedFields
	req.MinRetainedMembers = c.GodClass.MinRetainedMembers
	req.MinCohesionGain = c.GodClass.MinCohesionGain
	req.TargetSuffix = c.GodClass.TargetSuffix
	req.MaxNameAttempts = c.GodClass.MaxNameAttempts
	req.PinOverridingMethods = domain.BoolPtr(c.GodClass.PinOverridingMethods)
	req.SkipSerializable = domain.BoolPtr(c.GodClass.SkipSerializable)

	req.Recursive = domain.BoolPtr(c.Analysis.Recursive)
	req.IncludePatterns = append([]string(nil), c.Analysis.IncludePatterns...)
	req.ExcludePatterns = append([]string{}, c.Analysis.ExcludePatterns...)

	req.MaxGoroutines = c.Performance.MaxGoroutines
	req.TimeoutSeconds = c.Performance.TimeoutSeconds
	return req
}

var configValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d >= 0
	})
	return v
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be >= %s, got %v", field, fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be <= %s, got %v", field, fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "duration":
		return fmt.Sprintf("%s must be a non-negative duration such as \"11m\", got %q", field, fe.Value())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed the %q check", field, fe.Tag())
	}
}
