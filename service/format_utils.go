package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/godscn/domain"
)

// EncodeJSON returns an indented JSON string for the given value.
func EncodeJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data), nil
}

// WriteJSON writes indented JSON for the given value to the writer.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode JSON", err)
	}
	return nil
}

// EncodeYAML returns a YAML string for the given value.
func EncodeYAML(v interface{}) (string, error) {
	var b strings.Builder
	if err := WriteYAML(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteYAML writes YAML for the given value to the writer.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	if err := enc.Close(); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	return nil
}

// Standard formatting constants
const (
	HeaderWidth    = 40
	SectionPadding = 2
	ItemPadding    = 4
)

// ANSI color codes for consistent color usage
const (
	ColorReset  = "\x1b[0m"
	ColorRed    = "\x1b[31m"
	ColorYellow = "\x1b[33m"
	ColorGreen  = "\x1b[32m"
	ColorBold   = "\x1b[1m"
)

// ScoreLevel buckets candidate scores for display
type ScoreLevel string

const (
	ScoreHigh   ScoreLevel = "High"
	ScoreMedium ScoreLevel = "Medium"
	ScoreLow    ScoreLevel = "Low"
)

// Score level boundaries
const (
	HighScoreThreshold   = 0.5
	MediumScoreThreshold = 0.25
)

// ScoreLevelFor returns the display level of a candidate score
func ScoreLevelFor(score float64) ScoreLevel {
	switch {
	case score >= HighScoreThreshold:
		return ScoreHigh
	case score >= MediumScoreThreshold:
		return ScoreMedium
	default:
		return ScoreLow
	}
}

// StatItem is one labelled line of a summary section
type StatItem struct {
	Label string
	Value interface{}
}

// FormatUtils provides shared formatting utilities
type FormatUtils struct {
	color bool
}

// NewFormatUtils creates a new format utilities instance with colored levels
func NewFormatUtils() *FormatUtils {
	return &FormatUtils{color: true}
}

// NewPlainFormatUtils creates format utilities that never emit ANSI codes
func NewPlainFormatUtils() *FormatUtils {
	return &FormatUtils{}
}

// FormatMainHeader creates a standardized main header
func (f *FormatUtils) FormatMainHeader(title string) string {
	return title + "\n" + strings.Repeat("=", HeaderWidth) + "\n\n"
}

// FormatSectionHeader creates a standardized section header
func (f *FormatUtils) FormatSectionHeader(title string) string {
	return strings.ToUpper(title) + "\n" + strings.Repeat("-", len(title)) + "\n"
}

// FormatSectionSeparator creates a section separator
func (f *FormatUtils) FormatSectionSeparator() string {
	return "\n"
}

// FormatLabelWithIndent creates a formatted label with specific indentation
func (f *FormatUtils) FormatLabelWithIndent(indent int, label string, value interface{}) string {
	return fmt.Sprintf("%s%s: %v\n", strings.Repeat(" ", indent), label, value)
}

// FormatSummaryStats writes the summary section in the given order
func (f *FormatUtils) FormatSummaryStats(stats []StatItem) string {
	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader("SUMMARY"))
	for _, s := range stats {
		builder.WriteString(f.FormatLabelWithIndent(SectionPadding, s.Label, s.Value))
	}
	builder.WriteString(f.FormatSectionSeparator())
	return builder.String()
}

// FormatScoreDistribution creates the score level distribution section
func (f *FormatUtils) FormatScoreDistribution(high, medium, low int) string {
	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader("SCORE DISTRIBUTION"))
	builder.WriteString(f.FormatLabelWithIndent(SectionPadding, string(ScoreHigh), high))
	builder.WriteString(f.FormatLabelWithIndent(SectionPadding, string(ScoreMedium), medium))
	builder.WriteString(f.FormatLabelWithIndent(SectionPadding, string(ScoreLow), low))
	builder.WriteString(f.FormatSectionSeparator())
	return builder.String()
}

// GetScoreColor returns the color for a score level
func (f *FormatUtils) GetScoreColor(level ScoreLevel) string {
	switch level {
	case ScoreHigh:
		return ColorRed
	case ScoreMedium:
		return ColorYellow
	case ScoreLow:
		return ColorGreen
	default:
		return ColorReset
	}
}

// FormatLevel renders a score level, colored unless the utils are plain
func (f *FormatUtils) FormatLevel(level ScoreLevel) string {
	if !f.color {
		return "[" + string(level) + "]"
	}
	return fmt.Sprintf("%s[%s]%s", f.GetScoreColor(level), level, ColorReset)
}

// FormatWarningsSection creates a standardized warnings section
func (f *FormatUtils) FormatWarningsSection(warnings []string) string {
	return f.formatMessages("WARNINGS", "Warning", warnings)
}

// FormatErrorsSection creates a standardized errors section
func (f *FormatUtils) FormatErrorsSection(errs []string) string {
	return f.formatMessages("ERRORS", "Error", errs)
}

func (f *FormatUtils) formatMessages(title, label string, messages []string) string {
	if len(messages) == 0 {
		return ""
	}
	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader(title))
	for _, m := range messages {
		builder.WriteString(f.FormatLabelWithIndent(SectionPadding, label, m))
	}
	builder.WriteString(f.FormatSectionSeparator())
	return builder.String()
}
