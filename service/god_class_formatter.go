package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ludo-technologies/godscn/domain"
)

// maxTopClasses bounds the ranked list at the top of the text report
const maxTopClasses = 10

// GodClassFormatterImpl implements the GodClassOutputFormatter interface
type GodClassFormatterImpl struct {
	showDetails bool
	utils       *FormatUtils
}

// NewGodClassFormatter creates a formatter with colored text output
func NewGodClassFormatter() *GodClassFormatterImpl {
	return &GodClassFormatterImpl{utils: NewFormatUtils()}
}

// WithDetails makes the text report list the members of every candidate
func (f *GodClassFormatterImpl) WithDetails(show bool) *GodClassFormatterImpl {
	f.showDetails = show
	return f
}

// WithoutColor disables ANSI codes in the text report
func (f *GodClassFormatterImpl) WithoutColor() *GodClassFormatterImpl {
	f.utils = NewPlainFormatUtils()
	return f
}

// Format formats the detection response according to the specified format
func (f *GodClassFormatterImpl) Format(response *domain.GodClassResponse, format domain.OutputFormat) (string, error) {
	if response == nil {
		return "", domain.NewInvalidInputError("nil response", nil)
	}
	switch format {
	case domain.OutputFormatText, "":
		return f.formatText(response), nil
	case domain.OutputFormatJSON:
		return EncodeJSON(response)
	case domain.OutputFormatYAML:
		return EncodeYAML(response)
	case domain.OutputFormatCSV:
		return f.formatCSV(response)
	case domain.OutputFormatHTML:
		return renderGodClassHTML(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *GodClassFormatterImpl) Write(response *domain.GodClassResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	}
	formatted, err := f.Format(response, format)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(writer, formatted); err != nil {
		return domain.NewOutputError("failed to write report", err)
	}
	return nil
}

func (f *GodClassFormatterImpl) formatText(response *domain.GodClassResponse) string {
	var builder strings.Builder
	utils := f.utils

	builder.WriteString(utils.FormatMainHeader("God Class Detection Report"))

	s := response.Summary
	builder.WriteString(utils.FormatSummaryStats([]StatItem{
		{"Files Analyzed", s.FilesAnalyzed},
		{"Classes Analyzed", s.ClassesAnalyzed},
		{"God Classes", s.GodClasses},
		{"Extract Class Candidates", s.TotalCandidates},
		{"Not Splittable", s.UnmovableClasses},
		{"Average Best Score", fmt.Sprintf("%.3f", s.AverageBestScore)},
		{"Max Score", fmt.Sprintf("%.3f", s.MaxScore)},
	}))

	if len(response.Findings) > 0 {
		high, medium, low := scoreDistribution(response.Findings)
		builder.WriteString(utils.FormatScoreDistribution(high, medium, low))

		builder.WriteString(utils.FormatSectionHeader("GOD CLASSES"))
		for i, finding := range response.Findings {
			if i >= maxTopClasses {
				break
			}
			builder.WriteString(fmt.Sprintf("%s%d. %s %s (best score: %.3f, %d candidates) - %s:%d\n",
				strings.Repeat(" ", SectionPadding), i+1,
				utils.FormatLevel(ScoreLevelFor(finding.BestScore())),
				finding.ClassName, finding.BestScore(), len(finding.Candidates),
				finding.FilePath, finding.StartLine))
		}
		builder.WriteString(utils.FormatSectionSeparator())

		builder.WriteString(utils.FormatSectionHeader("EXTRACT CLASS CANDIDATES"))
		for _, finding := range response.Findings {
			f.writeFinding(&builder, finding)
			builder.WriteString("\n")
		}
	} else {
		builder.WriteString("No God Classes found.\n\n")
	}

	builder.WriteString(utils.FormatWarningsSection(response.Warnings))
	builder.WriteString(utils.FormatErrorsSection(response.Errors))

	builder.WriteString(utils.FormatSectionHeader("METADATA"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Generated at", response.GeneratedAt))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Version", response.Version))

	return builder.String()
}

func (f *GodClassFormatterImpl) writeFinding(builder *strings.Builder, finding domain.GodClassFinding) {
	utils := f.utils
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Class", finding.ClassName))
	builder.WriteString(utils.FormatLabelWithIndent(ItemPadding, "Location",
		fmt.Sprintf("%s:%d-%d", finding.FilePath, finding.StartLine, finding.EndLine)))
	builder.WriteString(utils.FormatLabelWithIndent(ItemPadding, "Members",
		fmt.Sprintf("%d total, %d pinned", finding.TotalMembers, finding.PinnedMembers)))

	for _, c := range finding.Candidates {
		builder.WriteString(fmt.Sprintf("%s#%d %s %s score=%.3f gain=%.3f coupling=%.3f (%d fields, %d methods)\n",
			strings.Repeat(" ", ItemPadding), c.Rank,
			utils.FormatLevel(ScoreLevelFor(c.Score)),
			c.TargetClass, c.Score, c.CohesionGain, c.Coupling,
			c.ExtractedFields, c.ExtractedMethods))
		if f.showDetails {
			builder.WriteString(fmt.Sprintf("%s%s\n", strings.Repeat(" ", ItemPadding+3), memberList(c.Members)))
		}
	}
}

// memberList renders members as "name(kind)" pairs
func memberList(members []domain.ExtractedMember) string {
	parts := make([]string, 0, len(members))
	for _, m := range members {
		label := m.Name + "(" + m.Kind
		if m.Static {
			label += ", static"
		}
		parts = append(parts, label+")")
	}
	return strings.Join(parts, ", ")
}

func scoreDistribution(findings []domain.GodClassFinding) (high, medium, low int) {
	for _, finding := range findings {
		switch ScoreLevelFor(finding.BestScore()) {
		case ScoreHigh:
			high++
		case ScoreMedium:
			medium++
		default:
			low++
		}
	}
	return high, medium, low
}

// formatCSV writes one row per candidate
func (f *GodClassFormatterImpl) formatCSV(response *domain.GodClassResponse) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	header := []string{"ClassName", "FilePath", "StartLine", "Rank", "TargetClass", "Score",
		"CohesionGain", "Coupling", "ExtractedFields", "ExtractedMethods", "Members"}
	if err := writer.Write(header); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}

	for _, finding := range response.Findings {
		for _, c := range finding.Candidates {
			names := make([]string, 0, len(c.Members))
			for _, m := range c.Members {
				names = append(names, m.Name)
			}
			record := []string{
				finding.ClassName,
				finding.FilePath,
				strconv.Itoa(finding.StartLine),
				strconv.Itoa(c.Rank),
				c.TargetClass,
				strconv.FormatFloat(c.Score, 'f', 4, 64),
				strconv.FormatFloat(c.CohesionGain, 'f', 4, 64),
				strconv.FormatFloat(c.Coupling, 'f', 4, 64),
				strconv.Itoa(c.ExtractedFields),
				strconv.Itoa(c.ExtractedMethods),
				strings.Join(names, ";"),
			}
			if err := writer.Write(record); err != nil {
				return "", domain.NewOutputError("failed to write CSV record", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", domain.NewOutputError("failed to write CSV", err)
	}
	return builder.String(), nil
}

// FormatExtractClassSummary renders an applied refactoring as status text
func FormatExtractClassSummary(resp *domain.ExtractClassResponse) string {
	var builder strings.Builder
	utils := NewPlainFormatUtils()
	builder.WriteString(utils.FormatSectionHeader("EXTRACT CLASS APPLIED"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Source", resp.SourceClass))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Target", resp.TargetClass))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Delegate", resp.DelegateField))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Moved fields", strings.Join(resp.MovedFields, ", ")))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Moved methods", strings.Join(resp.MovedMethods, ", ")))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Rewritten accesses", resp.RewrittenAccesses))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Score", fmt.Sprintf("%.3f", resp.Score)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Transaction", resp.TransactionID))
	return builder.String()
}
