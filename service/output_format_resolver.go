package service

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/godscn/domain"
)

// OutputFormatResolver resolves output format and file extension from flags
type OutputFormatResolver struct{}

// NewOutputFormatResolver creates a resolver
func NewOutputFormatResolver() *OutputFormatResolver { return &OutputFormatResolver{} }

// Determine evaluates format flags and returns the selected format and extension.
// At most one of html/json/csv/yaml may be true; none selects text.
func (r *OutputFormatResolver) Determine(html, json, csv, yaml bool) (domain.OutputFormat, string, error) {
	selected := make([]domain.OutputFormat, 0, 1)
	if html {
		selected = append(selected, domain.OutputFormatHTML)
	}
	if json {
		selected = append(selected, domain.OutputFormatJSON)
	}
	if csv {
		selected = append(selected, domain.OutputFormatCSV)
	}
	if yaml {
		selected = append(selected, domain.OutputFormatYAML)
	}

	switch len(selected) {
	case 0:
		return domain.OutputFormatText, "", nil
	case 1:
		return selected[0], string(selected[0]), nil
	default:
		return "", "", fmt.Errorf("only one output format flag can be specified")
	}
}

// ReportPath returns the timestamped report file for a format inside dir,
// e.g. godclass_20260102_150405.html
func (r *OutputFormatResolver) ReportPath(dir, ext string, now time.Time) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, fmt.Sprintf("godclass_%s.%s", now.Format("20060102_150405"), ext))
}
