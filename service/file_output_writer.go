package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/godscn/domain"
)

// FileOutputWriter writes reports to files or provided writers and optionally
// opens HTML reports in a browser
type FileOutputWriter struct {
	status io.Writer // status lines, normally stderr
	open   func(path string) error
}

// NewFileOutputWriter creates a new FileOutputWriter
func NewFileOutputWriter(status io.Writer) *FileOutputWriter {
	if status == nil {
		status = os.Stderr
	}
	return &FileOutputWriter{status: status, open: OpenFileInBrowser}
}

// Write implements domain.ReportWriter. Missing parent directories of
// outputPath are created.
func (w *FileOutputWriter) Write(writer io.Writer, outputPath string, format domain.OutputFormat, noOpen bool, writeFunc func(io.Writer) error) (err error) {
	if outputPath == "" {
		if writer == nil {
			writer = os.Stdout
		}
		if err := writeFunc(writer); err != nil {
			return domain.NewOutputError("failed to write output", err)
		}
		return nil
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.NewOutputError(fmt.Sprintf("failed to create output directory: %s", dir), err)
		}
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to create output file: %s", outputPath), err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = domain.NewOutputError(fmt.Sprintf("failed to close output file: %s", outputPath), cerr)
		}
	}()

	if err := writeFunc(file); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	absPath, absErr := filepath.Abs(outputPath)
	if absErr != nil {
		absPath = outputPath
	}

	switch {
	case format == domain.OutputFormatHTML && !noOpen:
		if err := w.open(absPath); err != nil {
			fmt.Fprintf(w.status, "Warning: Could not open browser: %v\n", err)
			fmt.Fprintf(w.status, "HTML report generated: %s\n", absPath)
		} else {
			fmt.Fprintf(w.status, "HTML report generated and opened: %s\n", absPath)
		}
	case format == "":
		fmt.Fprintf(w.status, "Report generated: %s\n", absPath)
	default:
		fmt.Fprintf(w.status, "%s report generated: %s\n", strings.ToUpper(string(format)), absPath)
	}
	return nil
}
