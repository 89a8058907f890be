package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/internal/parser"
	"github.com/ludo-technologies/godscn/internal/source"
)

// LoadResult is the analysis scope built from a set of files
type LoadResult struct {
	Workspace   *source.Workspace
	FilesParsed int
	Warnings    []string
	Errors      []string
}

// SourceLoader reads files through the frontend registry into a Workspace.
// Unreadable or unparseable files become error strings, never a failed load.
type SourceLoader struct {
	reader   domain.FileReader
	registry *parser.Registry
	logger   *zap.Logger
}

// NewSourceLoader creates a loader. Nil arguments select the defaults.
func NewSourceLoader(reader domain.FileReader, registry *parser.Registry, logger *zap.Logger) *SourceLoader {
	if registry == nil {
		registry = parser.DefaultRegistry()
	}
	if reader == nil {
		reader = NewFileReaderWithRegistry(registry)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SourceLoader{reader: reader, registry: registry, logger: logger}
}

type parsedFile struct {
	classes []*source.Class
	err     error
}

// Load parses files with at most concurrency parsers at a time and builds a
// workspace in file order. A class name seen twice keeps its first declaration.
func (l *SourceLoader) Load(ctx context.Context, files []string, concurrency int) (*LoadResult, error) {
	results := make([]parsedFile, len(files))

	err := NewParallelExecutor(concurrency, 0).ForEach(ctx, len(files), func(ctx context.Context, i int) error {
		content, err := l.reader.ReadFile(files[i])
		if err == nil {
			results[i].classes, err = l.registry.ParseFile(ctx, files[i], content)
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			results[i].err = err
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewCancelledError(err)
	}

	result := &LoadResult{}
	var classes []*source.Class
	seen := make(map[string]string)
	for i, path := range files {
		r := results[i]
		if r.err != nil {
			l.logger.Debug("skipping file", zap.String("file", path), zap.Error(r.err))
			result.Errors = append(result.Errors, fmt.Sprintf("[%s] %v", path, r.err))
			continue
		}
		result.FilesParsed++
		if len(r.classes) == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("[%s] No classes found in file", path))
		}
		for _, c := range r.classes {
			if first, dup := seen[c.Name]; dup {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("[%s] class %s already declared in %s; skipped", path, c.Name, first))
				continue
			}
			if err := c.Validate(); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("[%s] %v", path, err))
				continue
			}
			seen[c.Name] = path
			classes = append(classes, c)
		}
	}

	ws, err := source.NewWorkspace(classes...)
	if err != nil {
		return nil, domain.NewAnalysisError("failed to build workspace", err)
	}
	result.Workspace = ws
	l.logger.Debug("sources loaded",
		zap.Int("files", len(files)),
		zap.Int("parsed", result.FilesParsed),
		zap.Int("classes", ws.Len()))
	return result, nil
}
