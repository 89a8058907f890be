package mcp

import (
	"go.uber.org/zap"

	"github.com/ludo-technologies/godscn/app"
	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/internal/telemetry"
	"github.com/ludo-technologies/godscn/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	fileReader domain.FileReader
	configPath string
	logger     *zap.Logger
	collector  *telemetry.Collector
}

// NewDependencies constructs the dependency set. An empty configPath makes
// every tool call discover .godscn.toml from the analyzed path.
func NewDependencies(configPath string, logger *zap.Logger, collector *telemetry.Collector) *Dependencies {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dependencies{
		fileReader: service.NewFileReader(),
		configPath: configPath,
		logger:     logger,
		collector:  collector,
	}
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

func (d *Dependencies) detector() *service.GodClassServiceImpl {
	detector := service.NewGodClassServiceWithLoader(service.NewSourceLoader(d.fileReader, nil, d.logger), d.logger)
	if d.collector != nil {
		detector.SetCollector(d.collector)
	}
	return detector
}

// BuildGodClassUseCase assembles a fresh detection use case. Only the tool
// arguments named in explicit override configured values.
func (d *Dependencies) BuildGodClassUseCase(explicit map[string]bool) (*app.GodClassUseCase, error) {
	return app.NewGodClassUseCaseBuilder().
		WithService(d.detector()).
		WithFileReader(d.fileReader).
		WithFormatter(service.NewGodClassFormatter().WithoutColor()).
		WithConfigLoader(service.NewGodClassConfigurationLoaderWithFlags(explicit)).
		Build()
}

// BuildExtractClassUseCase assembles a fresh Extract Class use case
func (d *Dependencies) BuildExtractClassUseCase(explicit map[string]bool) *app.ExtractClassUseCase {
	return app.NewExtractClassUseCase(
		service.NewExtractClassService(d.detector(), d.logger),
		d.fileReader,
		service.NewGodClassConfigurationLoaderWithFlags(explicit),
	)
}
