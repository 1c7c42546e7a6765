// Package wire provides dependency injection for the report pipeline.
// It turns a validated config into a ready service and its adapters.
package wire

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	cliadapter "github.com/example/wrapped/internal/adapters/cli"
	"github.com/example/wrapped/internal/adapters/duckdb"
	"github.com/example/wrapped/internal/adapters/persistence"
	"github.com/example/wrapped/internal/adapters/sqlite"
	"github.com/example/wrapped/internal/app"
	"github.com/example/wrapped/internal/config"
	"github.com/example/wrapped/internal/ports/primary"
	"github.com/example/wrapped/internal/ports/secondary"
)

// Services holds the wired report service and the resources behind it.
type Services struct {
	Report primary.ReportService
	runner secondary.QueryRunner
}

// New opens the store named by cfg and builds the report service.
// The caller must Close the result.
func New(cfg *config.Config, logger *zap.Logger) (*Services, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	window, err := cfg.Window()
	if err != nil {
		return nil, err
	}

	runner, err := OpenRunner(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened message store", zap.String("engine", cfg.Engine), zap.String("path", cfg.DBPath))

	store := persistence.NewMessageStore(runner)
	service := app.NewReportService(store, app.ReportOptions{
		WindowStart:     window,
		Overrides:       cfg.Overrides,
		Skip:            cfg.Skip,
		MustInclude:     cfg.MustInclude,
		TopContactLimit: cfg.TopContactLimit,
		TopEmojiLimit:   cfg.TopEmojiLimit,
	}, logger)

	return &Services{Report: service, runner: runner}, nil
}

// OpenRunner returns the QueryRunner for the configured engine.
func OpenRunner(cfg *config.Config) (secondary.QueryRunner, error) {
	switch cfg.Engine {
	case config.EngineSQLite, config.EnginePureGo:
		return sqlite.Open(cfg.DBPath, cfg.Engine)
	case config.EngineDuckDB:
		return duckdb.Open(cfg.DuckDBBin, cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}
}

// ReportAdapterWithOutput returns a new ReportAdapter writing to out.
func (s *Services) ReportAdapterWithOutput(out io.Writer) *cliadapter.ReportAdapter {
	return cliadapter.NewReportAdapter(s.Report, out)
}

// Close releases the store connection.
func (s *Services) Close() error {
	if s.runner == nil {
		return nil
	}
	return s.runner.Close()
}
