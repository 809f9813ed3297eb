// Package bootstrap assembles the report pipeline from a configuration. The
// service binary and the one-shot report command share it.
package bootstrap

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"sales-report/src/analysis"
	"sales-report/src/helpers"
	"sales-report/src/interfaces"
	"sales-report/src/logger"
	"sales-report/src/metrics"
	"sales-report/src/models"
	"sales-report/src/network"
	"sales-report/src/service"
	"sales-report/src/storage"
	"sales-report/src/utils"
)

// -----------------------------------------------------------------------------

// Components holds everything a binary needs to drive the pipeline.
type Components struct {
	Source  interfaces.ITableSource
	Service *service.ReportService
	Metrics *metrics.Registry
}

// Close releases the table source.
func (c *Components) Close() error {
	if c.Source == nil {
		return nil
	}
	return c.Source.Close()
}

// -----------------------------------------------------------------------------

// SetupSource opens the table source selected by storage.db_type. Open
// failures are returned to the caller.
func SetupSource(ctx context.Context, cfg *models.MConfig, appLogger *logger.Logger) (interfaces.ITableSource, error) {
	switch strings.ToLower(cfg.Storage.DBType) {
	case "", "csv":
		fetcher := network.NewHTTPFetcher(cfg, appLogger.Named("Network"))
		return storage.NewCSVSource(fetcher, appLogger.Named("CSVSource")), nil

	case "sqlite":
		src := storage.NewSQLiteSource(cfg, appLogger.Named("SQLiteSource"))
		if err := storage.InitializeSQLite(ctx, src); err != nil {
			return nil, err
		}
		return src, nil

	case "postgres":
		src := storage.NewPostgresSource(cfg, "", appLogger.Named("PostgresSource"))
		if err := src.Initialize(ctx); err != nil {
			return nil, err
		}
		return src, nil

	case "mysql":
		src := storage.NewMySQLSource(cfg, appLogger.Named("MySQLSource"))
		if err := src.Initialize(ctx); err != nil {
			return nil, err
		}
		return src, nil
	}

	return nil, helpers.NewConfigurationError(fmt.Sprintf("unknown storage db_type %q", cfg.Storage.DBType), nil)
}

// -----------------------------------------------------------------------------

// Setup wires source, record store, analysis and the refresh service.
func Setup(ctx context.Context, cfg *models.MConfig, appLogger *logger.Logger) (*Components, error) {
	src, err := SetupSource(ctx, cfg, appLogger)
	if err != nil {
		return nil, err
	}

	records := storage.NewRecordStore(src, cfg.Data.Categories, appLogger.Named("RecordStore"))

	cal := utils.GetBusinessCalendar(cfg.Data.CalendarMIC)
	appLogger.Debug("Business calendar: %s", cal.Timezone)

	analyzer := analysis.NewAnalysisFacade(cfg, cal, appLogger.Named("Analysis"))
	reg := metrics.NewRegistry()
	svc := service.NewReportService(cfg, records, analyzer, reg, appLogger.Named("ReportService"))

	return &Components{Source: src, Service: svc, Metrics: reg}, nil
}

// -----------------------------------------------------------------------------

// ApplyMemoryLimit sets the runtime soft memory limit from the machine size
// and returns it in MB.
func ApplyMemoryLimit(appLogger *logger.Logger) int {
	limitMB, err := helpers.GetRecommendedMemoryLimit()
	if err != nil {
		appLogger.Warning("Could not determine system memory (%v), using %dMB", err, limitMB)
	}
	debug.SetMemoryLimit(int64(limitMB) << 20)
	return limitMB
}
