package storage

import (
	"sales-report/src/logger"
	"sales-report/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

// NewPostgresSource reads tables from the connection string's database. An
// empty schema resolves table names through the search_path.
func NewPostgresSource(cfg *models.MConfig, schema string, log *logger.Logger) *SQLSource {
	return &SQLSource{
		Driver: "postgres",
		DSN:    cfg.Storage.DBConnectionString,
		Schema: schema,
		Logger: log,
	}
}
