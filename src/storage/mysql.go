package storage

import (
	"sales-report/src/logger"
	"sales-report/src/models"

	_ "github.com/go-sql-driver/mysql"
)

// -----------------------------------------------------------------------------

func NewMySQLSource(cfg *models.MConfig, log *logger.Logger) *SQLSource {
	return &SQLSource{
		Driver: "mysql",
		DSN:    cfg.Storage.DBConnectionString,
		Logger: log,
		quote:  func(name string) string { return "`" + name + "`" },
	}
}
