package storage

import (
	"context"

	"sales-report/src/logger"
	"sales-report/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

func NewSQLiteSource(cfg *models.MConfig, log *logger.Logger) *SQLSource {
	return &SQLSource{
		Driver: "sqlite",
		DSN:    cfg.Storage.DBPath,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// InitializeSQLite opens the database read-mostly: WAL lets the collaborator
// that owns the file keep writing while reports are computed.
func InitializeSQLite(ctx context.Context, s *SQLSource) error {
	if err := s.Initialize(ctx); err != nil {
		return err
	}

	if _, err := s.DB.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		s.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := s.DB.ExecContext(ctx, "PRAGMA query_only = ON;"); err != nil {
		s.Logger.Warning("Failed to set query_only: %v", err)
	}
	return nil
}
