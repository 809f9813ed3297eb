package interfaces

import (
	"context"
	"sales-report/src/models"
)

// -----------------------------------------------------------------------------
// ITableSource reads untyped input tables for the record store.
// -----------------------------------------------------------------------------

type ITableSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// ReadTable returns the header and cells of the referenced table.
	// The reference is a path/URL for file sources and a table name for SQL sources.
	ReadTable(ctx context.Context, ref string) (*models.MTable, error)

	// -----------------------------------------------------------------------------

	// Close releases the underlying connection, if any.
	Close() error
}
