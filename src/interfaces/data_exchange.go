package interfaces

import (
	"context"
	"sales-report/src/models"
)

// -----------------------------------------------------------------------------
// IDataExchanger defining the interface for sharing reports with external systems (Server/Push).
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// Broadcast pushes a freshly swapped report to external listeners.
	Broadcast(report *models.MReportView)

	// -----------------------------------------------------------------------------
	// Start the server
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop(ctx context.Context) error
}

// -----------------------------------------------------------------------------
// IReportProvider exposes the current report snapshot and on-demand refresh.
// -----------------------------------------------------------------------------

type IReportProvider interface {
	// Snapshot returns the current immutable report, nil before the first success.
	Snapshot() *models.MReportView

	// Refresh recomputes the report and swaps it in on success.
	Refresh(ctx context.Context) (*models.MReportView, error)

	// Status summarizes the last refresh outcome.
	Status() models.MServiceStatus
}
