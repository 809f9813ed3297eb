package utils

import (
	"runtime"
	"sync/atomic"

	"sales-report/src/models"
)

// -----------------------------------------------------------------------------
// ReportStore holds the current report snapshot.
// -----------------------------------------------------------------------------

// Snapshots are immutable once stored: readers share them without locking and
// a refresh replaces the pointer, never the contents.
type ReportStore struct {
	current    atomic.Pointer[models.MReportView]
	generation atomic.Uint64
}

// -----------------------------------------------------------------------------

func NewReportStore() *ReportStore {
	return &ReportStore{}
}

// -----------------------------------------------------------------------------

// Load returns the current snapshot, nil before the first swap.
func (rs *ReportStore) Load() *models.MReportView {
	return rs.current.Load()
}

// -----------------------------------------------------------------------------

// Swap installs a new snapshot and returns the previous one.
func (rs *ReportStore) Swap(view *models.MReportView) *models.MReportView {
	if view == nil {
		return rs.current.Load()
	}
	prev := rs.current.Swap(view)
	rs.generation.Add(1)
	return prev
}

// -----------------------------------------------------------------------------

// Generation counts successful swaps.
func (rs *ReportStore) Generation() uint64 {
	return rs.generation.Load()
}

// -----------------------------------------------------------------------------

// ProcessMemoryMB reports the heap in use, exposed by the health endpoints.
func ProcessMemoryMB() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.HeapAlloc) / 1024 / 1024
}
