package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"sales-report/src/analysis"
	"sales-report/src/helpers"
	"sales-report/src/interfaces"
	"sales-report/src/logger"
	"sales-report/src/metrics"
	"sales-report/src/models"
	"sales-report/src/storage"
	"sales-report/src/utils"
)

// -----------------------------------------------------------------------------
// ReportService owns the refresh cycle: load, compute, swap, notify.
// -----------------------------------------------------------------------------

type ReportService struct {
	Config    *models.MConfig
	Records   *storage.RecordStore
	Analyzer  *analysis.AnalysisFacade
	Store     *utils.ReportStore
	Metrics   *metrics.Registry
	Errors    *helpers.ErrorHandler
	Logger    *logger.Logger
	listeners []interfaces.IDataExchanger

	refreshMu   sync.Mutex // one refresh at a time
	statusMu    sync.RWMutex
	lastSuccess time.Time
	lastErr     error
	failures    int
}

// -----------------------------------------------------------------------------

func NewReportService(
	cfg *models.MConfig,
	records *storage.RecordStore,
	analyzer *analysis.AnalysisFacade,
	reg *metrics.Registry,
	log *logger.Logger,
) *ReportService {
	return &ReportService{
		Config:   cfg,
		Records:  records,
		Analyzer: analyzer,
		Store:    utils.NewReportStore(),
		Metrics:  reg,
		Errors:   helpers.NewErrorHandler(log),
		Logger:   log,
	}
}

// -----------------------------------------------------------------------------

// AddListener registers a receiver of every new snapshot.
func (s *ReportService) AddListener(l interfaces.IDataExchanger) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	s.listeners = append(s.listeners, l)
}

// -----------------------------------------------------------------------------

func (s *ReportService) Snapshot() *models.MReportView {
	return s.Store.Load()
}

// -----------------------------------------------------------------------------

// Refresh runs the whole pipeline. On failure the previous snapshot stays in
// place and the error is returned whole; nothing is retried.
func (s *ReportService) Refresh(ctx context.Context) (*models.MReportView, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := time.Now()

	records, err := s.Records.LoadSnapshot(ctx, s.Config.Data)
	if err != nil {
		return nil, s.fail(start, err)
	}
	loadTime := time.Since(start)

	view, err := s.Analyzer.Compute(records)
	if err != nil {
		return nil, s.fail(start, err)
	}

	view.SnapshotID = uuid.NewString()
	view.GeneratedAt = time.Now().UTC()
	view.ProcessingMetrics.LoadTimeSeconds = loadTime.Seconds()

	s.Store.Swap(view)
	s.Errors.ResetErrorCount()

	s.statusMu.Lock()
	s.lastSuccess = view.GeneratedAt
	s.lastErr = nil
	s.failures = 0
	s.statusMu.Unlock()

	if s.Metrics != nil {
		s.Metrics.ObserveSuccess(time.Since(start), view.ProcessingMetrics.Products, view.ProcessingMetrics.Cities,
			map[string]int{
				"raw":   records.Report.RawDropped,
				"clean": records.Report.CleanDropped,
				"city":  records.Report.CityDropped,
			})
	}

	for _, l := range s.listeners {
		l.Broadcast(view)
	}

	s.Logger.Info("Report %s ready: %d products, %d cities in %.3fs",
		view.SnapshotID, view.ProcessingMetrics.Products, view.ProcessingMetrics.Cities, time.Since(start).Seconds())
	return view, nil
}

func (s *ReportService) fail(start time.Time, err error) error {
	s.Errors.Handle(err, "refresh")
	if s.Metrics != nil {
		s.Metrics.ObserveFailure(time.Since(start), helpers.ErrorKind(err))
	}

	s.statusMu.Lock()
	s.lastErr = err
	s.failures = s.Errors.ErrorCount
	s.statusMu.Unlock()
	return err
}

// -----------------------------------------------------------------------------

func (s *ReportService) Status() models.MServiceStatus {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()

	status := models.MServiceStatus{
		Status:              "ok",
		Generation:          s.Store.Generation(),
		LastSuccess:         s.lastSuccess,
		ConsecutiveFailures: s.failures,
		HeapMB:              utils.ProcessMemoryMB(),
	}
	if view := s.Store.Load(); view != nil {
		status.SnapshotID = view.SnapshotID
	} else {
		status.Status = "starting"
	}
	if s.lastErr != nil {
		status.LastError = s.lastErr.Error()
		status.LastErrorKind = helpers.ErrorKind(s.lastErr)
		if status.Status == "ok" {
			status.Status = "degraded"
		}
	}
	return status
}

// -----------------------------------------------------------------------------

// Run refreshes every refresh_interval_seconds until ctx is done. A zero
// interval disables periodic refresh. Failures are logged and the loop
// continues with the previous snapshot.
func (s *ReportService) Run(ctx context.Context) error {
	interval := time.Duration(s.Config.Data.RefreshIntervalSeconds) * time.Second
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}
