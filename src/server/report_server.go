package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"sales-report/src/helpers"
	"sales-report/src/interfaces"
	"sales-report/src/logger"
	"sales-report/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// ReportServer
// -----------------------------------------------------------------------------

type ReportServer struct {
	Config   *models.MConfig
	Logger   *logger.Logger
	Provider interfaces.IReportProvider
	engine   *gin.Engine
	http     *http.Server

	// WebSocket clients, owned by the hub loop
	clients    map[*Client]struct{}
	clientsMu  sync.RWMutex
	broadcast  chan *models.MReportView
	register   chan *Client
	unregister chan *Client
	direct     chan directMessage
	done       chan struct{}
	stopOnce   sync.Once
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

// NewReportServer wires the read API over the provider. metricsHandler, when
// non-nil, is served on /metrics.
func NewReportServer(cfg *models.MConfig, provider interfaces.IReportProvider, metricsHandler http.Handler, logger *logger.Logger) *ReportServer {
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &ReportServer{
		Config:     cfg,
		Logger:     logger,
		Provider:   provider,
		engine:     gin.New(),
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan *models.MReportView, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan directMessage),
		done:       make(chan struct{}),
	}
	s.engine.Use(gin.Recovery())

	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	s.setupRoutes(metricsHandler)
	s.http = &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: s.engine}
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *ReportServer) setupRoutes(metricsHandler http.Handler) {
	api := s.engine.Group("/api")
	api.GET("/report", s.getReport)
	api.GET("/products", s.getProducts)
	api.GET("/cities", s.getCities)
	api.GET("/temporal/monthly", s.getMonthly)
	api.GET("/temporal/hourly", s.getHourly)
	api.GET("/subsets", s.getSubsets)
	api.GET("/metrics", s.getMetrics)
	api.GET("/health", s.getHealth)
	api.POST("/refresh", s.postRefresh)

	if metricsHandler != nil {
		s.engine.GET("/metrics", gin.WrapH(metricsHandler))
	}

	s.engine.GET("/ws", s.handleWebSocket)
}

// Handler exposes the routes, used by tests and embedding servers.
func (s *ReportServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start runs the hub and serves HTTP until Stop. It returns nil after a
// graceful stop.
func (s *ReportServer) Start() error {
	s.Logger.Info("Starting HTTP server on %s", s.http.Addr)

	go s.handleWebsockets()

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *ReportServer) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.done) })
	return s.http.Shutdown(ctx)
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

// snapshot writes 503 and returns nil while no report exists.
func (s *ReportServer) snapshot(c *gin.Context) *models.MReportView {
	view := s.Provider.Snapshot()
	if view == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no report available yet"})
	}
	return view
}

// -----------------------------------------------------------------------------

func (s *ReportServer) getReport(c *gin.Context) {
	if view := s.snapshot(c); view != nil {
		c.JSON(http.StatusOK, view)
	}
}

// -----------------------------------------------------------------------------

func (s *ReportServer) getProducts(c *gin.Context) {
	view := s.snapshot(c)
	if view == nil {
		return
	}
	rows, err := productRows(view, c.Query("order"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"snapshot_id":    view.SnapshotID,
		"total_sales":    view.Products.TotalSales,
		"total_quantity": view.Products.TotalQuantity,
		"rows":           rows,
	})
}

// -----------------------------------------------------------------------------

func (s *ReportServer) getCities(c *gin.Context) {
	view := s.snapshot(c)
	if view == nil {
		return
	}
	rows, err := cityRows(view, c.Query("order"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"snapshot_id": view.SnapshotID,
		"total_sales": view.Cities.TotalSales,
		"rows":        rows,
		"references":  view.Cities.References,
	})
}

// -----------------------------------------------------------------------------

func (s *ReportServer) getMonthly(c *gin.Context) {
	if view := s.snapshot(c); view != nil {
		c.JSON(http.StatusOK, gin.H{"snapshot_id": view.SnapshotID, "rows": view.Monthly})
	}
}

func (s *ReportServer) getHourly(c *gin.Context) {
	if view := s.snapshot(c); view != nil {
		c.JSON(http.StatusOK, gin.H{"snapshot_id": view.SnapshotID, "rows": view.Hourly})
	}
}

func (s *ReportServer) getSubsets(c *gin.Context) {
	if view := s.snapshot(c); view != nil {
		c.JSON(http.StatusOK, gin.H{"snapshot_id": view.SnapshotID, "rows": view.Products.Subsets})
	}
}

// -----------------------------------------------------------------------------

func (s *ReportServer) getMetrics(c *gin.Context) {
	if view := s.snapshot(c); view != nil {
		c.JSON(http.StatusOK, gin.H{
			"processing_metrics": view.ProcessingMetrics,
			"load":               view.Load,
		})
	}
}

// -----------------------------------------------------------------------------

func (s *ReportServer) getHealth(c *gin.Context) {
	s.clientsMu.RLock()
	connections := len(s.clients)
	s.clientsMu.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"service":     s.Provider.Status(),
		"connections": connections,
	})
}

// -----------------------------------------------------------------------------

func (s *ReportServer) postRefresh(c *gin.Context) {
	view, err := s.Provider.Refresh(c.Request.Context())
	if err != nil {
		kind := helpers.ErrorKind(err)
		c.JSON(refreshStatus(kind), gin.H{"error": err.Error(), "kind": kind})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"snapshot_id":        view.SnapshotID,
		"generated_at":       view.GeneratedAt,
		"processing_metrics": view.ProcessingMetrics,
	})
}
