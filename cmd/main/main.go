package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"sales-report/src/bootstrap"
	"sales-report/src/config"
	"sales-report/src/grpc_control"
	"sales-report/src/logger"
	"sales-report/src/server"
)

const shutdownTimeout = 10 * time.Second

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	os.Exit(run(*configPath))
}

// -----------------------------------------------------------------------------

// run owns every deferred cleanup so a failing exit still closes the source
// and flushes the logger.
func run(configPath string) int {

	// Load config from YAML file
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return 1
	}

	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)
	defer appLogger.Sync()

	limitMB := bootstrap.ApplyMemoryLimit(appLogger)
	appLogger.Info("Memory limit set to %dMB", limitMB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Pipeline
	comp, err := bootstrap.Setup(ctx, cfg.MConfig, appLogger)
	if err != nil {
		appLogger.Error("Setup failed: %v", err)
		return 1
	}
	defer comp.Close()

	// 2. Servers
	httpServer := server.NewReportServer(cfg.MConfig, comp.Service, comp.Metrics.Handler(), appLogger.Named("HTTP"))
	comp.Service.AddListener(httpServer)

	var grpcServer *grpc_control.Server
	if cfg.GrpcPort != 0 {
		control := grpc_control.NewControlService(comp.Service, appLogger.Named("Control"))
		grpcServer = grpc_control.NewServer(cfg.MConfig, control, appLogger.Named("gRPC"))
	}

	// 3. Initial report. A failure leaves the servers answering 503 until a
	// later refresh succeeds.
	if _, err := comp.Service.Refresh(ctx); err != nil {
		appLogger.Error("Initial report failed: %v", err)
	}

	// 4. Run until a signal arrives or a component fails
	g, gctx := errgroup.WithContext(ctx)

	g.Go(httpServer.Start)
	if grpcServer != nil {
		g.Go(grpcServer.Start)
	}
	g.Go(func() error { return comp.Service.Run(gctx) })

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if grpcServer != nil {
			if err := grpcServer.Stop(shutdownCtx); err != nil {
				appLogger.Error("gRPC shutdown: %v", err)
			}
		}
		return httpServer.Stop(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server stopped with error: %v", err)
		return 1
	}
	appLogger.Info("Stopped")
	return 0
}
