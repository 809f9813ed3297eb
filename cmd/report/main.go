// Command report builds the sales report once and writes the view as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sales-report/src/bootstrap"
	"sales-report/src/config"
	"sales-report/src/helpers"
	"sales-report/src/logger"
)

// -----------------------------------------------------------------------------

func main() {
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	output := flag.String("o", "", "write the report to this file instead of stdout")
	flag.Parse()

	os.Exit(run(*configPath, *output))
}

// -----------------------------------------------------------------------------

func run(configPath, output string) int {
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}

	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	comp, err := bootstrap.Setup(ctx, cfg.MConfig, appLogger)
	if err != nil {
		appLogger.Error("Setup failed: %v", err)
		return 1
	}
	defer comp.Close()

	view, err := comp.Service.Refresh(ctx)
	if err != nil {
		appLogger.Error("Report failed (%s): %v", helpers.ErrorKind(err), err)
		return 1
	}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			appLogger.Error("Cannot create %s: %v", output, err)
			return 1
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		appLogger.Error("Cannot write report: %v", err)
		return 1
	}

	appLogger.Info("Report %s written: %d products, %d cities", view.SnapshotID, len(view.Products.Rows), len(view.Cities.Markers))
	return 0
}
