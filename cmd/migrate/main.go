// Command migrate applies pending database migrations embedded in the binary.
//
// Usage:
//
//	migrate [--config=./config.yaml]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/srs-scheduler/internal/app"
	"github.com/heartmarshall/srs-scheduler/pkg/ctxutil"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (default: CONFIG_PATH or ./config.yaml)")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx, _ = ctxutil.WithNewRunID(ctx)

	a, err := app.New(ctx, *configPath)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer a.Close()

	if err := a.Migrate(ctx); err != nil {
		a.Log.ErrorContext(ctx, "migrate failed", slog.String("error", err.Error()))
		a.Close()
		os.Exit(1)
	}

	a.Log.InfoContext(ctx, "migrations up to date")
}
