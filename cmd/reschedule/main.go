// Command reschedule replays every card's review history under the current
// FSRS parameters and moves cards whose due date changed. Run it after
// changing weights or desired retention. Cards that fail are reported and
// skipped; the rest are still rescheduled.
//
// Usage:
//
//	reschedule [--config=./config.yaml] [--update-memory] [--batch=200]
//
// Exit codes: 0 = every card processed, 1 = setup error, 2 = some cards failed.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/srs-scheduler/internal/app"
	"github.com/heartmarshall/srs-scheduler/internal/service/study"
	"github.com/heartmarshall/srs-scheduler/pkg/ctxutil"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (default: CONFIG_PATH or ./config.yaml)")
	updateMemory := flag.Bool("update-memory", false, "also overwrite stability and difficulty with the replayed values")
	batch := flag.Int("batch", 200, "cards listed per page")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, _ = ctxutil.WithNewRunID(ctx)

	a, err := app.New(ctx, *configPath)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	code := run(ctx, a, study.RescheduleAllInput{UpdateMemoryState: *updateMemory, BatchSize: *batch})
	a.Close()
	os.Exit(code)
}

func run(ctx context.Context, a *app.App, input study.RescheduleAllInput) int {
	result, err := a.Study.RescheduleAll(ctx, input)
	if err != nil {
		a.Log.ErrorContext(ctx, "reschedule aborted", slog.String("error", err.Error()))
		return 1
	}

	for _, f := range result.Failed {
		a.Log.WarnContext(ctx, "card not rescheduled",
			slog.String("card_id", f.ID.String()),
			slog.String("error", f.Err.Error()),
		)
	}

	a.Log.InfoContext(ctx, "reschedule completed",
		slog.Int("processed", result.Processed),
		slog.Int("changed", result.Changed),
		slog.Int("failed", len(result.Failed)),
	)

	if len(result.Failed) > 0 {
		return 2
	}
	return 0
}
