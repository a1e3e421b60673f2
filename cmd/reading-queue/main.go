// Command reading-queue builds today's incremental-reading queue and prints
// it as JSON on stdout. With auto-defer enabled, items that do not fit are
// moved out of today as a side effect.
//
// Usage:
//
//	reading-queue [--config=./config.yaml] [--limit=N] [--topic-quota=P] [--no-defer]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/srs-scheduler/internal/app"
	"github.com/heartmarshall/srs-scheduler/internal/domain"
	"github.com/heartmarshall/srs-scheduler/internal/service/reading"
	"github.com/heartmarshall/srs-scheduler/pkg/ctxutil"
)

type itemView struct {
	ID        string     `json:"id"`
	Kind      string     `json:"kind"`
	Priority  int        `json:"priority"`
	Due       time.Time  `json:"due"`
	Position  *float64   `json:"position,omitempty"`
	ReadCount int        `json:"readCount"`
	LastRead  *time.Time `json:"lastRead,omitempty"`
}

type failureView struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

type queueView struct {
	Items    []itemView    `json:"items"`
	Topics   int           `json:"topics"`
	Extracts int           `json:"extracts"`
	Deferred int           `json:"deferred"`
	Failed   []failureView `json:"failed,omitempty"`
}

func main() {
	configPath := flag.String("config", "", "path to YAML config (default: CONFIG_PATH or ./config.yaml)")
	limit := flag.Int("limit", -1, "daily limit override; 0 means unlimited (default: from config)")
	quota := flag.Int("topic-quota", -1, "topic quota percent override (default: from config)")
	noDefer := flag.Bool("no-defer", false, "do not defer items that miss today's queue")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx, _ = ctxutil.WithNewRunID(ctx)

	a, err := app.New(ctx, *configPath)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer a.Close()

	var input reading.BuildQueueInput
	if *limit >= 0 {
		input.DailyLimit = limit
	}
	if *quota >= 0 {
		input.TopicQuotaPercent = quota
	}
	if *noDefer {
		off := false
		input.EnableAutoDefer = &off
	}

	queue, err := a.Reading.BuildDailyQueue(ctx, input)
	if err != nil {
		a.Log.ErrorContext(ctx, "build reading queue", slog.String("error", err.Error()))
		a.Close()
		os.Exit(1)
	}

	if err := writeQueue(os.Stdout, queue); err != nil {
		a.Log.ErrorContext(ctx, "write reading queue", slog.String("error", err.Error()))
		a.Close()
		os.Exit(1)
	}
}

func writeQueue(w io.Writer, q *reading.DailyQueue) error {
	view := queueView{
		Items:    make([]itemView, 0, len(q.Items)),
		Topics:   q.Topics,
		Extracts: q.Extracts,
		Deferred: q.Deferred,
	}
	for _, it := range q.Items {
		view.Items = append(view.Items, toItemView(it))
	}
	for _, f := range q.Failed {
		view.Failed = append(view.Failed, failureView{ID: f.ID.String(), Error: f.Err.Error()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

func toItemView(it *domain.ReadingItem) itemView {
	return itemView{
		ID:        it.ID.String(),
		Kind:      string(it.Kind),
		Priority:  it.Priority,
		Due:       it.Due,
		Position:  it.Position,
		ReadCount: it.ReadCount,
		LastRead:  it.LastRead,
	}
}
