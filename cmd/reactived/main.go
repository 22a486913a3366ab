// Command reactived serves reactive cells over HTTP: writes to the
// query cell are debounced before settling, settled values stream to
// SSE subscribers, and notifications queue with a TTL.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kbukum/reactive/bootstrap"
	"github.com/kbukum/reactive/cell"
	"github.com/kbukum/reactive/config"
	"github.com/kbukum/reactive/logger"
	"github.com/kbukum/reactive/notify"
	"github.com/kbukum/reactive/observability"
	"github.com/kbukum/reactive/persist"
	"github.com/kbukum/reactive/pipeline"
	"github.com/kbukum/reactive/server"
	"github.com/kbukum/reactive/sse"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "reactived:", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	if err := config.LoadConfig("reactived", &cfg); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}
	log := app.Logger

	// Telemetry first so later components start traced and metered.
	telemetry := newTelemetryComponent(cfg.Telemetry, cfg.Name, cfg.Version, cfg.Environment)
	if err := app.RegisterComponent(telemetry); err != nil {
		return err
	}

	sseComp := sse.NewComponent()
	if err := app.RegisterComponent(sseComp); err != nil {
		return err
	}
	hub := sseComp.Hub()

	// Query cell: optionally hydrated from and mirrored to disk.
	var (
		query      cell.Source[string]
		writeQuery func(string) error
		disposers  []func()
	)
	if cfg.Persist.Enabled {
		store, err := persist.NewFileStore(cfg.Persist.Dir)
		if err != nil {
			return fmt.Errorf("opening persist store: %w", err)
		}
		pc, err := persist.NewCell(store, "query", "")
		if err != nil {
			return fmt.Errorf("creating query cell: %w", err)
		}
		query = pc
		writeQuery = pc.Write
		disposers = append(disposers, pc.Dispose)
	} else {
		c := cell.New("")
		query = c
		writeQuery = func(v string) error {
			c.Write(v)
			return nil
		}
		disposers = append(disposers, c.Dispose)
	}

	pipelineMetrics, err := pipeline.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return fmt.Errorf("creating pipeline metrics: %w", err)
	}

	debounced, err := pipeline.Debounce[string](query,
		time.Duration(cfg.Pipeline.DebounceMS)*time.Millisecond,
		pipeline.WithName("query"),
		pipeline.WithLogger(log),
		pipeline.WithMetrics(pipelineMetrics),
	)
	if err != nil {
		return fmt.Errorf("creating query debounce: %w", err)
	}
	disposers = append(disposers, debounced.Dispose)

	// Derived view over the settled query.
	queryLength, err := cell.Derive[string, int](debounced, func(s string) int {
		return len(strings.TrimSpace(s))
	})
	if err != nil {
		return fmt.Errorf("deriving query length: %w", err)
	}
	disposers = append(disposers, queryLength.Dispose)

	queue := notify.NewQueue(
		time.Duration(cfg.Notify.TTLSeconds)*time.Second,
		notify.WithCapacity(cfg.Notify.Capacity),
	)

	requestMetrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return fmt.Errorf("creating request metrics: %w", err)
	}

	api := server.NewAPI(cfg.Name, hub, app.Components, server.WithNotifications(queue))
	if err := api.RegisterCell(server.ExposeWritable[string]("query", query, writeQuery)); err != nil {
		return err
	}
	if err := api.RegisterCell(server.ExposeSource[string]("query_debounced", debounced)); err != nil {
		return err
	}
	if err := api.RegisterCell(server.ExposeSource[int]("query_length", queryLength)); err != nil {
		return err
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware(cfg.Name, requestMetrics)
	api.Routes(srv.GinEngine())
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return err
	}

	// Bindings attach once components are up so early settles are not
	// broadcast into an idle hub.
	app.OnStart(func(_ context.Context) error {
		unbind, err := sse.BindCell[string](hub, "query_debounced", debounced)
		if err != nil {
			return err
		}
		disposers = append(disposers, func() { unbind() })

		unbindLen, err := sse.BindCell[int](hub, "query_length", queryLength)
		if err != nil {
			return err
		}
		disposers = append(disposers, func() { unbindLen() })

		unsubNotify, err := queue.Subscribe(func(msgs []notify.Message) {
			data, err := json.Marshal(msgs)
			if err != nil {
				log.Error("failed to encode notifications", logger.Fields(
					logger.FieldError, err.Error(),
				))
				return
			}
			hub.Broadcast("notifications", data)
		})
		if err != nil {
			return err
		}
		disposers = append(disposers, func() { unsubNotify() })
		return nil
	})

	app.OnStop(func(_ context.Context) error {
		queue.Close()
		for i := len(disposers) - 1; i >= 0; i-- {
			disposers[i]()
		}
		return nil
	})

	return app.Run(context.Background())
}
