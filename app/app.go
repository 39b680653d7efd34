package app

import (
	"context"
	"sync"

	"log/slog"

	"github.com/jekabolt/grbpwr-analytics/config"
	httpapi "github.com/jekabolt/grbpwr-analytics/internal/api/http"
	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jekabolt/grbpwr-analytics/internal/report"
	"github.com/jekabolt/grbpwr-analytics/internal/store"
)

// App is the main application
type App struct {
	hs   *httpapi.Server
	db   *store.MYSQLStore
	c    *config.Config
	once sync.Once
	done chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting analytics service")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to the record store",
			slog.String("err", err.Error()))
		return err
	}

	var exporter dependency.Exporter
	if a.c.Bucket.Enabled() {
		b, err := a.c.Bucket.New()
		if err != nil {
			slog.Default().ErrorContext(ctx, "couldn't create bucket client",
				slog.String("err", err.Error()))
			return err
		}
		exporter = b
	} else {
		slog.Default().InfoContext(ctx, "bucket is not configured, exports are returned inline only")
	}

	reports := report.New(&a.c.Reports, a.db, exporter)

	a.hs = httpapi.New(&a.c.HTTP, reports)
	if err = a.hs.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()))
		return err
	}

	go func() {
		<-a.hs.Done()
		a.close()
	}()

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server stop failed",
				slog.String("err", err.Error()))
		}
	}
	a.close()
}

func (a *App) close() {
	a.once.Do(func() {
		if a.db != nil {
			a.db.Close()
		}
		close(a.done)
	})
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
