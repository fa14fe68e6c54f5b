package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/watch"
)

// WatchCmd implements the 'watch' command: an initial build followed by
// debounced rebuilds on content changes.
type WatchCmd struct {
	Output        string        `short:"o" help:"Output directory for generated data (overrides config)"`
	Incremental   bool          `short:"i" help:"Skip rewriting artifacts whose content is unchanged" default:"true"`
	QuietWindow   time.Duration `help:"Debounce window between last change and rebuild" default:"500ms"`
	MetricsListen string        `help:"Address to serve Prometheus metrics on (empty disables)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Output.Directory = ResolveOutputDir(w.Output, cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if w.MetricsListen != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		go w.serveMetrics(ctx, reg)
	}

	service, cleanup, err := newService(cfg, w.Incremental, recorder)
	if err != nil {
		return err
	}
	defer cleanup()

	// Initial build failures are reported but do not stop the watcher; a
	// subsequent edit may fix the content.
	if _, err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Initial build failed", logfields.Error(err))
	}

	watcher, err := watch.New(cfg.ContentDir, w.QuietWindow, func(ctx context.Context) error {
		_, err := service.Run(ctx)
		return err
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping watcher")
	return nil
}

func (w *WatchCmd) serveMetrics(ctx context.Context, reg *prom.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	server := &http.Server{Addr: w.MetricsListen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("Serving metrics", slog.String("addr", w.MetricsListen))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics server failed", logfields.Error(err))
	}
}
