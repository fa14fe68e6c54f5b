package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"git.home.luguber.info/inful/blogbuilder/internal/build"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/incremental"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/routes"
)

// Compile-time check that the SQLite cache satisfies the writer's interface.
var _ routes.ArtifactCache = (*incremental.Cache)(nil)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Output directory for generated data (overrides config)"`
	Incremental bool   `short:"i" help:"Skip rewriting artifacts whose content is unchanged"`
	Clean       bool   `help:"Remove the previous generated-data area first"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Output.Directory = ResolveOutputDir(b.Output, cfg)
	if b.Clean {
		cfg.Output.Clean = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	service, cleanup, err := newService(cfg, b.Incremental, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := service.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Build %s: %d posts, %d routes, %d artifacts written, %d skipped\n",
		report.Outcome, report.Posts, report.Routes, report.Artifacts, report.Skipped)
	return nil
}

// newService wires a build service with the optional incremental cache.
func newService(cfg *config.Config, useCache bool, recorder metrics.Recorder) (*build.Service, func(), error) {
	service := build.NewService(cfg).WithRecorder(recorder)
	cleanup := func() {}

	if useCache {
		cachePath := cfg.Output.CachePath
		if cachePath == "" {
			cachePath = filepath.Join(cfg.Output.Directory, ".blogbuilder-cache.db")
		}
		if err := os.MkdirAll(filepath.Dir(cachePath), 0o750); err != nil {
			return nil, nil, fmt.Errorf("create cache directory: %w", err)
		}
		cache, err := incremental.Open(cachePath)
		if err != nil {
			return nil, nil, err
		}
		service = service.WithCache(cache)
		cleanup = func() { _ = cache.Close() }
	}
	return service, cleanup, nil
}
