package build

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/routes"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	contentDir := t.TempDir()
	outDir := t.TempDir()
	cfg, err := config.Parse([]byte(fmt.Sprintf(`
content_dir: %s
site:
  title: Test Blog
  base_url: https://example.com
blog:
  posts_per_page: 5
output:
  directory: %s
`, contentDir, outDir)))
	require.NoError(t, err)
	return cfg
}

func writePost(t *testing.T, cfg *config.Config, name, body string) {
	t.Helper()
	path := filepath.Join(cfg.ContentDir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o640))
}

func readRouteTable(t *testing.T, cfg *config.Config) []routes.Route {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.Output.Directory, cfg.Output.DataDir, routes.RouteTableName))
	require.NoError(t, err)
	var table []routes.Route
	require.NoError(t, json.Unmarshal(data, &table))
	return table
}

func routePaths(table []routes.Route) map[string]string {
	paths := make(map[string]string, len(table))
	for _, r := range table {
		paths[r.Path] = r.Component
	}
	return paths
}

func TestRunFullPipeline(t *testing.T) {
	cfg := testConfig(t)
	for i := 1; i <= 7; i++ {
		writePost(t, cfg, fmt.Sprintf("2024-01-%02d-post-%d.md", i, i), fmt.Sprintf(`---
title: Post %d
tags: [go, Testing]
---
Body of post %d.
`, i, i))
	}

	report, err := NewService(cfg).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, OutcomeSuccess, report.Outcome)
	require.Equal(t, 7, report.Posts)
	require.Equal(t, 7, report.Listed)
	require.Equal(t, 2, report.Tags)

	paths := routePaths(readRouteTable(t, cfg))

	// Two archive pages for 7 posts at page size 5.
	require.Equal(t, "blog/list", paths["/blog"])
	require.Equal(t, "blog/list", paths["/blog/page/2"])
	require.NotContains(t, paths, "/blog/page/3")

	require.Equal(t, "blog/post", paths["/blog/post-1"])
	require.Equal(t, "blog/post", paths["/blog/post-7"])
	require.Equal(t, "blog/tag-list", paths["/blog/tags/go"])
	require.Equal(t, "blog/tag-list", paths["/blog/tags/testing"])
	require.Equal(t, "blog/tags-index", paths["/blog/tags"])
}

func TestRunZeroPosts(t *testing.T) {
	cfg := testConfig(t)

	report, err := NewService(cfg).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, OutcomeSuccess, report.Outcome)
	require.Equal(t, 0, report.Posts)

	table := readRouteTable(t, cfg)
	require.Empty(t, table)
}

func TestRunDraftsExcludedFromListings(t *testing.T) {
	cfg := testConfig(t)
	writePost(t, cfg, "2024-01-01-live.md", "---\ntitle: Live\n---\nBody.\n")
	writePost(t, cfg, "2024-01-02-draft.md", "---\ntitle: Draft\ndraft: true\n---\nBody.\n")

	report, err := NewService(cfg).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, report.Posts)
	require.Equal(t, 1, report.Listed)

	// The draft still gets a standalone route.
	paths := routePaths(readRouteTable(t, cfg))
	require.Equal(t, "blog/post", paths["/blog/draft"])
}

func TestRunUnknownAuthorThrow(t *testing.T) {
	cfg := testConfig(t)
	writePost(t, cfg, "2024-01-01-a.md", "---\ntitle: A\nauthors: [ghost]\n---\nBody.\n")

	report, err := NewService(cfg).Run(context.Background())
	require.Error(t, err)
	require.Equal(t, OutcomeFailed, report.Outcome)
	require.True(t, berrors.IsCategory(err, berrors.CategoryReference))
}

func TestRunUnknownAuthorWarn(t *testing.T) {
	cfg := testConfig(t)
	cfg.Reporting.OnUnknownAuthors = config.LevelWarn
	writePost(t, cfg, "2024-01-01-a.md", "---\ntitle: A\nauthors: [ghost]\n---\nBody.\n")

	report, err := NewService(cfg).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, OutcomeWarning, report.Outcome)
	require.Equal(t, 1, report.Warnings())
}

func TestRunWritesFeeds(t *testing.T) {
	cfg := testConfig(t)
	cfg.Feeds.Formats = []string{"rss", "atom", "json"}
	writePost(t, cfg, "2024-03-01-hello.md", "---\ntitle: Hello\n---\nBody.\n")

	report, err := NewService(cfg).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, report.Feeds)

	for _, name := range []string{"rss.xml", "atom.xml", "feed.json"} {
		_, err := os.Stat(filepath.Join(cfg.Output.Directory, "blog", name))
		require.NoError(t, err, name)
	}
}

func TestRunInvalidFrontMatterFails(t *testing.T) {
	cfg := testConfig(t)
	writePost(t, cfg, "2024-01-01-bad.md", "---\ntitle: Bad\ndate: not-a-date\n---\nBody.\n")

	_, err := NewService(cfg).Run(context.Background())
	require.Error(t, err)
	require.True(t, berrors.IsCategory(err, berrors.CategoryValidation))
}

func TestRunCanceledContext(t *testing.T) {
	cfg := testConfig(t)
	writePost(t, cfg, "2024-01-01-a.md", "---\ntitle: A\n---\nBody.\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewService(cfg).Run(ctx)
	require.Error(t, err)
	require.Equal(t, OutcomeCanceled, report.Outcome)
}

func TestRunRecordsStageDurations(t *testing.T) {
	cfg := testConfig(t)
	writePost(t, cfg, "2024-01-01-a.md", "---\ntitle: A\n---\nBody.\n")

	report, err := NewService(cfg).Run(context.Background())
	require.NoError(t, err)
	for _, stage := range []string{StagePrepare, StageDiscover, StageRead, StageDerive, StageLink, StageAggregate, StagePaginate, StageEmit, StageWrite} {
		require.Contains(t, report.StageDurations, stage)
	}
}
