// Package build orchestrates the content pipeline: discover sources, derive
// post metadata, aggregate tags, paginate listings, emit routes and data
// artifacts, and write feeds.
package build

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/content"
	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/feeds"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/paginate"
	"git.home.luguber.info/inful/blogbuilder/internal/routes"
	"git.home.luguber.info/inful/blogbuilder/internal/taxonomy"
)

// Stage names used for metrics and the report's stage timing table.
const (
	StagePrepare   = "prepare_output"
	StageDiscover  = "discover"
	StageRead      = "read"
	StageDerive    = "derive"
	StageLink      = "link"
	StageAggregate = "aggregate"
	StagePaginate  = "paginate"
	StageEmit      = "emit_routes"
	StageWrite     = "write_artifacts"
	StageFeeds     = "feeds"
)

// Service runs the build pipeline for one configuration.
type Service struct {
	cfg      *config.Config
	recorder metrics.Recorder
	cache    routes.ArtifactCache
}

// NewService creates a Service with no metrics and no incremental cache.
func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg, recorder: metrics.NoopRecorder{}}
}

// WithRecorder injects a metrics recorder.
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	s.recorder = r
	return s
}

// WithCache injects the incremental artifact cache.
func (s *Service) WithCache(c routes.ArtifactCache) *Service {
	s.cache = c
	return s
}

// dataDir is the generated-data area receiving artifacts and the route table.
func (s *Service) dataDir() string {
	return filepath.Join(s.cfg.Output.Directory, s.cfg.Output.DataDir)
}

// Run executes the full pipeline. The returned Report is non-nil even on
// failure so callers can surface partial counters.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	report := NewReport()
	slog.Info("Build started",
		logfields.BuildID(report.BuildID),
		logfields.Source(s.cfg.ContentDir),
		logfields.Output(s.cfg.Output.Directory))

	err := s.run(ctx, report)
	if err != nil {
		if ctx.Err() != nil {
			report.Outcome = OutcomeCanceled
			s.recorder.IncBuildOutcome(string(OutcomeCanceled))
		} else {
			report.Outcome = OutcomeFailed
			s.recorder.IncBuildOutcome(string(OutcomeFailed))
		}
		report.Finish()
		report.LogSummary()
		return report, err
	}

	report.Finish()
	if report.Outcome == OutcomeFailed {
		err = berrors.New(berrors.CategoryInternal, berrors.SeverityError, "build finished with recorded errors")
	}
	s.recorder.IncBuildOutcome(string(report.Outcome))
	s.recorder.ObserveBuildDuration(report.Duration)
	report.LogSummary()
	return report, err
}

func (s *Service) run(ctx context.Context, report *Report) error {
	// Stage: prepare output
	stageStart := time.Now()
	if err := s.prepareOutput(); err != nil {
		s.failStage(StagePrepare, stageStart, report)
		return err
	}
	s.passStage(StagePrepare, stageStart, report)

	// Stage: discover sources
	stageStart = time.Now()
	discovery, err := content.NewDiscovery(s.cfg)
	if err != nil {
		s.failStage(StageDiscover, stageStart, report)
		return err
	}
	files, err := discovery.Discover()
	if err != nil {
		s.failStage(StageDiscover, stageStart, report)
		return err
	}
	s.passStage(StageDiscover, stageStart, report)
	slog.Debug("Discovery complete", logfields.Posts(len(files)))

	// Stage: read and validate front matter
	stageStart = time.Now()
	docs := make([]*content.SourceDoc, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			s.cancelStage(StageRead, stageStart, report)
			return err
		}
		doc, err := content.ReadSource(file)
		if err != nil {
			s.failStage(StageRead, stageStart, report)
			return err
		}
		docs = append(docs, doc)
	}
	s.passStage(StageRead, stageStart, report)

	// Stage: derive post metadata
	stageStart = time.Now()
	authors, err := content.LoadAuthorsMap(s.cfg.Authors.MapPath)
	if err != nil {
		s.failStage(StageDerive, stageStart, report)
		return err
	}
	posts := make([]*content.Post, 0, len(docs))
	var authorIssues []*berrors.BlogError
	for i, doc := range docs {
		post, issues, err := content.Derive(doc, s.cfg, authors, i)
		if err != nil {
			s.failStage(StageDerive, stageStart, report)
			return err
		}
		authorIssues = append(authorIssues, issues...)
		posts = append(posts, post)
	}
	if err := applyPolicy(s.cfg.Reporting.OnUnknownAuthors, StageDerive, authorIssues, report); err != nil {
		s.failStage(StageDerive, stageStart, report)
		return err
	}
	s.passStage(StageDerive, stageStart, report)
	report.Posts = len(posts)
	s.recorder.SetPostCount(len(posts))

	// Stage: order, adjacency, internal links
	stageStart = time.Now()
	content.SortPosts(posts)
	listed := listedOnly(posts)
	content.LinkAdjacent(listed)
	report.Listed = len(listed)
	linkIssues := content.CheckInternalLinks(posts)
	if err := applyPolicy(s.cfg.Reporting.OnBrokenLinks, StageLink, linkIssues, report); err != nil {
		s.failStage(StageLink, stageStart, report)
		return err
	}
	s.passStage(StageLink, stageStart, report)

	// Stage: aggregate tags
	stageStart = time.Now()
	tags := taxonomy.Aggregate(posts, s.cfg)
	s.passStage(StageAggregate, stageStart, report)
	report.Tags = len(tags)

	// Stage: paginate the archive
	stageStart = time.Now()
	perPage := s.cfg.Blog.PostsPerPage.Size(len(listed))
	archive := paginate.Paginate(s.cfg.Blog.ArchiveBasePath, listed, perPage)
	s.passStage(StagePaginate, stageStart, report)

	// Stage: emit routes and artifacts
	stageStart = time.Now()
	emitter := routes.NewEmitter(s.cfg)
	routeList, artifacts, err := emitter.Emit(posts, tags, archive)
	if err != nil {
		s.failStage(StageEmit, stageStart, report)
		return err
	}
	dupes := routes.CheckDuplicates(routeList)
	if err := applyPolicy(s.cfg.Reporting.OnDuplicateRoutes, StageEmit, dupes, report); err != nil {
		s.failStage(StageEmit, stageStart, report)
		return err
	}
	s.passStage(StageEmit, stageStart, report)
	report.Routes = len(routeList)
	s.recorder.SetRouteCount(len(routeList))

	// Stage: write artifacts and the route table
	stageStart = time.Now()
	writer := routes.NewWriter(s.dataDir(), s.cache)
	res, err := writer.WriteAll(ctx, routeList, artifacts)
	if err != nil {
		if ctx.Err() != nil {
			s.cancelStage(StageWrite, stageStart, report)
		} else {
			s.failStage(StageWrite, stageStart, report)
		}
		return err
	}
	s.passStage(StageWrite, stageStart, report)
	report.Artifacts = res.Written
	report.Skipped = res.Skipped
	for i := 0; i < res.Written; i++ {
		s.recorder.IncArtifactWrite(false)
	}
	for i := 0; i < res.Skipped; i++ {
		s.recorder.IncArtifactWrite(true)
	}

	// Stage: feeds
	if len(s.cfg.Feeds.Formats) > 0 {
		stageStart = time.Now()
		if err := s.writeFeeds(listed, report); err != nil {
			s.failStage(StageFeeds, stageStart, report)
			return err
		}
		s.passStage(StageFeeds, stageStart, report)
	}

	return nil
}

// prepareOutput creates the output tree, optionally clearing the previous
// generated-data area first. Only the data dir is cleaned, never the whole
// output directory, which may hold files owned by other tools.
func (s *Service) prepareOutput() error {
	if s.cfg.Output.Clean {
		if err := os.RemoveAll(s.dataDir()); err != nil {
			return berrors.WriteFailed(s.dataDir(), err)
		}
	}
	if err := os.MkdirAll(s.dataDir(), 0o750); err != nil {
		return berrors.WriteFailed(s.dataDir(), err)
	}
	return nil
}

func (s *Service) writeFeeds(listed []*content.Post, report *Report) error {
	formats := make([]feeds.Format, 0, len(s.cfg.Feeds.Formats))
	for _, f := range s.cfg.Feeds.Formats {
		formats = append(formats, feeds.Format(f))
	}
	meta := feeds.SiteMeta{
		Title:       s.cfg.Site.Title,
		Description: s.cfg.Site.Description,
		BaseURL:     s.cfg.Site.BaseURL,
		BasePath:    s.cfg.Blog.RouteBasePath,
		Language:    s.cfg.Site.Language,
		Copyright:   s.cfg.Site.Copyright,
	}
	docs, err := feeds.Build(listed, meta, formats, s.cfg.Feeds.Limit)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		target := filepath.Join(s.cfg.Output.Directory, filepath.FromSlash(doc.RelPath))
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return berrors.WriteFailed(target, err)
		}
		if err := os.WriteFile(target, doc.Body, 0o640); err != nil {
			return berrors.WriteFailed(target, err)
		}
		slog.Debug("Feed written", logfields.Path(doc.RelPath))
	}
	report.Feeds = len(docs)
	return nil
}

func (s *Service) passStage(stage string, start time.Time, report *Report) {
	d := time.Since(start)
	report.StageDurations[stage] = d
	s.recorder.ObserveStageDuration(stage, d)
	s.recorder.IncStageResult(stage, metrics.ResultSuccess)
}

func (s *Service) failStage(stage string, start time.Time, report *Report) {
	d := time.Since(start)
	report.StageDurations[stage] = d
	s.recorder.ObserveStageDuration(stage, d)
	s.recorder.IncStageResult(stage, metrics.ResultFatal)
}

func (s *Service) cancelStage(stage string, start time.Time, report *Report) {
	d := time.Since(start)
	report.StageDurations[stage] = d
	s.recorder.ObserveStageDuration(stage, d)
	s.recorder.IncStageResult(stage, metrics.ResultCanceled)
}

func listedOnly(posts []*content.Post) []*content.Post {
	out := make([]*content.Post, 0, len(posts))
	for _, p := range posts {
		if p.Listed() {
			out = append(out, p)
		}
	}
	return out
}
