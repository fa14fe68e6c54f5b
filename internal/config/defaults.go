package config

// Default values applied to unset fields. Kept in one place so the
// defaults self-check test can enumerate them.
const (
	DefaultRouteBasePath    = "/blog"
	DefaultPermalinkPattern = "/:slug"
	DefaultTruncateMarker   = "<!--truncate-->"
	DefaultPostsPerPage     = 10
	DefaultWordsPerMinute   = 200
	DefaultOutputDirectory  = "./build"
	DefaultDataDir          = "blog-data"
	DefaultFeedLimit        = 20
)

// DefaultInclude matches the content files the pipeline understands.
var DefaultInclude = []string{"**/*.md", "**/*.mdx"}

// DefaultExclude skips partials and hidden files.
var DefaultExclude = []string{"**/_*", "**/.*"}

// ApplyDefaults fills unset fields in place.
func (c *Config) ApplyDefaults() {
	if len(c.Include) == 0 {
		c.Include = append([]string(nil), DefaultInclude...)
	}
	if len(c.Exclude) == 0 {
		c.Exclude = append([]string(nil), DefaultExclude...)
	}

	if c.Blog.PostsPerPage == 0 {
		c.Blog.PostsPerPage = DefaultPostsPerPage
	}
	if c.Blog.RouteBasePath == "" {
		c.Blog.RouteBasePath = DefaultRouteBasePath
	}
	if c.Blog.TagsBasePath == "" {
		c.Blog.TagsBasePath = c.Blog.RouteBasePath + "/tags"
	}
	if c.Blog.ArchiveBasePath == "" {
		// The unfiltered archive lives directly under the route base.
		c.Blog.ArchiveBasePath = c.Blog.RouteBasePath
	}
	if c.Blog.PermalinkPattern == "" {
		c.Blog.PermalinkPattern = DefaultPermalinkPattern
	}
	if c.Blog.TruncateMarker == "" {
		c.Blog.TruncateMarker = DefaultTruncateMarker
	}
	if c.Blog.ReadingWordsPerMinute == 0 {
		c.Blog.ReadingWordsPerMinute = DefaultWordsPerMinute
	}

	if c.Site.Title == "" {
		c.Site.Title = "Blog"
	}
	if c.Site.Language == "" {
		c.Site.Language = "en"
	}

	if c.Feeds.Limit == 0 {
		c.Feeds.Limit = DefaultFeedLimit
	}

	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDirectory
	}
	if c.Output.DataDir == "" {
		c.Output.DataDir = DefaultDataDir
	}

	if c.Reporting.OnBrokenLinks == "" {
		c.Reporting.OnBrokenLinks = LevelWarn
	}
	if c.Reporting.OnUnknownAuthors == "" {
		c.Reporting.OnUnknownAuthors = LevelThrow
	}
	if c.Reporting.OnDuplicateRoutes == "" {
		c.Reporting.OnDuplicateRoutes = LevelThrow
	}
}
