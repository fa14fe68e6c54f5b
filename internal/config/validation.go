package config

import (
	"fmt"
	"strings"

	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// validFeedFormats enumerates supported syndication formats.
var validFeedFormats = map[string]bool{"rss": true, "atom": true, "json": true}

// permalinkTokens enumerates the tokens PermalinkPattern may use.
var permalinkTokens = map[string]bool{":year": true, ":month": true, ":day": true, ":slug": true}

// Validate checks structural configuration invariants. Violations are always
// fatal; nothing here is subject to a reporting level.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return berrors.ConfigInvalid("content_dir", "content directory is required")
	}

	if c.Blog.PostsPerPage < PageSizeAll {
		return berrors.ConfigInvalid("blog.posts_per_page",
			fmt.Sprintf("page size must be positive or \"all\", got %d", c.Blog.PostsPerPage))
	}

	if c.Blog.TagsBasePath == c.Blog.ArchiveBasePath {
		return berrors.ConfigInvalid("blog.tags_base_path",
			"tag and archive base paths must differ, both are "+c.Blog.TagsBasePath)
	}

	if c.Blog.ReadingWordsPerMinute < 0 {
		return berrors.ConfigInvalid("blog.reading_words_per_minute", "must be positive")
	}

	if err := validatePermalinkPattern(c.Blog.PermalinkPattern); err != nil {
		return err
	}

	for _, f := range c.Feeds.Formats {
		if !validFeedFormats[f] {
			return berrors.ConfigInvalid("feeds.formats", "unsupported format "+f)
		}
	}
	if len(c.Feeds.Formats) > 0 && c.Site.BaseURL == "" {
		return berrors.ConfigInvalid("site.base_url", "required when feeds are enabled")
	}
	if c.Feeds.Limit < 0 {
		return berrors.ConfigInvalid("feeds.limit", "must not be negative")
	}

	levels := []struct {
		field string
		level ReportingLevel
	}{
		{"reporting.on_broken_links", c.Reporting.OnBrokenLinks},
		{"reporting.on_unknown_authors", c.Reporting.OnUnknownAuthors},
		{"reporting.on_duplicate_routes", c.Reporting.OnDuplicateRoutes},
	}
	for _, l := range levels {
		if !l.level.Valid() {
			return berrors.ConfigInvalid(l.field, "unknown reporting level "+string(l.level))
		}
	}

	return nil
}

func validatePermalinkPattern(pattern string) error {
	for _, part := range strings.Split(pattern, "/") {
		if strings.HasPrefix(part, ":") && !permalinkTokens[part] {
			return berrors.ConfigInvalid("blog.permalink_pattern", "unknown token "+part)
		}
	}
	return nil
}
