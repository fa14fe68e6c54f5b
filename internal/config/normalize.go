package config

import (
	"path"
	"strings"
)

// NormalizeBasePath forces exactly one leading slash, no trailing slash, and
// no duplicate separators. The root path normalizes to "/".
func NormalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	p = path.Clean("/" + strings.Trim(p, "/"))
	return p
}

// JoinPath joins URL path segments and normalizes the result. Segments that
// are empty or "/" contribute nothing.
func JoinPath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(strings.TrimSpace(s), "/")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return NormalizeBasePath(strings.Join(parts, "/"))
}

// Normalize rewrites all permalink-relevant paths into canonical form and
// applies the site path prefix exactly once to each base path.
func (c *Config) Normalize() {
	prefix := ""
	if c.PathPrefix != "" {
		prefix = NormalizeBasePath(c.PathPrefix)
		if prefix == "/" {
			prefix = ""
		}
		c.PathPrefix = prefix
	}

	c.Blog.RouteBasePath = JoinPath(prefix, c.Blog.RouteBasePath)
	c.Blog.TagsBasePath = JoinPath(prefix, c.Blog.TagsBasePath)
	c.Blog.ArchiveBasePath = JoinPath(prefix, c.Blog.ArchiveBasePath)

	c.Site.BaseURL = strings.TrimRight(strings.TrimSpace(c.Site.BaseURL), "/")
}
