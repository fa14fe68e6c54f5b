// Package config defines the blogbuilder configuration surface. A Config is
// constructed once at build start (Load → ApplyDefaults → Normalize →
// Validate) and treated as immutable afterwards; components receive it by
// pointer and never mutate it.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// Config is the root configuration.
type Config struct {
	ContentDir string   `yaml:"content_dir"`
	Include    []string `yaml:"include,omitempty"`
	Exclude    []string `yaml:"exclude,omitempty"`

	// PathPrefix is the site/locale base prefix, applied exactly once to
	// every generated permalink.
	PathPrefix string `yaml:"path_prefix,omitempty"`

	Site      SiteConfig      `yaml:"site"`
	Blog      BlogConfig      `yaml:"blog"`
	Authors   AuthorsConfig   `yaml:"authors,omitempty"`
	Feeds     FeedConfig      `yaml:"feeds,omitempty"`
	Output    OutputConfig    `yaml:"output,omitempty"`
	Reporting ReportingConfig `yaml:"reporting,omitempty"`
}

// SiteConfig carries site-wide metadata used by feeds and artifacts.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
	Language    string `yaml:"language,omitempty"`
	Copyright   string `yaml:"copyright,omitempty"`
}

// BlogConfig controls metadata derivation and listing layout.
type BlogConfig struct {
	// PostsPerPage is the listing page size. The YAML value `all` puts every
	// post on a single page.
	PostsPerPage PageSize `yaml:"posts_per_page,omitempty"`

	RouteBasePath   string `yaml:"route_base_path,omitempty"`
	TagsBasePath    string `yaml:"tags_base_path,omitempty"`
	ArchiveBasePath string `yaml:"archive_base_path,omitempty"`

	// PermalinkPattern expands :year, :month, :day, and :slug tokens under
	// the route base path.
	PermalinkPattern string `yaml:"permalink_pattern,omitempty"`

	TruncateMarker string `yaml:"truncate_marker,omitempty"`

	// DateFromFileTime enables the last-resort file modification time when
	// neither front matter nor the filename carries a date.
	DateFromFileTime bool `yaml:"date_from_file_time,omitempty"`

	ReadingWordsPerMinute int `yaml:"reading_words_per_minute,omitempty"`
}

// AuthorsConfig points at the authors map and the fallback author list.
type AuthorsConfig struct {
	MapPath  string   `yaml:"map_path,omitempty"`
	Defaults []string `yaml:"defaults,omitempty"`
}

// FeedConfig selects syndication formats. An empty format list disables feeds.
type FeedConfig struct {
	Formats []string `yaml:"formats,omitempty"` // rss, atom, json
	Limit   int      `yaml:"limit,omitempty"`   // 0 = all posts
}

// OutputConfig controls where generated data lands.
type OutputConfig struct {
	Directory     string `yaml:"directory,omitempty"`
	BaseDirectory string `yaml:"base_directory,omitempty"`
	Clean         bool   `yaml:"clean,omitempty"`
	// DataDir is the generated-data area under Directory holding the route
	// table and content-addressed artifacts.
	DataDir string `yaml:"data_dir,omitempty"`
	// CachePath locates the incremental artifact cache database. Empty
	// disables caching even with --incremental.
	CachePath string `yaml:"cache_path,omitempty"`
}

// ReportingConfig sets per-issue severity policies.
type ReportingConfig struct {
	OnBrokenLinks     ReportingLevel `yaml:"on_broken_links,omitempty"`
	OnUnknownAuthors  ReportingLevel `yaml:"on_unknown_authors,omitempty"`
	OnDuplicateRoutes ReportingLevel `yaml:"on_duplicate_routes,omitempty"`
}

// PageSize is a positive page size or the all-on-one-page sentinel. The zero
// value means "unset" and is replaced by the default during ApplyDefaults.
type PageSize int

// PageSizeAll puts every post on a single page.
const PageSizeAll PageSize = -1

// UnmarshalYAML accepts an integer or the string `all`.
func (p *PageSize) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil && s == "all" {
		*p = PageSizeAll
		return nil
	}
	var n int
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("posts_per_page must be a positive integer or \"all\"")
	}
	*p = PageSize(n)
	return nil
}

// All reports whether pagination is disabled.
func (p PageSize) All() bool { return p == PageSizeAll }

// Size resolves the effective page size for a listing of total posts.
func (p PageSize) Size(total int) int {
	if p.All() {
		return total
	}
	return int(p)
}

// Load reads, defaults, normalizes, and validates a configuration file.
// Environment variables referenced as ${VAR} in the file are expanded;
// a .env file alongside the process is honored without overriding the
// existing environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // best effort; absence is not an error

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, berrors.ConfigNotFound(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, berrors.Wrap(err, berrors.CategoryConfig, berrors.SeverityFatal, "read configuration file").
			WithContext("path", path)
	}
	return Parse(data)
}

// Parse builds a Config from raw YAML. Split from Load so tests and the init
// command can round-trip configuration without touching disk.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, berrors.Wrap(err, berrors.CategoryConfig, berrors.SeverityFatal, "unmarshal configuration")
	}

	cfg.ApplyDefaults()
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
