package content

import (
	"bytes"
	"fmt"
	"math"
	"path"
	"regexp"
	"strings"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/blogbuilder/internal/markdown"
	"git.home.luguber.info/inful/blogbuilder/internal/slug"
)

// filenameDate matches the YYYY-MM-DD-slug filename convention.
var filenameDate = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})-(.+)$`)

// Derive resolves one read source document into a Post.
//
// The date priority is front matter, then the filename convention, then the
// file modification time when enabled. Missing titles fall back to a
// slug-derived title. Unknown author ids are returned as policy issues, not
// hard errors; everything else that fails here fails the build.
func Derive(doc *SourceDoc, cfg *config.Config, authors *AuthorsMap, discoveryIndex int) (*Post, []*berrors.BlogError, error) {
	matter := doc.Matter
	relPath := doc.File.RelPath

	base := path.Base(relPath)
	base = strings.TrimSuffix(base, path.Ext(base))

	date, datedSlug, err := resolveDate(doc, cfg, base)
	if err != nil {
		return nil, nil, err
	}

	postSlug := matter.Slug
	if postSlug == "" {
		postSlug = slug.Make(datedSlug)
	}
	if postSlug == "" {
		return nil, nil, berrors.FrontMatterInvalid(relPath, "slug", "derived slug is empty")
	}

	title := matter.Title
	if title == "" {
		title = titleFromSlug(datedSlug)
	}

	refs := matter.Authors
	if len(refs) == 0 {
		for _, id := range cfg.Authors.Defaults {
			refs = append(refs, frontmatter.AuthorRef{ID: id})
		}
	}
	resolved, issues := authors.Resolve(relPath, refs)

	truncateAt := bytes.Index(doc.Body, []byte(cfg.Blog.TruncateMarker))

	wordCount := markdown.WordCount(doc.Body)
	readingTime := 0.0
	if cfg.Blog.ReadingWordsPerMinute > 0 {
		readingTime = math.Round(float64(wordCount)/float64(cfg.Blog.ReadingWordsPerMinute)*100) / 100
	}

	post := &Post{
		ID:             strings.TrimSuffix(relPath, path.Ext(relPath)),
		SourcePath:     relPath,
		AbsPath:        doc.File.AbsPath,
		Title:          title,
		Description:    matter.Description,
		Date:           date,
		Slug:           postSlug,
		Permalink:      expandPermalink(cfg, date, postSlug),
		Draft:          matter.Draft,
		Unlisted:       matter.Unlisted,
		Tags:           matter.Tags,
		Authors:        resolved,
		Body:           doc.Body,
		TruncateOffset: truncateAt,
		WordCount:      wordCount,
		ReadingTime:    readingTime,
		FreeForm:       matter.FreeForm,
		DiscoveryIndex: discoveryIndex,
	}
	return post, issues, nil
}

// resolveDate returns the post date plus the slug candidate left over after
// stripping a filename date prefix.
func resolveDate(doc *SourceDoc, cfg *config.Config, base string) (time.Time, string, error) {
	slugPart := base
	var fileDate time.Time
	if m := filenameDate.FindStringSubmatch(base); m != nil {
		t, err := time.Parse("2006-01-02", fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3]))
		if err != nil {
			return time.Time{}, "", berrors.FrontMatterInvalid(doc.File.RelPath, "date",
				fmt.Sprintf("filename date %s-%s-%s is not a calendar date", m[1], m[2], m[3]))
		}
		fileDate = t
		slugPart = m[4]
	}

	if doc.Matter.HasDate {
		return doc.Matter.Date, slugPart, nil
	}
	if !fileDate.IsZero() {
		return fileDate, slugPart, nil
	}
	if cfg.Blog.DateFromFileTime {
		return doc.File.ModTime, slugPart, nil
	}
	return time.Time{}, "", berrors.FrontMatterInvalid(doc.File.RelPath, "date",
		"no date in front matter or filename, and file time fallback is disabled")
}

// expandPermalink builds the normalized permalink from the configured
// pattern. The route base (already carrying the site prefix) is applied
// exactly once.
func expandPermalink(cfg *config.Config, date time.Time, postSlug string) string {
	r := strings.NewReplacer(
		":year", fmt.Sprintf("%04d", date.Year()),
		":month", fmt.Sprintf("%02d", int(date.Month())),
		":day", fmt.Sprintf("%02d", date.Day()),
		":slug", postSlug,
	)
	return config.JoinPath(cfg.Blog.RouteBasePath, r.Replace(cfg.Blog.PermalinkPattern))
}

// titleFromSlug humanizes a slug candidate into a display title.
func titleFromSlug(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
