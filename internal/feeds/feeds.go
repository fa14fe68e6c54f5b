// Package feeds serializes the final post list into syndication documents.
// Building is a pure function of (posts, site metadata, formats): no state,
// idempotent, and a zero-post build yields valid empty feeds.
package feeds

import (
	"path"
	"strings"

	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/content"
	"git.home.luguber.info/inful/blogbuilder/internal/markdown"
)

// Format is a supported syndication format.
type Format string

const (
	FormatRSS  Format = "rss"
	FormatAtom Format = "atom"
	FormatJSON Format = "json"
)

// fileNames maps formats to their fixed relative output names.
var fileNames = map[Format]string{
	FormatRSS:  "rss.xml",
	FormatAtom: "atom.xml",
	FormatJSON: "feed.json",
}

// SiteMeta is the site-wide metadata feeds embed.
type SiteMeta struct {
	Title       string
	Description string
	BaseURL     string // absolute site origin, no trailing slash
	BasePath    string // blog base path, feeds live directly under it
	Language    string
	Copyright   string
}

// Document is one serialized feed at its fixed site-relative path.
type Document struct {
	RelPath string
	Body    []byte
}

// Build serializes posts into one document per requested format. Posts must
// already be in final (descending) order; limit > 0 caps the item count.
func Build(posts []*content.Post, meta SiteMeta, formats []Format, limit int) ([]Document, error) {
	items := listedPosts(posts, limit)

	docs := make([]Document, 0, len(formats))
	for _, format := range formats {
		var body []byte
		var err error
		switch format {
		case FormatRSS:
			body, err = buildRSS(items, meta)
		case FormatAtom:
			body, err = buildAtom(items, meta)
		case FormatJSON:
			body, err = buildJSONFeed(items, meta)
		default:
			return nil, berrors.New(berrors.CategoryFeed, berrors.SeverityFatal, "unsupported feed format").
				WithContext("format", string(format))
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{
			RelPath: path.Join(strings.TrimPrefix(meta.BasePath, "/"), fileNames[format]),
			Body:    body,
		})
	}
	return docs, nil
}

func listedPosts(posts []*content.Post, limit int) []*content.Post {
	items := make([]*content.Post, 0, len(posts))
	for _, p := range posts {
		if !p.Listed() {
			continue
		}
		items = append(items, p)
		if limit > 0 && len(items) == limit {
			break
		}
	}
	return items
}

// absoluteURL joins the site origin with a permalink.
func absoluteURL(meta SiteMeta, permalink string) string {
	return meta.BaseURL + permalink
}

// summary prefers the explicit description and falls back to the plain text
// of the post preview.
func summary(p *content.Post) string {
	if p.Description != "" {
		return p.Description
	}
	return markdown.PlainText(p.Preview())
}
