// Package content discovers blog source files and derives the fully resolved
// Post metadata the rest of the pipeline consumes. Posts are immutable after
// derivation; their lifetime is one build.
package content

import (
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
)

// Author is a resolved post author.
type Author struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Title    string `json:"title,omitempty"`
	URL      string `json:"url,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Email    string `json:"email,omitempty"`
}

// PostRef links to an adjacent post by title and permalink only, keeping
// serialized posts free of deep duplication.
type PostRef struct {
	Title     string `json:"title"`
	Permalink string `json:"permalink"`
}

// Post is one fully derived content entry.
type Post struct {
	ID         string // relative source path without extension
	SourcePath string // path relative to the content directory
	AbsPath    string

	Title       string
	Description string
	Date        time.Time
	Slug        string
	Permalink   string

	Draft    bool
	Unlisted bool

	Tags    []frontmatter.TagRef
	Authors []Author

	Body []byte

	// TruncateOffset is the byte offset of the truncation marker in Body,
	// or -1 when the post has no preview boundary.
	TruncateOffset int
	WordCount      int
	ReadingTime    float64 // minutes

	FreeForm map[string]any

	// DiscoveryIndex is the position in deterministic discovery order,
	// used as the stable sort tie-break.
	DiscoveryIndex int

	PrevItem *PostRef
	NextItem *PostRef
}

// Ref returns the lightweight adjacent-post link for this post.
func (p *Post) Ref() *PostRef {
	return &PostRef{Title: p.Title, Permalink: p.Permalink}
}

// Preview returns the body up to the truncation marker, or the whole body
// when no marker is present.
func (p *Post) Preview() []byte {
	if p.TruncateOffset < 0 {
		return p.Body
	}
	return p.Body[:p.TruncateOffset]
}

// Listed reports whether the post appears in listings and feeds.
func (p *Post) Listed() bool {
	return !p.Draft && !p.Unlisted
}
