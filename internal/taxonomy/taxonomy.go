// Package taxonomy groups posts by normalized tag key and paginates each
// tag's listing.
package taxonomy

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/content"
	"git.home.luguber.info/inful/blogbuilder/internal/paginate"
	"git.home.luguber.info/inful/blogbuilder/internal/slug"
)

// Tag is one aggregated tag with its ordered member posts and listing pages.
type Tag struct {
	// Label is the display form, taken from the first-discovered spelling.
	Label string
	// Key is the normalized identity used for grouping and emission order.
	Key       string
	Permalink string
	Posts     []*content.Post
	Pages     []paginate.Page
}

// NormalizeKey folds case and collapses whitespace so visually identical
// labels group together. Idempotent: NormalizeKey(NormalizeKey(s)) ==
// NormalizeKey(s).
func NormalizeKey(label string) string {
	return slug.Fold(strings.Join(strings.Fields(label), " "))
}

// Aggregate groups the listed posts of the (already sorted) sequence by
// normalized tag key and paginates each tag independently. The returned
// slice is sorted by key so route emission is deterministic across builds.
func Aggregate(posts []*content.Post, cfg *config.Config) []*Tag {
	byKey := make(map[string]*Tag)
	var keys []string

	for _, p := range posts {
		if !p.Listed() {
			continue
		}
		seen := make(map[string]bool, len(p.Tags))
		for _, ref := range p.Tags {
			key := NormalizeKey(ref.Label)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			tag, ok := byKey[key]
			if !ok {
				permalink := ref.Permalink
				if permalink == "" {
					permalink = config.JoinPath(cfg.Blog.TagsBasePath, slug.Make(ref.Label))
				} else {
					permalink = config.NormalizeBasePath(permalink)
				}
				tag = &Tag{Label: ref.Label, Key: key, Permalink: permalink}
				byKey[key] = tag
				keys = append(keys, key)
			}
			tag.Posts = append(tag.Posts, p)
		}
	}

	sort.Strings(keys)
	tags := make([]*Tag, 0, len(keys))
	for _, key := range keys {
		tag := byKey[key]
		tag.Pages = paginate.Paginate(tag.Permalink, tag.Posts, cfg.Blog.PostsPerPage.Size(len(tag.Posts)))
		tags = append(tags, tag)
	}
	return tags
}
