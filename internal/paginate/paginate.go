// Package paginate splits an ordered post sequence into fixed-size listing
// pages with stable permalinks and first/prev/next/last navigation.
package paginate

import (
	"fmt"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/content"
)

// Page is one pagination unit. Index is 1-based; page 1 carries the bare base
// permalink and page k>1 lives at <base>/page/<k>.
type Page struct {
	Index     int
	Total     int
	Permalink string

	Items []*content.Post

	// Navigation permalinks; empty when the target does not exist.
	First string
	Prev  string
	Next  string
	Last  string
}

// Paginate splits posts (already sorted) into pages of at most perPage items.
// perPage <= 0 puts everything on one page. Zero posts yield zero pages.
func Paginate(base string, posts []*content.Post, perPage int) []Page {
	if len(posts) == 0 {
		return nil
	}
	if perPage <= 0 || perPage > len(posts) {
		perPage = len(posts)
	}

	total := (len(posts) + perPage - 1) / perPage
	pages := make([]Page, 0, total)
	for i := 0; i < total; i++ {
		lo := i * perPage
		hi := lo + perPage
		if hi > len(posts) {
			hi = len(posts)
		}
		pages = append(pages, Page{
			Index:     i + 1,
			Total:     total,
			Permalink: Permalink(base, i+1),
			Items:     posts[lo:hi],
		})
	}

	for i := range pages {
		pages[i].First = pages[0].Permalink
		pages[i].Last = pages[total-1].Permalink
		if i > 0 {
			pages[i].Prev = pages[i-1].Permalink
		}
		if i < total-1 {
			pages[i].Next = pages[i+1].Permalink
		}
	}
	return pages
}

// Permalink returns the canonical permalink of page number on base.
func Permalink(base string, number int) string {
	if number <= 1 {
		return config.NormalizeBasePath(base)
	}
	return config.JoinPath(base, "page", fmt.Sprintf("%d", number))
}
