package feeds

import (
	"encoding/json"
	"time"

	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/content"
)

// JSON Feed 1.1 (https://jsonfeed.org/version/1.1).

type jsonFeed struct {
	Version     string         `json:"version"`
	Title       string         `json:"title"`
	HomePageURL string         `json:"home_page_url,omitempty"`
	FeedURL     string         `json:"feed_url,omitempty"`
	Description string         `json:"description,omitempty"`
	Language    string         `json:"language,omitempty"`
	Items       []jsonFeedItem `json:"items"`
}

type jsonFeedItem struct {
	ID            string           `json:"id"`
	URL           string           `json:"url"`
	Title         string           `json:"title"`
	Summary       string           `json:"summary,omitempty"`
	DatePublished string           `json:"date_published"`
	Tags          []string         `json:"tags,omitempty"`
	Authors       []jsonFeedAuthor `json:"authors,omitempty"`
}

type jsonFeedAuthor struct {
	Name   string `json:"name"`
	URL    string `json:"url,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

func buildJSONFeed(posts []*content.Post, meta SiteMeta) ([]byte, error) {
	feed := jsonFeed{
		Version:     "https://jsonfeed.org/version/1.1",
		Title:       meta.Title,
		HomePageURL: absoluteURL(meta, meta.BasePath),
		FeedURL:     absoluteURL(meta, meta.BasePath) + "/feed.json",
		Description: meta.Description,
		Language:    meta.Language,
		Items:       []jsonFeedItem{},
	}

	for _, p := range posts {
		item := jsonFeedItem{
			ID:            absoluteURL(meta, p.Permalink),
			URL:           absoluteURL(meta, p.Permalink),
			Title:         p.Title,
			Summary:       summary(p),
			DatePublished: p.Date.Format(time.RFC3339),
		}
		for _, tag := range p.Tags {
			item.Tags = append(item.Tags, tag.Label)
		}
		for _, author := range p.Authors {
			item.Authors = append(item.Authors, jsonFeedAuthor{Name: author.Name, URL: author.URL, Avatar: author.ImageURL})
		}
		feed.Items = append(feed.Items, item)
	}

	body, err := json.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, berrors.FeedFailed(string(FormatJSON), err)
	}
	return body, nil
}
