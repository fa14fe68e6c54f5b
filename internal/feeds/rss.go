package feeds

import (
	"encoding/xml"
	"time"

	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/content"
)

// RSS 2.0 document model, serialized with encoding/xml.

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	Copyright     string    `xml:"copyright,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        string   `xml:"guid"`
	PubDate     string   `xml:"pubDate"`
	Description string   `xml:"description,omitempty"`
	Categories  []string `xml:"category,omitempty"`
}

func buildRSS(posts []*content.Post, meta SiteMeta) ([]byte, error) {
	channel := rssChannel{
		Title:       meta.Title,
		Link:        absoluteURL(meta, meta.BasePath),
		Description: meta.Description,
		Language:    meta.Language,
		Copyright:   meta.Copyright,
	}
	if len(posts) > 0 {
		channel.LastBuildDate = posts[0].Date.Format(time.RFC1123Z)
	}

	for _, p := range posts {
		item := rssItem{
			Title:       p.Title,
			Link:        absoluteURL(meta, p.Permalink),
			GUID:        absoluteURL(meta, p.Permalink),
			PubDate:     p.Date.Format(time.RFC1123Z),
			Description: summary(p),
		}
		for _, tag := range p.Tags {
			item.Categories = append(item.Categories, tag.Label)
		}
		channel.Items = append(channel.Items, item)
	}

	body, err := xml.MarshalIndent(rssDoc{Version: "2.0", Channel: channel}, "", "  ")
	if err != nil {
		return nil, berrors.FeedFailed(string(FormatRSS), err)
	}
	return append([]byte(xml.Header), body...), nil
}
