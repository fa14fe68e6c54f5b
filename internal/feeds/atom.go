package feeds

import (
	"time"

	atom "github.com/thomas11/atomgenerator"

	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/content"
)

func buildAtom(posts []*content.Post, meta SiteMeta) ([]byte, error) {
	feed := atom.Feed{
		Title:   meta.Title,
		Link:    absoluteURL(meta, meta.BasePath),
		PubDate: feedUpdated(posts),
	}

	for _, p := range posts {
		entry := &atom.Entry{
			Title:       p.Title,
			Link:        absoluteURL(meta, p.Permalink),
			PubDate:     p.Date,
			Description: summary(p),
		}
		for _, author := range p.Authors {
			entry.AddAuthor(atom.Author{Name: author.Name, Uri: author.URL, Email: author.Email})
		}
		for _, tag := range p.Tags {
			entry.AddCategory(atom.Category{Term: tag.Label})
		}
		feed.AddEntry(entry)
	}

	body, err := feed.GenXml()
	if err != nil {
		return nil, berrors.FeedFailed(string(FormatAtom), err)
	}
	return body, nil
}

// feedUpdated is the feed-level timestamp: the newest post date, or the zero
// of an empty feed left to the serializer.
func feedUpdated(posts []*content.Post) time.Time {
	if len(posts) == 0 {
		return time.Time{}
	}
	return posts[0].Date
}
