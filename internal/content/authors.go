package content

import (
	"os"

	"gopkg.in/yaml.v3"

	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
)

// AuthorsMap resolves author ids declared in front matter to full author
// records. Loaded once per build from an optional YAML file.
type AuthorsMap struct {
	byID map[string]Author
}

type authorsFileEntry struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title,omitempty"`
	URL      string `yaml:"url,omitempty"`
	ImageURL string `yaml:"image_url,omitempty"`
	Email    string `yaml:"email,omitempty"`
}

// LoadAuthorsMap reads the authors map file. An empty path yields an empty
// map; a missing or malformed file is fatal.
func LoadAuthorsMap(path string) (*AuthorsMap, error) {
	m := &AuthorsMap{byID: map[string]Author{}}
	if path == "" {
		return m, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, berrors.ReadFailed(path, err)
	}

	var entries map[string]authorsFileEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, berrors.Wrap(err, berrors.CategoryValidation, berrors.SeverityFatal, "malformed authors map").
			WithContext("path", path)
	}

	for id, e := range entries {
		if e.Name == "" {
			return nil, berrors.New(berrors.CategoryValidation, berrors.SeverityFatal, "authors map entry missing name").
				WithContext("path", path).
				WithContext("author", id)
		}
		m.byID[id] = Author{ID: id, Name: e.Name, Title: e.Title, URL: e.URL, ImageURL: e.ImageURL, Email: e.Email}
	}
	return m, nil
}

// Len returns the number of registered authors.
func (m *AuthorsMap) Len() int { return len(m.byID) }

// Resolve maps front matter author references to full records. Unknown ids
// are returned as ReferenceErrors for the reporting policy to dispose of;
// the offending reference is dropped from the result.
func (m *AuthorsMap) Resolve(sourcePath string, refs []frontmatter.AuthorRef) ([]Author, []*berrors.BlogError) {
	authors := make([]Author, 0, len(refs))
	var issues []*berrors.BlogError

	for _, ref := range refs {
		if ref.Inline() {
			authors = append(authors, Author{
				Name:     ref.Name,
				Title:    ref.Title,
				URL:      ref.URL,
				ImageURL: ref.ImageURL,
				Email:    ref.Email,
			})
			continue
		}
		author, ok := m.byID[ref.ID]
		if !ok {
			issues = append(issues, berrors.UnknownAuthor(sourcePath, ref.ID))
			continue
		}
		authors = append(authors, author)
	}
	return authors, issues
}
