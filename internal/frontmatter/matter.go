package frontmatter

import (
	"fmt"
	"time"

	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// TagRef is a tag as declared in front matter: either a bare label or an
// object carrying an explicit permalink override.
type TagRef struct {
	Label     string
	Permalink string
}

// AuthorRef is an author declaration: a registry id, or an inline author for
// one-off guest posts.
type AuthorRef struct {
	ID       string
	Name     string
	Title    string
	URL      string
	ImageURL string
	Email    string
}

// Inline reports whether the reference declares the author in place rather
// than pointing into the authors map.
func (a AuthorRef) Inline() bool { return a.ID == "" }

// Matter is the validated, typed front matter record for one content file.
//
// Typed keys must match their declared schema or decoding fails with a
// ValidationError; unrecognized keys pass through in FreeForm untouched so
// themes can carry their own parameters.
type Matter struct {
	Title       string
	Description string
	Date        time.Time
	HasDate     bool
	Slug        string
	Draft       bool
	Unlisted    bool
	Tags        []TagRef
	Authors     []AuthorRef
	FreeForm    map[string]any
}

// dateLayouts are accepted front matter date formats, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Decode validates raw front matter YAML against the schema and produces a
// typed Matter. path is used only for error context.
func Decode(path string, raw []byte) (*Matter, error) {
	fields, err := ParseMap(raw)
	if err != nil {
		return nil, berrors.FrontMatterInvalid(path, "", err.Error())
	}

	m := &Matter{FreeForm: map[string]any{}}
	for key, value := range fields {
		switch key {
		case "title":
			m.Title, err = decodeString(path, key, value)
		case "description":
			m.Description, err = decodeString(path, key, value)
		case "slug":
			m.Slug, err = decodeString(path, key, value)
		case "draft":
			m.Draft, err = decodeBool(path, key, value)
		case "unlisted":
			m.Unlisted, err = decodeBool(path, key, value)
		case "date":
			m.Date, err = decodeDate(path, key, value)
			m.HasDate = err == nil
		case "tags":
			m.Tags, err = decodeTags(path, value)
		case "authors", "author":
			m.Authors, err = decodeAuthors(path, key, value)
		default:
			m.FreeForm[key] = value
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func decodeString(path, field string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", berrors.FrontMatterInvalid(path, field, fmt.Sprintf("expected string, got %T", value))
	}
	return s, nil
}

func decodeBool(path, field string, value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, berrors.FrontMatterInvalid(path, field, fmt.Sprintf("expected bool, got %T", value))
	}
	return b, nil
}

func decodeDate(path, field string, value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		// yaml.v3 parses ISO timestamps natively.
		return v, nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, berrors.FrontMatterInvalid(path, field, fmt.Sprintf("unparseable date %q", v))
	default:
		return time.Time{}, berrors.FrontMatterInvalid(path, field, fmt.Sprintf("expected date, got %T", value))
	}
}

// decodeTags accepts a list of strings or {label, permalink} objects.
// Anything else fails closed.
func decodeTags(path string, value any) ([]TagRef, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, berrors.FrontMatterInvalid(path, "tags", fmt.Sprintf("expected list, got %T", value))
	}
	tags := make([]TagRef, 0, len(list))
	for i, item := range list {
		switch v := item.(type) {
		case string:
			tags = append(tags, TagRef{Label: v})
		case map[string]any:
			tag := TagRef{}
			for k, raw := range v {
				s, ok := raw.(string)
				if !ok {
					return nil, berrors.FrontMatterInvalid(path, "tags", fmt.Sprintf("tag %d: %s must be a string", i, k))
				}
				switch k {
				case "label":
					tag.Label = s
				case "permalink":
					tag.Permalink = s
				default:
					return nil, berrors.FrontMatterInvalid(path, "tags", fmt.Sprintf("tag %d: unknown key %q", i, k))
				}
			}
			if tag.Label == "" {
				return nil, berrors.FrontMatterInvalid(path, "tags", fmt.Sprintf("tag %d: missing label", i))
			}
			tags = append(tags, tag)
		default:
			return nil, berrors.FrontMatterInvalid(path, "tags", fmt.Sprintf("tag %d: expected string or object, got %T", i, item))
		}
	}
	return tags, nil
}

// decodeAuthors accepts a single id, a single inline object, or a list of
// either.
func decodeAuthors(path, field string, value any) ([]AuthorRef, error) {
	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	default:
		items = []any{v}
	}

	authors := make([]AuthorRef, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case string:
			authors = append(authors, AuthorRef{ID: v})
		case map[string]any:
			ref := AuthorRef{}
			for k, raw := range v {
				s, ok := raw.(string)
				if !ok {
					return nil, berrors.FrontMatterInvalid(path, field, fmt.Sprintf("author %d: %s must be a string", i, k))
				}
				switch k {
				case "id", "key":
					ref.ID = s
				case "name":
					ref.Name = s
				case "title":
					ref.Title = s
				case "url":
					ref.URL = s
				case "image_url":
					ref.ImageURL = s
				case "email":
					ref.Email = s
				default:
					return nil, berrors.FrontMatterInvalid(path, field, fmt.Sprintf("author %d: unknown key %q", i, k))
				}
			}
			if ref.ID == "" && ref.Name == "" {
				return nil, berrors.FrontMatterInvalid(path, field, fmt.Sprintf("author %d: needs an id or a name", i))
			}
			authors = append(authors, ref)
		default:
			return nil, berrors.FrontMatterInvalid(path, field, fmt.Sprintf("author %d: expected string or object, got %T", i, item))
		}
	}
	return authors, nil
}
