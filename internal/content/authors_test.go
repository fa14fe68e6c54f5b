package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
)

func TestLoadAuthorsMap_EmptyPath(t *testing.T) {
	m, err := LoadAuthorsMap("")
	require.NoError(t, err)
	require.Equal(t, 0, m.Len())
}

func TestLoadAuthorsMap_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`jdoe:
  name: Jo Doe
  title: Maintainer
  url: https://example.com/jo
asmith:
  name: Alex Smith
`), 0o644))

	m, err := LoadAuthorsMap(path)
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())

	authors, issues := m.Resolve("a.md", []frontmatter.AuthorRef{{ID: "jdoe"}})
	require.Empty(t, issues)
	require.Equal(t, "Jo Doe", authors[0].Name)
	require.Equal(t, "Maintainer", authors[0].Title)
}

func TestLoadAuthorsMap_MissingName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authors.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jdoe:\n  title: Maintainer\n"), 0o644))

	_, err := LoadAuthorsMap(path)
	require.Error(t, err)
	require.True(t, berrors.IsCategory(err, berrors.CategoryValidation))
}

func TestLoadAuthorsMap_MissingFile(t *testing.T) {
	_, err := LoadAuthorsMap(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestResolve_MixedInlineAndUnknown(t *testing.T) {
	m := &AuthorsMap{byID: map[string]Author{"jdoe": {ID: "jdoe", Name: "Jo Doe"}}}

	authors, issues := m.Resolve("b.md", []frontmatter.AuthorRef{
		{ID: "jdoe"},
		{Name: "Guest", URL: "https://guest.example"},
		{ID: "ghost"},
	})

	require.Len(t, authors, 2)
	require.Equal(t, "Jo Doe", authors[0].Name)
	require.Equal(t, "Guest", authors[1].Name)
	require.Len(t, issues, 1)
	require.Contains(t, issues[0].Error(), "ghost")
}
