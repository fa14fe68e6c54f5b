package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLinks_InlineImageAndAuto(t *testing.T) {
	body := []byte(`See [the docs](/blog/2024/03/01/hello) and ![diagram](./diagram.png).

Visit <https://example.com> too.
`)

	links := ExtractLinks(body)

	dests := make(map[LinkKind][]string)
	for _, l := range links {
		dests[l.Kind] = append(dests[l.Kind], l.Destination)
	}
	require.Equal(t, []string{"/blog/2024/03/01/hello"}, dests[LinkKindInline])
	require.Equal(t, []string{"./diagram.png"}, dests[LinkKindImage])
	require.Equal(t, []string{"https://example.com"}, dests[LinkKindAuto])
}

func TestExtractLinks_ReferenceDefinitions(t *testing.T) {
	body := []byte("Read [more][ref].\n\n[ref]: /blog/other-post\n")

	links := ExtractLinks(body)

	var found bool
	for _, l := range links {
		if l.Kind == LinkKindReferenceDefinition && l.Destination == "/blog/other-post" {
			found = true
		}
	}
	require.True(t, found, "reference definition should be extracted, got %v", links)
}

func TestPlainText_DropsMarkup(t *testing.T) {
	body := []byte("# Heading\n\nSome *emphasis* and a [link](/target).\n")
	require.Equal(t, "Heading Some emphasis and a link.", PlainText(body))
}

func TestPlainText_SoftBreaksBecomeSpaces(t *testing.T) {
	body := []byte("line one\nline two\n")
	require.Equal(t, "line one line two", PlainText(body))
}

func TestWordCount(t *testing.T) {
	body := []byte("# Title\n\nOne two three four.\n\n```go\nfunc main() {}\n```\n")
	// Heading words plus body words plus code tokens.
	require.Equal(t, 1+4+3, WordCount(body))
}

func TestWordCount_Empty(t *testing.T) {
	require.Equal(t, 0, WordCount(nil))
}
