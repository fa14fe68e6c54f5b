package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func linkedPost(rel, permalink, body string) *Post {
	return &Post{SourcePath: rel, Permalink: permalink, Body: []byte(body)}
}

func TestCheckInternalLinks_RelativeSourceLinkResolves(t *testing.T) {
	posts := []*Post{
		linkedPost("2024-01-01-a.md", "/blog/a", "See [b](./2024-01-02-b.md).\n"),
		linkedPost("2024-01-02-b.md", "/blog/b", "no links\n"),
	}
	require.Empty(t, CheckInternalLinks(posts))
}

func TestCheckInternalLinks_BrokenRelativeSourceLink(t *testing.T) {
	posts := []*Post{linkedPost("2024-01-01-a.md", "/blog/a", "See [b](./missing.md).\n")}

	issues := CheckInternalLinks(posts)
	require.Len(t, issues, 1)
	require.Contains(t, issues[0].Error(), "missing.md")
	require.Contains(t, issues[0].Error(), "2024-01-01-a.md")
}

func TestCheckInternalLinks_SubdirectoryResolution(t *testing.T) {
	posts := []*Post{
		linkedPost("sub/2024-01-01-a.md", "/blog/a", "Up to [b](../2024-01-02-b.md).\n"),
		linkedPost("2024-01-02-b.md", "/blog/b", "down to [a](sub/2024-01-01-a.md)\n"),
	}
	require.Empty(t, CheckInternalLinks(posts))
}

func TestCheckInternalLinks_AbsolutePermalink(t *testing.T) {
	posts := []*Post{
		linkedPost("a.md", "/blog/a", "See [b](/blog/b) and [gone](/blog/gone).\n"),
		linkedPost("b.md", "/blog/b", "ok\n"),
	}

	issues := CheckInternalLinks(posts)
	require.Len(t, issues, 1)
	require.Contains(t, issues[0].Error(), "/blog/gone")
}

func TestCheckInternalLinks_IgnoresExternalAndAnchors(t *testing.T) {
	posts := []*Post{linkedPost("a.md", "/blog/a",
		"[x](https://example.com/missing.md) [y](#section) [z](mailto:a@b.c) [w](/docs/elsewhere)\n")}
	require.Empty(t, CheckInternalLinks(posts))
}

func TestCheckInternalLinks_AnchorsAndQueriesStripped(t *testing.T) {
	posts := []*Post{
		linkedPost("a.md", "/blog/a", "See [b](./b.md#section).\n"),
		linkedPost("b.md", "/blog/b", "ok\n"),
	}
	require.Empty(t, CheckInternalLinks(posts))
}
