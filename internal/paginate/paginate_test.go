package paginate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/content"
)

func posts(n int) []*content.Post {
	out := make([]*content.Post, n)
	for i := range out {
		out[i] = &content.Post{ID: fmt.Sprintf("p%02d", i), Permalink: fmt.Sprintf("/blog/p%02d", i)}
	}
	return out
}

func TestPaginate_SevenPostsPageSizeFive(t *testing.T) {
	pages := Paginate("/blog", posts(7), 5)

	require.Len(t, pages, 2)
	require.Len(t, pages[0].Items, 5)
	require.Len(t, pages[1].Items, 2)
	require.Equal(t, "/blog", pages[0].Permalink, "page 1 has no suffix")
	require.Equal(t, "/blog/page/2", pages[1].Permalink)
	require.Equal(t, 2, pages[0].Total)
}

func TestPaginate_RoundTripsOrdering(t *testing.T) {
	in := posts(23)
	pages := Paginate("/blog", in, 7)

	var out []*content.Post
	for _, p := range pages {
		out = append(out, p.Items...)
	}
	require.Equal(t, in, out)
}

func TestPaginate_NavigationChain(t *testing.T) {
	pages := Paginate("/blog", posts(12), 5)
	require.Len(t, pages, 3)

	require.Empty(t, pages[0].Prev, "first page has no prev")
	require.Empty(t, pages[len(pages)-1].Next, "last page has no next")

	for i := 0; i < len(pages)-1; i++ {
		require.Equal(t, pages[i+1].Permalink, pages[i].Next)
		require.Equal(t, pages[i].Permalink, pages[i+1].Prev)
	}
	for _, p := range pages {
		require.Equal(t, "/blog", p.First)
		require.Equal(t, "/blog/page/3", p.Last)
	}
}

func TestPaginate_ZeroPosts(t *testing.T) {
	require.Empty(t, Paginate("/blog", nil, 5))
}

func TestPaginate_PageSizeLargerThanTotal(t *testing.T) {
	pages := Paginate("/blog", posts(3), 10)
	require.Len(t, pages, 1)
	require.Len(t, pages[0].Items, 3)
	require.Empty(t, pages[0].Prev)
	require.Empty(t, pages[0].Next)
}

func TestPaginate_AllOnOnePage(t *testing.T) {
	pages := Paginate("/blog", posts(50), 0)
	require.Len(t, pages, 1)
	require.Len(t, pages[0].Items, 50)
}

func TestPermalink(t *testing.T) {
	require.Equal(t, "/blog", Permalink("/blog", 1))
	require.Equal(t, "/blog/page/2", Permalink("/blog", 2))
	require.Equal(t, "/blog/tags/api/page/3", Permalink("/blog/tags/api", 3))
}
