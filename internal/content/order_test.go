package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func datedPost(id string, day int, discovery int) *Post {
	return &Post{
		ID:             id,
		Title:          id,
		Permalink:      "/blog/" + id,
		Date:           time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		DiscoveryIndex: discovery,
	}
}

func TestSortPosts_DescendingByDate(t *testing.T) {
	posts := []*Post{datedPost("a", 1, 0), datedPost("b", 3, 1), datedPost("c", 2, 2)}
	SortPosts(posts)
	require.Equal(t, []string{"b", "c", "a"}, []string{posts[0].ID, posts[1].ID, posts[2].ID})
}

func TestSortPosts_TieBreakByDiscoveryOrder(t *testing.T) {
	posts := []*Post{datedPost("late", 1, 5), datedPost("early", 1, 2)}
	SortPosts(posts)
	require.Equal(t, "early", posts[0].ID)
	require.Equal(t, "late", posts[1].ID)
}

func TestLinkAdjacent_MirrorProperty(t *testing.T) {
	posts := []*Post{datedPost("a", 3, 0), datedPost("b", 2, 1), datedPost("c", 1, 2)}
	SortPosts(posts)
	LinkAdjacent(posts)

	require.Nil(t, posts[0].PrevItem)
	require.Nil(t, posts[len(posts)-1].NextItem)

	for i := 0; i < len(posts)-1; i++ {
		require.Equal(t, posts[i+1].Permalink, posts[i].NextItem.Permalink)
		require.Equal(t, posts[i].Permalink, posts[i+1].PrevItem.Permalink)
	}
}

func TestLinkAdjacent_SinglePost(t *testing.T) {
	posts := []*Post{datedPost("only", 1, 0)}
	LinkAdjacent(posts)
	require.Nil(t, posts[0].PrevItem)
	require.Nil(t, posts[0].NextItem)
}
