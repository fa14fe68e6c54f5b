package content

import "sort"

// SortPosts orders posts descending by date with a stable tie-break on
// discovery order. This ordering is computed once per build and reused for
// prev/next linkage, listings, and feeds.
func SortPosts(posts []*Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].DiscoveryIndex < posts[j].DiscoveryIndex
	})
}

// LinkAdjacent wires PrevItem/NextItem references along the given (already
// sorted) sequence. The first post has no PrevItem and the last has no
// NextItem; adjacent posts mirror each other.
func LinkAdjacent(posts []*Post) {
	for i, p := range posts {
		if i > 0 {
			p.PrevItem = posts[i-1].Ref()
		}
		if i < len(posts)-1 {
			p.NextItem = posts[i+1].Ref()
		}
	}
}
