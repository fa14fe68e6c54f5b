package content

import (
	"path"
	"strings"

	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/markdown"
)

// CheckInternalLinks verifies that markdown links between posts resolve.
//
// Two styles are checked: relative links to .md/.mdx source files (resolved
// against the content tree) and absolute links to post permalinks. External
// URLs, anchors, and absolute paths outside the known permalink set of this
// plugin are left alone; the surrounding site owns those.
func CheckInternalLinks(posts []*Post) []*berrors.BlogError {
	sources := make(map[string]bool, len(posts))
	permalinks := make(map[string]bool, len(posts))
	for _, p := range posts {
		sources[p.SourcePath] = true
		permalinks[p.Permalink] = true
	}

	var issues []*berrors.BlogError
	for _, p := range posts {
		for _, link := range markdown.ExtractLinks(p.Body) {
			dest := normalizeDestination(link.Destination)
			if dest == "" {
				continue
			}

			if isSourceLink(dest) {
				resolved := dest
				if !strings.HasPrefix(dest, "/") {
					resolved = path.Clean(path.Join(path.Dir(p.SourcePath), dest))
				} else {
					resolved = strings.TrimPrefix(path.Clean(dest), "/")
				}
				if !sources[resolved] {
					issues = append(issues, berrors.BrokenLink(p.SourcePath, link.Destination))
				}
				continue
			}

			if strings.HasPrefix(dest, "/") {
				// Only flag absolute paths that look like post permalinks but
				// point at nothing: same shape as a known permalink prefix.
				if hasPermalinkShape(dest, permalinks) && !permalinks[strings.TrimRight(dest, "/")] {
					issues = append(issues, berrors.BrokenLink(p.SourcePath, link.Destination))
				}
			}
		}
	}
	return issues
}

// normalizeDestination strips anchors and queries and filters out external
// or non-checkable destinations.
func normalizeDestination(dest string) string {
	if dest == "" || strings.HasPrefix(dest, "#") {
		return ""
	}
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") {
		return ""
	}
	if i := strings.IndexAny(dest, "#?"); i >= 0 {
		dest = dest[:i]
	}
	return dest
}

func isSourceLink(dest string) bool {
	ext := path.Ext(dest)
	return ext == ".md" || ext == ".mdx"
}

// hasPermalinkShape reports whether dest shares a directory prefix with any
// known permalink, meaning it targets this plugin's route space.
func hasPermalinkShape(dest string, permalinks map[string]bool) bool {
	destDir := path.Dir(strings.TrimRight(dest, "/"))
	for pl := range permalinks {
		if path.Dir(pl) == destDir {
			return true
		}
	}
	return false
}
