package routes

import (
	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// CheckDuplicates scans a route set for path collisions. Every collision
// after the first occurrence of a path yields one DuplicateRouteError; the
// reporting policy decides their fate.
func CheckDuplicates(routeList []Route) []*berrors.BlogError {
	seen := make(map[string]Route, len(routeList))
	var issues []*berrors.BlogError
	for _, r := range routeList {
		if first, ok := seen[r.Path]; ok {
			issues = append(issues, berrors.DuplicateRoute(r.Path, first.Component, r.Component))
			continue
		}
		seen[r.Path] = r
	}
	return issues
}
