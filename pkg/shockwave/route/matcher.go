// Package route implements the route matcher (spec §4.3): exact match,
// redirect-source match, longest-prefix match, in that precedence order,
// followed by method authorization.
package route

import (
	"strings"

	"github.com/aniasse/localhost/internal/config"
	"github.com/aniasse/localhost/pkg/shockwave/errs"
)

// Match is the outcome of matching a request path against the route
// table: either a selected route, or that same route plus a pending
// redirect target.
type Match struct {
	Route          *config.Route
	RedirectTo     string // non-empty when a redirect must be synthesized
	RedirectStatus int
}

// Find selects a route for path per spec §4.3's precedence: exact match,
// then redirect source, then longest prefix. Returns a *errs.Status
// wrapping 404 when nothing matches.
func Find(path string, routes []config.Route) (*Match, error) {
	for i := range routes {
		if routes[i].URLPath == path {
			return &Match{Route: &routes[i]}, nil
		}
	}

	for i := range routes {
		r := &routes[i]
		if r.Settings == nil {
			continue
		}
		for _, redirectSrc := range r.Settings.HTTPRedirections {
			if redirectSrc == path {
				return &Match{
					Route:          r,
					RedirectTo:     r.URLPath,
					RedirectStatus: r.Settings.RedirectStatus(),
				}, nil
			}
		}
	}

	bestIdx := -1
	bestLen := -1
	for i := range routes {
		r := &routes[i]
		if !strings.HasPrefix(path, r.URLPath) {
			continue
		}
		if len(r.URLPath) > bestLen {
			bestLen = len(r.URLPath)
			bestIdx = i
		}
	}
	if bestIdx >= 0 {
		return &Match{Route: &routes[bestIdx]}, nil
	}

	return nil, errs.New(404, nil)
}

// CheckMethod enforces spec §4.3's method authorization: a request whose
// method is not in the matched route's set yields 405 with Allow.
func CheckMethod(route *config.Route, method string) error {
	if route.AllowsMethod(method) {
		return nil
	}
	return errs.New(405, nil)
}
