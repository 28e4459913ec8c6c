package handler

import (
	"strings"

	"github.com/aniasse/localhost/internal/config"
	"github.com/aniasse/localhost/pkg/shockwave/errs"
	"github.com/aniasse/localhost/pkg/shockwave/http11"
)

// Dispatch resolves req against route's filesystem root and runs the
// directory pre-dispatch logic (spec §4.4) before handing off to the
// method-specific handler. Route.Handler, when set, bypasses all of this
// (spec §3's "opaque function reference... bypasses default file
// handling").
func Dispatch(req *http11.Request, cfg *config.ServerConfig, route *config.Route) (*http11.Response, error) {
	if route.Handler != nil {
		return route.Handler.Handle(req, cfg)
	}

	resolved := AddRootToPath(route, req.Path)
	if escapesRoot(resolved) {
		return nil, errs.New(404, nil)
	}

	if resp, handled, err := dispatchDirectory(req, cfg, route, resolved); handled {
		return resp, err
	}

	return dispatchMethod(req, cfg.Host, resolved, route)
}

// dispatchDirectory implements spec §4.4's directory pre-dispatch branch.
// handled is true when the directory logic fully answered the request
// (default-document replay, listing, or a listing-disabled 404) and the
// caller must not fall through to method dispatch.
func dispatchDirectory(req *http11.Request, cfg *config.ServerConfig, route *config.Route, resolved string) (*http11.Response, bool, error) {
	settings := route.Settings

	if settings != nil && settings.DefaultIfRequestIsDir != "" && req.Path == route.URLPath+"/" {
		resp, err := replayAsDefaultDocument(req, cfg, route, settings.DefaultIfRequestIsDir)
		return resp, true, err
	}

	if !IsDir(resolved) {
		return nil, false, nil
	}
	if settings == nil {
		return nil, false, nil
	}

	if settings.DefaultIfURLIsDir != "" {
		resp, err := replayAsDefaultDocument(req, cfg, route, settings.DefaultIfURLIsDir)
		return resp, true, err
	}

	if settings.ListDirectory {
		resp, err := ListDirectory(cfg.Host, resolved)
		return resp, true, err
	}

	return nil, true, errs.New(404, nil)
}

// replayAsDefaultDocument rewrites req's path to the route's default file
// and serves it with GET, regardless of the original request's method —
// matching original_source/src/server/handle.rs, which re-enters parsing
// against the rewritten head and always calls the GET handler directly
// rather than re-running full method dispatch (spec §C.1/§C.2).
func replayAsDefaultDocument(req *http11.Request, cfg *config.ServerConfig, route *config.Route, defaultFile string) (*http11.Response, error) {
	rewritten := *req
	rewritten.Path = route.URLPath + "/" + strings.TrimPrefix(defaultFile, "/")

	resolved := AddRootToPath(route, rewritten.Path)
	if escapesRoot(resolved) {
		return nil, errs.New(404, nil)
	}
	return Get(&rewritten, cfg.Host, resolved)
}

// dispatchMethod is spec §4.4's method table, realized as a switch on the
// parsed method ID.
func dispatchMethod(req *http11.Request, host, resolved string, route *config.Route) (*http11.Response, error) {
	switch req.MethodID {
	case http11.MethodGET:
		return Get(req, host, resolved)
	case http11.MethodHEAD:
		return Head(req, host, resolved)
	case http11.MethodOPTIONS:
		return Options(host, route)
	case http11.MethodTRACE:
		return Trace(req, host)
	case http11.MethodPOST:
		return Post(req, host, resolved)
	case http11.MethodPUT:
		return Put(req, host, resolved)
	case http11.MethodPATCH:
		return Patch(req, host, resolved)
	case http11.MethodDELETE:
		return Delete(host, resolved)
	default:
		return nil, errs.New(501, nil)
	}
}
