package handler

import (
	"os"
	"strconv"
	"strings"

	"github.com/aniasse/localhost/pkg/shockwave/errs"
	"github.com/aniasse/localhost/pkg/shockwave/http11"
)

// Post writes the request body to resolvedPath if free, or to a
// collision-avoiding sibling name otherwise: "foo.txt" becomes "foo(0).txt",
// then "foo(1).txt", and so on, never overwriting an existing file (spec
// §4.4, §8's POST name-collision property).
func Post(req *http11.Request, host, resolvedPath string) (*http11.Response, error) {
	target := resolvedPath
	if _, err := os.Stat(target); err == nil {
		target = firstFreeName(resolvedPath)
	} else if !os.IsNotExist(err) {
		return nil, errs.New(500, err)
	}

	if err := os.WriteFile(target, req.Body, 0o644); err != nil {
		return nil, errs.New(500, err)
	}
	return writeResponse(req, host, target)
}

// firstFreeName returns the first of path's "(n)"-suffixed siblings (n =
// 0, 1, 2, …) that does not already exist.
func firstFreeName(path string) string {
	for n := 0; ; n++ {
		candidate := withCounterSuffix(path, n)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// withCounterSuffix inserts "(n)" immediately before the last "." in path's
// final path segment (or at the end, if there is none).
func withCounterSuffix(path string, n int) string {
	dir := ""
	name := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		dir, name = path[:i+1], path[i+1:]
	}

	suffix := "(" + strconv.Itoa(n) + ")"
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return dir + name[:i] + suffix + name[i:]
	}
	return dir + name + suffix
}

// Put overwrites (or creates) resolvedPath with the request body (spec §4.4).
func Put(req *http11.Request, host, resolvedPath string) (*http11.Response, error) {
	if err := os.WriteFile(resolvedPath, req.Body, 0o644); err != nil {
		return nil, errs.New(500, err)
	}
	return writeResponse(req, host, resolvedPath)
}

// Patch requires the target to already exist, then overwrites it (spec
// §4.4); a missing target yields 404.
func Patch(req *http11.Request, host, resolvedPath string) (*http11.Response, error) {
	if _, err := os.Stat(resolvedPath); err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(404, err)
		}
		return nil, errs.New(500, err)
	}
	if err := os.WriteFile(resolvedPath, req.Body, 0o644); err != nil {
		return nil, errs.New(500, err)
	}
	return writeResponse(req, host, resolvedPath)
}

// Delete reads the target (to echo it back in the response body), deletes
// it, and falls back to a recursive directory removal if a plain unlink
// fails (spec §4.4). A missing target yields 404.
func Delete(host, resolvedPath string) (*http11.Response, error) {
	data, err := os.ReadFile(resolvedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(404, err)
		}
		return nil, errs.New(500, err)
	}

	if err := os.Remove(resolvedPath); err != nil {
		if rmErr := os.RemoveAll(resolvedPath); rmErr != nil {
			return nil, errs.New(500, rmErr)
		}
	}

	resp := http11.NewResponse(200)
	resp.Header.Set("Host", host)
	resp.Header.Set("Content-Type", contentTypeFor(resolvedPath))
	resp.SetBody(data)
	return resp, nil
}

// writeResponse builds the common 200 response shape for POST/PUT/PATCH:
// Host, Content-Type by extension, Content-Length, and an echo of the
// written body (spec §4.4's blanket "All 2xx responses include Host,
// Content-Type, and Content-Length" invariant — applied uniformly here,
// unlike the source's unsafe_response helper which omits Host).
func writeResponse(req *http11.Request, host, path string) (*http11.Response, error) {
	resp := http11.NewResponse(200)
	resp.Header.Set("Host", host)
	resp.Header.Set("Content-Type", contentTypeFor(path))
	resp.SetBody(req.Body)
	return resp, nil
}
