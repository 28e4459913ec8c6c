// Package handler implements the static-file method handlers (spec §4.4):
// GET/HEAD/OPTIONS/TRACE ("safe") and POST/PUT/PATCH/DELETE ("not safe"),
// plus the directory-handling and default-document logic that runs before
// method dispatch.
package handler

import (
	"path/filepath"
	"strings"

	"github.com/aniasse/localhost/internal/config"
)

// AddRootToPath resolves a request path to a filesystem path of the form
// ".<root_path><uri_path>" (spec §3's add_root_to_path invariant).
func AddRootToPath(route *config.Route, uriPath string) string {
	root := ""
	if route.Settings != nil {
		root = route.Settings.RootPath
	}
	return "." + root + uriPath
}

// escapesRoot reports whether the resolved filesystem path, once cleaned,
// falls outside the working directory — the minimal traversal guard
// spec.md §9's open question invites, applied without changing the literal
// "."+root_path+uri_path join formula itself.
func escapesRoot(resolved string) bool {
	cleaned := filepath.Clean(resolved)
	return cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator))
}
