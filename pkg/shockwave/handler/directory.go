package handler

import (
	"os"
	"strings"

	"github.com/aniasse/localhost/pkg/shockwave/errs"
	"github.com/aniasse/localhost/pkg/shockwave/http11"
)

// ListDirectory synthesizes an HTML index of resolvedPath's entries (spec
// §4.4, §8): each entry becomes an `<li>` whose anchor text is the entry's
// basename. Grounded on original_source/src/server/handle.rs's
// serve_directory_contents, including its href construction — a leading
// "/" plus the trimmed filesystem path plus the entry name, not the URL
// path, reproduced here for fidelity (see DESIGN.md).
func ListDirectory(host, resolvedPath string) (*http11.Response, error) {
	trimmed := strings.TrimRight(resolvedPath, "/")

	entries, err := os.ReadDir(trimmed)
	if err != nil {
		return nil, errs.New(404, err)
	}

	var b strings.Builder
	b.WriteString("<html><body><ul>")
	for _, e := range entries {
		name := e.Name()
		b.WriteString(`<li><a href="/`)
		b.WriteString(trimmed)
		b.WriteByte('/')
		b.WriteString(name)
		b.WriteString(`">`)
		b.WriteString(name)
		b.WriteString("</a></li>")
	}
	b.WriteString("</ul></body></html>")

	resp := http11.NewResponse(200)
	resp.Header.Set("Host", host)
	resp.Header.Set("Content-Type", "text/html; charset=utf-8")
	resp.SetBody([]byte(b.String()))
	return resp, nil
}

// IsDir reports whether resolvedPath names an existing directory.
func IsDir(resolvedPath string) bool {
	info, err := os.Stat(resolvedPath)
	return err == nil && info.IsDir()
}
