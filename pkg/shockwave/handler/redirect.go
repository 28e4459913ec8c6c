package handler

import "github.com/aniasse/localhost/pkg/shockwave/http11"

// Redirect synthesizes the 3xx response for a matched redirect source
// (spec §4.3): status defaults to 307 unless the route configures
// redirect_status_code, and the Location header names the route's url_path.
func Redirect(status int, host, location string) *http11.Response {
	resp := http11.NewResponse(status)
	resp.Header.Set("Host", host)
	resp.Header.Set("Location", location)
	resp.Header.Set("Content-Length", "0")
	return resp
}
