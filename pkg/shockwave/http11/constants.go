// Package http11 implements HTTP/1.1 message parsing, header storage and
// response formatting for the localhost origin server.
package http11

// HTTP Method IDs for O(1) switching.
const (
	MethodUnknown uint8 = 0
	MethodGET     uint8 = 1
	MethodPOST    uint8 = 2
	MethodPUT     uint8 = 3
	MethodDELETE  uint8 = 4
	MethodPATCH   uint8 = 5
	MethodHEAD    uint8 = 6
	MethodOPTIONS uint8 = 7
	MethodCONNECT uint8 = 8
	MethodTRACE   uint8 = 9
)

// HTTP Methods - byte slices for parsing.
var (
	methodGETBytes     = []byte("GET")
	methodPOSTBytes    = []byte("POST")
	methodPUTBytes     = []byte("PUT")
	methodDELETEBytes  = []byte("DELETE")
	methodPATCHBytes   = []byte("PATCH")
	methodHEADBytes    = []byte("HEAD")
	methodOPTIONSBytes = []byte("OPTIONS")
	methodCONNECTBytes = []byte("CONNECT")
	methodTRACEBytes   = []byte("TRACE")
)

// HTTP Methods - string constants.
const (
	methodGETString     = "GET"
	methodPOSTString    = "POST"
	methodPUTString     = "PUT"
	methodDELETEString  = "DELETE"
	methodPATCHString   = "PATCH"
	methodHEADString    = "HEAD"
	methodOPTIONSString = "OPTIONS"
	methodCONNECTString = "CONNECT"
	methodTRACEString   = "TRACE"
)

// Protocol constants.
const (
	ProtoHTTP11Major = 1
	ProtoHTTP11Minor = 1
)

// Header and request limits.
const (
	// MaxHeadSize bounds how many bytes the parser accumulates while
	// scanning for the end of the request head before failing with 400.
	MaxHeadSize = 64 * 1024

	// MaxHeaderValue bounds an individual header value's length.
	MaxHeaderValue = 8192

	// MaxRequestLineSize bounds the method+path+version line.
	MaxRequestLineSize = 8192

	// MaxURILength bounds the request-target length.
	MaxURILength = 8192
)

// statusText maps a status code to its reason phrase. Only the codes this
// server can emit (spec §7) are listed; unknown codes fall back to
// "Unknown Status" in the formatter.
var statusText = map[int]string{
	200: "OK",
	301: "Moved Permanently",
	302: "Found",
	303: "See Other",
	307: "Temporary Redirect",
	308: "Permanent Redirect",
	400: "Bad Request",
	401: "Unauthorized",
	404: "Not Found",
	405: "Method Not Allowed",
	413: "Payload Too Large",
	500: "Internal Server Error",
	501: "Not Implemented",
	505: "HTTP Version Not Supported",
}

// StatusText returns the reason phrase for code, or "Unknown Status".
func StatusText(code int) string {
	if s, ok := statusText[code]; ok {
		return s
	}
	return "Unknown Status"
}

// mimeTypes maps a lowercased file extension (without the leading dot) to
// its Content-Type. Unlisted extensions fall back to octet-stream.
var mimeTypes = map[string]string{
	"html": "text/html; charset=utf-8",
	"htm":  "text/html; charset=utf-8",
	"css":  "text/css; charset=utf-8",
	"js":   "application/javascript; charset=utf-8",
	"mjs":  "application/javascript; charset=utf-8",
	"json": "application/json; charset=utf-8",
	"xml":  "application/xml; charset=utf-8",
	"txt":  "text/plain; charset=utf-8",
	"csv":  "text/csv; charset=utf-8",
	"md":   "text/markdown; charset=utf-8",

	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
	"ico":  "image/x-icon",
	"bmp":  "image/bmp",

	"mp3": "audio/mpeg",
	"ogg": "audio/ogg",
	"wav": "audio/wav",

	"mp4":  "video/mp4",
	"webm": "video/webm",

	"woff":  "font/woff",
	"woff2": "font/woff2",
	"ttf":   "font/ttf",
	"otf":   "font/otf",

	"zip":  "application/zip",
	"gz":   "application/gzip",
	"tar":  "application/x-tar",
	"pdf":  "application/pdf",
	"wasm": "application/wasm",
	"php":  "application/x-httpd-php",
	"py":   "text/x-python",
}

// MIMEType returns the Content-Type for a lowercased file extension
// (without the leading dot), defaulting to application/octet-stream.
func MIMEType(ext string) string {
	if ct, ok := mimeTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
