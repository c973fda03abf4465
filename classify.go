package webgrab

import (
	"net/url"
	"path"
	"strings"
)

// Role is the discovered role of a URL.
type Role int

// Role constants for ClassifiedURL.
const (
	RoleLink Role = iota
	RoleImage
	RoleFile
)

// String returns the role's display name.
func (r Role) String() string {
	switch r {
	case RoleImage:
		return "image"
	case RoleFile:
		return "file"
	default:
		return "link"
	}
}

// ClassifiedURL is an absolute URL tagged with its discovered role.
type ClassifiedURL struct {
	URL  string `json:"url"`
	Role Role   `json:"role"`
}

// fileExtensions is the fixed allowlist of path extensions that classify a
// URL as a downloadable file. Extending it is a code change, not a runtime
// decision.
var fileExtensions = map[string]bool{
	".pdf":  true,
	".zip":  true,
	".rar":  true,
	".exe":  true,
	".txt":  true,
	".docx": true,
	".doc":  true,
	".xls":  true,
	".xlsx": true,
	".pptx": true,
	".ppt":  true,
	".csv":  true,
	".apk":  true,
}

// IsFileURL reports whether the URL's path component ends, case
// insensitively, with one of the downloadable file extensions. Query string
// and fragment are ignored.
func IsFileURL(rawURL string) bool {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	} else {
		// Unparseable input: strip query and fragment by hand so the
		// extension check still sees only the path.
		if i := strings.IndexAny(p, "?#"); i >= 0 {
			p = p[:i]
		}
	}
	return fileExtensions[strings.ToLower(path.Ext(p))]
}
