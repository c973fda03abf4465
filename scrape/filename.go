package scrape

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/jgrochowski/webgrab"
)

// LocalName derives a local filename from a URL: the last path segment with
// query string and fragment stripped. URLs without a usable path segment
// get a synthesized name derived from a hash of the full URL, so the name
// is stable across runs.
func LocalName(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	name := path.Base(p)
	if name == "" || name == "." || name == "/" {
		return fmt.Sprintf("resource-%016x", xxhash.Sum64String(rawURL))
	}
	return name
}

// assignPaths maps each URL to a destination path inside dir, resolving
// name collisions within the run by suffixing before the extension
// (report.pdf, report-1.pdf, report-2.pdf). Assignment happens in input
// order, so the mapping is deterministic for a given job list.
func assignPaths(urls []webgrab.ClassifiedURL, dir string) []string {
	used := make(map[string]bool, len(urls))
	paths := make([]string, len(urls))

	for i, u := range urls {
		name := LocalName(u.URL)
		candidate := name
		ext := path.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		for n := 1; used[candidate]; n++ {
			candidate = fmt.Sprintf("%s-%d%s", stem, n, ext)
		}
		used[candidate] = true
		paths[i] = filepath.Join(dir, candidate)
	}

	return paths
}
