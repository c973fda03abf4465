package webgrab

import "net/url"

// ResolveURL resolves a possibly-relative reference against a base URL and
// returns the absolute form. It handles absolute, protocol-relative,
// path-relative, query-only and fragment-only references per standard URL
// resolution rules. Input that cannot be parsed is returned unchanged;
// resolution failures never abort extraction.
func ResolveURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
