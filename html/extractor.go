// Package html provides a streaming implementation of webgrab.Extractor
// built on the golang.org/x/net/html tokenizer. No DOM is materialized:
// the document is consumed as a token stream in a single pass.
package html

import (
	"strings"

	"github.com/jgrochowski/webgrab"
	"golang.org/x/net/html"
)

// Ensure Extractor implements webgrab.Extractor at compile time.
var _ webgrab.Extractor = (*Extractor)(nil)

// Extractor drives the HTML tokenizer over a document and accumulates the
// typed result streams.
//
// Capture semantics: at most one capture is open at a time. A start tag in
// the configured tag set opens (or replaces) the active capture; the
// matching end tag closes it. Nested occurrences of the same tag are not
// tracked separately, and a different configured tag opened while a capture
// is active replaces it (last-opened-wins).
//
// Attribute semantics: every attribute occurrence on a start tag is
// processed in document order, so duplicate attributes each produce their
// own entry. href values are always classified into Links (and Files when
// the extension matches) and src values into Images, whether or not those
// attributes are in the configured capture set.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract tokenizes doc and returns the accumulated result. Malformed
// markup is recovered from permissively: unmatched end tags are ignored and
// an unterminated document simply ends the stream. Extract never fails.
func (e *Extractor) Extract(doc string, cfg *webgrab.Config) *webgrab.Result {
	res := &webgrab.Result{}

	// Name of the currently open capture tag, empty when no capture is
	// open.
	var capturing string

	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// End of input or an unrecoverable tokenizer state; either
			// way the pass is over and the result is complete.
			return res

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			selfClosing := tok.Type == html.SelfClosingTagToken

			// Tag and attribute names arrive lowercased from the
			// tokenizer; values are untouched apart from entity decoding.
			for _, a := range tok.Attr {
				val := a.Val
				isRef := a.Key == "href" || a.Key == "src"
				if isRef {
					val = webgrab.ResolveURL(cfg.BaseURL, a.Val)
				}

				if cfg.CaptureAttr(a.Key) {
					res.Attrs = append(res.Attrs, webgrab.CapturedAttribute{
						Tag:   tok.Data,
						Attr:  a.Key,
						Value: val,
					})
				}

				// Classification fires regardless of the configured
				// attribute set.
				switch a.Key {
				case "href":
					res.Links = append(res.Links, val)
					if webgrab.IsFileURL(val) {
						res.Files = append(res.Files, val)
					}
				case "src":
					res.Images = append(res.Images, val)
				}
			}

			// A self-closing element has no text content, so it never
			// opens a capture.
			if !selfClosing && cfg.CaptureTag(tok.Data) {
				capturing = tok.Data
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if capturing != "" && string(name) == capturing {
				capturing = ""
			}

		case html.TextToken:
			if capturing == "" {
				continue
			}
			content := strings.TrimSpace(string(z.Text()))
			if content == "" {
				continue
			}
			res.Texts = append(res.Texts, webgrab.CapturedText{
				Tag:     capturing,
				Content: content,
			})
		}
	}
}
