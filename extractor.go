package webgrab

// Extractor produces a Result from an HTML document in a single streaming
// pass. Extraction is best-effort and never fails: malformed markup
// degrades gracefully without losing already-captured data.
type Extractor interface {
	Extract(doc string, cfg *Config) *Result
}
