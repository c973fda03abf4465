package mock

import "github.com/jgrochowski/webgrab"

var _ webgrab.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of webgrab.Extractor.
type Extractor struct {
	ExtractFn func(doc string, cfg *webgrab.Config) *webgrab.Result
}

func (e *Extractor) Extract(doc string, cfg *webgrab.Config) *webgrab.Result {
	return e.ExtractFn(doc, cfg)
}
