package webgrab

// CapturedText is one contiguous run of non-empty text found inside a
// captured element. Tag is the lowercased element name the text was
// captured under.
type CapturedText struct {
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

// CapturedAttribute is one occurrence of a captured attribute on a start
// tag. Value is the raw attribute value, resolved to an absolute URL when
// the attribute is href or src.
type CapturedAttribute struct {
	Tag   string `json:"tag"`
	Attr  string `json:"attr"`
	Value string `json:"value"`
}

// Result aggregates everything discovered during a single extraction pass.
// All slices preserve document encounter order and repeated references
// produce repeated entries; nothing is deduplicated. Every URL in Links,
// Images and Files is absolute.
type Result struct {
	Texts  []CapturedText      `json:"texts"`
	Attrs  []CapturedAttribute `json:"attributes"`
	Links  []string            `json:"links"`
	Images []string            `json:"images"`
	Files  []string            `json:"files"`
}

// ClassifiedImages returns the image URLs tagged with RoleImage, in
// document order, ready for the retrieval pipeline.
func (r *Result) ClassifiedImages() []ClassifiedURL {
	return classify(r.Images, RoleImage)
}

// ClassifiedFiles returns the downloadable file URLs tagged with RoleFile,
// in document order, ready for the retrieval pipeline.
func (r *Result) ClassifiedFiles() []ClassifiedURL {
	return classify(r.Files, RoleFile)
}

func classify(urls []string, role Role) []ClassifiedURL {
	out := make([]ClassifiedURL, len(urls))
	for i, u := range urls {
		out[i] = ClassifiedURL{URL: u, Role: role}
	}
	return out
}
