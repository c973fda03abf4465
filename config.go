package webgrab

import (
	"net/url"
	"strings"
)

// Config describes a single extraction: the document to fetch and the tag
// and attribute names whose content should be captured. Build it with
// NewConfig and treat it as read-only once extraction starts.
type Config struct {
	// BaseURL is the address of the document to fetch. Relative references
	// discovered in the document are resolved against it.
	BaseURL string

	// Tags holds the lowercased element names whose text content is
	// captured.
	Tags map[string]bool

	// Attrs holds the lowercased attribute names whose values are captured.
	Attrs map[string]bool
}

// NewConfig returns a Config with tag and attribute names normalized to
// lowercase. Empty names are dropped.
func NewConfig(baseURL string, tags, attrs []string) *Config {
	return &Config{
		BaseURL: baseURL,
		Tags:    normalizeNames(tags),
		Attrs:   normalizeNames(attrs),
	}
}

// Validate returns an error if the config cannot be used for extraction.
// The base URL must be absolute with an http or https scheme; this is
// checked before any network activity.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return Errorf(EINVALID, "base URL %q is not a valid URL", c.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "base URL %q must start with http:// or https://", c.BaseURL)
	}
	return nil
}

// CaptureTag reports whether text content of the named element should be
// captured. The name must already be lowercase.
func (c *Config) CaptureTag(name string) bool {
	return c.Tags[name]
}

// CaptureAttr reports whether values of the named attribute should be
// captured. The name must already be lowercase.
func (c *Config) CaptureAttr(name string) bool {
	return c.Attrs[name]
}

// SplitList parses a comma-delimited list as entered in a front end
// ("h1, h2,p") into its non-empty trimmed elements.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func normalizeNames(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			m[n] = true
		}
	}
	return m
}
