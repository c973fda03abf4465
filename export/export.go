// Package export serializes extraction results and download outcomes to
// interchange formats. These are pure serializations: no additional
// semantics are applied to the data.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jgrochowski/webgrab"
)

// Format identifies an output serialization.
type Format string

// Supported output formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "txt"
)

// Report bundles everything a run produced: the extraction result and the
// outcome of every attempted retrieval.
type Report struct {
	Result   *webgrab.Result `json:"result"`
	Outcomes []outcomeRecord `json:"downloads,omitempty"`
}

type outcomeRecord struct {
	URL       string `json:"url"`
	LocalPath string `json:"localPath,omitempty"`
	Succeeded bool   `json:"succeeded"`
	Error     string `json:"error,omitempty"`
}

// NewReport builds a Report from a result and the outcomes of any retrieval
// runs, preserving their order.
func NewReport(res *webgrab.Result, outcomes []webgrab.Outcome) *Report {
	r := &Report{Result: res}
	for _, o := range outcomes {
		rec := outcomeRecord{URL: o.URL, LocalPath: o.LocalPath, Succeeded: o.Succeeded}
		if o.Err != nil {
			rec.Error = o.Err.Error()
		}
		r.Outcomes = append(r.Outcomes, rec)
	}
	return r
}

// Write serializes the report to w in the given format.
func Write(w io.Writer, format Format, report *Report) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, report)
	case FormatCSV:
		return WriteCSV(w, report)
	case FormatText:
		return WriteText(w, report)
	default:
		return webgrab.Errorf(webgrab.EINVALID, "unknown output format %q", format)
	}
}

// WriteJSON writes the full report structure as indented JSON.
func WriteJSON(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(report)
}

// WriteCSV writes the report as flat rows tagged by record kind:
// text, attr, media and download.
func WriteCSV(w io.Writer, report *Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"kind", "tag", "attr", "value"}); err != nil {
		return err
	}
	for _, t := range report.Result.Texts {
		if err := cw.Write([]string{"text", t.Tag, "", t.Content}); err != nil {
			return err
		}
	}
	for _, a := range report.Result.Attrs {
		if err := cw.Write([]string{"attr", a.Tag, a.Attr, a.Value}); err != nil {
			return err
		}
	}
	// Media rows keep document order within each role.
	for _, u := range report.Result.Links {
		if err := cw.Write([]string{"media", "", "link", u}); err != nil {
			return err
		}
	}
	for _, u := range report.Result.Images {
		if err := cw.Write([]string{"media", "", "image", u}); err != nil {
			return err
		}
	}
	for _, u := range report.Result.Files {
		if err := cw.Write([]string{"media", "", "file", u}); err != nil {
			return err
		}
	}
	for _, o := range report.Outcomes {
		if err := cw.Write([]string{"download", strconv.FormatBool(o.Succeeded), o.LocalPath, o.URL}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteText writes the report as sectioned plain text.
func WriteText(w io.Writer, report *Report) error {
	write := func(format string, args ...any) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	}

	if err := write("=== TEXT ===\n"); err != nil {
		return err
	}
	for _, t := range report.Result.Texts {
		if err := write("[%s] %s\n", t.Tag, t.Content); err != nil {
			return err
		}
	}

	if err := write("\n=== ATTRS ===\n"); err != nil {
		return err
	}
	for _, a := range report.Result.Attrs {
		if err := write("%s|%s|%s\n", a.Tag, a.Attr, a.Value); err != nil {
			return err
		}
	}

	if err := write("\n=== MEDIA ===\n"); err != nil {
		return err
	}
	for _, u := range report.Result.Images {
		if err := write("IMG: %s\n", u); err != nil {
			return err
		}
	}
	for _, u := range report.Result.Files {
		if err := write("FILE: %s\n", u); err != nil {
			return err
		}
	}

	if len(report.Outcomes) > 0 {
		if err := write("\n=== DOWNLOADS ===\n"); err != nil {
			return err
		}
		for _, o := range report.Outcomes {
			status := "ok"
			if !o.Succeeded {
				status = "failed"
			}
			if err := write("%s %s -> %s\n", status, o.URL, o.LocalPath); err != nil {
				return err
			}
		}
	}

	return nil
}
