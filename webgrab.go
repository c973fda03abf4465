// Package webgrab extracts structured data from HTML documents and
// retrieves the resources they reference. Given a URL and a set of capture
// tags and attributes, it produces typed result streams (captured text,
// captured attributes, links, images, downloadable files) in a single
// streaming pass, then downloads classified resources to local storage with
// bounded parallelism.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., html/, http/, scrape/).
package webgrab
