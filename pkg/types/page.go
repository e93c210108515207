// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// PageMeta is the YAML sidecar written next to each fetched wikitext
// file: provenance and the page-level metadata the parse stage needs.
type PageMeta struct {
	// Title is the canonical page title as reported by the API.
	Title string `json:"title" yaml:"title"`

	// PageID is the MediaWiki page ID.
	PageID int `json:"page_id" yaml:"page_id"`

	// Categories lists the page's categories.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// Links lists main-namespace pages linked from this page.
	Links []string `json:"links,omitempty" yaml:"links,omitempty"`

	// Images lists the file names of images used on the page.
	Images []string `json:"images,omitempty" yaml:"images,omitempty"`

	// Length is the wikitext length in bytes.
	Length int `json:"length" yaml:"length"`

	// FetchedAt records when the page was downloaded.
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`

	// SourceURL is the page's wiki URL.
	SourceURL string `json:"source_url" yaml:"source_url"`
}

// Page pairs a fetched page's wikitext with its sidecar metadata.
type Page struct {
	Meta PageMeta
	Text string
}

// Template is one extracted wikitext template: its normalized name and
// the non-empty parameters in source order.
type Template struct {
	// Name is the template name, lowercased and trimmed.
	Name string `json:"name" yaml:"name"`

	// Params maps parameter names to their raw wikitext values.
	Params map[string]string `json:"params" yaml:"params"`
}

// Wikilink is one [[target|display]] link extracted from wikitext.
type Wikilink struct {
	Target  string `json:"target" yaml:"target"`
	Display string `json:"display" yaml:"display"`
}

// Record is the parse stage's output for one page: the structured
// templates and links the build stage turns into triples.
type Record struct {
	// Title is the page title the record was parsed from.
	Title string `json:"title" yaml:"title"`

	// PageID is the MediaWiki page ID.
	PageID int `json:"page_id" yaml:"page_id"`

	// Infoboxes holds the page's structured-data templates.
	Infoboxes []Template `json:"infoboxes" yaml:"infoboxes"`

	// Wikilinks holds the page's outgoing links in source order.
	Wikilinks []Wikilink `json:"wikilinks,omitempty" yaml:"wikilinks,omitempty"`
}
