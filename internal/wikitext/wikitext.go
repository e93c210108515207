// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wikitext extracts templates and links from MediaWiki markup.
// It is a scanner, not a full parser: templates are found by balanced
// {{...}} matching and parameters split at top-level pipes, which is
// enough for the infobox-style templates the pipeline consumes.
package wikitext

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/loregraph/loregraph/internal/fetch"
	"github.com/loregraph/loregraph/pkg/types"
)

const parsedDir = "parsed"

// structuredTemplates names the template families that carry structured
// entity data on the wiki. Matching is by substring, so "character
// infobox" and "infobox character" both qualify.
var structuredTemplates = []string{
	"infobox", "character", "location", "book", "person",
	"events", "scene", "song", "item", "language",
	"organization", "weapon", "race", "game",
}

// ExtractTemplates returns every top-level {{...}} template in the text,
// in source order. Nested templates inside parameter values are left
// embedded in the value text.
func ExtractTemplates(text string) []types.Template {
	var out []types.Template
	for i := 0; i < len(text)-1; {
		if text[i] != '{' || text[i+1] != '{' {
			i++
			continue
		}
		end, ok := matchBraces(text, i)
		if !ok {
			break
		}
		if tpl, ok := parseTemplate(text[i+2 : end-2]); ok {
			out = append(out, tpl)
		}
		i = end
	}
	return out
}

// matchBraces scans from the opening "{{" at start and returns the index
// just past the matching "}}".
func matchBraces(text string, start int) (int, bool) {
	depth := 0
	for i := start; i < len(text)-1; i++ {
		switch {
		case text[i] == '{' && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}' && text[i+1] == '}':
			depth--
			i++
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// parseTemplate splits template body text into a normalized name and its
// named parameters. Pipes and equals signs inside nested braces or links
// do not split.
func parseTemplate(body string) (types.Template, bool) {
	parts := splitTopLevel(body, '|')
	if len(parts) == 0 {
		return types.Template{}, false
	}
	name := strings.ToLower(strings.TrimSpace(parts[0]))
	if name == "" {
		return types.Template{}, false
	}

	tpl := types.Template{Name: name, Params: make(map[string]string)}
	for _, part := range parts[1:] {
		eq := topLevelIndex(part, '=')
		if eq < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(part[:eq]))
		value := strings.TrimSpace(part[eq+1:])
		if key != "" && value != "" {
			tpl.Params[key] = value
		}
	}
	return tpl, true
}

// splitTopLevel splits s at sep occurrences outside {{...}} and [[...]].
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		if i < len(s)-1 {
			switch {
			case (s[i] == '{' && s[i+1] == '{') || (s[i] == '[' && s[i+1] == '['):
				depth++
				i++
				continue
			case (s[i] == '}' && s[i+1] == '}') || (s[i] == ']' && s[i+1] == ']'):
				depth--
				i++
				continue
			}
		}
		if depth == 0 && s[i] == sep {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// topLevelIndex returns the index of the first sep outside nested braces
// or links, or -1.
func topLevelIndex(s string, sep byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		if i < len(s)-1 {
			switch {
			case (s[i] == '{' && s[i+1] == '{') || (s[i] == '[' && s[i+1] == '['):
				depth++
				i++
				continue
			case (s[i] == '}' && s[i+1] == '}') || (s[i] == ']' && s[i+1] == ']'):
				depth--
				i++
				continue
			}
		}
		if depth == 0 && s[i] == sep {
			return i
		}
	}
	return -1
}

// Infoboxes filters templates down to the structured-data families.
func Infoboxes(templates []types.Template) []types.Template {
	var out []types.Template
	for _, tpl := range templates {
		for _, known := range structuredTemplates {
			if strings.Contains(tpl.Name, known) {
				out = append(out, tpl)
				break
			}
		}
	}
	return out
}

var wikilinkRe = regexp.MustCompile(`\[\[([^\]|]+)(?:\|([^\]]*))?\]\]`)

// ExtractWikilinks returns every [[target|display]] link in source order.
// Links without display text use the target as display.
func ExtractWikilinks(text string) []types.Wikilink {
	var out []types.Wikilink
	for _, m := range wikilinkRe.FindAllStringSubmatch(text, -1) {
		target := strings.TrimSpace(m[1])
		display := strings.TrimSpace(m[2])
		if display == "" {
			display = target
		}
		out = append(out, types.Wikilink{Target: target, Display: display})
	}
	return out
}

// LinkTarget extracts the first wikilink target from a parameter value.
func LinkTarget(value string) (string, bool) {
	m := wikilinkRe.FindStringSubmatch(value)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

var (
	pipedLinkRe = regexp.MustCompile(`\[\[[^\]|]+\|([^\]]+)\]\]`)
	plainLinkRe = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	boldRe      = regexp.MustCompile(`'''([^']+)'''`)
	italicRe    = regexp.MustCompile(`''([^']+)''`)
	refRe       = regexp.MustCompile(`(?s)<ref[^>/]*>.*?</ref>|<ref[^>]*/>`)
	commentRe   = regexp.MustCompile(`(?s)<!--.*?-->`)
	htmlTagRe   = regexp.MustCompile(`<[^>]+>`)
	templateRe  = regexp.MustCompile(`\{\{[^}]*\}\}`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// CleanValue strips wiki markup from a parameter value, leaving readable
// text: links collapse to their display text, refs and comments drop,
// whitespace collapses.
func CleanValue(value string) string {
	value = refRe.ReplaceAllString(value, "")
	value = commentRe.ReplaceAllString(value, "")
	value = pipedLinkRe.ReplaceAllString(value, "$1")
	value = plainLinkRe.ReplaceAllString(value, "$1")
	value = boldRe.ReplaceAllString(value, "$1")
	value = italicRe.ReplaceAllString(value, "$1")
	value = htmlTagRe.ReplaceAllString(value, "")
	value = templateRe.ReplaceAllString(value, "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(value, " "))
}

// ParsePage turns a fetched page into a structured record.
func ParsePage(page types.Page) types.Record {
	templates := ExtractTemplates(page.Text)
	return types.Record{
		Title:     page.Meta.Title,
		PageID:    page.Meta.PageID,
		Infoboxes: Infoboxes(templates),
		Wikilinks: ExtractWikilinks(page.Text),
	}
}

// Summary holds counts from a parse run.
type Summary struct {
	Pages     int
	Infoboxes int
	Skipped   int
}

// ParseDir reads fetched pages from dataDir/raw, parses each, and writes
// one record file per page to dataDir/parsed. Pages without any infobox
// are skipped and counted.
func ParseDir(dataDir string, w io.Writer) (Summary, error) {
	pages, err := fetch.ReadPages(dataDir)
	if err != nil {
		return Summary{}, err
	}

	outDir := filepath.Join(dataDir, parsedDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating directory %s: %w", outDir, err)
	}

	var summary Summary
	for _, page := range pages {
		record := ParsePage(page)
		if len(record.Infoboxes) == 0 {
			fmt.Fprintf(w, "skipped: %s (no structured templates)\n", record.Title)
			summary.Skipped++
			continue
		}

		data, err := yaml.Marshal(record)
		if err != nil {
			return summary, fmt.Errorf("marshaling record for %s: %w", record.Title, err)
		}
		path := filepath.Join(outDir, fetch.SafeTitle(record.Title)+".yaml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return summary, fmt.Errorf("writing record for %s: %w", record.Title, err)
		}

		fmt.Fprintf(w, "parsed:  %s (%d infoboxes, %d links)\n",
			record.Title, len(record.Infoboxes), len(record.Wikilinks))
		summary.Pages++
		summary.Infoboxes += len(record.Infoboxes)
	}

	fmt.Fprintf(w, "\nParsed %d pages (%d infoboxes), skipped %d\n",
		summary.Pages, summary.Infoboxes, summary.Skipped)
	return summary, nil
}
