// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wikitext

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loregraph/loregraph/pkg/types"
)

const frodoWikitext = `{{Character infobox
| name = Frodo Baggins
| birth = 22 September, [[Third Age|T.A.]] 2968
| parentage = [[Drogo Baggins]] and [[Primula Brandybuck]]
| race = [[Hobbits]]
| spouse = Never married
| weapon = [[Sting]]<ref>''The Fellowship of the Ring''</ref>
}}
'''Frodo Baggins''' was a [[Hobbits|hobbit]] of [[the Shire]].
{{stub}}
`

func TestExtractTemplates(t *testing.T) {
	templates := ExtractTemplates(frodoWikitext)
	if len(templates) != 2 {
		t.Fatalf("found %d templates, want 2", len(templates))
	}

	infobox := templates[0]
	if infobox.Name != "character infobox" {
		t.Errorf("name = %q, want %q", infobox.Name, "character infobox")
	}
	if got := infobox.Params["name"]; got != "Frodo Baggins" {
		t.Errorf("name param = %q", got)
	}
	// Pipes inside wikilinks must not split parameters.
	if got := infobox.Params["birth"]; got != "22 September, [[Third Age|T.A.]] 2968" {
		t.Errorf("birth param = %q", got)
	}
	if got := infobox.Params["parentage"]; !strings.Contains(got, "Drogo Baggins") {
		t.Errorf("parentage param = %q", got)
	}

	if templates[1].Name != "stub" {
		t.Errorf("second template = %q, want stub", templates[1].Name)
	}
}

func TestExtractTemplates_Nested(t *testing.T) {
	text := `{{outer|inner={{inner template|x=1}}|plain=y}}`
	templates := ExtractTemplates(text)
	if len(templates) != 1 {
		t.Fatalf("found %d templates, want 1 (nested stays embedded)", len(templates))
	}
	if got := templates[0].Params["inner"]; got != "{{inner template|x=1}}" {
		t.Errorf("inner param = %q", got)
	}
	if got := templates[0].Params["plain"]; got != "y" {
		t.Errorf("plain param = %q", got)
	}
}

func TestExtractTemplates_Unbalanced(t *testing.T) {
	if got := ExtractTemplates("{{never closes|a=b"); len(got) != 0 {
		t.Errorf("unbalanced template produced %d results", len(got))
	}
}

func TestExtractTemplates_EmptyValuesDropped(t *testing.T) {
	templates := ExtractTemplates("{{character|name=Frodo|spouse=|children=}}")
	if len(templates) != 1 {
		t.Fatalf("found %d templates", len(templates))
	}
	if _, ok := templates[0].Params["spouse"]; ok {
		t.Error("empty parameter kept")
	}
	if len(templates[0].Params) != 1 {
		t.Errorf("params = %v, want only name", templates[0].Params)
	}
}

func TestInfoboxes(t *testing.T) {
	templates := []types.Template{
		{Name: "character infobox"},
		{Name: "infobox location"},
		{Name: "stub"},
		{Name: "cite book"},
		{Name: "weapon"},
	}
	got := Infoboxes(templates)
	if len(got) != 3 {
		t.Fatalf("filtered to %d templates, want 3", len(got))
	}
	for _, tpl := range got {
		if tpl.Name == "stub" || tpl.Name == "cite book" {
			t.Errorf("non-structured template %q kept", tpl.Name)
		}
	}
}

func TestExtractWikilinks(t *testing.T) {
	links := ExtractWikilinks("[[Gandalf]] met [[Frodo Baggins|Frodo]] in [[the Shire]].")
	want := []types.Wikilink{
		{Target: "Gandalf", Display: "Gandalf"},
		{Target: "Frodo Baggins", Display: "Frodo"},
		{Target: "the Shire", Display: "the Shire"},
	}
	if len(links) != len(want) {
		t.Fatalf("found %d links, want %d", len(links), len(want))
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("link %d = %v, want %v", i, links[i], want[i])
		}
	}
}

func TestLinkTarget(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"[[Drogo Baggins]]", "Drogo Baggins", true},
		{"[[Drogo Baggins|his father]]", "Drogo Baggins", true},
		{"text before [[Sting]]", "Sting", true},
		{"Never married", "", false},
	}
	for _, tc := range tests {
		got, ok := LinkTarget(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("LinkTarget(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestCleanValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"piped link", "[[Gandalf|Gandalf the Grey]]", "Gandalf the Grey"},
		{"plain link", "[[Gandalf]]", "Gandalf"},
		{"bold", "'''bold text'''", "bold text"},
		{"italic", "''italic''", "italic"},
		{"ref dropped", "[[Sting]]<ref>''FotR''</ref>", "Sting"},
		{"self closing ref", `22 September<ref name="app"/>`, "22 September"},
		{"comment dropped", "Bag End<!-- check -->", "Bag End"},
		{"html tag", "a<br/>b", "ab"},
		{"template dropped", "before {{circa}} after", "before after"},
		{"whitespace collapsed", "a\n  b\tc", "a b c"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanValue(tc.in); got != tc.want {
				t.Errorf("CleanValue(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParsePage(t *testing.T) {
	page := types.Page{
		Meta: types.PageMeta{Title: "Frodo Baggins", PageID: 7},
		Text: frodoWikitext,
	}
	record := ParsePage(page)

	if record.Title != "Frodo Baggins" || record.PageID != 7 {
		t.Errorf("record header = %q/%d", record.Title, record.PageID)
	}
	if len(record.Infoboxes) != 1 {
		t.Fatalf("infoboxes = %d, want 1", len(record.Infoboxes))
	}
	if len(record.Wikilinks) == 0 {
		t.Error("no wikilinks extracted")
	}
}

func TestParseDir(t *testing.T) {
	dataDir := t.TempDir()
	rawDir := filepath.Join(dataDir, "raw")
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(rawDir, "Frodo_Baggins.wikitext"), []byte(frodoWikitext), 0o644); err != nil {
		t.Fatal(err)
	}
	// A page with no structured templates is skipped.
	if err := os.WriteFile(filepath.Join(rawDir, "Plain.wikitext"), []byte("Just prose, no templates."), 0o644); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	summary, err := ParseDir(dataDir, &out)
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if summary.Pages != 1 || summary.Skipped != 1 {
		t.Errorf("summary = %+v, want 1 parsed and 1 skipped", summary)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "parsed", "Frodo_Baggins.yaml")); err != nil {
		t.Errorf("record file missing: %v", err)
	}
}
