package report

import (
	"path/filepath"
	"testing"

	"docscrape/pkg/models"
)

func sampleLinks() []models.Link {
	return []models.Link{
		{URL: "https://help.moengage.com/hc/en-us/articles/1-a", Title: "A", Source: "help"},
		{URL: "https://developers.moengage.com/hc/en-us/articles/2-b", Title: "B", Source: "developers"},
		{URL: "https://partners.moengage.com/hc/en-us/articles/3-c", Title: "C", Source: "partners"},
		{URL: "https://help.moengage.com/hc/en-us/articles/4-d", Title: "D", Source: "help"},
	}
}

func TestSaveLoadLinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.json")
	links := sampleLinks()

	if err := SaveLinks(links, path); err != nil {
		t.Fatalf("SaveLinks: %v", err)
	}

	loaded, err := LoadLinks(path)
	if err != nil {
		t.Fatalf("LoadLinks: %v", err)
	}
	if len(loaded) != len(links) {
		t.Fatalf("Expected %d links, got %d", len(links), len(loaded))
	}
	for i := range links {
		if loaded[i] != links[i] {
			t.Errorf("Link %d mismatch: got %+v want %+v", i, loaded[i], links[i])
		}
	}
}

func TestLoadLinksMissingFile(t *testing.T) {
	if _, err := LoadLinks(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestFilterBySource(t *testing.T) {
	filtered, err := FilterBySource(sampleLinks(), []string{"help"})
	if err != nil {
		t.Fatalf("FilterBySource: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("Expected 2 help links, got %d", len(filtered))
	}
	for _, l := range filtered {
		if l.Source != "help" {
			t.Errorf("Unexpected source %q", l.Source)
		}
	}

	if _, err := FilterBySource(sampleLinks(), []string{"blog"}); err == nil {
		t.Error("Expected error for unknown source name")
	}
}
