package models

import "testing"

func TestParseSource(t *testing.T) {
	for _, name := range []string{"help", "developers", "partners"} {
		source, err := ParseSource(name)
		if err != nil {
			t.Fatalf("ParseSource(%q): %v", name, err)
		}
		if source.String() != name {
			t.Errorf("Round trip mismatch: %q -> %q", name, source.String())
		}
	}

	if _, err := ParseSource("blog"); err == nil {
		t.Error("Expected error for unknown source")
	}
}

func TestArticleImageCount(t *testing.T) {
	art := Article{Sections: []Section{
		{Images: []Image{{Src: "a.png"}, {Src: "b.png"}}},
		{},
		{Images: []Image{{Src: "c.png"}}},
	}}
	if got := art.ImageCount(); got != 3 {
		t.Errorf("ImageCount = %d, want 3", got)
	}
}
