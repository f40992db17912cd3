package scraper

import (
	"testing"
)

func TestCollectArticleLinks(t *testing.T) {
	anchors := []Anchor{
		{Href: "https://help.moengage.com/hc/en-us/articles/360001520773-What-is-an-Event-", Text: " What is an Event? "},
		{Href: "https://help.moengage.com/hc/en-us/articles/360001520773-What-is-an-Event-", Text: "duplicate"},
		{Href: "https://developers.moengage.com/hc/en-us/articles/4404205518356-Android-SDK", Text: "Android SDK"},
		{Href: "https://partners.moengage.com/hc/en-us/articles/987654-Partner-Onboarding", Text: "Partner Onboarding"},
		{Href: "https://help.moengage.com/hc/en-us/categories/360000100995-Campaigns", Text: "Campaigns"},
		{Href: "https://help.moengage.com/hc/en-us/articles/not-numeric", Text: "Bad slug"},
		{Href: "https://example.com/blog/post", Text: "Unrelated"},
	}

	links := CollectArticleLinks(anchors)

	if len(links) != 3 {
		t.Fatalf("Expected 3 links, got %d: %+v", len(links), links)
	}

	wantSources := []string{"help", "developers", "partners"}
	for i, want := range wantSources {
		if links[i].Source != want {
			t.Errorf("Link %d source mismatch: got %q want %q", i, links[i].Source, want)
		}
	}

	// Dedupe keeps the first-seen anchor, with trimmed title.
	if links[0].Title != "What is an Event?" {
		t.Errorf("Title mismatch: %q", links[0].Title)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		href string
		want string
		ok   bool
	}{
		{"https://help.moengage.com/hc/en-us/articles/123-Title", "help", true},
		{"https://developers.moengage.com/hc/en-us/articles/456-Title", "developers", true},
		{"https://partners.moengage.com/hc/en-us/articles/789-Title", "partners", true},
		{"https://help.moengage.com/hc/en-us/sections/123", "none", false},
		{"http://help.moengage.com/hc/en-us/articles/123-Title", "none", false},
	}

	for _, tc := range cases {
		source, ok := classify(tc.href)
		if ok != tc.ok || source.String() != tc.want {
			t.Errorf("classify(%q) = %v, %v; want %v, %v", tc.href, source, ok, tc.want, tc.ok)
		}
	}
}

func TestResolveURL(t *testing.T) {
	base := "https://help.moengage.com/hc/en-us"

	if got := resolveURL(base, "/hc/en-us/articles/123-Title"); got != "https://help.moengage.com/hc/en-us/articles/123-Title" {
		t.Errorf("relative resolve mismatch: %q", got)
	}
	if got := resolveURL(base, "https://developers.moengage.com/hc/en-us"); got != "https://developers.moengage.com/hc/en-us" {
		t.Errorf("absolute resolve mismatch: %q", got)
	}
}

func TestSeenSet(t *testing.T) {
	seen := newSeenSet()

	if seen.Seen("https://example.com/a") {
		t.Error("first visit should not be seen")
	}
	if !seen.Seen("https://example.com/a") {
		t.Error("second visit should be seen")
	}
	if seen.Seen("https://example.com/b") {
		t.Error("different URL should not be seen")
	}
}
