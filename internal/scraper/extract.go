package scraper

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"docscrape/pkg/models"
)

// Title and body lookups run through fallback chains because the help,
// developers and partners portals use slightly different templates.
var titleSelectors = []string{
	"h6.article-title",
	"h1.article-title",
	".article-title",
	"h1",
	".page-title",
}

var bodySelectors = []string{
	"div.article__body",
	".article-body",
	".content",
}

// Citation markers like [1] that Zendesk leaves in migrated articles.
var citationRe = regexp.MustCompile(`\[\d+\]`)

// Extract parses rendered page HTML into an Article. A page without a
// recognizable body element still extracts successfully with zero
// sections and word count.
func Extract(pageHTML, pageURL string) (models.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return models.Article{URL: pageURL}, err
	}

	art := models.Article{
		URL:         pageURL,
		ExtractedAt: time.Now().Format(time.RFC3339),
		Success:     true,
	}

	for _, sel := range titleSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			art.Title = strings.TrimSpace(s.Text())
			break
		}
	}

	var body *goquery.Selection
	for _, sel := range bodySelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			body = s
			break
		}
	}

	if body != nil {
		art.Sections = splitSections(body)
		art.FullText = cleanText(body.Text())
		art.WordCount = len(strings.Fields(art.FullText))
		if htmlContent, err := body.Html(); err == nil {
			art.HTMLContent = htmlContent
		}
	}

	doc.Find(".breadcrumbs a, nav a").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			art.Breadcrumbs = append(art.Breadcrumbs, t)
		}
	})

	if t := doc.Find("time[datetime]").First(); t.Length() > 0 {
		art.LastModified, _ = t.Attr("datetime")
	}

	return art, nil
}

// splitSections walks the body's direct children and cuts a new section
// at every h1-h6. Text before the first heading lands in an implicit
// "Introduction" section. Sections with no text are dropped.
func splitSections(body *goquery.Selection) []models.Section {
	var sections []models.Section
	current := models.Section{Heading: "Introduction"}

	flush := func() {
		if strings.TrimSpace(current.Content) != "" {
			sections = append(sections, current)
		}
	}

	body.Children().Each(func(_ int, child *goquery.Selection) {
		node := child.Get(0)
		if level := headingLevel(node); level > 0 {
			flush()
			current = models.Section{
				Heading: strings.TrimSpace(child.Text()),
				Level:   level,
			}
			return
		}

		if text := cleanText(child.Text()); text != "" {
			current.Content += text + "\n\n"
		}
		child.Find("img").Each(func(_ int, img *goquery.Selection) {
			src, ok := img.Attr("src")
			if !ok || src == "" {
				return
			}
			current.Images = append(current.Images, models.Image{
				Src:   src,
				Alt:   img.AttrOr("alt", ""),
				Title: img.AttrOr("title", ""),
			})
		})
	})
	flush()

	return sections
}

func headingLevel(n *html.Node) int {
	if n == nil || n.Type != html.ElementNode {
		return 0
	}
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return int(n.Data[1] - '0')
	}
	return 0
}

func cleanText(s string) string {
	return strings.TrimSpace(citationRe.ReplaceAllString(s, ""))
}
