package models

import "time"

// Link is a discovered documentation article URL.
type Link struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

// Image is an illustration embedded in an article section.
type Image struct {
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	Title string `json:"title"`
}

// Section is a heading-delimited slice of an article body. Content that
// appears before the first heading lands in an implicit "Introduction"
// section with level 0.
type Section struct {
	Heading string  `json:"heading"`
	Level   int     `json:"level"`
	Content string  `json:"content"`
	Images  []Image `json:"images"`
}

// Article is the extraction result for a single documentation page.
// Failed extractions carry Success=false and an Error string; the other
// content fields stay zero.
type Article struct {
	URL          string        `json:"url"`
	Title        string        `json:"title,omitempty"`
	Sections     []Section     `json:"sections,omitempty"`
	FullText     string        `json:"fullText,omitempty"`
	HTMLContent  string        `json:"htmlContent,omitempty"`
	WordCount    int           `json:"wordCount"`
	Breadcrumbs  []string      `json:"breadcrumbs,omitempty"`
	LastModified string        `json:"lastModified,omitempty"`
	ExtractedAt  string        `json:"extractedAt"`
	LoadTime     time.Duration `json:"-"`
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
}

// ImageCount counts images across all sections.
func (a Article) ImageCount() int {
	n := 0
	for _, s := range a.Sections {
		n += len(s.Images)
	}
	return n
}

// ExtractionSummary is the header block of the results JSON file.
type ExtractionSummary struct {
	TotalArticles         int     `json:"total_articles"`
	SuccessfulExtractions int     `json:"successful_extractions"`
	FailedExtractions     int     `json:"failed_extractions"`
	AverageWordCount      float64 `json:"average_word_count"`
	ExtractionTimestamp   string  `json:"extraction_timestamp"`
}

// Summary is the on-disk shape of <prefix>_complete.json. The retry
// command reads this same shape back to find failed URLs.
type Summary struct {
	ExtractionSummary ExtractionSummary `json:"extraction_summary"`
	Articles          []Article         `json:"articles"`
}
