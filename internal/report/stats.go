package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"docscrape/pkg/models"
)

// Stats aggregates an extraction run.
type Stats struct {
	TotalArticles      int
	Successful         int
	Failed             int
	SuccessRate        float64
	AverageWordCount   float64
	AverageSections    float64
	ArticlesWithImages int
}

// ComputeStats derives run statistics from extraction results.
func ComputeStats(results []models.Article) Stats {
	stats := Stats{TotalArticles: len(results)}

	totalWords := 0
	totalSections := 0
	for _, r := range results {
		if !r.Success {
			continue
		}
		stats.Successful++
		totalWords += r.WordCount
		totalSections += len(r.Sections)
		if r.ImageCount() > 0 {
			stats.ArticlesWithImages++
		}
	}

	stats.Failed = stats.TotalArticles - stats.Successful
	if stats.TotalArticles > 0 {
		stats.SuccessRate = float64(stats.Successful) / float64(stats.TotalArticles) * 100
	}
	if stats.Successful > 0 {
		stats.AverageWordCount = float64(totalWords) / float64(stats.Successful)
		stats.AverageSections = float64(totalSections) / float64(stats.Successful)
	}
	return stats
}

// RenderStats prints run statistics as a table.
func RenderStats(w io.Writer, stats Stats) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"Total articles", stats.TotalArticles})
	t.AppendRow(table.Row{"Successful", stats.Successful})
	t.AppendRow(table.Row{"Failed", stats.Failed})
	t.AppendRow(table.Row{"Success rate", fmt.Sprintf("%.1f%%", stats.SuccessRate)})
	if stats.Successful > 0 {
		t.AppendRow(table.Row{"Average word count", fmt.Sprintf("%.0f", stats.AverageWordCount)})
		t.AppendRow(table.Row{"Average sections", fmt.Sprintf("%.1f", stats.AverageSections)})
		t.AppendRow(table.Row{"Articles with images", stats.ArticlesWithImages})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// RenderSourceBreakdown prints the per-portal article count table shown
// after discovery.
func RenderSourceBreakdown(w io.Writer, links []models.Link) {
	counts := make(map[string]int)
	for _, l := range links {
		counts[l.Source]++
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Source", "Articles"})
	// Fixed order keeps the output stable across runs.
	for _, source := range []string{"help", "developers", "partners"} {
		if n, ok := counts[source]; ok {
			t.AppendRow(table.Row{source, n})
		}
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
