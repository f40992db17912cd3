package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"docscrape/pkg/models"
)

// BuildSummary wraps extraction results in the summary header used by
// the results JSON file.
func BuildSummary(results []models.Article) models.Summary {
	successful := 0
	totalWords := 0
	for _, r := range results {
		if r.Success {
			successful++
			totalWords += r.WordCount
		}
	}

	avgWords := 0.0
	if successful > 0 {
		avgWords = float64(totalWords) / float64(successful)
	}

	return models.Summary{
		ExtractionSummary: models.ExtractionSummary{
			TotalArticles:         len(results),
			SuccessfulExtractions: successful,
			FailedExtractions:     len(results) - successful,
			AverageWordCount:      avgWords,
			ExtractionTimestamp:   time.Now().Format(time.RFC3339),
		},
		Articles: results,
	}
}

// WriteResults saves <prefix>_complete.json with every record and
// <prefix>_summary.csv with the successful ones. It returns both paths.
func WriteResults(results []models.Article, prefix string) (string, string, error) {
	jsonPath := prefix + "_complete.json"
	csvPath := prefix + "_summary.csv"

	data, err := json.MarshalIndent(BuildSummary(results), "", "  ")
	if err != nil {
		return "", "", err
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("write results JSON: %w", err)
	}

	f, err := os.Create(csvPath)
	if err != nil {
		return "", "", fmt.Errorf("create results CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"URL", "Title", "Word Count", "Last Modified", "Extracted At", "Breadcrumbs", "Section Count"}
	if err := w.Write(header); err != nil {
		return "", "", err
	}
	for _, a := range results {
		if !a.Success {
			continue
		}
		row := []string{
			a.URL,
			a.Title,
			strconv.Itoa(a.WordCount),
			a.LastModified,
			a.ExtractedAt,
			strings.Join(a.Breadcrumbs, " > "),
			strconv.Itoa(len(a.Sections)),
		}
		if err := w.Write(row); err != nil {
			return "", "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", "", fmt.Errorf("write results CSV: %w", err)
	}

	return jsonPath, csvPath, nil
}

// LoadSummary reads a results JSON file back, as written by WriteResults.
func LoadSummary(path string) (models.Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Summary{}, fmt.Errorf("read results file: %w", err)
	}
	var summary models.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return models.Summary{}, fmt.Errorf("parse results file %s: %w", path, err)
	}
	return summary, nil
}
