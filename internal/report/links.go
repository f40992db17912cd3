package report

import (
	"encoding/json"
	"fmt"
	"os"

	"docscrape/pkg/models"
)

// SaveLinks writes discovered links as a JSON array.
func SaveLinks(links []models.Link, path string) error {
	data, err := json.MarshalIndent(links, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write links file: %w", err)
	}
	return nil
}

// LoadLinks reads a links file written by SaveLinks.
func LoadLinks(path string) ([]models.Link, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read links file: %w", err)
	}
	var links []models.Link
	if err := json.Unmarshal(data, &links); err != nil {
		return nil, fmt.Errorf("parse links file %s: %w", path, err)
	}
	return links, nil
}

// FilterBySource keeps links whose portal name is in sources. Unknown
// source names are rejected.
func FilterBySource(links []models.Link, sources []string) ([]models.Link, error) {
	want := make(map[string]bool, len(sources))
	for _, s := range sources {
		if _, err := models.ParseSource(s); err != nil {
			return nil, err
		}
		want[s] = true
	}

	var filtered []models.Link
	for _, l := range links {
		if want[l.Source] {
			filtered = append(filtered, l)
		}
	}
	return filtered, nil
}
