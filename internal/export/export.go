// Package export writes platform book records to a parquet dataset with a
// yaml run summary, for offline analysis of the catalog.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/pathok/admin-console/internal/models"
	"gopkg.in/yaml.v3"
)

// BookRecord is one parquet row of the exported dataset.
type BookRecord struct {
	ID        string `parquet:"id" json:"id"`
	Title     string `parquet:"title" json:"title"`
	Author    string `parquet:"author" json:"author"`
	Editor    string `parquet:"editor" json:"editor"`
	Publisher string `parquet:"publisher" json:"publisher"`
	Type      string `parquet:"type" json:"type"`
	Category  string `parquet:"category" json:"category"`
}

// FromBooks converts platform books to export rows.
func FromBooks(books []models.Book) []BookRecord {
	records := make([]BookRecord, 0, len(books))
	for _, b := range books {
		records = append(records, BookRecord{
			ID:        b.ID,
			Title:     b.Title,
			Author:    b.Author,
			Editor:    b.Editor,
			Publisher: b.Publisher,
			Type:      b.Type,
			Category:  b.Category,
		})
	}
	return records
}

// WriteParquet writes the records to a parquet file at path.
func WriteParquet(path string, records []BookRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[BookRecord](file)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	slog.Info("Wrote parquet dataset", "path", path, "rows", len(records))
	return nil
}

// SummaryConfig records how the export was produced.
type SummaryConfig struct {
	BaseURL     string `yaml:"baseurl"`
	DatasetPath string `yaml:"datasetpath"`
	Timestamp   string `yaml:"timestamp"`
}

// Summary is the yaml summary written next to the parquet dataset.
type Summary struct {
	Config SummaryConfig  `yaml:"config"`
	Books  int            `yaml:"books"`
	Types  map[string]int `yaml:"types,omitempty"`
}

// WriteSummary writes a yaml summary of an export run.
func WriteSummary(path, baseURL, datasetPath string, records []BookRecord) error {
	summary := Summary{
		Config: SummaryConfig{
			BaseURL:     baseURL,
			DatasetPath: datasetPath,
			Timestamp:   time.Now().Format("2006-01-02_15-04-05"),
		},
		Books: len(records),
	}

	for _, r := range records {
		if r.Type == "" {
			continue
		}
		if summary.Types == nil {
			summary.Types = make(map[string]int)
		}
		summary.Types[r.Type]++
	}

	data, err := yaml.Marshal(&summary)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	slog.Info("Wrote export summary", "path", path)
	return nil
}
