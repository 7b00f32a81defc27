package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/pathok/admin-console/internal/models"
	"gopkg.in/yaml.v3"
)

func TestWriteParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.parquet")

	records := FromBooks([]models.Book{
		{ID: "b1", Title: "Sahih al-Bukhari", Author: "al-Bukhari", Type: "Hadith"},
		{ID: "b2", Title: "Tafsir Ibn Kathir", Author: "Ibn Kathir", Type: "Tafsir"},
	})

	if err := WriteParquet(path, records); err != nil {
		t.Fatalf("WriteParquet failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open parquet file: %v", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		t.Fatalf("Failed to stat parquet file: %v", err)
	}
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		t.Fatalf("Failed to open parquet: %v", err)
	}
	if pf.NumRows() != 2 {
		t.Errorf("Expected 2 rows, got %d", pf.NumRows())
	}
}

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.yaml")

	records := []BookRecord{
		{ID: "b1", Type: "Hadith"},
		{ID: "b2", Type: "Hadith"},
		{ID: "b3"},
	}

	if err := WriteSummary(path, "https://lkp.pathok.com.bd", "books.parquet", records); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read summary: %v", err)
	}
	var summary Summary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		t.Fatalf("Failed to parse summary: %v", err)
	}
	if summary.Books != 3 {
		t.Errorf("Expected 3 books, got %d", summary.Books)
	}
	if summary.Types["Hadith"] != 2 {
		t.Errorf("Expected 2 Hadith books, got %d", summary.Types["Hadith"])
	}
}
