package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"genaikit/internal/vectorstore"
)

func seedStore(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	client, err := vectorstore.Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer client.Close()

	col, err := client.CreateCollection("docs")
	if err != nil {
		t.Fatalf("CreateCollection failed: %v", err)
	}
	err = col.Add([]vectorstore.Record{
		{ID: "c1", Document: "Grüße aus Köln", Metadata: map[string]any{"source": "intro.md"}},
		{ID: "c2", Document: "second chunk", Metadata: map[string]any{"source": "intro.md"}},
		{ID: "c3", Document: "third chunk", Metadata: map[string]any{"source": "body.md"}},
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	return dir
}

func TestExportDatabaseStatsRoundTrip(t *testing.T) {
	dir := seedStore(t)
	outFile := filepath.Join(t.TempDir(), "stats.json")

	if err := ExportDatabaseStats(dir, outFile); err != nil {
		t.Fatalf("ExportDatabaseStats failed: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if _, ok := doc["timestamp"].(string); !ok {
		t.Error("missing timestamp")
	}
	summary, ok := doc["summary"].(map[string]any)
	if !ok {
		t.Fatal("missing summary")
	}
	if total := summary["total_chunks"].(float64); total != 3 {
		t.Errorf("summary.total_chunks = %v, want 3", total)
	}
	if total := summary["total_documents"].(float64); total != 2 {
		t.Errorf("summary.total_documents = %v, want 2", total)
	}
	collections, ok := doc["collections"].([]any)
	if !ok || len(collections) != 1 {
		t.Fatalf("collections = %v, want one entry", doc["collections"])
	}

	// Multi-byte characters stay literal
	if !strings.Contains(string(data), "Grüße aus Köln") {
		t.Error("non-ASCII text was escaped in export")
	}
}

func TestExportChunks(t *testing.T) {
	dir := seedStore(t)
	outFile := filepath.Join(t.TempDir(), "chunks.json")

	if err := ExportChunks("docs", dir, outFile, 2, false); err != nil {
		t.Fatalf("ExportChunks failed: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	var doc struct {
		Timestamp      string `json:"timestamp"`
		CollectionName string `json:"collection_name"`
		ExportSettings struct {
			Limit             int  `json:"limit"`
			IncludeEmbeddings bool `json:"include_embeddings"`
		} `json:"export_settings"`
		Summary struct {
			TotalChunksInCollection int `json:"total_chunks_in_collection"`
			ExportedChunks          int `json:"exported_chunks"`
		} `json:"summary"`
		Chunks []struct {
			ID string `json:"id"`
		} `json:"chunks"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if doc.CollectionName != "docs" {
		t.Errorf("collection_name = %q, want docs", doc.CollectionName)
	}
	if doc.ExportSettings.Limit != 2 {
		t.Errorf("export_settings.limit = %d, want 2", doc.ExportSettings.Limit)
	}
	if doc.Summary.TotalChunksInCollection != 3 || doc.Summary.ExportedChunks != 2 {
		t.Errorf("summary = %+v, want 3 total / 2 exported", doc.Summary)
	}
	if len(doc.Chunks) != 2 || doc.Chunks[0].ID != "c1" {
		t.Errorf("chunks = %+v, want c1 first of 2", doc.Chunks)
	}
}

func TestExportDatabaseStatsBadPath(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "stats.json")
	if err := ExportDatabaseStats("/nonexistent/store", outFile); err == nil {
		t.Fatal("expected error for nonexistent store path")
	}
	if _, err := os.Stat(outFile); !os.IsNotExist(err) {
		t.Error("export file created despite failure")
	}
}
