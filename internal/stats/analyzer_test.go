package stats

import (
	"errors"
	"fmt"
	"testing"

	"genaikit/internal/vectorstore"
)

// seedCollection creates a store in a temp dir with one collection
// holding the given records. Returns the store path.
func seedCollection(t *testing.T, name string, records []vectorstore.Record) string {
	t.Helper()

	dir := t.TempDir()
	client, err := vectorstore.Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer client.Close()

	col, err := client.CreateCollection(name)
	if err != nil {
		t.Fatalf("CreateCollection failed: %v", err)
	}
	if len(records) > 0 {
		if err := col.Add(records); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	return dir
}

func docRecords() []vectorstore.Record {
	return []vectorstore.Record{
		{ID: "c1", Document: "alpha", Metadata: map[string]any{"source": "Report_2024.pdf", "page": float64(1)}},
		{ID: "c2", Document: "beta text", Metadata: map[string]any{"source": "Report_2024.pdf", "page": float64(2)}},
		{ID: "c3", Document: "gamma", Metadata: map[string]any{"source": "notes.md"}},
		{ID: "c4", Document: "delta longer chunk", Metadata: map[string]any{"page": float64(9)}},
		{ID: "c5", Document: "epsilon"},
	}
}

func TestAnalyzeCollection(t *testing.T) {
	dir := seedCollection(t, "docs", docRecords())

	stats, err := AnalyzeCollection("docs", dir)
	if err != nil {
		t.Fatalf("AnalyzeCollection failed: %v", err)
	}

	if stats.ChunkCount != 5 {
		t.Errorf("ChunkCount = %d, want 5", stats.ChunkCount)
	}
	// Sources: Report_2024.pdf, notes.md, plus the unknown bucket for
	// c4 (metadata without source) and c5 (no metadata at all).
	if stats.DocumentCount != 3 {
		t.Errorf("DocumentCount = %d, want 3", stats.DocumentCount)
	}
	if got := stats.SourceStats["Report_2024.pdf"]; got != 2 {
		t.Errorf("SourceStats[Report_2024.pdf] = %d, want 2", got)
	}
	if got := stats.SourceStats[UnknownSource]; got != 2 {
		t.Errorf("SourceStats[%s] = %d, want 2", UnknownSource, got)
	}

	wantKeys := []string{"page", "source"}
	if len(stats.MetadataKeys) != len(wantKeys) {
		t.Fatalf("MetadataKeys = %v, want %v", stats.MetadataKeys, wantKeys)
	}
	for i, key := range wantKeys {
		if stats.MetadataKeys[i] != key {
			t.Errorf("MetadataKeys[%d] = %q, want %q", i, stats.MetadataKeys[i], key)
		}
	}

	// alpha(5) + beta text(9) + gamma(5) + delta longer chunk(18) + epsilon(7) = 44
	if want := 44.0 / 5.0; stats.AvgChunkSize != want {
		t.Errorf("AvgChunkSize = %v, want %v", stats.AvgChunkSize, want)
	}

	source, count := stats.LargestSource()
	if count != 2 {
		t.Errorf("LargestSource count = %d, want 2", count)
	}
	if source != "Report_2024.pdf" && source != UnknownSource {
		t.Errorf("LargestSource = %q, want one of the 2-chunk sources", source)
	}
}

func TestAnalyzeCollectionEmpty(t *testing.T) {
	dir := seedCollection(t, "empty", nil)

	stats, err := AnalyzeCollection("empty", dir)
	if err != nil {
		t.Fatalf("AnalyzeCollection failed: %v", err)
	}
	if stats.ChunkCount != 0 || stats.DocumentCount != 0 {
		t.Errorf("empty collection stats = %+v, want zero counts", stats)
	}
	if stats.ChunksPerDocument() != 0.0 {
		t.Errorf("ChunksPerDocument = %v, want 0.0", stats.ChunksPerDocument())
	}
	if stats.AvgChunkSize != 0.0 {
		t.Errorf("AvgChunkSize = %v, want 0.0", stats.AvgChunkSize)
	}
}

func TestAnalyzeCollectionMissing(t *testing.T) {
	dir := seedCollection(t, "docs", nil)

	_, err := AnalyzeCollection("nope", dir)
	if !errors.Is(err, vectorstore.ErrCollectionNotFound) {
		t.Fatalf("err = %v, want ErrCollectionNotFound", err)
	}
}

func TestAnalyzeCollectionPathNotFound(t *testing.T) {
	_, err := AnalyzeCollection("docs", "/nonexistent/store/path")
	if !errors.Is(err, vectorstore.ErrPathNotFound) {
		t.Fatalf("err = %v, want ErrPathNotFound", err)
	}
}

func TestAnalyzeDatabase(t *testing.T) {
	dir := t.TempDir()
	client, err := vectorstore.Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	first, _ := client.CreateCollection("first")
	if err := first.Add(docRecords()); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	second, _ := client.CreateCollection("second")
	if err := second.Add([]vectorstore.Record{
		{ID: "x1", Document: "one", Metadata: map[string]any{"source": "a.txt"}},
		{ID: "x2", Document: "two", Metadata: map[string]any{"source": "b.txt"}},
	}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	client.Close()

	db, err := AnalyzeDatabase(dir)
	if err != nil {
		t.Fatalf("AnalyzeDatabase failed: %v", err)
	}
	if db.CollectionCount != 2 {
		t.Errorf("CollectionCount = %d, want 2", db.CollectionCount)
	}
	if db.TotalChunks != 7 {
		t.Errorf("TotalChunks = %d, want 7", db.TotalChunks)
	}
	if db.TotalDocuments != 5 {
		t.Errorf("TotalDocuments = %d, want 5", db.TotalDocuments)
	}
	if db.CollectionByName("second") == nil {
		t.Error("CollectionByName(second) = nil")
	}
	if db.CollectionByName("ghost") != nil {
		t.Error("CollectionByName(ghost) != nil")
	}
	if largest := db.LargestCollection(); largest == nil || largest.Name != "first" {
		t.Errorf("LargestCollection = %v, want first", largest)
	}
}

func TestQuickStats(t *testing.T) {
	dir := seedCollection(t, "docs", docRecords())

	overview, err := QuickStats(dir)
	if err != nil {
		t.Fatalf("QuickStats failed: %v", err)
	}
	if overview.CollectionCount != 1 {
		t.Errorf("CollectionCount = %d, want 1", overview.CollectionCount)
	}
	if overview.TotalChunks != 5 {
		t.Errorf("TotalChunks = %d, want 5", overview.TotalChunks)
	}
	if overview.DatabasePath != dir {
		t.Errorf("DatabasePath = %q, want %q", overview.DatabasePath, dir)
	}
}

func TestCompareCollections(t *testing.T) {
	dir := t.TempDir()
	client, err := vectorstore.Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	a, _ := client.CreateCollection("a")
	a.Add([]vectorstore.Record{
		{ID: "1", Document: "aa", Metadata: map[string]any{"source": "x"}},
		{ID: "2", Document: "bb", Metadata: map[string]any{"source": "x"}},
	})
	b, _ := client.CreateCollection("b")
	b.Add([]vectorstore.Record{
		{ID: "1", Document: "cc", Metadata: map[string]any{"source": "y"}},
	})
	client.Close()

	cmp, err := CompareCollections(dir, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("CompareCollections failed: %v", err)
	}
	if cmp.Summary.AnalyzedCollections != 2 {
		t.Errorf("AnalyzedCollections = %d, want 2 (missing skipped)", cmp.Summary.AnalyzedCollections)
	}
	if cmp.Summary.TotalChunks != 3 {
		t.Errorf("TotalChunks = %d, want 3", cmp.Summary.TotalChunks)
	}
	if want := 1.5; cmp.Summary.AvgChunksPerCollection != want {
		t.Errorf("AvgChunksPerCollection = %v, want %v", cmp.Summary.AvgChunksPerCollection, want)
	}
}

func TestCompareCollectionsNoNames(t *testing.T) {
	dir := seedCollection(t, "docs", nil)
	if _, err := CompareCollections(dir, nil); err == nil {
		t.Fatal("expected error for empty name list")
	}
}

func TestChunksPerDocumentRatio(t *testing.T) {
	records := make([]vectorstore.Record, 0, 6)
	for i := 0; i < 6; i++ {
		records = append(records, vectorstore.Record{
			ID:       fmt.Sprintf("c%d", i),
			Document: "text",
			Metadata: map[string]any{"source": fmt.Sprintf("doc%d.pdf", i%3)},
		})
	}
	dir := seedCollection(t, "ratio", records)

	stats, err := AnalyzeCollection("ratio", dir)
	if err != nil {
		t.Fatalf("AnalyzeCollection failed: %v", err)
	}
	if want := 2.0; stats.ChunksPerDocument() != want {
		t.Errorf("ChunksPerDocument = %v, want %v", stats.ChunksPerDocument(), want)
	}
}
