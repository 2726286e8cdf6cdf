// Package stats computes descriptive statistics over vector store
// collections: chunk counts, inferred document counts, source
// breakdowns, size distributions, and client-side chunk browsing.
package stats

// UnknownSource is the sentinel bucket for chunks whose metadata has no
// source field. It counts as one synthetic document per collection.
const UnknownSource = "unknown source"

// CollectionStats holds the analysis result for one collection.
// Immutable once constructed; created per analysis call, not persisted.
type CollectionStats struct {
	Name          string         // Collection name
	ChunkCount    int            // Number of chunks (store entries)
	DocumentCount int            // Number of distinct source documents
	SourceStats   map[string]int // Chunks per source file
	MetadataKeys  []string       // Available metadata fields, sorted
	AvgChunkSize  float64        // Mean chunk size in characters
}

// ChunksPerDocument returns the mean number of chunks per document.
// Defined as 0.0 for an empty collection.
func (s *CollectionStats) ChunksPerDocument() float64 {
	if s.DocumentCount == 0 {
		return 0.0
	}
	return float64(s.ChunkCount) / float64(s.DocumentCount)
}

// SourceList returns all source files seen in the collection.
func (s *CollectionStats) SourceList() []string {
	sources := make([]string, 0, len(s.SourceStats))
	for source := range s.SourceStats {
		sources = append(sources, source)
	}
	return sources
}

// LargestSource returns the source with the most chunks. Ties resolve
// to the first maximum encountered; the underlying map order is not
// otherwise guaranteed.
func (s *CollectionStats) LargestSource() (string, int) {
	var best string
	var bestCount int
	for source, count := range s.SourceStats {
		if count > bestCount {
			best = source
			bestCount = count
		}
	}
	return best, bestCount
}

// Doc converts the stats to their export document shape.
func (s *CollectionStats) Doc() CollectionDoc {
	return CollectionDoc{
		Name:              s.Name,
		ChunkCount:        s.ChunkCount,
		DocumentCount:     s.DocumentCount,
		ChunksPerDocument: s.ChunksPerDocument(),
		AverageChunkSize:  s.AvgChunkSize,
		MetadataKeys:      s.MetadataKeys,
		SourceStatistics:  s.SourceStats,
	}
}

// CollectionDoc is the JSON shape of a collection's statistics as it
// appears in exports and comparisons.
type CollectionDoc struct {
	Name              string         `json:"name"`
	ChunkCount        int            `json:"chunk_count"`
	DocumentCount     int            `json:"document_count"`
	ChunksPerDocument float64        `json:"chunks_per_document"`
	AverageChunkSize  float64        `json:"average_chunk_size"`
	MetadataKeys      []string       `json:"metadata_keys"`
	SourceStatistics  map[string]int `json:"source_statistics"`
}

// DatabaseStats aggregates per-collection statistics for a whole store.
// Totals are independent sums over the member collections: a document
// appearing in two collections counts twice.
type DatabaseStats struct {
	Collections     []CollectionStats
	TotalChunks     int
	TotalDocuments  int
	CollectionCount int
}

// AvgChunksPerDocument returns the mean chunks per document across all
// collections, 0.0 when no documents were seen.
func (d *DatabaseStats) AvgChunksPerDocument() float64 {
	if d.TotalDocuments == 0 {
		return 0.0
	}
	return float64(d.TotalChunks) / float64(d.TotalDocuments)
}

// CollectionByName returns the stats for the named collection, or nil.
func (d *DatabaseStats) CollectionByName(name string) *CollectionStats {
	for i := range d.Collections {
		if d.Collections[i].Name == name {
			return &d.Collections[i]
		}
	}
	return nil
}

// LargestCollection returns the collection with the most chunks, or
// nil for an empty store.
func (d *DatabaseStats) LargestCollection() *CollectionStats {
	if len(d.Collections) == 0 {
		return nil
	}
	best := &d.Collections[0]
	for i := range d.Collections {
		if d.Collections[i].ChunkCount > best.ChunkCount {
			best = &d.Collections[i]
		}
	}
	return best
}

// QuickOverview is a fast store summary that skips the detail pass.
type QuickOverview struct {
	CollectionCount int      `json:"collection_count"`
	CollectionNames []string `json:"collection_names"`
	TotalChunks     int      `json:"total_chunks"`
	DatabasePath    string   `json:"database_path"`
}

// Comparison holds a side-by-side analysis of selected collections.
type Comparison struct {
	Collections []CollectionDoc   `json:"collections"`
	Summary     ComparisonSummary `json:"summary"`
}

// ComparisonSummary aggregates the compared collections. Averages are
// over the successfully analyzed collections only.
type ComparisonSummary struct {
	TotalChunks               int     `json:"total_chunks"`
	TotalDocuments            int     `json:"total_documents"`
	AnalyzedCollections       int     `json:"analyzed_collections"`
	AvgChunksPerCollection    float64 `json:"avg_chunks_per_collection"`
	AvgDocumentsPerCollection float64 `json:"avg_documents_per_collection"`
}
