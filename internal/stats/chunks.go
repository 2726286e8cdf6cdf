package stats

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"genaikit/internal/logging"
	"genaikit/internal/vectorstore"
)

// Chunk is one store record prepared for browsing: the raw record plus
// derived fields (character size, position in the collection).
type Chunk struct {
	ID            string         `json:"id"`
	Metadata      map[string]any `json:"metadata"`
	Document      string         `json:"document"`
	ChunkSize     int            `json:"chunk_size"`
	Index         int            `json:"index"`
	Embedding     []float32      `json:"embedding,omitempty"`
	EmbeddingSize int            `json:"embedding_size,omitempty"`
}

// Pagination describes the window a ChunkPage covers.
type Pagination struct {
	Offset        int  `json:"offset"`
	Limit         int  `json:"limit"`
	ReturnedCount int  `json:"returned_count"`
	HasMore       bool `json:"has_more"`
}

// ChunkPage is one page of chunks from a collection.
type ChunkPage struct {
	CollectionName string     `json:"collection_name"`
	TotalChunks    int        `json:"total_chunks"`
	Chunks         []Chunk    `json:"chunks"`
	Pagination     Pagination `json:"pagination"`
}

// GetChunks fetches a page of chunks from a collection. The store API
// has no server-side paging, so the full collection is fetched and the
// window is cut client-side. A limit of 0 means all chunks from offset
// onward, with HasMore always false. Embeddings are only fetched and
// attached when requested.
func GetChunks(collectionName, dbPath string, limit, offset int, includeEmbeddings bool) (*ChunkPage, error) {
	timer := logging.StartTimer(logging.CategoryStats, "GetChunks")
	defer timer.Stop()

	client, err := vectorstore.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	col, err := client.Collection(collectionName)
	if err != nil {
		return nil, err
	}

	total, err := col.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count collection %q: %w", collectionName, err)
	}

	page := &ChunkPage{
		CollectionName: collectionName,
		TotalChunks:    total,
		Chunks:         []Chunk{},
		Pagination:     Pagination{Limit: limit},
	}
	if total == 0 {
		return page, nil
	}

	res, err := col.Get(vectorstore.GetOptions{
		IncludeMetadata:   true,
		IncludeDocuments:  true,
		IncludeEmbeddings: includeEmbeddings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chunks from %q: %w", collectionName, err)
	}

	if offset < 0 {
		offset = 0
	}
	end := len(res.IDs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	for i := offset; i < end; i++ {
		chunk := Chunk{
			ID:    res.IDs[i],
			Index: i,
		}
		if i < len(res.Metadatas) {
			chunk.Metadata = res.Metadatas[i]
		}
		if i < len(res.Documents) {
			chunk.Document = res.Documents[i]
			chunk.ChunkSize = utf8.RuneCountInString(res.Documents[i])
		}
		if includeEmbeddings && i < len(res.Embeddings) {
			chunk.Embedding = res.Embeddings[i]
			chunk.EmbeddingSize = len(res.Embeddings[i])
		}
		page.Chunks = append(page.Chunks, chunk)
	}

	page.Pagination.Offset = offset
	page.Pagination.ReturnedCount = len(page.Chunks)
	page.Pagination.HasMore = limit > 0 && end < len(res.IDs)

	logging.StatsDebug("Fetched %d/%d chunks from %q (offset=%d, limit=%d)",
		len(page.Chunks), total, collectionName, offset, limit)
	return page, nil
}

// SearchBySource returns all chunks whose metadata source contains the
// filter, matched case-insensitively. An empty result is not an error.
func SearchBySource(collectionName, dbPath, sourceFilter string) ([]Chunk, error) {
	page, err := GetChunks(collectionName, dbPath, 0, 0, false)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(sourceFilter)
	matched := []Chunk{}
	for _, chunk := range page.Chunks {
		source, _ := chunk.Metadata["source"].(string)
		if strings.Contains(strings.ToLower(source), needle) {
			matched = append(matched, chunk)
		}
	}

	logging.StatsDebug("Source search %q in %q matched %d of %d chunks",
		sourceFilter, collectionName, len(matched), len(page.Chunks))
	return matched, nil
}

// GetChunkByID fetches a single chunk by its record ID.
// Returns (nil, nil) when the ID does not exist in the collection.
func GetChunkByID(collectionName, dbPath, chunkID string) (*Chunk, error) {
	client, err := vectorstore.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	col, err := client.Collection(collectionName)
	if err != nil {
		return nil, err
	}

	res, err := col.Get(vectorstore.GetOptions{
		IDs:              []string{chunkID},
		IncludeMetadata:  true,
		IncludeDocuments: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chunk %q: %w", chunkID, err)
	}
	if len(res.IDs) == 0 {
		return nil, nil
	}

	chunk := &Chunk{ID: res.IDs[0]}
	if len(res.Metadatas) > 0 {
		chunk.Metadata = res.Metadatas[0]
	}
	if len(res.Documents) > 0 {
		chunk.Document = res.Documents[0]
		chunk.ChunkSize = utf8.RuneCountInString(res.Documents[0])
	}
	return chunk, nil
}
