// Package report renders statistics for the console and serializes
// them to JSON export files.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"genaikit/internal/logging"
	"genaikit/internal/stats"
)

// statsExport is the on-disk shape of a database statistics export.
type statsExport struct {
	Timestamp    string                `json:"timestamp"`
	DatabasePath string                `json:"database_path"`
	Summary      statsSummary          `json:"summary"`
	Collections  []stats.CollectionDoc `json:"collections"`
}

type statsSummary struct {
	TotalCollections     int     `json:"total_collections"`
	TotalDocuments       int     `json:"total_documents"`
	TotalChunks          int     `json:"total_chunks"`
	AvgChunksPerDocument float64 `json:"avg_chunks_per_document"`
}

// chunksExport is the on-disk shape of a chunk export.
type chunksExport struct {
	Timestamp      string        `json:"timestamp"`
	CollectionName string        `json:"collection_name"`
	DatabasePath   string        `json:"database_path"`
	ExportSettings exportSettings `json:"export_settings"`
	Summary        chunksSummary `json:"summary"`
	Chunks         []stats.Chunk `json:"chunks"`
}

type exportSettings struct {
	Limit             int  `json:"limit"`
	IncludeEmbeddings bool `json:"include_embeddings"`
}

type chunksSummary struct {
	TotalChunksInCollection int `json:"total_chunks_in_collection"`
	ExportedChunks          int `json:"exported_chunks"`
}

// ExportDatabaseStats analyzes the whole store and writes the result
// to a JSON file with an ISO-8601 timestamp.
func ExportDatabaseStats(dbPath, outputFile string) error {
	db, err := stats.AnalyzeDatabase(dbPath)
	if err != nil {
		return err
	}

	doc := statsExport{
		Timestamp:    time.Now().Format(time.RFC3339),
		DatabasePath: dbPath,
		Summary: statsSummary{
			TotalCollections:     db.CollectionCount,
			TotalDocuments:       db.TotalDocuments,
			TotalChunks:          db.TotalChunks,
			AvgChunksPerDocument: db.AvgChunksPerDocument(),
		},
		Collections: make([]stats.CollectionDoc, 0, len(db.Collections)),
	}
	for i := range db.Collections {
		doc.Collections = append(doc.Collections, db.Collections[i].Doc())
	}

	if err := writeJSON(outputFile, doc); err != nil {
		logging.Export("Stats export to %s failed: %v", outputFile, err)
		return err
	}
	logging.Export("Exported stats for %d collections to %s", db.CollectionCount, outputFile)
	return nil
}

// ExportChunks writes the chunks of a collection to a JSON file.
// A limit of 0 exports all chunks.
func ExportChunks(collectionName, dbPath, outputFile string, limit int, includeEmbeddings bool) error {
	page, err := stats.GetChunks(collectionName, dbPath, limit, 0, includeEmbeddings)
	if err != nil {
		return err
	}

	doc := chunksExport{
		Timestamp:      time.Now().Format(time.RFC3339),
		CollectionName: collectionName,
		DatabasePath:   dbPath,
		ExportSettings: exportSettings{
			Limit:             limit,
			IncludeEmbeddings: includeEmbeddings,
		},
		Summary: chunksSummary{
			TotalChunksInCollection: page.TotalChunks,
			ExportedChunks:          len(page.Chunks),
		},
		Chunks: page.Chunks,
	}

	if err := writeJSON(outputFile, doc); err != nil {
		logging.Export("Chunk export to %s failed: %v", outputFile, err)
		return err
	}
	logging.Export("Exported %d chunks from %q to %s", len(page.Chunks), collectionName, outputFile)
	return nil
}

// writeJSON writes v as indented UTF-8 JSON. HTML escaping is disabled
// so non-ASCII and angle-bracket characters stay literal in the file.
func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
