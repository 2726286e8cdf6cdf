package vectorstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"genaikit/internal/logging"
)

// Collection is a named partition of the store holding chunk records.
type Collection struct {
	db   *sql.DB
	id   int64
	name string
}

// Record is one chunk as stored: a text fragment with its metadata and
// an optional embedding vector.
type Record struct {
	ID        string
	Document  string
	Metadata  map[string]any
	Embedding []float32
}

// GetOptions selects which record fields a Get call returns.
// The store always returns IDs; metadata, documents and embeddings are
// included on request only, mirroring the include parameter of the
// backing client API.
type GetOptions struct {
	IDs               []string // optional exact-ID filter
	IncludeMetadata   bool
	IncludeDocuments  bool
	IncludeEmbeddings bool
}

// GetResult holds the outcome of a bulk fetch. Slices are parallel:
// index i in each describes the same record. Excluded fields are nil.
type GetResult struct {
	IDs        []string
	Metadatas  []map[string]any
	Documents  []string
	Embeddings [][]float32
}

// Name returns the collection name.
func (col *Collection) Name() string {
	return col.name
}

// Count returns the number of records in the collection.
func (col *Collection) Count() (int, error) {
	var n int
	err := col.db.QueryRow(
		"SELECT COUNT(*) FROM records WHERE collection_id = ?", col.id,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

// Get fetches records in one bulk call. Record order follows insertion
// order (position), which is the store's implementation-defined order.
func (col *Collection) Get(opts GetOptions) (*GetResult, error) {
	timer := logging.StartTimer(logging.CategoryStore, "Collection.Get")
	defer timer.Stop()

	query := "SELECT id, metadata, document, embedding FROM records WHERE collection_id = ?"
	args := []any{col.id}

	if len(opts.IDs) > 0 {
		placeholders := strings.Repeat("?,", len(opts.IDs))
		query += " AND id IN (" + placeholders[:len(placeholders)-1] + ")"
		for _, id := range opts.IDs {
			args = append(args, id)
		}
	}
	query += " ORDER BY position, id"

	rows, err := col.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	defer rows.Close()

	result := &GetResult{}
	for rows.Next() {
		var id string
		var metaJSON, document, embeddingJSON sql.NullString
		if err := rows.Scan(&id, &metaJSON, &document, &embeddingJSON); err != nil {
			return nil, err
		}

		result.IDs = append(result.IDs, id)

		if opts.IncludeMetadata {
			var meta map[string]any
			if metaJSON.Valid && metaJSON.String != "" {
				if err := json.Unmarshal([]byte(metaJSON.String), &meta); err != nil {
					logging.StoreDebug("Skipping malformed metadata for record %s: %v", id, err)
					meta = nil
				}
			}
			result.Metadatas = append(result.Metadatas, meta)
		}

		if opts.IncludeDocuments {
			result.Documents = append(result.Documents, document.String)
		}

		if opts.IncludeEmbeddings {
			var vec []float32
			if embeddingJSON.Valid && embeddingJSON.String != "" {
				if err := json.Unmarshal([]byte(embeddingJSON.String), &vec); err != nil {
					logging.StoreDebug("Skipping malformed embedding for record %s: %v", id, err)
					vec = nil
				}
			}
			result.Embeddings = append(result.Embeddings, vec)
		}
	}

	return result, rows.Err()
}

// Add inserts records into the collection, preserving insertion order.
// Used by seeding and by tests.
func (col *Collection) Add(records []Record) error {
	tx, err := col.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRow(
		"SELECT COALESCE(MAX(position), -1) + 1 FROM records WHERE collection_id = ?", col.id,
	).Scan(&next); err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		"INSERT OR REPLACE INTO records (collection_id, id, document, metadata, embedding, position) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, rec := range records {
		var metaJSON, embeddingJSON any
		if rec.Metadata != nil {
			data, err := json.Marshal(rec.Metadata)
			if err != nil {
				return fmt.Errorf("failed to serialize metadata for %s: %w", rec.ID, err)
			}
			metaJSON = string(data)
		}
		if rec.Embedding != nil {
			data, err := json.Marshal(rec.Embedding)
			if err != nil {
				return fmt.Errorf("failed to serialize embedding for %s: %w", rec.ID, err)
			}
			embeddingJSON = string(data)
		}

		if _, err := stmt.Exec(col.id, rec.ID, rec.Document, metaJSON, embeddingJSON, next+i); err != nil {
			return fmt.Errorf("failed to insert record %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logging.StoreDebug("Added %d records to collection %s", len(records), col.name)
	return nil
}
