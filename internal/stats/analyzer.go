package stats

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"genaikit/internal/logging"
	"genaikit/internal/vectorstore"
)

// AnalyzeCollection computes full statistics for one collection.
// Opens a fresh store client for the call and closes it before
// returning. A collection with zero chunks yields zero-valued stats
// rather than an error. When the bulk detail fetch fails after a
// successful count, the result degrades to count-only stats with an
// empty source breakdown.
func AnalyzeCollection(collectionName, dbPath string) (*CollectionStats, error) {
	timer := logging.StartTimer(logging.CategoryStats, "AnalyzeCollection")
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

	count, err := col.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count collection %q: %w", collectionName, err)
	}

	stats := &CollectionStats{
		Name:         collectionName,
		ChunkCount:   count,
		SourceStats:  map[string]int{},
		MetadataKeys: []string{},
	}
	if count == 0 {
		return stats, nil
	}

	res, err := col.Get(vectorstore.GetOptions{
		IncludeMetadata:  true,
		IncludeDocuments: true,
	})
	if err != nil {
		// Counting worked but details did not. Keep what we have
		// instead of failing the whole analysis.
		logging.Stats("Detail fetch failed for %q, returning count-only stats: %v", collectionName, err)
		return stats, nil
	}

	keySet := map[string]bool{}
	for _, meta := range res.Metadatas {
		source := UnknownSource
		for key, value := range meta {
			keySet[key] = true
			if key == "source" {
				if s, ok := value.(string); ok {
					source = s
				} else {
					source = fmt.Sprintf("%v", value)
				}
			}
		}
		stats.SourceStats[source]++
	}
	stats.DocumentCount = len(stats.SourceStats)

	for key := range keySet {
		stats.MetadataKeys = append(stats.MetadataKeys, key)
	}
	sort.Strings(stats.MetadataKeys)

	if len(res.Documents) > 0 {
		total := 0
		for _, doc := range res.Documents {
			total += utf8.RuneCountInString(doc)
		}
		stats.AvgChunkSize = float64(total) / float64(len(res.Documents))
	}

	logging.StatsDebug("Analyzed collection %q: %d chunks, %d documents",
		collectionName, stats.ChunkCount, stats.DocumentCount)
	return stats, nil
}

// AnalyzeDatabase analyzes every collection in the store and aggregates
// the results. A collection whose analysis fails is skipped with a log
// entry; the remaining collections still produce a result.
func AnalyzeDatabase(dbPath string) (*DatabaseStats, error) {
	timer := logging.StartTimer(logging.CategoryStats, "AnalyzeDatabase")
	defer timer.Stop()

	names, err := ListCollections(dbPath)
	if err != nil {
		return nil, err
	}

	db := &DatabaseStats{}
	for _, name := range names {
		cs, err := AnalyzeCollection(name, dbPath)
		if err != nil {
			logging.Stats("Skipping collection %q: %v", name, err)
			continue
		}
		db.Collections = append(db.Collections, *cs)
		db.TotalChunks += cs.ChunkCount
		db.TotalDocuments += cs.DocumentCount
	}
	db.CollectionCount = len(db.Collections)

	logging.Stats("Analyzed store %s: %d collections, %d chunks",
		dbPath, db.CollectionCount, db.TotalChunks)
	return db, nil
}

// ListCollections returns the names of all collections in the store.
func ListCollections(dbPath string) ([]string, error) {
	client, err := vectorstore.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer client.Close()
	return client.ListCollections()
}

// QuickStats returns a fast store overview: collection names and the
// summed chunk count, without the per-source detail pass.
func QuickStats(dbPath string) (*QuickOverview, error) {
	client, err := vectorstore.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	names, err := client.ListCollections()
	if err != nil {
		return nil, err
	}

	overview := &QuickOverview{
		CollectionCount: len(names),
		CollectionNames: names,
		DatabasePath:    dbPath,
	}
	for _, name := range names {
		col, err := client.Collection(name)
		if err != nil {
			logging.Stats("Skipping collection %q: %v", name, err)
			continue
		}
		count, err := col.Count()
		if err != nil {
			logging.Stats("Skipping collection %q: %v", name, err)
			continue
		}
		overview.TotalChunks += count
	}
	return overview, nil
}

// CompareCollections analyzes the named collections side by side.
// Collections that fail to analyze are skipped; summary averages are
// over the analyzed collections only. At least one name is required.
func CompareCollections(dbPath string, names []string) (*Comparison, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no collections given to compare")
	}

	cmp := &Comparison{}
	for _, name := range names {
		cs, err := AnalyzeCollection(name, dbPath)
		if err != nil {
			logging.Stats("Skipping collection %q in comparison: %v", name, err)
			continue
		}
		cmp.Collections = append(cmp.Collections, cs.Doc())
		cmp.Summary.TotalChunks += cs.ChunkCount
		cmp.Summary.TotalDocuments += cs.DocumentCount
	}

	n := len(cmp.Collections)
	cmp.Summary.AnalyzedCollections = n
	if n > 0 {
		cmp.Summary.AvgChunksPerCollection = float64(cmp.Summary.TotalChunks) / float64(n)
		cmp.Summary.AvgDocumentsPerCollection = float64(cmp.Summary.TotalDocuments) / float64(n)
	}
	return cmp, nil
}
