package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"genaikit/internal/stats"
)

// Console styles, shared across all report writers.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Display truncation limits, in characters.
const (
	previewLimit  = 200
	metadataLimit = 100
	topSources    = 5
)

func field(w io.Writer, label string, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(label+":"), valueStyle.Render(fmt.Sprintf(format, args...)))
}

// WriteCollectionSummary renders one collection's statistics with its
// five largest sources.
func WriteCollectionSummary(w io.Writer, s *stats.CollectionStats) {
	fmt.Fprintf(w, "\n%s\n", titleStyle.Render(fmt.Sprintf("Collection %q", s.Name)))
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("=", 50)))
	field(w, "Documents (files)", "%d", s.DocumentCount)
	field(w, "Chunks", "%d", s.ChunkCount)

	if s.ChunkCount == 0 {
		fmt.Fprintln(w, warnStyle.Render("Collection is empty"))
		return
	}

	field(w, "Chunks per document", "%.1f", s.ChunksPerDocument())
	field(w, "Avg chunk size", "%.0f chars", s.AvgChunkSize)

	if len(s.SourceStats) > 0 {
		fmt.Fprintf(w, "\n%s\n", sectionStyle.Render(fmt.Sprintf("Source files (%d)", len(s.SourceStats))))
		sources := sortedSources(s.SourceStats)
		shown := sources
		if len(shown) > topSources {
			shown = shown[:topSources]
		}
		for _, sc := range shown {
			percentage := float64(sc.count) / float64(s.ChunkCount) * 100
			fmt.Fprintf(w, "  %s %s\n",
				valueStyle.Render(sc.source),
				dimStyle.Render(fmt.Sprintf("%d chunks (%.1f%%)", sc.count, percentage)))
		}
		if len(sources) > topSources {
			fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  ... and %d more", len(sources)-topSources)))
		}
	}

	if len(s.MetadataKeys) > 0 {
		fmt.Fprintf(w, "\n%s %s\n",
			labelStyle.Render("Metadata fields:"),
			valueStyle.Render(strings.Join(s.MetadataKeys, ", ")))
	}
}

// WriteDatabaseStats renders the store-wide overview followed by
// per-collection details.
func WriteDatabaseStats(w io.Writer, db *stats.DatabaseStats, detailed bool) {
	if len(db.Collections) == 0 {
		fmt.Fprintln(w, warnStyle.Render("No collections found in this store"))
		return
	}

	fmt.Fprintf(w, "\n%s\n", titleStyle.Render("STORE STATISTICS"))
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("=", 60)))
	field(w, "Collections", "%d", db.CollectionCount)
	field(w, "Total documents (files)", "%d", db.TotalDocuments)
	field(w, "Total chunks", "%d", db.TotalChunks)
	if db.TotalDocuments > 0 {
		field(w, "Avg chunks per document", "%.1f", db.AvgChunksPerDocument())
	}

	fmt.Fprintf(w, "\n%s\n", titleStyle.Render("COLLECTION DETAILS"))
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("=", 60)))

	for i := range db.Collections {
		s := &db.Collections[i]
		fmt.Fprintf(w, "\n%s\n", sectionStyle.Render(fmt.Sprintf("%d. %q", i+1, s.Name)))
		field(w, "  Documents", "%d", s.DocumentCount)
		field(w, "  Chunks", "%d", s.ChunkCount)

		if s.ChunkCount == 0 {
			fmt.Fprintln(w, warnStyle.Render("  Collection is empty"))
			continue
		}
		if s.DocumentCount > 0 {
			field(w, "  Chunks per document", "%.1f", s.ChunksPerDocument())
		}
		if !detailed {
			continue
		}

		field(w, "  Avg chunk size", "%.1f chars", s.AvgChunkSize)
		if len(s.MetadataKeys) > 0 {
			field(w, "  Metadata fields", "%s", strings.Join(s.MetadataKeys, ", "))
		}
		if len(s.SourceStats) > 0 {
			fmt.Fprintln(w, labelStyle.Render("  Chunks per source:"))
			for _, sc := range sortedSourcesByName(s.SourceStats) {
				percentage := float64(sc.count) / float64(s.ChunkCount) * 100
				fmt.Fprintf(w, "    %s %s\n",
					valueStyle.Render(sc.source),
					dimStyle.Render(fmt.Sprintf("%d chunks (%.1f%%)", sc.count, percentage)))
			}
		} else {
			fmt.Fprintln(w, warnStyle.Render("  No source information found"))
		}
	}
}

// WriteQuickOverview renders the fast store summary.
func WriteQuickOverview(w io.Writer, overview *stats.QuickOverview) {
	fmt.Fprintf(w, "\n%s\n", titleStyle.Render("Quick overview"))
	field(w, "Collections", "%d", overview.CollectionCount)
	field(w, "Total chunks", "%d", overview.TotalChunks)
	if len(overview.CollectionNames) > 0 {
		field(w, "Names", "%s", strings.Join(overview.CollectionNames, ", "))
	}
	fmt.Fprintln(w, dimStyle.Render(overview.DatabasePath))
}

// WriteChunks renders a page of chunks. Document text is cut to a
// 200-character preview unless fullText is set; string metadata values
// are cut to 100 characters.
func WriteChunks(w io.Writer, page *stats.ChunkPage, fullText bool) {
	fmt.Fprintf(w, "\n%s\n", titleStyle.Render(fmt.Sprintf("CHUNKS OF COLLECTION %q", page.CollectionName)))
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("=", 60)))
	field(w, "Total chunks", "%d", page.TotalChunks)
	field(w, "Shown", "%d", page.Pagination.ReturnedCount)
	if page.Pagination.HasMore {
		fmt.Fprintln(w, dimStyle.Render("More chunks available"))
	}
	if len(page.Chunks) == 0 {
		fmt.Fprintln(w, warnStyle.Render("No chunks found"))
		return
	}

	for i := range page.Chunks {
		chunk := &page.Chunks[i]
		fmt.Fprintf(w, "\n%s\n", sectionStyle.Render(fmt.Sprintf("Chunk %d (index %d)", i+1, chunk.Index)))
		fmt.Fprintln(w, dimStyle.Render(strings.Repeat("-", 40)))
		writeChunkBody(w, chunk, fullText)
	}
}

// WriteChunk renders a single chunk with full text.
func WriteChunk(w io.Writer, chunk *stats.Chunk) {
	fmt.Fprintf(w, "\n%s\n", titleStyle.Render(fmt.Sprintf("Chunk %s", chunk.ID)))
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("-", 40)))
	writeChunkBody(w, chunk, true)
}

func writeChunkBody(w io.Writer, chunk *stats.Chunk, fullText bool) {
	if chunk.ID != "" {
		field(w, "ID", "%s", chunk.ID)
	}
	if chunk.Document != "" {
		if fullText {
			fmt.Fprintf(w, "%s\n  %s\n",
				labelStyle.Render(fmt.Sprintf("Text (%d chars):", chunk.ChunkSize)), chunk.Document)
		} else {
			fmt.Fprintf(w, "%s\n  %s\n",
				labelStyle.Render(fmt.Sprintf("Preview (%d chars):", chunk.ChunkSize)),
				truncate(chunk.Document, previewLimit))
		}
	} else {
		fmt.Fprintln(w, warnStyle.Render("No document text"))
	}
	if len(chunk.Metadata) > 0 {
		fmt.Fprintln(w, labelStyle.Render("Metadata:"))
		keys := make([]string, 0, len(chunk.Metadata))
		for key := range chunk.Metadata {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			value := fmt.Sprintf("%v", chunk.Metadata[key])
			fmt.Fprintf(w, "  %s: %s\n", key, truncate(value, metadataLimit))
		}
	}
	if chunk.EmbeddingSize > 0 {
		field(w, "Embedding dimensions", "%d", chunk.EmbeddingSize)
	}
}

// WriteSizeStats renders the size analysis with a percentage bar per
// band.
func WriteSizeStats(w io.Writer, collectionName string, s *stats.SizeStats) {
	fmt.Fprintf(w, "\n%s\n", titleStyle.Render(fmt.Sprintf("CHUNK SIZE ANALYSIS %q", collectionName)))
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("=", 50)))
	field(w, "Total chunks", "%d", s.TotalChunks)
	field(w, "Min size", "%d chars", s.MinSize)
	field(w, "Max size", "%d chars", s.MaxSize)
	field(w, "Avg size", "%.1f chars", s.AvgSize)
	field(w, "Median size", "%.1f chars", s.MedianSize)

	fmt.Fprintf(w, "\n%s\n", sectionStyle.Render("Size distribution"))
	bands := []struct {
		label string
		count int
	}{
		{"Very small (< 100)", s.Distribution.VerySmall},
		{"Small (100-499)", s.Distribution.Small},
		{"Medium (500-1499)", s.Distribution.Medium},
		{"Large (1500-2999)", s.Distribution.Large},
		{"Very large (>= 3000)", s.Distribution.VeryLarge},
	}
	for _, band := range bands {
		percentage := 0.0
		if s.TotalChunks > 0 {
			percentage = float64(band.count) / float64(s.TotalChunks) * 100
		}
		bar := strings.Repeat("█", int(percentage/5))
		fmt.Fprintf(w, "  %-22s %4d (%5.1f%%) %s\n",
			band.label, band.count, percentage, barStyle.Render(bar))
	}
}

// WriteComparison renders the side-by-side collection comparison.
func WriteComparison(w io.Writer, cmp *stats.Comparison) {
	fmt.Fprintf(w, "\n%s\n", titleStyle.Render("COLLECTION COMPARISON"))
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("=", 60)))

	for _, doc := range cmp.Collections {
		fmt.Fprintf(w, "\n%s\n", sectionStyle.Render(fmt.Sprintf("%q", doc.Name)))
		field(w, "  Chunks", "%d", doc.ChunkCount)
		field(w, "  Documents", "%d", doc.DocumentCount)
		field(w, "  Chunks per document", "%.1f", doc.ChunksPerDocument)
		field(w, "  Avg chunk size", "%.1f chars", doc.AverageChunkSize)
	}

	fmt.Fprintf(w, "\n%s\n", sectionStyle.Render("Summary"))
	field(w, "  Analyzed collections", "%d", cmp.Summary.AnalyzedCollections)
	field(w, "  Total chunks", "%d", cmp.Summary.TotalChunks)
	field(w, "  Total documents", "%d", cmp.Summary.TotalDocuments)
	field(w, "  Avg chunks per collection", "%.1f", cmp.Summary.AvgChunksPerCollection)
	field(w, "  Avg documents per collection", "%.1f", cmp.Summary.AvgDocumentsPerCollection)
}

// truncate cuts s to at most limit runes, appending an ellipsis marker
// when anything was cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

type sourceCount struct {
	source string
	count  int
}

// sortedSources orders sources by descending chunk count, name as the
// tiebreak so output is stable.
func sortedSources(m map[string]int) []sourceCount {
	out := make([]sourceCount, 0, len(m))
	for source, count := range m {
		out = append(out, sourceCount{source, count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].source < out[j].source
	})
	return out
}

// sortedSourcesByName orders sources alphabetically.
func sortedSourcesByName(m map[string]int) []sourceCount {
	out := make([]sourceCount, 0, len(m))
	for source, count := range m {
		out = append(out, sourceCount{source, count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].source < out[j].source })
	return out
}
