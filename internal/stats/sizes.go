package stats

import (
	"sort"
)

// Size band boundaries in characters. Bands are fixed and exhaustive:
// every chunk falls into exactly one.
const (
	bandSmallMin  = 100
	bandMediumMin = 500
	bandLargeMin  = 1500
	bandHugeMin   = 3000
)

// SizeDistribution counts chunks per size band. The band counts always
// sum to the total chunk count.
type SizeDistribution struct {
	VerySmall int `json:"very_small"` // under 100 characters
	Small     int `json:"small"`      // 100 to 499
	Medium    int `json:"medium"`     // 500 to 1499
	Large     int `json:"large"`      // 1500 to 2999
	VeryLarge int `json:"very_large"` // 3000 and up
}

// SizeStats summarizes the character-size distribution of a collection.
type SizeStats struct {
	TotalChunks  int              `json:"total_chunks"`
	MinSize      int              `json:"min_size"`
	MaxSize      int              `json:"max_size"`
	AvgSize      float64          `json:"avg_size"`
	MedianSize   float64          `json:"median_size"`
	Distribution SizeDistribution `json:"size_distribution"`
}

// AnalyzeChunkSizes computes min, max, mean, median and a banded
// histogram over the chunk sizes of a collection. Returns (nil, nil)
// for a collection with zero chunks.
func AnalyzeChunkSizes(collectionName, dbPath string) (*SizeStats, error) {
	page, err := GetChunks(collectionName, dbPath, 0, 0, false)
	if err != nil {
		return nil, err
	}
	if len(page.Chunks) == 0 {
		return nil, nil
	}

	sizes := make([]int, 0, len(page.Chunks))
	total := 0
	for _, chunk := range page.Chunks {
		sizes = append(sizes, chunk.ChunkSize)
		total += chunk.ChunkSize
	}
	sort.Ints(sizes)

	stats := &SizeStats{
		TotalChunks: len(sizes),
		MinSize:     sizes[0],
		MaxSize:     sizes[len(sizes)-1],
		AvgSize:     float64(total) / float64(len(sizes)),
		MedianSize:  median(sizes),
	}

	for _, size := range sizes {
		switch {
		case size < bandSmallMin:
			stats.Distribution.VerySmall++
		case size < bandMediumMin:
			stats.Distribution.Small++
		case size < bandLargeMin:
			stats.Distribution.Medium++
		case size < bandHugeMin:
			stats.Distribution.Large++
		default:
			stats.Distribution.VeryLarge++
		}
	}
	return stats, nil
}

// median of a sorted slice: the middle element for odd lengths, the
// mean of the two middle elements for even lengths.
func median(sorted []int) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2.0
}
