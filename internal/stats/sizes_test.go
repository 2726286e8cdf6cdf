package stats

import (
	"strings"
	"testing"

	"genaikit/internal/vectorstore"
)

func sizedRecords(sizes []int) []vectorstore.Record {
	records := make([]vectorstore.Record, 0, len(sizes))
	for i, size := range sizes {
		records = append(records, vectorstore.Record{
			ID:       string(rune('a' + i)),
			Document: strings.Repeat("x", size),
			Metadata: map[string]any{"source": "sized.txt"},
		})
	}
	return records
}

func TestAnalyzeChunkSizes(t *testing.T) {
	dir := seedCollection(t, "docs", sizedRecords([]int{50, 200, 800, 2000, 4000}))

	stats, err := AnalyzeChunkSizes("docs", dir)
	if err != nil {
		t.Fatalf("AnalyzeChunkSizes failed: %v", err)
	}
	if stats.TotalChunks != 5 {
		t.Errorf("TotalChunks = %d, want 5", stats.TotalChunks)
	}
	if stats.MinSize != 50 || stats.MaxSize != 4000 {
		t.Errorf("Min/Max = %d/%d, want 50/4000", stats.MinSize, stats.MaxSize)
	}
	if want := 7050.0 / 5.0; stats.AvgSize != want {
		t.Errorf("AvgSize = %v, want %v", stats.AvgSize, want)
	}
	if stats.MedianSize != 800 {
		t.Errorf("MedianSize = %v, want 800", stats.MedianSize)
	}

	dist := stats.Distribution
	if dist.VerySmall != 1 || dist.Small != 1 || dist.Medium != 1 || dist.Large != 1 || dist.VeryLarge != 1 {
		t.Errorf("Distribution = %+v, want one chunk per band", dist)
	}
	sum := dist.VerySmall + dist.Small + dist.Medium + dist.Large + dist.VeryLarge
	if sum != stats.TotalChunks {
		t.Errorf("band sum = %d, want %d", sum, stats.TotalChunks)
	}
}

func TestAnalyzeChunkSizesBoundaries(t *testing.T) {
	// Boundary values land in the upper band
	dir := seedCollection(t, "docs", sizedRecords([]int{99, 100, 499, 500, 1499, 1500, 2999, 3000}))

	stats, err := AnalyzeChunkSizes("docs", dir)
	if err != nil {
		t.Fatalf("AnalyzeChunkSizes failed: %v", err)
	}
	dist := stats.Distribution
	if dist.VerySmall != 1 {
		t.Errorf("VerySmall = %d, want 1", dist.VerySmall)
	}
	if dist.Small != 2 {
		t.Errorf("Small = %d, want 2", dist.Small)
	}
	if dist.Medium != 2 {
		t.Errorf("Medium = %d, want 2", dist.Medium)
	}
	if dist.Large != 2 {
		t.Errorf("Large = %d, want 2", dist.Large)
	}
	if dist.VeryLarge != 1 {
		t.Errorf("VeryLarge = %d, want 1", dist.VeryLarge)
	}
}

func TestAnalyzeChunkSizesEmpty(t *testing.T) {
	dir := seedCollection(t, "empty", nil)

	stats, err := AnalyzeChunkSizes("empty", dir)
	if err != nil {
		t.Fatalf("AnalyzeChunkSizes failed: %v", err)
	}
	if stats != nil {
		t.Errorf("stats = %+v, want nil for empty collection", stats)
	}
}

func TestMedian(t *testing.T) {
	cases := []struct {
		sorted []int
		want   float64
	}{
		{[]int{10, 20, 30}, 20},
		{[]int{10, 20, 30, 40}, 25.0},
		{[]int{7}, 7},
		{[]int{4, 6}, 5.0},
	}
	for _, tc := range cases {
		if got := median(tc.sorted); got != tc.want {
			t.Errorf("median(%v) = %v, want %v", tc.sorted, got, tc.want)
		}
	}
}
