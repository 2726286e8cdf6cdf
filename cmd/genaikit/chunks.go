package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"genaikit/internal/report"
	"genaikit/internal/stats"
)

var (
	chunksLimit      int
	chunksOffset     int
	chunksEmbeddings bool
	chunksFullText   bool
)

var chunksCmd = &cobra.Command{
	Use:   "chunks <collection>",
	Short: "Show a page of chunks from a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := stats.GetChunks(args[0], storePath(), chunksLimit, chunksOffset, chunksEmbeddings)
		if err != nil {
			return err
		}
		report.WriteChunks(os.Stdout, page, chunksFullText)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <collection> <filter>",
	Short: "Find chunks whose source matches a substring (case-insensitive)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		matched, err := stats.SearchBySource(args[0], storePath(), args[1])
		if err != nil {
			return err
		}
		if len(matched) == 0 {
			fmt.Printf("No chunks with source matching %q.\n", args[1])
			return nil
		}
		page := &stats.ChunkPage{
			CollectionName: args[0],
			TotalChunks:    len(matched),
			Chunks:         matched,
			Pagination:     stats.Pagination{ReturnedCount: len(matched)},
		}
		report.WriteChunks(os.Stdout, page, chunksFullText)
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <collection> <chunk-id>",
	Short: "Show a single chunk by ID",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chunk, err := stats.GetChunkByID(args[0], storePath(), args[1])
		if err != nil {
			return err
		}
		if chunk == nil {
			fmt.Printf("Chunk %q not found in collection %q.\n", args[1], args[0])
			return nil
		}
		report.WriteChunk(os.Stdout, chunk)
		return nil
	},
}

func init() {
	chunksCmd.Flags().IntVar(&chunksLimit, "limit", 5, "number of chunks to show (0 = all)")
	chunksCmd.Flags().IntVar(&chunksOffset, "offset", 0, "start position for pagination")
	chunksCmd.Flags().BoolVar(&chunksEmbeddings, "embeddings", false, "include embedding vectors")
	chunksCmd.Flags().BoolVar(&chunksFullText, "full-text", false, "show full document text instead of previews")

	searchCmd.Flags().BoolVar(&chunksFullText, "full-text", false, "show full document text instead of previews")
}
