package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"genaikit/internal/vectorstore"
)

var (
	seedCollection string
	seedCount      int
)

// seedCmd fills a store with synthetic chunks so the analysis commands
// have something to work on during development and demos.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a store with synthetic fixture data",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := storePath()
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}

		client, err := vectorstore.Open(path)
		if err != nil {
			return err
		}
		defer client.Close()

		col, err := client.CreateCollection(seedCollection)
		if err != nil {
			return err
		}

		sources := []string{"intro.md", "chapters.pdf", "glossary.txt"}
		records := make([]vectorstore.Record, 0, seedCount)
		for i := 0; i < seedCount; i++ {
			// Vary sizes so the size bands all get members
			body := strings.Repeat("lorem ipsum ", (i%12+1)*8)
			records = append(records, vectorstore.Record{
				ID:       fmt.Sprintf("seed-%04d", i),
				Document: body,
				Metadata: map[string]any{
					"source": sources[i%len(sources)],
					"page":   i/len(sources) + 1,
				},
				Embedding: []float32{float32(i), float32(i % 7), 0.25},
			})
		}
		if err := col.Add(records); err != nil {
			return err
		}

		fmt.Printf("Seeded %d chunks into collection %q at %s\n", seedCount, seedCollection, path)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedCollection, "collection", "demo", "collection to seed")
	seedCmd.Flags().IntVar(&seedCount, "count", 60, "number of chunks to create")
}
