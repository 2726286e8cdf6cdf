package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"genaikit/internal/report"
)

var (
	exportOutput     string
	exportLimit      int
	exportEmbeddings bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export statistics or chunks as JSON",
}

var exportStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Export store-wide statistics to a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := exportOutput
		if out == "" {
			out = cfg.Export.StatsFile
		}
		if err := report.ExportDatabaseStats(storePath(), out); err != nil {
			return err
		}
		fmt.Printf("Statistics exported to %s\n", out)
		return nil
	},
}

var exportChunksCmd = &cobra.Command{
	Use:   "chunks <collection>",
	Short: "Export the chunks of a collection to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := exportOutput
		if out == "" {
			out = cfg.Export.ChunksFile
		}
		if err := report.ExportChunks(args[0], storePath(), out, exportLimit, exportEmbeddings); err != nil {
			return err
		}
		fmt.Printf("Chunks exported to %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&exportOutput, "output", "o", "", "output file (defaults from config)")
	exportChunksCmd.Flags().IntVar(&exportLimit, "limit", 0, "number of chunks to export (0 = all)")
	exportChunksCmd.Flags().BoolVar(&exportEmbeddings, "embeddings", false, "include embedding vectors")

	exportCmd.AddCommand(exportStatsCmd)
	exportCmd.AddCommand(exportChunksCmd)
}
