package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"genaikit/internal/report"
	"genaikit/internal/stats"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List all collections in the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := stats.ListCollections(storePath())
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No collections found.")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var statsDetailed bool

var statsCmd = &cobra.Command{
	Use:   "stats [collection]",
	Short: "Analyze one collection, or the whole store when omitted",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			s, err := stats.AnalyzeCollection(args[0], storePath())
			if err != nil {
				return err
			}
			report.WriteCollectionSummary(os.Stdout, s)
			return nil
		}

		db, err := stats.AnalyzeDatabase(storePath())
		if err != nil {
			return err
		}
		report.WriteDatabaseStats(os.Stdout, db, statsDetailed)
		return nil
	},
}

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Fast store overview without per-source details",
	RunE: func(cmd *cobra.Command, args []string) error {
		overview, err := stats.QuickStats(storePath())
		if err != nil {
			return err
		}
		report.WriteQuickOverview(os.Stdout, overview)
		return nil
	},
}

var sizesCmd = &cobra.Command{
	Use:   "sizes <collection>",
	Short: "Analyze the chunk size distribution of a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := stats.AnalyzeChunkSizes(args[0], storePath())
		if err != nil {
			return err
		}
		if s == nil {
			fmt.Printf("Collection %q has no chunks.\n", args[0])
			return nil
		}
		report.WriteSizeStats(os.Stdout, args[0], s)
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <collection> <collection> ...",
	Short: "Compare collections side by side",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmp, err := stats.CompareCollections(storePath(), args)
		if err != nil {
			return err
		}
		if cmp.Summary.AnalyzedCollections == 0 {
			return fmt.Errorf("none of %s could be analyzed", strings.Join(args, ", "))
		}
		report.WriteComparison(os.Stdout, cmp)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsDetailed, "detailed", true, "include per-collection source details")
}
