package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"genaikit/internal/config"
	"genaikit/internal/logging"
)

var (
	// Global flags
	verbose    bool
	storeFlag  string
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "genaikit",
	Short: "genaikit - vector store statistics for the generative AI course",
	Long: `genaikit inspects the persistent vector stores used in the
generative AI course notebooks: collection statistics, chunk browsing,
size distributions, comparisons, and JSON exports.

Run without arguments to start the interactive menu.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cwd, err := os.Getwd(); err == nil {
			if err := logging.Initialize(cwd); err != nil {
				logger.Warn("File logging unavailable", zap.Error(err))
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Close()
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractiveMenu()
	},
}

// storePath resolves the store directory: flag first, then config.
func storePath() string {
	if storeFlag != "" {
		return storeFlag
	}
	return cfg.Store.Path
}

func defaultConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Join(".genaikit", "config.yaml")
	}
	return filepath.Join(cwd, ".genaikit", "config.yaml")
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "path to the vector store directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "path to the config file")

	rootCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(chunksCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(sizesCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
