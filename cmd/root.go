package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/popclean/internal/config"
	"github.com/KaramelBytes/popclean/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "popclean",
	Short: "Clean the world population dataset and report on it",
	Long: `popclean loads the messy world population CSV, runs the fixed cleaning pipeline,
writes the cleaned CSV and renders the before/after summaries and charts either as image
files or as a browser dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.popclean/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to the built-in paths
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c
	slog.SetDefault(newLogger())
}

func newLogger() *slog.Logger {
	level := cfgpkg.DefaultLogLevel
	if cfg != nil {
		level = cfg.LogLevel
	}
	return logging.New(os.Stderr, level, debug)
}

// current returns the loaded configuration, loading defaults if initialisation was skipped.
func current() *cfgpkg.Global {
	if cfg == nil {
		loadConfig()
	}
	return cfg
}
