// Package main provides the resume_builder CLI: the HTTP API server and
// terminal commands over the same resume document.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	snapshotDir string
	databaseURL string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:           "resume_builder",
	Short:         "AI-assisted resume builder",
	Long:          "Build a resume by describing yourself to an AI assistant, edit any section in place and export it as PDF, HTML or LaTeX.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&snapshotDir, "snapshot-dir", "", "Directory of the resume snapshot (overrides config)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "db-url", "", "PostgreSQL URL; stores the snapshot in the database (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadSettings builds the effective configuration: defaults, the config
// file, the environment, then the flags the user set.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath, os.Getenv)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	if f := cmd.Flag("snapshot-dir"); f != nil && f.Changed {
		cfg.SnapshotDir = snapshotDir
	}
	if f := cmd.Flag("db-url"); f != nil && f.Changed {
		cfg.DatabaseURL = databaseURL
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// openStore loads the document store over the configured snapshot slot.
// The returned func releases the database pool, if any.
func openStore(ctx context.Context, cfg config.Config) (*store.Store, func(), error) {
	var snap store.Snapshotter
	closer := func() {}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("failed to prepare database: %w", err)
		}
		snap = database
		closer = database.Close
		if cfg.Verbose {
			log.Printf("[store] using database snapshot %q", cfg.SnapshotKey)
		}
	} else {
		snap = store.NewFileSnapshot(cfg.SnapshotDir)
		if cfg.Verbose {
			log.Printf("[store] using file snapshot in %s", cfg.SnapshotDir)
		}
	}

	st := store.New(snap, cfg.SnapshotKey)
	st.Load(ctx)
	return st, closer, nil
}
