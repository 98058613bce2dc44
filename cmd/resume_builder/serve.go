package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort     int
	serveProvider string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the AI provider proxy (POST /ask-ai/{provider}),
the document and section editor endpoints, chat and export.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveProvider, "provider", "", "Initial chat provider (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveProvider != "" {
		cfg.Provider = serveProvider
	}

	st, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		return err
	}

	exporter := rendering.NewExporter()
	exporter.PDF.Verbose = cfg.Verbose

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		Store:          st,
		Provider:       cfg.Provider,
		APIKey:         cfg.APIKey,
		Exporter:       exporter,
		AllowedOrigins: cfg.AllowedOrigins,
		OnShutdown:     []func(){closeStore},
	})
	if err != nil {
		closeStore()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
