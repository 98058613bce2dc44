package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/backend"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/spf13/cobra"
)

var providersRemote bool

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the AI providers",
	Long:  "List the built-in provider registry, or with --remote the split reported by the configured backend.",
	RunE:  runProviders,
}

func init() {
	providersCmd.Flags().BoolVar(&providersRemote, "remote", false, "Ask the configured backend instead of the built-in registry")
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, _ []string) error {
	if !providersRemote {
		observability.NewPrinter(cmd.OutOrStdout()).PrintProviders(llm.Providers())
		return nil
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	client := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout())
	resp, err := client.Providers(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list providers: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", resp.Message, client.BaseURL)
	fmt.Fprintf(out, "  fallback key:      %s\n", strings.Join(resp.Providers.Fallback, ", "))
	fmt.Fprintf(out, "  requires your key: %s\n", strings.Join(resp.Providers.UserKeyRequired, ", "))
	return nil
}
