package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/backend"
	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/spf13/cobra"
)

var (
	askProvider string
	askAPIKey   string
	askBackend  string
)

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send one message to the AI assistant",
	Long: `Send a message to the AI backend together with the current resume. Structured
data in the reply is merged into the resume; any other reply is printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askProvider, "provider", "p", "", "AI provider id (overrides config)")
	askCmd.Flags().StringVarP(&askAPIKey, "api-key", "k", "", "Your API key for the provider (overrides config)")
	askCmd.Flags().StringVar(&askBackend, "backend", "", "Base URL of the AI backend (overrides config)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if askProvider != "" {
		cfg.Provider = askProvider
	}
	if askAPIKey != "" {
		cfg.APIKey = askAPIKey
	}
	if askBackend != "" {
		cfg.BackendURL = askBackend
	}

	ctx := context.Background()
	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	client := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout())
	session := builder.NewSession(st, client, cfg.Provider)
	if err := session.SetProvider(cfg.Provider); err != nil {
		return err
	}
	session.SetAPIKey(cfg.APIKey)

	out, err := session.Send(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintOutcome(out)
	if cfg.Verbose && out.Kind == builder.OutcomeMerged {
		printer.PrintDocument(out.Document)
	}
	if out.Kind == builder.OutcomeError {
		return fmt.Errorf("request failed: %w", out.Err)
	}
	return nil
}
