package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	exportFormats []string
	exportOutDir  string
	exportTimeout time.Duration
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current resume as PDF, HTML or LaTeX",
	Long: `Render the current resume in one or more formats. Files are named after the
resume owner, e.g. Ada_Lovelace_Resume.pdf. PDF export requires Chrome or Chromium.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringSliceVarP(&exportFormats, "format", "f", []string{"pdf"}, "Formats to export: pdf, html, tex")
	exportCmd.Flags().StringVarP(&exportOutDir, "out", "o", ".", "Output directory")
	exportCmd.Flags().DurationVar(&exportTimeout, "timeout", rendering.DefaultPDFTimeout, "Timeout for PDF rendering")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	formats, err := parseFormats(exportFormats)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	exporter := rendering.NewExporter()
	exporter.PDF.Timeout = exportTimeout
	exporter.PDF.Verbose = cfg.Verbose

	paths, err := exportDocument(ctx, exporter, st.Current(), formats, exportOutDir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

// parseFormats parses and deduplicates format names
func parseFormats(names []string) ([]rendering.Format, error) {
	seen := make(map[rendering.Format]bool)
	var formats []rendering.Format
	for _, name := range names {
		f, err := rendering.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no export format given")
	}
	return formats, nil
}

// exportDocument renders doc in every format concurrently and writes the
// files to outDir. Paths are returned in format order.
func exportDocument(ctx context.Context, exporter *rendering.Exporter, doc types.ResumeDocument, formats []rendering.Format, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		g.Go(func() error {
			data, err := exporter.Export(gctx, doc, f)
			if err != nil {
				return fmt.Errorf("%s export failed: %w", f, err)
			}

			path := filepath.Join(outDir, rendering.ExportFilename(doc.Name, f))
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			log.Printf("[export] wrote %s (%d bytes)", path, len(data))
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
