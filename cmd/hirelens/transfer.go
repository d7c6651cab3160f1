package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mutlukurt/hirelens/internal/observability"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every candidate, job posting and match as JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import candidates, job postings and matches from an export file",
	Long:  "Validate an export file against the snapshot schema and upsert every record in one transaction.",
	Args:  cobra.NoArgs,
	RunE:  runImport,
}

var (
	exportOutputFile string
	importInputFile  string
)

func init() {
	exportCmd.Flags().StringVar(&exportOutputFile, "out", "", "Output file (default stdout)")
	importCmd.Flags().StringVarP(&importInputFile, "in", "i", "", "Path to export file (required)")
	_ = importCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := background(cmd)
	svc, log, err := commandService(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	defer func() { _ = svc.Store.Close() }()

	snap, err := svc.Export(ctx)
	if err != nil {
		return err
	}

	if exportOutputFile == "" {
		return writeJSON(cmd.OutOrStdout(), snap)
	}
	f, err := os.Create(exportOutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeJSON(f, snap); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d candidates, %d jobs and %d matches to %s\n",
		len(snap.Candidates), len(snap.Jobs), len(snap.Matches), exportOutputFile)
	return nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(importInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	ctx := background(cmd)
	svc, log, err := commandService(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	defer func() { _ = svc.Store.Close() }()

	summary, err := svc.Import(ctx, data)
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintImportSummary(summary.Candidates, summary.Jobs, summary.Matches)
	return nil
}
