package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mutlukurt/hirelens/internal/extraction"
	"github.com/mutlukurt/hirelens/internal/observability"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract candidate fields from a resume document",
	Long:  "Extract text from a PDF, HTML or plain text resume and recover name, contact details, skills, experience and location.",
	RunE:  runExtract,
}

var (
	extractInputFile  string
	extractOutputFile string
	extractOutput     string
)

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to resume document (required)")
	extractCmd.Flags().StringVar(&extractOutputFile, "out", "", "Write the parsed resume as JSON to this file")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", outputText, "Output format: text or json")
	_ = extractCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	if err := validateOutput(extractOutput); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dict, err := loadDictionary(cfg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(extractInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	parsed, err := extraction.NewParser(dict, cfg.MaxUploadBytes).Parse(background(cmd), readDocument(extractInputFile, data))
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	if extractOutputFile != "" {
		f, err := os.Create(extractOutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := writeJSON(f, parsed); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}

	if extractOutput == outputJSON {
		return writeJSON(cmd.OutOrStdout(), parsed)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintParsedResume(parsed)
	return nil
}
