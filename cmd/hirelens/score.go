package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mutlukurt/hirelens/internal/extraction"
	"github.com/mutlukurt/hirelens/internal/observability"
	"github.com/mutlukurt/hirelens/internal/ranking"
	"github.com/mutlukurt/hirelens/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one candidate against one job posting",
	Long: "Score a candidate (a JSON candidate file or a PDF, HTML or text resume) against a " +
		"JSON job posting file and print the score with its explanations and gaps.",
	RunE: runScore,
}

var (
	scoreCandidateFile string
	scoreJobFile       string
	scoreOutput        string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreCandidateFile, "candidate", "c", "", "Path to candidate JSON or resume document (required)")
	scoreCmd.Flags().StringVar(&scoreJobFile, "job", "", "Path to job posting JSON (required)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "output", "o", outputText, "Output format: text or json")

	_ = scoreCmd.MarkFlagRequired("candidate")
	_ = scoreCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	if err := validateOutput(scoreOutput); err != nil {
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

	job, err := readJob(scoreJobFile)
	if err != nil {
		return err
	}
	parser := extraction.NewParser(dict, cfg.MaxUploadBytes)
	candidate, err := readCandidate(background(cmd), parser, scoreCandidateFile)
	if err != nil {
		return err
	}

	// A lone candidate is its own BM25 corpus
	result := ranking.NewScorer(dict).ScoreCandidate(candidate, job, []types.Candidate{candidate})

	if scoreOutput == outputJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	title := fmt.Sprintf("%s → %s", candidateLabel(candidate), job.Title)
	observability.NewPrinter(cmd.OutOrStdout()).PrintScore(title, &result)
	return nil
}

func candidateLabel(c types.Candidate) string {
	if c.Name != "" && c.Name != extraction.UnknownName {
		return c.Name
	}
	return c.ID
}
