package main

import (
	"github.com/spf13/cobra"

	"github.com/mutlukurt/hirelens/internal/extraction"
	"github.com/mutlukurt/hirelens/internal/observability"
	"github.com/mutlukurt/hirelens/internal/ranking"
	"github.com/mutlukurt/hirelens/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank --job JOB_FILE CANDIDATE_FILE...",
	Short: "Rank a pool of candidates against one job posting",
	Long: "Score every candidate file against the job posting, using the whole pool as the " +
		"text relevance corpus, and print them best first.",
	Args: cobra.MinimumNArgs(1),
	RunE: runRank,
}

var (
	rankJobFile string
	rankOutput  string
)

// rankEntry is the JSON form of one ranked candidate
type rankEntry struct {
	CandidateID string         `json:"candidateId"`
	Name        string         `json:"name"`
	Result      ranking.Result `json:"result"`
}

func init() {
	rankCmd.Flags().StringVar(&rankJobFile, "job", "", "Path to job posting JSON (required)")
	rankCmd.Flags().StringVarP(&rankOutput, "output", "o", outputText, "Output format: text or json")
	_ = rankCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	if err := validateOutput(rankOutput); err != nil {
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
	job, err := readJob(rankJobFile)
	if err != nil {
		return err
	}

	ctx := background(cmd)
	parser := extraction.NewParser(dict, cfg.MaxUploadBytes)
	pool := make([]types.Candidate, 0, len(args))
	for _, path := range args {
		candidate, err := readCandidate(ctx, parser, path)
		if err != nil {
			return err
		}
		pool = append(pool, candidate)
	}

	ranked, err := ranking.NewScorer(dict).RankPool(ctx, job, pool)
	if err != nil {
		return err
	}

	if rankOutput == outputJSON {
		entries := make([]rankEntry, 0, len(ranked))
		for _, r := range ranked {
			entries = append(entries, rankEntry{CandidateID: r.Candidate.ID, Name: r.Candidate.Name, Result: r.Result})
		}
		return writeJSON(cmd.OutOrStdout(), entries)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintRanking(&job, ranked)
	return nil
}
