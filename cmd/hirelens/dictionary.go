package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mutlukurt/hirelens/internal/config"
	"github.com/mutlukurt/hirelens/internal/observability"
	"github.com/mutlukurt/hirelens/internal/pipeline"
	"github.com/mutlukurt/hirelens/internal/skills"
)

var dictionaryCmd = &cobra.Command{
	Use:   "dictionary",
	Short: "Inspect and edit the skill dictionary",
	Long: "Inspect and edit the skill dictionary. Edits are saved to the configured store; with " +
		"the memory store they are written back to dictionary_path when one is configured.",
}

var dictionaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List canonical skills and their synonyms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDictionary(cmd, func(_ context.Context, svc *pipeline.Service) error {
			observability.NewPrinter(cmd.OutOrStdout()).PrintDictionary(svc.Dictionary.Entries(), svc.Dictionary.Canonicals())
			return nil
		})
	},
}

var dictionaryAddCmd = &cobra.Command{
	Use:   "add SKILL [SYNONYM...]",
	Short: "Add a canonical skill, or a synonym when the skill exists and --synonym is set",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDictionary(cmd, func(ctx context.Context, svc *pipeline.Service) error {
			if dictionarySynonymOnly {
				for _, syn := range args[1:] {
					if err := svc.AddSynonym(ctx, args[0], syn); err != nil {
						return err
					}
				}
				return saveDictionaryFile(svc)
			}
			if err := svc.AddSkill(ctx, args[0], args[1:]); err != nil {
				return err
			}
			return saveDictionaryFile(svc)
		})
	},
}

var dictionaryRemoveCmd = &cobra.Command{
	Use:   "remove SKILL [SYNONYM]",
	Short: "Remove a canonical skill, or one of its synonyms",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDictionary(cmd, func(ctx context.Context, svc *pipeline.Service) error {
			var err error
			if len(args) == 2 {
				err = svc.RemoveSynonym(ctx, args[0], args[1])
			} else {
				err = svc.RemoveSkill(ctx, args[0])
			}
			if err != nil {
				return err
			}
			return saveDictionaryFile(svc)
		})
	},
}

var dictionaryResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the built-in dictionary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDictionary(cmd, func(ctx context.Context, svc *pipeline.Service) error {
			if err := svc.ResetDictionary(ctx); err != nil {
				return err
			}
			return saveDictionaryFile(svc)
		})
	},
}

var dictionaryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the dictionary to a JSON or YAML file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDictionary(cmd, func(_ context.Context, svc *pipeline.Service) error {
			if err := skills.SaveFile(dictionaryExportFile, svc.Dictionary); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d skills to %s\n", svc.Dictionary.Len(), dictionaryExportFile)
			return nil
		})
	},
}

var (
	dictionarySynonymOnly bool
	dictionaryExportFile  string
)

func init() {
	dictionaryAddCmd.Flags().BoolVar(&dictionarySynonymOnly, "synonym", false, "Add the remaining arguments as synonyms of an existing skill")
	dictionaryExportCmd.Flags().StringVar(&dictionaryExportFile, "out", "", "Output path; .yaml or .yml writes YAML, anything else JSON (required)")
	_ = dictionaryExportCmd.MarkFlagRequired("out")

	dictionaryCmd.AddCommand(dictionaryListCmd, dictionaryAddCmd, dictionaryRemoveCmd, dictionaryResetCmd, dictionaryExportCmd)
	rootCmd.AddCommand(dictionaryCmd)
}

// withDictionary runs fn against a service built from the current configuration
func withDictionary(cmd *cobra.Command, fn func(ctx context.Context, svc *pipeline.Service) error) error {
	ctx := background(cmd)
	svc, log, err := commandService(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	defer func() { _ = svc.Store.Close() }()

	if err := fn(ctx, svc); err != nil {
		return err
	}
	log.Debug("dictionary command complete", zap.String("command", cmd.Name()), zap.Int("skills", svc.Dictionary.Len()))
	return nil
}

// saveDictionaryFile writes edits back to dictionary_path when the store does not keep them
func saveDictionaryFile(svc *pipeline.Service) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Store != config.StoreMemory || cfg.DictionaryPath == "" {
		return nil
	}
	return skills.SaveFile(cfg.DictionaryPath, svc.Dictionary)
}
