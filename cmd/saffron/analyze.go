package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/saffronhq/saffron/internal/cli"
	"github.com/saffronhq/saffron/internal/engine"
	"github.com/saffronhq/saffron/internal/llm"
	"github.com/saffronhq/saffron/internal/questions"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run theme discovery over the stored quote corpus",
		Long: `Discover, validate, and deduplicate themes from the stored quotes and
discussion guide. Results replace any previously stored themes. Statement
generation uses the configured LLM when an API key is available; otherwise
every theme gets a deterministic templated statement.`,
		RunE: runAnalyze,
	}
	cmd.Flags().Bool("no-llm", false, "skip LLM statement generation and use templated statements")
	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	quotes, err := store.ListQuotes(ctx)
	if err != nil {
		return err
	}
	if len(quotes) == 0 {
		fmt.Println(cli.WarningStyle.Render("No quotes to analyze. Run `saffron import` first."))
		return nil
	}

	guide, err := store.ListQuestions(ctx)
	if err != nil {
		return err
	}
	if len(guide) == 0 {
		slog.Info("no discussion guide loaded, research path will use subject clusters only")
	}

	// Prior run results are replaced, not accumulated.
	if err := store.ClearThemes(ctx); err != nil {
		return fmt.Errorf("failed to clear previous themes: %w", err)
	}

	var generator engine.StatementGenerator
	noLLM, _ := cmd.Flags().GetBool("no-llm")
	if !noLLM {
		if cfg := llmConfig(); cfg.APIKey != "" {
			client, clientErr := llm.NewClient(cfg)
			if clientErr != nil {
				return fmt.Errorf("failed to create LLM client: %w", clientErr)
			}
			generator = llm.NewGenerator(client, cfg, slog.Default())
		} else {
			slog.Info("no LLM API key configured, using templated statements")
		}
	}

	config := pipelineConfig()
	disc := engine.NewWithConfig(store, generator, config)

	result, err := disc.Run(ctx, quotes, guide)
	if err != nil {
		return fmt.Errorf("discovery run failed: %w", err)
	}

	fmt.Print(cli.RenderReport(result))
	return nil
}

// pipelineConfig overlays configured tuning values onto the defaults.
func pipelineConfig() engine.Config {
	config := engine.DefaultConfig()
	config.Keywords = questions.KeywordsFromViper(viper.GetViper())

	if viper.IsSet("analysis.merge_threshold") {
		config.MergeThreshold = viper.GetFloat64("analysis.merge_threshold")
	}
	if viper.IsSet("analysis.coherence_floor") {
		config.CoherenceFloor = viper.GetFloat64("analysis.coherence_floor")
	}
	if viper.IsSet("analysis.augment_floor") {
		config.AugmentFloor = viper.GetInt("analysis.augment_floor")
	}
	if viper.IsSet("analysis.augment_min_score") {
		config.AugmentMinScore = viper.GetFloat64("analysis.augment_min_score")
	}
	return config
}
