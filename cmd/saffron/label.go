package main

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/saffronhq/saffron/internal/cli"
	"github.com/saffronhq/saffron/internal/common"
	"github.com/saffronhq/saffron/internal/labeling"
	"github.com/saffronhq/saffron/internal/llm"
)

func labelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "label",
		Short: "Apply sentiment and impact labels to stored quotes",
		Long: `Label every stored quote with sentiment (positive, negative, neutral,
mixed) and decision impact (1-5) using the configured LLM provider. Quotes
whose labeling call fails keep neutral sentiment and midpoint impact.`,
		RunE: runLabel,
	}
}

func runLabel(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg := llmConfig()
	if cfg.APIKey == "" {
		return common.NewUserError(
			"No LLM API key configured. Set llm.api_key in config or export ANTHROPIC_API_KEY / OPENAI_API_KEY",
			common.ErrMissingConfig)
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

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
		fmt.Println(cli.WarningStyle.Render("No quotes to label. Run `saffron import` first."))
		return nil
	}

	bar := progressbar.NewOptions(len(quotes),
		progressbar.OptionSetDescription("Labeling quotes"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	labeler := labeling.NewLabeler(client, slog.Default())
	labeled, err := labeler.LabelQuotes(ctx, quotes, func() { _ = bar.Add(1) })
	if err != nil {
		return fmt.Errorf("labeling failed: %w", err)
	}

	if err := store.SaveQuotes(ctx, labeled); err != nil {
		return fmt.Errorf("failed to save labeled quotes: %w", err)
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Labeled %d quotes", len(labeled))))
	return nil
}
