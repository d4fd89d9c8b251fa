package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saffronhq/saffron/internal/cli"
)

func themesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "Show themes from the last analysis run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			themes, err := store.ListThemes(ctx)
			if err != nil {
				return err
			}
			if len(themes) == 0 {
				fmt.Println(cli.WarningStyle.Render("No stored themes. Run `saffron analyze` first."))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("Stored Themes"))
			for i, t := range themes {
				label := strings.ReplaceAll(string(t.Type), "_", " ")
				fmt.Printf("%d. %s %s\n", i+1,
					cli.ThemeTypeStyle(string(t.Type)).Render("["+label+"]"),
					cli.BoldStyle.Render(t.Key))
				fmt.Printf("   %s\n", t.Statement)
				metrics := fmt.Sprintf("   score %.2f | %d companies | %d quotes (%d effective) | impact %.1f/5 | origin %s",
					t.QualityScore, t.CompanyCount, len(t.ResponseIDs),
					t.EffectiveQuotes, t.MeanImpact, t.Origin)
				if t.Coherence != nil {
					metrics += fmt.Sprintf(" | coherence %.2f", *t.Coherence)
				}
				fmt.Println(cli.SubtleStyle.Render(metrics))
			}
			return nil
		},
	}
}
