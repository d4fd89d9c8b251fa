package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saffronhq/saffron/internal/cli"
)

func questionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Manage the discussion guide questions",
	}
	cmd.AddCommand(questionsLoadCmd())
	cmd.AddCommand(questionsListCmd())
	return cmd
}

func questionsLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Replace the stored discussion guide with questions from a file",
		Long: `Load discussion guide questions from a text file, one question per line.
Blank lines and lines starting with # are ignored. The stored guide is
replaced, not appended to.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			var questions []string
			scanner := bufio.NewScanner(f)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				questions = append(questions, line)
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			if len(questions) == 0 {
				return fmt.Errorf("no questions found in %s", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveQuestions(ctx, questions); err != nil {
				return fmt.Errorf("failed to save questions: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("Loaded %d discussion guide questions", len(questions))))
			return nil
		},
	}
}

func questionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the stored discussion guide",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			questions, err := store.ListQuestions(ctx)
			if err != nil {
				return err
			}
			if len(questions) == 0 {
				fmt.Println(cli.WarningStyle.Render("No discussion guide loaded."))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("Discussion Guide"))
			for i, q := range questions {
				fmt.Printf("%2d. %s\n", i+1, q)
			}
			return nil
		},
	}
}
