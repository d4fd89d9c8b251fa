package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saffronhq/saffron/internal/cli"
	"github.com/saffronhq/saffron/internal/model"
)

// importColumns is the required CSV header, in order.
var importColumns = []string{
	"response_id", "text", "subject", "sentiment", "impact",
	"company", "deal_outcome", "interviewee", "question",
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import labeled interview quotes from a CSV export",
		Long: `Import quotes from a CSV export. The file must carry the header:

  ` + strings.Join(importColumns, ",") + `

Rows are upserted by response_id, so re-importing the same export is safe.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	quotes, skipped, err := parseQuoteCSV(f)
	if err != nil {
		return err
	}
	if skipped > 0 {
		slog.Warn("skipped malformed rows", "count", skipped)
	}
	if len(quotes) == 0 {
		return fmt.Errorf("no importable quotes in %s", args[0])
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveQuotes(ctx, quotes); err != nil {
		return fmt.Errorf("failed to save quotes: %w", err)
	}

	total, err := store.CountQuotes(ctx)
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderQuoteSummary(len(quotes), total))
	return nil
}

// parseQuoteCSV reads quote rows, returning parsed quotes and the count of
// rows dropped for missing required fields.
func parseQuoteCSV(r io.Reader) ([]model.QuoteRecord, int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range importColumns {
		if col == "interviewee" || col == "question" {
			continue // optional columns
		}
		if _, ok := idx[col]; !ok {
			return nil, 0, fmt.Errorf("CSV is missing required column %q", col)
		}
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var quotes []model.QuoteRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("failed to read CSV row: %w", err)
		}

		q := model.QuoteRecord{
			ResponseID:  field(row, "response_id"),
			Text:        field(row, "text"),
			Subject:     field(row, "subject"),
			Company:     field(row, "company"),
			Interviewee: field(row, "interviewee"),
			RawQuestion: field(row, "question"),
		}
		if q.ResponseID == "" || q.Text == "" || q.Subject == "" || q.Company == "" {
			skipped++
			continue
		}

		q.Sentiment = model.ParseSentiment(field(row, "sentiment"))
		q.DealOutcome = model.ParseDealOutcome(field(row, "deal_outcome"))
		impact, convErr := strconv.Atoi(field(row, "impact"))
		if convErr != nil {
			impact = 3
		}
		q.Impact = model.ClampImpact(impact)

		quotes = append(quotes, q)
	}

	return quotes, skipped, nil
}
