package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saffronhq/saffron/internal/model"
)

// SaveQuotes upserts quotes keyed by response id. Re-importing the same
// export file overwrites rather than duplicates.
func (s *Store) SaveQuotes(ctx context.Context, quotes []model.QuoteRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(quotes) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quotes (response_id, text, subject, sentiment, impact, company, deal_outcome, interviewee, raw_question)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(response_id) DO UPDATE SET
			text = excluded.text,
			subject = excluded.subject,
			sentiment = excluded.sentiment,
			impact = excluded.impact,
			company = excluded.company,
			deal_outcome = excluded.deal_outcome,
			interviewee = excluded.interviewee,
			raw_question = excluded.raw_question`)
	if err != nil {
		return fmt.Errorf("failed to prepare quote upsert: %w", err)
	}
	defer stmt.Close()

	for i := range quotes {
		q := quotes[i]
		q.Normalize()
		if _, err := stmt.ExecContext(ctx,
			q.ResponseID, q.Text, q.Subject, string(q.Sentiment), q.Impact,
			q.Company, string(q.DealOutcome), q.Interviewee, q.RawQuestion); err != nil {
			return fmt.Errorf("failed to save quote %s: %w", q.ResponseID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quotes: %w", err)
	}
	return nil
}

// ListQuotes returns all stored quotes in insertion order.
func (s *Store) ListQuotes(ctx context.Context) ([]model.QuoteRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT response_id, text, subject, sentiment, impact, company, deal_outcome, interviewee, raw_question
		FROM quotes
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var quotes []model.QuoteRecord
	for rows.Next() {
		var q model.QuoteRecord
		var sentiment, outcome string
		var interviewee, rawQuestion sql.NullString
		if err := rows.Scan(&q.ResponseID, &q.Text, &q.Subject, &sentiment, &q.Impact,
			&q.Company, &outcome, &interviewee, &rawQuestion); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		q.Sentiment = model.ParseSentiment(sentiment)
		q.DealOutcome = model.ParseDealOutcome(outcome)
		q.Interviewee = interviewee.String
		q.RawQuestion = rawQuestion.String
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotes: %w", err)
	}
	return quotes, nil
}

// CountQuotes returns the number of stored quotes.
func (s *Store) CountQuotes(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM quotes").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count quotes: %w", err)
	}
	return n, nil
}
