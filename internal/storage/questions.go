package storage

import (
	"context"
	"fmt"
)

// SaveQuestions replaces the stored discussion guide with the given
// questions, preserving their order.
func (s *Store) SaveQuestions(ctx context.Context, questions []string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM guide_questions"); err != nil {
		return fmt.Errorf("failed to clear guide questions: %w", err)
	}

	for i, question := range questions {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO guide_questions (position, question) VALUES (?, ?)",
			i, question); err != nil {
			return fmt.Errorf("failed to save question %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit guide questions: %w", err)
	}
	return nil
}

// ListQuestions returns the stored discussion guide in guide order.
func (s *Store) ListQuestions(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT question FROM guide_questions ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query guide questions: %w", err)
	}
	defer rows.Close()

	var questions []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}
	return questions, nil
}
