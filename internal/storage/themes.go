package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saffronhq/saffron/internal/model"
)

// SaveTheme persists a validated theme and its member response ids. A theme
// id is replaced wholesale if it already exists.
func (s *Store) SaveTheme(ctx context.Context, theme *model.ValidatedTheme) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if theme == nil {
		return fmt.Errorf("theme must not be nil")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var coherence sql.NullFloat64
	if theme.Metrics.Coherence != nil {
		coherence = sql.NullFloat64{Float64: *theme.Metrics.Coherence, Valid: true}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO themes (id, theme_type, key, origin, pattern, statement,
			company_count, effective_quotes, mean_impact, coherence,
			quality_score, max_share, biased)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			theme_type = excluded.theme_type,
			key = excluded.key,
			origin = excluded.origin,
			pattern = excluded.pattern,
			statement = excluded.statement,
			company_count = excluded.company_count,
			effective_quotes = excluded.effective_quotes,
			mean_impact = excluded.mean_impact,
			coherence = excluded.coherence,
			quality_score = excluded.quality_score,
			max_share = excluded.max_share,
			biased = excluded.biased`,
		theme.ID, string(theme.Type), theme.Key, string(theme.Origin),
		theme.Pattern, theme.Statement,
		theme.Metrics.CompanyCount, theme.Metrics.EffectiveQuotes,
		theme.Metrics.MeanImpact, coherence,
		theme.QualityScore, theme.Distribution.MaxShare,
		theme.Distribution.Biased); err != nil {
		return fmt.Errorf("failed to save theme %s: %w", theme.ID, err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM theme_quotes WHERE theme_id = ?", theme.ID); err != nil {
		return fmt.Errorf("failed to clear theme members: %w", err)
	}

	for _, q := range theme.Quotes {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO theme_quotes (theme_id, response_id) VALUES (?, ?)",
			theme.ID, q.ResponseID); err != nil {
			return fmt.Errorf("failed to save theme member %s: %w", q.ResponseID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit theme: %w", err)
	}
	return nil
}

// StoredTheme is a persisted theme row with its member response ids.
type StoredTheme struct {
	ID              string
	Type            model.ThemeType
	Key             string
	Origin          model.Origin
	Pattern         string
	Statement       string
	CompanyCount    int
	EffectiveQuotes int
	MeanImpact      float64
	Coherence       *float64
	QualityScore    float64
	MaxShare        float64
	Biased          bool
	ResponseIDs     []string
}

// ListThemes returns all stored themes ordered by quality score descending.
func (s *Store) ListThemes(ctx context.Context) ([]StoredTheme, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, theme_type, key, origin, pattern, statement,
			company_count, effective_quotes, mean_impact, coherence,
			quality_score, max_share, biased
		FROM themes
		ORDER BY quality_score DESC, key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query themes: %w", err)
	}
	defer rows.Close()

	var themes []StoredTheme
	for rows.Next() {
		var t StoredTheme
		var themeType, origin string
		var pattern, statement sql.NullString
		var coherence sql.NullFloat64
		if err := rows.Scan(&t.ID, &themeType, &t.Key, &origin, &pattern, &statement,
			&t.CompanyCount, &t.EffectiveQuotes, &t.MeanImpact, &coherence,
			&t.QualityScore, &t.MaxShare, &t.Biased); err != nil {
			return nil, fmt.Errorf("failed to scan theme: %w", err)
		}
		t.Type = model.ThemeType(themeType)
		t.Origin = model.Origin(origin)
		t.Pattern = pattern.String
		t.Statement = statement.String
		if coherence.Valid {
			v := coherence.Float64
			t.Coherence = &v
		}
		themes = append(themes, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate themes: %w", err)
	}

	for i := range themes {
		ids, err := s.themeMembers(ctx, themes[i].ID)
		if err != nil {
			return nil, err
		}
		themes[i].ResponseIDs = ids
	}
	return themes, nil
}

// ClearThemes deletes all stored themes and their memberships. Analysis runs
// replace prior results rather than accumulating them.
func (s *Store) ClearThemes(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM theme_quotes"); err != nil {
		return fmt.Errorf("failed to clear theme members: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM themes"); err != nil {
		return fmt.Errorf("failed to clear themes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit theme clear: %w", err)
	}
	return nil
}

func (s *Store) themeMembers(ctx context.Context, themeID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT response_id FROM theme_quotes WHERE theme_id = ? ORDER BY response_id", themeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query theme members: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan theme member: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate theme members: %w", err)
	}
	return ids, nil
}
