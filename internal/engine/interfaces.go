package engine

import (
	"context"

	"github.com/saffronhq/saffron/internal/model"
)

// StatementGenerator defines the contract for the theme-statement
// collaborator. Its output is treated as an opaque string; failures are
// tolerated by falling back to a deterministic template.
type StatementGenerator interface {
	GenerateStatement(ctx context.Context, theme *model.ValidatedTheme) (string, error)
}

// ThemeStore defines the contract for the persistence collaborator. A failed
// save is logged and does not roll back the in-memory result set.
type ThemeStore interface {
	SaveTheme(ctx context.Context, theme *model.ValidatedTheme) error
}
