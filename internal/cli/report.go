package cli

import (
	"fmt"
	"strings"

	"github.com/saffronhq/saffron/internal/engine"
	"github.com/saffronhq/saffron/internal/model"
)

// RenderReport formats a discovery run as a styled terminal report.
func RenderReport(result *engine.Result) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Theme Discovery Report"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf(
		"%d quotes in, %d verbatim, %d candidate clusters, %d validated themes",
		result.Stats.InputQuotes,
		result.Stats.VerbatimQuotes,
		result.Stats.SubjectClusters+result.Stats.ResearchClusters,
		result.Stats.ValidatedThemes)))
	b.WriteString("\n")

	if len(result.Themes) == 0 {
		b.WriteString(WarningStyle.Render("No themes passed validation."))
		b.WriteString("\n")
		return b.String()
	}

	for i, theme := range result.Themes {
		b.WriteString(renderTheme(i+1, theme))
		b.WriteString("\n")
	}

	if result.Stats.StatementFallbacks > 0 {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf(
			"%d statement(s) used the fallback template", result.Stats.StatementFallbacks)))
		b.WriteString("\n")
	}
	if result.Stats.PersistFailures > 0 {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf(
			"%d theme(s) could not be persisted", result.Stats.PersistFailures)))
		b.WriteString("\n")
	}

	return b.String()
}

func renderTheme(rank int, theme *model.ValidatedTheme) string {
	var b strings.Builder

	label := strings.ReplaceAll(string(theme.Type), "_", " ")
	header := fmt.Sprintf("%d. %s %s",
		rank,
		ThemeTypeStyle(string(theme.Type)).Render("["+label+"]"),
		BoldStyle.Render(theme.Key))
	b.WriteString(header)
	b.WriteString("\n")

	b.WriteString("   ")
	b.WriteString(theme.Statement)
	b.WriteString("\n")

	metrics := fmt.Sprintf("   score %.2f | %d companies | %d quotes (%d effective) | impact %.1f/5 | origin %s",
		theme.QualityScore,
		theme.Metrics.CompanyCount,
		len(theme.Quotes),
		theme.Metrics.EffectiveQuotes,
		theme.Metrics.MeanImpact,
		theme.Origin)
	if theme.Metrics.Coherence != nil {
		metrics += fmt.Sprintf(" | coherence %.2f", *theme.Metrics.Coherence)
	}
	b.WriteString(SubtleStyle.Render(metrics))
	b.WriteString("\n")

	if theme.Distribution.Biased {
		b.WriteString("   ")
		b.WriteString(WarningStyle.Render(fmt.Sprintf(
			"evidence skews toward one company (%.0f%% of quotes)",
			theme.Distribution.MaxShare*100)))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderQuoteSummary formats a one-line summary after an import.
func RenderQuoteSummary(imported, total int) string {
	return SuccessStyle.Render(fmt.Sprintf("Imported %d quotes (%d total in database)", imported, total))
}
