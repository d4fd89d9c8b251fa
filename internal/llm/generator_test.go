package llm

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saffronhq/saffron/internal/common"
	"github.com/saffronhq/saffron/internal/model"
)

type stubClient struct {
	responses []string
	errs      []error
	calls     int
}

func (s *stubClient) Complete(_ context.Context, _ string) (string, error) {
	i := s.calls
	s.calls++
	var response string
	var err error
	if i < len(s.responses) {
		response = s.responses[i]
	}
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return response, err
}

func testTheme() *model.ValidatedTheme {
	return &model.ValidatedTheme{
		ThemeCluster: model.ThemeCluster{
			Type:   model.ThemeStrength,
			Key:    "Pricing",
			Origin: model.OriginDiscovered,
			Quotes: []model.QuoteRecord{
				{ResponseID: "r1", Company: "Acme", Sentiment: model.SentimentPositive, Impact: 4,
					Text: "Pricing was easy to defend.", DealOutcome: model.DealWon},
				{ResponseID: "r2", Company: "Beta", Sentiment: model.SentimentPositive, Impact: 5,
					Text: "Best value on the shortlist.", DealOutcome: model.DealWon},
			},
		},
		Metrics: model.ValidationMetrics{CompanyCount: 2, EffectiveQuotes: 2, MeanImpact: 4.5},
	}
}

func fastGenerator(client Client) *Generator {
	return NewGenerator(client, Config{
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	}, slog.Default())
}

func TestGenerateStatement(t *testing.T) {
	client := &stubClient{responses: []string{"  Customers cite pricing as a reason to buy.  "}}
	gen := fastGenerator(client)

	statement, err := gen.GenerateStatement(context.Background(), testTheme())
	require.NoError(t, err)
	assert.Equal(t, "Customers cite pricing as a reason to buy.", statement)
	assert.Equal(t, 1, client.calls)
}

func TestGenerateStatementRetriesTransientFailures(t *testing.T) {
	client := &stubClient{
		responses: []string{"", "", "Pricing is a consistent strength."},
		errs:      []error{errors.New("timeout"), errors.New("timeout"), nil},
	}
	gen := fastGenerator(client)

	statement, err := gen.GenerateStatement(context.Background(), testTheme())
	require.NoError(t, err)
	assert.Equal(t, "Pricing is a consistent strength.", statement)
	assert.Equal(t, 3, client.calls)
}

func TestGenerateStatementExhaustedRetries(t *testing.T) {
	client := &stubClient{
		errs: []error{errors.New("down"), errors.New("down"), errors.New("down")},
	}
	gen := fastGenerator(client)

	_, err := gen.GenerateStatement(context.Background(), testTheme())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrGenerationFailed)
	assert.Equal(t, 3, client.calls)
}

func TestGenerateStatementEmptyResponseRetries(t *testing.T) {
	client := &stubClient{responses: []string{"   ", "A real statement."}}
	gen := fastGenerator(client)

	statement, err := gen.GenerateStatement(context.Background(), testTheme())
	require.NoError(t, err)
	assert.Equal(t, "A real statement.", statement)
	assert.Equal(t, 2, client.calls)
}

func TestParseLabelResponse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    LabelResponse
		wantErr bool
	}{
		{
			name:  "well formed",
			input: "SENTIMENT: positive\nIMPACT: 4",
			want:  LabelResponse{Sentiment: "positive", Impact: 4},
		},
		{
			name:  "lowercase keys and surrounding noise",
			input: "Here you go:\nsentiment: negative\nimpact: 2\nThanks!",
			want:  LabelResponse{Sentiment: "negative", Impact: 2},
		},
		{
			name:    "non-numeric impact",
			input:   "SENTIMENT: mixed\nIMPACT: high",
			wantErr: true,
		},
		{
			name:    "no labels at all",
			input:   "I cannot label this quote.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLabelResponse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient(Config{Provider: "bard"})
	require.Error(t, err)
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := newRateLimiter(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, rl.wait(context.Background()))
	}
	assert.Less(t, time.Since(start), time.Second)
}
