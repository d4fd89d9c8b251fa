package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saffronhq/saffron/internal/model"
)

func TestParseQuoteCSV(t *testing.T) {
	csvData := `response_id,text,subject,sentiment,impact,company,deal_outcome,interviewee,question
r1,"The pricing was easy to defend internally.",Pricing,positive,4,Acme,won,VP Engineering,"How would you rate our pricing?"
r2,"Rollout dragged past the date.",Implementation,negative,9,Beta Corp,churned,,
`
	quotes, skipped, err := parseQuoteCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, quotes, 2)

	assert.Equal(t, "r1", quotes[0].ResponseID)
	assert.Equal(t, model.SentimentPositive, quotes[0].Sentiment)
	assert.Equal(t, 4, quotes[0].Impact)
	assert.Equal(t, model.DealWon, quotes[0].DealOutcome)
	assert.Equal(t, "VP Engineering", quotes[0].Interviewee)
	assert.Equal(t, "How would you rate our pricing?", quotes[0].RawQuestion)

	// Malformed enum and out-of-range impact normalize rather than error.
	assert.Equal(t, model.DealOther, quotes[1].DealOutcome)
	assert.Equal(t, 5, quotes[1].Impact)
}

func TestParseQuoteCSVSkipsIncompleteRows(t *testing.T) {
	csvData := `response_id,text,subject,sentiment,impact,company,deal_outcome,interviewee,question
r1,"Valid quote with every required field.",Pricing,positive,4,Acme,won,,
,"Missing response id.",Pricing,positive,4,Acme,won,,
r3,,Pricing,positive,4,Acme,won,,
r4,"Missing company.",Pricing,positive,4,,won,,
`
	quotes, skipped, err := parseQuoteCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, quotes, 1)
	assert.Equal(t, "r1", quotes[0].ResponseID)
}

func TestParseQuoteCSVMissingColumn(t *testing.T) {
	csvData := `response_id,text,sentiment
r1,"No subject or company columns.",positive
`
	_, _, err := parseQuoteCSV(strings.NewReader(csvData))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestParseQuoteCSVDefaultsImpact(t *testing.T) {
	csvData := `response_id,text,subject,sentiment,impact,company,deal_outcome,interviewee,question
r1,"Impact column left blank.",Pricing,neutral,,Acme,other,,
`
	quotes, _, err := parseQuoteCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, 3, quotes[0].Impact)
}
