package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/formstats/form"
)

func fp(v float64) *float64 { return &v }

func ip(v int) *int { return &v }

func TestSummarizeEmptyListOmitsUndefinedStats(t *testing.T) {
	s := summarize(form.NewList(nil))

	assert.Equal(t, 0, s.Starts)
	assert.Nil(t, s.WinPct)
	assert.Nil(t, s.ROI)
	assert.Nil(t, s.TotalPrizeMoney)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "winPct", "undefined stats stay off the wire")
	assert.Contains(t, string(raw), `"starts":0`)
}

func TestSummarizeCarriesAggregates(t *testing.T) {
	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	perfs := []form.Performance{
		{Date: date, Result: ip(1), StartingPrice: fp(5), PrizeMoney: fp(10000), Momentum: fp(3000), Starters: 10},
		{Date: date.AddDate(0, 1, 0), Result: ip(4), Starters: 8},
	}

	s := summarize(form.NewList(perfs))

	assert.Equal(t, 2, s.Starts)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Fourths)
	require.NotNil(t, s.WinPct)
	assert.Equal(t, 0.5, *s.WinPct)
	require.NotNil(t, s.ROI)
	assert.Equal(t, 1.5, *s.ROI) // (5 - 2) / 2
	require.NotNil(t, s.TotalPrizeMoney)
	assert.Equal(t, 10000.0, *s.TotalPrizeMoney)
	require.NotNil(t, s.MaximumMomentum)
	assert.Equal(t, 3000.0, *s.MaximumMomentum)
}
