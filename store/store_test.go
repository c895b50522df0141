package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/formstats/models"
)

func TestStale(t *testing.T) {
	now := time.Now()

	assert.False(t, stale(now, time.Time{}), "zero expiry never expires")
	assert.True(t, stale(now.Add(-2*time.Hour), now.Add(-time.Hour)))
	assert.False(t, stale(now, now.Add(-time.Hour)))
}

func TestNewestScrape(t *testing.T) {
	older := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)

	perfs := []models.Performance{
		{ScrapedAt: older},
		{ScrapedAt: newer},
	}
	assert.Equal(t, newer, newestScrape(perfs))
	assert.True(t, newestScrape(nil).IsZero())
}

func TestToFormPerformance(t *testing.T) {
	jockeyURL := "/jockeys/j-mcdonald"
	result := 2
	sp := 4.5
	p := models.Performance{
		HorseURL:       "/horses/winx",
		JockeyURL:      &jockeyURL,
		Track:          "Randwick",
		TrackCondition: "Soft5",
		Date:           time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
		Distance:       2000,
		Result:         &result,
		Starters:       12,
		StartingPrice:  &sp,
	}

	fp := ToFormPerformance(p)
	assert.Equal(t, "/horses/winx", fp.HorseURL)
	assert.Equal(t, "/jockeys/j-mcdonald", fp.JockeyURL)
	assert.Equal(t, "Randwick", fp.Track)
	assert.Equal(t, 2000, fp.Distance)
	require.NotNil(t, fp.Result)
	assert.Equal(t, 2, *fp.Result)
	require.NotNil(t, fp.StartingPrice)
	assert.Equal(t, 4.5, *fp.StartingPrice)
	assert.Nil(t, fp.Momentum)
}

func TestToFormPerformanceUnknownJockey(t *testing.T) {
	p := models.Performance{
		HorseURL:       "/horses/winx",
		Track:          "Randwick",
		TrackCondition: "Good4",
		Date:           time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
		Distance:       1600,
		Starters:       8,
	}

	fp := ToFormPerformance(p)
	assert.Equal(t, "", fp.JockeyURL)
	assert.Nil(t, fp.Result)
}
