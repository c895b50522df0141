package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fp(v float64) *float64 { return &v }

func ip(v int) *int { return &v }

func perf(date time.Time, result *int) Performance {
	return Performance{
		Track:          "Flemington",
		TrackCondition: "Good",
		Date:           date,
		Distance:       1200,
		Result:         result,
		Starters:       10,
	}
}

func TestNewListSortsDescendingByDate(t *testing.T) {
	l := NewList([]Performance{
		perf(day(2020, time.January, 1), ip(1)),
		perf(day(2021, time.January, 1), ip(2)),
		perf(day(2020, time.June, 1), ip(3)),
	})

	require.Equal(t, 3, l.Starts())
	assert.Equal(t, day(2021, time.January, 1), l.At(0).Date)
	assert.Equal(t, day(2020, time.June, 1), l.At(1).Date)
	assert.Equal(t, day(2020, time.January, 1), l.At(2).Date)
}

func TestNewListSortIsStable(t *testing.T) {
	first := perf(day(2020, time.June, 1), ip(1))
	first.Track = "Caulfield"
	second := perf(day(2020, time.June, 1), ip(2))
	second.Track = "Sandown"

	l := NewList([]Performance{first, second})

	assert.Equal(t, "Caulfield", l.At(0).Track)
	assert.Equal(t, "Sandown", l.At(1).Track)
}

func TestCountsNeverExceedStarts(t *testing.T) {
	l := NewList([]Performance{
		perf(day(2020, time.January, 1), ip(1)),
		perf(day(2020, time.February, 1), ip(2)),
		perf(day(2020, time.March, 1), ip(3)),
		perf(day(2020, time.April, 1), ip(4)),
		perf(day(2020, time.May, 1), ip(7)),
		perf(day(2020, time.June, 1), nil), // abandoned, no result
	})

	assert.Equal(t, 6, l.Starts())
	assert.Equal(t, len(l.Performances()), l.Starts())
	assert.Equal(t, 1, l.Wins())
	assert.Equal(t, 1, l.Seconds())
	assert.Equal(t, 1, l.Thirds())
	assert.Equal(t, 1, l.Fourths())
	assert.Equal(t, 3, l.Places())
	assert.LessOrEqual(t, l.Wins()+l.Seconds()+l.Thirds()+l.Fourths(), l.Starts())
}

func TestPercentagesOfEmptyListAreNil(t *testing.T) {
	l := NewList(nil)

	assert.Equal(t, 0, l.Starts())
	assert.Nil(t, l.WinPct())
	assert.Nil(t, l.PlacePct())
	assert.Nil(t, l.SecondPct())
	assert.Nil(t, l.ThirdPct())
	assert.Nil(t, l.FourthPct())
	assert.Nil(t, l.ROI())
	assert.Nil(t, l.AveragePrizeMoney())
}

func TestWinPct(t *testing.T) {
	l := NewList([]Performance{
		perf(day(2020, time.January, 1), ip(1)),
		perf(day(2020, time.February, 1), ip(5)),
		perf(day(2020, time.March, 1), ip(1)),
		perf(day(2020, time.April, 1), ip(2)),
	})

	require.NotNil(t, l.WinPct())
	assert.Equal(t, 0.5, *l.WinPct())
	require.NotNil(t, l.PlacePct())
	assert.Equal(t, 0.75, *l.PlacePct())
}

func TestTotalPrizeMoneyDistinguishesUnknownFromZero(t *testing.T) {
	empty := NewList(nil)
	assert.Nil(t, empty.TotalPrizeMoney())

	unknown := NewList([]Performance{
		perf(day(2020, time.January, 1), ip(5)),
		perf(day(2020, time.February, 1), ip(6)),
	})
	assert.Nil(t, unknown.TotalPrizeMoney(), "no record has a value")

	p1 := perf(day(2020, time.January, 1), ip(1))
	p1.PrizeMoney = fp(12000)
	p2 := perf(day(2020, time.February, 1), ip(8))
	p3 := perf(day(2020, time.March, 1), ip(3))
	p3.PrizeMoney = fp(1500)
	partial := NewList([]Performance{p1, p2, p3})

	require.NotNil(t, partial.TotalPrizeMoney())
	assert.Equal(t, 13500.0, *partial.TotalPrizeMoney())
	require.NotNil(t, partial.AveragePrizeMoney())
	assert.Equal(t, 4500.0, *partial.AveragePrizeMoney())
}

func TestAverageStartingPriceIsPerStart(t *testing.T) {
	p1 := perf(day(2020, time.January, 1), ip(1))
	p1.StartingPrice = fp(4.0)
	p2 := perf(day(2020, time.February, 1), ip(2))
	p2.StartingPrice = fp(8.0)
	p3 := perf(day(2020, time.March, 1), ip(3)) // price unknown

	l := NewList([]Performance{p1, p2, p3})
	require.NotNil(t, l.AverageStartingPrice())
	assert.Equal(t, 4.0, *l.AverageStartingPrice())

	unpriced := NewList([]Performance{p3})
	assert.Nil(t, unpriced.AverageStartingPrice())
}

func TestROIPricedWinlessListIsMinusOne(t *testing.T) {
	l := NewList([]Performance{
		perf(day(2020, time.January, 1), ip(5)),
		perf(day(2020, time.February, 1), ip(6)),
		perf(day(2020, time.March, 1), ip(7)),
	})

	require.NotNil(t, l.ROI())
	assert.Equal(t, -1.0, *l.ROI(), "unit stake lost on every start")
}

func TestROICountsPricedWinners(t *testing.T) {
	winner := perf(day(2020, time.January, 1), ip(1))
	winner.StartingPrice = fp(6.0)
	unpricedWinner := perf(day(2020, time.February, 1), ip(1))

	l := NewList([]Performance{
		winner,
		unpricedWinner,
		perf(day(2020, time.March, 1), ip(4)),
	})

	require.NotNil(t, l.ROI())
	assert.InDelta(t, 1.0, *l.ROI(), 1e-9) // (6 - 3) / 3
}

func TestMomentumAggregates(t *testing.T) {
	p1 := perf(day(2020, time.January, 1), ip(1))
	p1.Momentum = fp(3200)
	p2 := perf(day(2020, time.February, 1), ip(2))
	p2.Momentum = fp(2800)
	p3 := perf(day(2020, time.March, 1), ip(3)) // momentum unknown

	l := NewList([]Performance{p1, p2, p3})

	require.NotNil(t, l.MaximumMomentum())
	assert.Equal(t, 3200.0, *l.MaximumMomentum())
	require.NotNil(t, l.MinimumMomentum())
	assert.Equal(t, 2800.0, *l.MinimumMomentum())
	require.NotNil(t, l.AverageMomentum())
	assert.Equal(t, 2000.0, *l.AverageMomentum()) // per start, not per known value

	blank := NewList([]Performance{p3})
	assert.Nil(t, blank.MaximumMomentum())
	assert.Nil(t, blank.MinimumMomentum())
	assert.Nil(t, blank.AverageMomentum())
}

func TestCountResultsIgnoresNilResults(t *testing.T) {
	l := NewList([]Performance{
		perf(day(2020, time.January, 1), nil),
		perf(day(2020, time.February, 1), ip(1)),
	})

	assert.Equal(t, 1, l.CountResults(1))
	assert.Equal(t, 0, l.CountResults(2))
}

func TestFilterReturnsNewList(t *testing.T) {
	l := NewList([]Performance{
		perf(day(2020, time.January, 1), ip(1)),
		perf(day(2020, time.February, 1), ip(2)),
	})

	winners := l.Filter(func(p Performance) bool { return p.Result != nil && *p.Result == 1 })
	assert.Equal(t, 1, winners.Starts())
	assert.Equal(t, 2, l.Starts(), "source list untouched")
}
