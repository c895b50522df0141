package form

import "sort"

// List is an ordered, statistically-queryable collection of performances.
// NewList sorts records by date descending (most recent first) with a stable
// sort, so construction order never matters but relative order of same-day
// runs survives. A List is immutable after construction; Filter returns a
// new one.
//
// Every aggregate is null-propagating: racing data is routinely incomplete,
// and a missing value must never collapse to zero or a best/worst case.
// Scalar aggregates therefore return *float64, nil meaning undefined.
type List struct {
	perfs []Performance
}

// NewList builds a List from the given performances in any order.
func NewList(perfs []Performance) *List {
	sorted := make([]Performance, len(perfs))
	copy(sorted, perfs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return &List{perfs: sorted}
}

// Performances returns the underlying records, most recent first. Callers
// must not modify the returned slice.
func (l *List) Performances() []Performance { return l.perfs }

// At returns the performance at index i, 0 being the most recent.
func (l *List) At(i int) Performance { return l.perfs[i] }

// Filter returns a new List of the performances the keep func accepts.
func (l *List) Filter(keep func(Performance) bool) *List {
	var out []Performance
	for _, p := range l.perfs {
		if keep(p) {
			out = append(out, p)
		}
	}
	// Already sorted; no need to re-sort a filtered subset.
	return &List{perfs: out}
}

// Starts returns the number of runs in the list.
func (l *List) Starts() int { return len(l.perfs) }

// CountResults returns the number of runs finishing in the given position.
// Runs with no result (abandoned or undecided) never match.
func (l *List) CountResults(result int) int {
	n := 0
	for _, p := range l.perfs {
		if p.Result != nil && *p.Result == result {
			n++
		}
	}
	return n
}

// Wins returns the number of winning runs.
func (l *List) Wins() int { return l.CountResults(1) }

// Seconds returns the number of second placings.
func (l *List) Seconds() int { return l.CountResults(2) }

// Thirds returns the number of third placings.
func (l *List) Thirds() int { return l.CountResults(3) }

// Fourths returns the number of fourth placings.
func (l *List) Fourths() int { return l.CountResults(4) }

// Places returns the number of runs finishing first, second or third.
func (l *List) Places() int { return l.Wins() + l.Seconds() + l.Thirds() }

// WinPct returns wins per start, nil when the list is empty.
func (l *List) WinPct() *float64 { return l.perStart(float64(l.Wins())) }

// PlacePct returns places per start, nil when the list is empty.
func (l *List) PlacePct() *float64 { return l.perStart(float64(l.Places())) }

// SecondPct returns seconds per start, nil when the list is empty.
func (l *List) SecondPct() *float64 { return l.perStart(float64(l.Seconds())) }

// ThirdPct returns thirds per start, nil when the list is empty.
func (l *List) ThirdPct() *float64 { return l.perStart(float64(l.Thirds())) }

// FourthPct returns fourths per start, nil when the list is empty.
func (l *List) FourthPct() *float64 { return l.perStart(float64(l.Fourths())) }

// TotalPrizeMoney sums prize money over runs where it is known. Nil when no
// run carries a value: "unknown" is not "earned nothing".
func (l *List) TotalPrizeMoney() *float64 {
	var sum float64
	found := false
	for _, p := range l.perfs {
		if p.PrizeMoney != nil {
			sum += *p.PrizeMoney
			found = true
		}
	}
	if !found {
		return nil
	}
	return &sum
}

// AveragePrizeMoney returns total prize money per start.
func (l *List) AveragePrizeMoney() *float64 {
	total := l.TotalPrizeMoney()
	if total == nil {
		return nil
	}
	return l.perStart(*total)
}

// AverageStartingPrice averages starting prices over runs where the price is
// known. Nil when no run has one.
func (l *List) AverageStartingPrice() *float64 {
	var sum float64
	n := 0
	for _, p := range l.perfs {
		if p.StartingPrice != nil {
			sum += *p.StartingPrice
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return l.perStart(sum)
}

// MaximumMomentum returns the highest known momentum, nil when none is known.
func (l *List) MaximumMomentum() *float64 {
	var best *float64
	for _, p := range l.perfs {
		if p.Momentum != nil && (best == nil || *p.Momentum > *best) {
			v := *p.Momentum
			best = &v
		}
	}
	return best
}

// MinimumMomentum returns the lowest known momentum, nil when none is known.
func (l *List) MinimumMomentum() *float64 {
	var worst *float64
	for _, p := range l.perfs {
		if p.Momentum != nil && (worst == nil || *p.Momentum < *worst) {
			v := *p.Momentum
			worst = &v
		}
	}
	return worst
}

// AverageMomentum returns the sum of known momentums per start, nil when no
// run has a momentum value.
func (l *List) AverageMomentum() *float64 {
	var sum float64
	n := 0
	for _, p := range l.perfs {
		if p.Momentum != nil {
			sum += *p.Momentum
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return l.perStart(sum)
}

// ROI returns net return per start assuming a unit stake on every run: each
// winner pays out its (decimal-odds) starting price, every start costs one
// unit. A priced-winless list of three starts therefore returns -1.0. Nil
// only when the list is empty.
func (l *List) ROI() *float64 {
	var winnings float64
	for _, p := range l.perfs {
		if p.Result != nil && *p.Result == 1 && p.StartingPrice != nil {
			winnings += *p.StartingPrice
		}
	}
	return l.perStart(winnings - float64(l.Starts()))
}

// perStart divides a value by the number of starts. Nil when there are no
// starts: an empty history must read as "unknown", not as a 0% strike rate.
func (l *List) perStart(value float64) *float64 {
	if l.Starts() == 0 {
		return nil
	}
	v := value / float64(l.Starts())
	return &v
}
