package form

import (
	"fmt"
	"time"
)

const (
	// RestPeriod is the gap between runs that counts as a rest. Streak
	// boundaries use a strict < comparison against it.
	RestPeriod = 90 * 24 * time.Hour

	// AverageHorseWeight in kg, added to the carried weight so expected
	// speeds divide by the moving mass rather than the handicap alone.
	AverageHorseWeight = 450.0

	// DistanceTolerance is how far (in metres, inclusive) a past run's
	// distance may sit from the current race's to count as "at distance".
	DistanceTolerance = 100
)

// Named collections computed by a RunnerForm, usable with Collection and
// ExpectedSpeed.
const (
	Career                  = "career"
	OnTrack                 = "on_track"
	AtDistance              = "at_distance"
	AtDistanceOnTrack       = "at_distance_on_track"
	WithJockey              = "with_jockey"
	SinceRest               = "since_rest"
	OnUp                    = "on_up"
	JockeyCareer            = "jockey_career"
	JockeyOnTrack           = "jockey_on_track"
	JockeyAtDistance        = "jockey_at_distance"
	JockeyAtDistanceOnTrack = "jockey_at_distance_on_track"
)

// CollectionNames lists every named collection in display order.
var CollectionNames = []string{
	Career, OnTrack, AtDistance, AtDistanceOnTrack,
	Firm, Good, Soft, Heavy, Synthetic,
	WithJockey, SinceRest, OnUp,
	JockeyCareer, JockeyOnTrack, JockeyAtDistance, JockeyAtDistanceOnTrack,
	"jockey_" + Firm, "jockey_" + Good, "jockey_" + Soft,
	"jockey_" + Heavy, "jockey_" + Synthetic,
}

// RaceContext is the slice of race data the engine needs: the meet date,
// the track and the distance being run.
type RaceContext struct {
	Date     time.Time
	Track    string
	Distance int
}

// RunnerInput carries everything a RunnerForm derives its statistics from.
// HorsePerformances and JockeyPerformances are the complete histories in any
// order; the engine restricts them to runs before the race itself. JockeyURL
// empty means the jockey is unknown, in which case every jockey-prefixed
// collection resolves to an empty list instead of failing.
type RunnerInput struct {
	Race               RaceContext
	HorsePerformances  []Performance
	JockeyPerformances []Performance
	JockeyURL          string
	Weight             *float64
	JockeyClaiming     *float64
	Foaled             *time.Time
}

// RunnerForm lazily computes and memoizes the named performance collections
// and derived scalars for one runner. Each collection is computed at most
// once and is stable for the life of the instance. A RunnerForm is not safe
// for concurrent use; each caller builds its own.
type RunnerForm struct {
	race      RaceContext
	horse     *List
	jockey    *List
	jockeyURL string
	weight    *float64
	claiming  *float64
	foaled    *time.Time

	cache map[string]*List
	up    *int
}

// NewRunnerForm builds the engine for one runner.
func NewRunnerForm(in RunnerInput) *RunnerForm {
	return &RunnerForm{
		race:      in.Race,
		horse:     NewList(in.HorsePerformances),
		jockey:    NewList(in.JockeyPerformances),
		jockeyURL: in.JockeyURL,
		weight:    in.Weight,
		claiming:  in.JockeyClaiming,
		foaled:    in.Foaled,
		cache:     map[string]*List{},
	}
}

func (r *RunnerForm) memo(key string, compute func() *List) *List {
	if l, ok := r.cache[key]; ok {
		return l
	}
	l := compute()
	r.cache[key] = l
	return l
}

// Career returns the horse's performances strictly before the race date.
func (r *RunnerForm) Career() *List {
	return r.memo(Career, func() *List {
		return r.horse.Filter(func(p Performance) bool {
			return p.Date.Before(r.race.Date)
		})
	})
}

// OnTrack returns career runs at the current race's track.
func (r *RunnerForm) OnTrack() *List {
	return r.memo(OnTrack, func() *List {
		return r.Career().Filter(func(p Performance) bool {
			return p.Track == r.race.Track
		})
	})
}

// AtDistance returns career runs within DistanceTolerance of the current
// race's distance.
func (r *RunnerForm) AtDistance() *List {
	return r.memo(AtDistance, func() *List {
		return r.Career().Filter(r.nearDistance)
	})
}

// AtDistanceOnTrack returns the intersection of AtDistance and OnTrack.
func (r *RunnerForm) AtDistanceOnTrack() *List {
	return r.memo(AtDistanceOnTrack, func() *List {
		return r.AtDistance().Filter(func(p Performance) bool {
			return p.Track == r.race.Track
		})
	})
}

// ByCondition returns career runs on tracks matching the given condition
// category (firm, good, soft, heavy, synthetic).
func (r *RunnerForm) ByCondition(category string) *List {
	return r.memo(category, func() *List {
		return r.Career().Filter(func(p Performance) bool {
			return p.ConditionMatches(category)
		})
	})
}

// WithJockey returns career runs ridden by the same jockey as this race.
// Empty when the jockey is unknown.
func (r *RunnerForm) WithJockey() *List {
	return r.memo(WithJockey, func() *List {
		if r.jockeyURL == "" {
			return NewList(nil)
		}
		return r.Career().Filter(func(p Performance) bool {
			return p.JockeyURL == r.jockeyURL
		})
	})
}

// JockeyCareerList returns the jockey's mounts strictly before the race
// date, empty when the jockey is unknown.
func (r *RunnerForm) JockeyCareerList() *List {
	return r.memo(JockeyCareer, func() *List {
		if r.jockeyURL == "" {
			return NewList(nil)
		}
		return r.jockey.Filter(func(p Performance) bool {
			return p.Date.Before(r.race.Date)
		})
	})
}

// JockeyOnTrackList returns the jockey's prior mounts at the current track.
func (r *RunnerForm) JockeyOnTrackList() *List {
	return r.memo(JockeyOnTrack, func() *List {
		return r.JockeyCareerList().Filter(func(p Performance) bool {
			return p.Track == r.race.Track
		})
	})
}

// JockeyAtDistanceList returns the jockey's prior mounts within
// DistanceTolerance of the current distance.
func (r *RunnerForm) JockeyAtDistanceList() *List {
	return r.memo(JockeyAtDistance, func() *List {
		return r.JockeyCareerList().Filter(r.nearDistance)
	})
}

// JockeyAtDistanceOnTrackList intersects the two jockey subsets above.
func (r *RunnerForm) JockeyAtDistanceOnTrackList() *List {
	return r.memo(JockeyAtDistanceOnTrack, func() *List {
		return r.JockeyAtDistanceList().Filter(func(p Performance) bool {
			return p.Track == r.race.Track
		})
	})
}

// JockeyByCondition returns the jockey's prior mounts on the given track
// condition category.
func (r *RunnerForm) JockeyByCondition(category string) *List {
	return r.memo("jockey_"+category, func() *List {
		return r.JockeyCareerList().Filter(func(p Performance) bool {
			return p.ConditionMatches(category)
		})
	})
}

// SinceRestList returns the current unbroken streak: career runs collected
// most recent first while every gap between consecutive run dates stays
// under RestPeriod, stopping at the first gap of RestPeriod or more.
func (r *RunnerForm) SinceRestList() *List {
	return r.memo(SinceRest, func() *List {
		var streak []Performance
		next := r.race.Date
		for _, p := range r.Career().Performances() {
			if next.Sub(p.Date) >= RestPeriod {
				break
			}
			streak = append(streak, p)
			next = p.Date
		}
		return NewList(streak)
	})
}

// Up returns the runner's position in its rest cycle: 1 plus the number of
// consecutive prior runs each spaced under RestPeriod apart, walking
// backward from the race date and stopping at the first rest or at the
// start of the career.
func (r *RunnerForm) Up() int {
	if r.up != nil {
		return *r.up
	}
	up := 1
	next := r.race.Date
	for _, p := range r.Career().Performances() {
		if next.Sub(p.Date) >= RestPeriod {
			break
		}
		up++
		next = p.Date
	}
	r.up = &up
	return up
}

// OnUpList returns every career run that sat at the same point in its rest
// cycle as the current race does. The career is walked oldest to newest,
// each run's own up number computed along the way (reset to 1 after a
// rest), and runs whose number equals Up() are collected.
func (r *RunnerForm) OnUpList() *List {
	return r.memo(OnUp, func() *List {
		career := r.Career().Performances()
		var matches []Performance
		var prev *time.Time
		up := 0
		for i := len(career) - 1; i >= 0; i-- {
			p := career[i]
			if prev == nil || p.Date.Sub(*prev) < RestPeriod {
				up++
			} else {
				up = 1
			}
			if up == r.Up() {
				matches = append(matches, p)
			}
			d := p.Date
			prev = &d
		}
		return NewList(matches)
	})
}

// Spell returns the days since the horse's most recent run, nil when the
// horse has no career performances.
func (r *RunnerForm) Spell() *int {
	career := r.Career()
	if career.Starts() == 0 {
		return nil
	}
	days := int(r.race.Date.Sub(career.At(0).Date).Hours() / 24)
	return &days
}

// Age returns the horse's official age in whole years at the race date,
// counting from the foaling year's standard August 1 birthday. Nil when the
// foaling date is unknown.
func (r *RunnerForm) Age() *int {
	if r.foaled == nil {
		return nil
	}
	birthday := time.Date(r.foaled.Year(), time.August, 1, 0, 0, 0, 0, r.foaled.Location())
	days := int(r.race.Date.Sub(birthday).Hours() / 24)
	age := days / 365
	return &age
}

// Carrying returns the listed weight less the jockey's claiming allowance,
// nil unless both are known.
func (r *RunnerForm) Carrying() *float64 {
	if r.weight == nil || r.claiming == nil {
		return nil
	}
	v := *r.weight - *r.claiming
	return &v
}

// ActualWeight returns the carried weight plus the average weight of a
// racehorse, nil when the carried weight is unknown.
func (r *RunnerForm) ActualWeight() *float64 {
	carrying := r.Carrying()
	if carrying == nil {
		return nil
	}
	v := *carrying + AverageHorseWeight
	return &v
}

// Collection resolves a named collection. The name must be one of
// CollectionNames.
func (r *RunnerForm) Collection(name string) (*List, error) {
	switch name {
	case Career:
		return r.Career(), nil
	case OnTrack:
		return r.OnTrack(), nil
	case AtDistance:
		return r.AtDistance(), nil
	case AtDistanceOnTrack:
		return r.AtDistanceOnTrack(), nil
	case Firm, Good, Soft, Heavy, Synthetic:
		return r.ByCondition(name), nil
	case WithJockey:
		return r.WithJockey(), nil
	case SinceRest:
		return r.SinceRestList(), nil
	case OnUp:
		return r.OnUpList(), nil
	case JockeyCareer:
		return r.JockeyCareerList(), nil
	case JockeyOnTrack:
		return r.JockeyOnTrackList(), nil
	case JockeyAtDistance:
		return r.JockeyAtDistanceList(), nil
	case JockeyAtDistanceOnTrack:
		return r.JockeyAtDistanceOnTrackList(), nil
	case "jockey_" + Firm, "jockey_" + Good, "jockey_" + Soft,
		"jockey_" + Heavy, "jockey_" + Synthetic:
		return r.JockeyByCondition(name[len("jockey_"):]), nil
	}
	return nil, fmt.Errorf("form: unknown collection %q", name)
}

// Speed is an expected-speed range: momentum divided by actual weight for
// the minimum, maximum and average momentum of a collection. Components are
// nil whenever the source statistic or the actual weight is unavailable.
type Speed struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
	Avg *float64 `json:"avg,omitempty"`
}

// ExpectedSpeed computes the expected-speed range over the named collection.
// All components are nil when the actual weight is unknown or non-positive.
func (r *RunnerForm) ExpectedSpeed(name string) (Speed, error) {
	list, err := r.Collection(name)
	if err != nil {
		return Speed{}, err
	}

	var speed Speed
	weight := r.ActualWeight()
	if weight == nil || *weight <= 0 {
		return speed, nil
	}

	div := func(momentum *float64) *float64 {
		if momentum == nil {
			return nil
		}
		v := *momentum / *weight
		return &v
	}
	speed.Min = div(list.MinimumMomentum())
	speed.Max = div(list.MaximumMomentum())
	speed.Avg = div(list.AverageMomentum())
	return speed, nil
}

func (r *RunnerForm) nearDistance(p Performance) bool {
	return r.race.Distance-DistanceTolerance <= p.Distance &&
		p.Distance <= r.race.Distance+DistanceTolerance
}
