package store

import (
	"context"
	"fmt"

	"github.com/padraicbc/formstats/form"
	"github.com/padraicbc/formstats/models"
)

// RunnerForm assembles the derived-statistics engine for one runner: the
// race context from its race and meet, the horse's full history, and the
// jockey's mount history when the jockey is known.
func (s *Store) RunnerForm(ctx context.Context, runnerID int) (*form.RunnerForm, error) {
	runner, err := s.Runner(ctx, runnerID)
	if err != nil {
		return nil, err
	}
	if runner.Race == nil || runner.Race.Meet == nil || runner.Horse == nil {
		return nil, fmt.Errorf("runner %d: race or horse reference unresolvable", runnerID)
	}

	horsePerfs, err := s.PerformancesByHorse(ctx, runner.Horse)
	if err != nil {
		return nil, err
	}

	in := form.RunnerInput{
		Race: form.RaceContext{
			Date:     runner.Race.Meet.Date,
			Track:    runner.Race.Meet.Track,
			Distance: runner.Race.Distance,
		},
		HorsePerformances: ToFormPerformances(horsePerfs),
		Weight:            runner.Weight,
		JockeyClaiming:    runner.JockeyClaiming,
		Foaled:            runner.Horse.Foaled,
	}

	// An unresolvable jockey is not an error: the jockey-prefixed
	// collections degrade to empty lists.
	if runner.Jockey != nil {
		jockeyPerfs, err := s.PerformancesByJockey(ctx, runner.Jockey)
		if err != nil {
			return nil, err
		}
		in.JockeyPerformances = ToFormPerformances(jockeyPerfs)
		in.JockeyURL = runner.Jockey.URL
	}

	return form.NewRunnerForm(in), nil
}

// ToFormPerformances converts persisted performance rows into the value type
// the form package aggregates over.
func ToFormPerformances(perfs []models.Performance) []form.Performance {
	out := make([]form.Performance, len(perfs))
	for i, p := range perfs {
		out[i] = ToFormPerformance(p)
	}
	return out
}

// ToFormPerformance converts one row. A null jockey reference becomes the
// empty string, which the engine treats as "unknown rider".
func ToFormPerformance(p models.Performance) form.Performance {
	jockeyURL := ""
	if p.JockeyURL != nil {
		jockeyURL = *p.JockeyURL
	}
	return form.Performance{
		HorseURL:       p.HorseURL,
		JockeyURL:      jockeyURL,
		Track:          p.Track,
		TrackCondition: p.TrackCondition,
		Date:           p.Date,
		Distance:       p.Distance,
		Result:         p.Result,
		Starters:       p.Starters,
		StartingPrice:  p.StartingPrice,
		PrizeMoney:     p.PrizeMoney,
		Momentum:       p.Momentum,
	}
}
