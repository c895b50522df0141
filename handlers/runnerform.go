package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/formstats/form"
)

// listSummary is the JSON shape of one performance collection's aggregates.
// Pointer fields marshal as absent when the statistic is undefined, which is
// how "no data" stays distinguishable from zero on the wire.
type listSummary struct {
	Starts  int `json:"starts"`
	Wins    int `json:"wins"`
	Seconds int `json:"seconds"`
	Thirds  int `json:"thirds"`
	Fourths int `json:"fourths"`
	Places  int `json:"places"`

	WinPct    *float64 `json:"winPct,omitempty"`
	PlacePct  *float64 `json:"placePct,omitempty"`
	SecondPct *float64 `json:"secondPct,omitempty"`
	ThirdPct  *float64 `json:"thirdPct,omitempty"`
	FourthPct *float64 `json:"fourthPct,omitempty"`

	TotalPrizeMoney      *float64 `json:"totalPrizeMoney,omitempty"`
	AveragePrizeMoney    *float64 `json:"averagePrizeMoney,omitempty"`
	AverageStartingPrice *float64 `json:"averageStartingPrice,omitempty"`
	ROI                  *float64 `json:"roi,omitempty"`

	MinimumMomentum *float64 `json:"minimumMomentum,omitempty"`
	MaximumMomentum *float64 `json:"maximumMomentum,omitempty"`
	AverageMomentum *float64 `json:"averageMomentum,omitempty"`
}

func summarize(l *form.List) listSummary {
	return listSummary{
		Starts:               l.Starts(),
		Wins:                 l.Wins(),
		Seconds:              l.Seconds(),
		Thirds:               l.Thirds(),
		Fourths:              l.Fourths(),
		Places:               l.Places(),
		WinPct:               l.WinPct(),
		PlacePct:             l.PlacePct(),
		SecondPct:            l.SecondPct(),
		ThirdPct:             l.ThirdPct(),
		FourthPct:            l.FourthPct(),
		TotalPrizeMoney:      l.TotalPrizeMoney(),
		AveragePrizeMoney:    l.AveragePrizeMoney(),
		AverageStartingPrice: l.AverageStartingPrice(),
		ROI:                  l.ROI(),
		MinimumMomentum:      l.MinimumMomentum(),
		MaximumMomentum:      l.MaximumMomentum(),
		AverageMomentum:      l.AverageMomentum(),
	}
}

type runnerFormResponse struct {
	RunnerID     int                    `json:"runnerID"`
	Up           int                    `json:"up"`
	Spell        *int                   `json:"spell,omitempty"`
	Age          *int                   `json:"age,omitempty"`
	Carrying     *float64               `json:"carrying,omitempty"`
	ActualWeight *float64               `json:"actualWeight,omitempty"`
	Collections  map[string]listSummary `json:"collections"`
}

// RunnerForm returns the full derived-statistics view of one runner: every
// named collection's aggregates plus the rest-cycle and weight scalars.
func (h *Handler) RunnerForm(c echo.Context) error {
	runnerID, err := intParam(c, "runnerID")
	if err != nil {
		return err
	}

	rf, err := h.store.RunnerForm(c.Request().Context(), runnerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := runnerFormResponse{
		RunnerID:     runnerID,
		Up:           rf.Up(),
		Spell:        rf.Spell(),
		Age:          rf.Age(),
		Carrying:     rf.Carrying(),
		ActualWeight: rf.ActualWeight(),
		Collections:  make(map[string]listSummary, len(form.CollectionNames)),
	}
	for _, name := range form.CollectionNames {
		list, err := rf.Collection(name)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		resp.Collections[name] = summarize(list)
	}

	return c.JSON(http.StatusOK, resp)
}

type expectedSpeedResponse struct {
	RunnerID int        `json:"runnerID"`
	List     string     `json:"list"`
	Speed    form.Speed `json:"speed"`
}

// ExpectedSpeed returns the expected-speed range for one runner over one
// named collection, defaulting to career.
func (h *Handler) ExpectedSpeed(c echo.Context) error {
	runnerID, err := intParam(c, "runnerID")
	if err != nil {
		return err
	}
	name := c.QueryParam("list")
	if name == "" {
		name = form.Career
	}

	rf, err := h.store.RunnerForm(c.Request().Context(), runnerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	speed, err := rf.ExpectedSpeed(name)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, expectedSpeedResponse{
		RunnerID: runnerID,
		List:     name,
		Speed:    speed,
	})
}

func intParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "missing "+name+" param")
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}
