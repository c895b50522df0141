package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/formstats/form"
	"github.com/padraicbc/formstats/store"
)

type horseFormResponse struct {
	HorseID      int                `json:"horseID"`
	Horse        string             `json:"horse"`
	Summary      listSummary        `json:"summary"`
	Performances []form.Performance `json:"performances"`
}

// HorseForm returns a horse's performance history filtered by optional
// query params (track, condition, minDist, maxDist, since), with the
// aggregate statistics of the filtered collection. The last N runs can be
// capped with limit.
func (h *Handler) HorseForm(c echo.Context) error {
	horseID, err := intParam(c, "horseID")
	if err != nil {
		return err
	}

	horse, err := h.store.Horse(c.Request().Context(), horseID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	perfs, err := h.store.PerformancesByHorse(c.Request().Context(), horse)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	list := form.NewList(store.ToFormPerformances(perfs))
	list, err = applyFormFilters(list, c)
	if err != nil {
		return err
	}

	records := list.Performances()
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		if limit < len(records) {
			list = form.NewList(records[:limit])
			records = list.Performances()
		}
	}

	return c.JSON(http.StatusOK, horseFormResponse{
		HorseID:      horseID,
		Horse:        horse.Name,
		Summary:      summarize(list),
		Performances: records,
	})
}

func applyFormFilters(list *form.List, c echo.Context) (*form.List, error) {
	if track := c.QueryParam("track"); track != "" {
		list = list.Filter(func(p form.Performance) bool { return p.Track == track })
	}
	if cond := c.QueryParam("condition"); cond != "" {
		list = list.Filter(func(p form.Performance) bool { return p.ConditionMatches(cond) })
	}
	if raw := c.QueryParam("minDist"); raw != "" {
		min, err := strconv.Atoi(raw)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "minDist must be an integer")
		}
		list = list.Filter(func(p form.Performance) bool { return p.Distance >= min })
	}
	if raw := c.QueryParam("maxDist"); raw != "" {
		max, err := strconv.Atoi(raw)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "maxDist must be an integer")
		}
		list = list.Filter(func(p form.Performance) bool { return p.Distance <= max })
	}
	if raw := c.QueryParam("since"); raw != "" {
		since, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "since must be YYYY-MM-DD")
		}
		list = list.Filter(func(p form.Performance) bool { return !p.Date.Before(since) })
	}
	return list, nil
}
