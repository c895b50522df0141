package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Dates returns all distinct meet dates, most recent first.
func (h *Handler) Dates(c echo.Context) error {
	var dates []string
	q := h.db.NewSelect().
		TableExpr("meets").
		ColumnExpr("DISTINCT date::text").
		OrderExpr("date DESC")

	if err := q.Scan(c.Request().Context(), &dates); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dates)
}

// Meets returns all meets on a given date.
func (h *Handler) Meets(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing date param")
	}
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	meets, err := h.store.MeetsByDate(c.Request().Context(), parsed)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, meets)
}

// Races returns a meet's races in running order.
func (h *Handler) Races(c echo.Context) error {
	meetID, err := intParam(c, "meetID")
	if err != nil {
		return err
	}

	races, err := h.store.RacesByMeet(c.Request().Context(), meetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, races)
}

// Runners returns a race's runners ordered by saddle number.
func (h *Handler) Runners(c echo.Context) error {
	raceID, err := intParam(c, "raceID")
	if err != nil {
		return err
	}

	runners, err := h.store.RunnersByRace(c.Request().Context(), raceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, runners)
}
