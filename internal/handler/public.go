package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sportsconnect/sportsconnect-api/internal/repository"
)

// PublicHandler serves the unauthenticated catalog: coach search, the
// sports list and supporting filter values.  These endpoints sit
// behind the response cache.
type PublicHandler struct {
	CoachRepo *repository.CoachRepo
	Sports    *repository.SportRepo
	Reviews   *repository.ReviewRepo
}

func NewPublicHandler(co *repository.CoachRepo, s *repository.SportRepo, rv *repository.ReviewRepo) *PublicHandler {
	return &PublicHandler{CoachRepo: co, Sports: s, Reviews: rv}
}

// Coaches lists active coaches with optional city, sport, rate and
// sort filters.
func (h *PublicHandler) Coaches(c echo.Context) error {
	f := repository.CoachFilters{
		City:       c.QueryParam("city"),
		Sort:       c.QueryParam("sort"),
		OnlyActive: true,
	}
	if v := c.QueryParam("sport_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sport_id"})
		}
		f.SportID = id
	}
	if v := c.QueryParam("min_rate"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_rate"})
		}
		f.MinRate = r
	}
	if v := c.QueryParam("max_rate"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_rate"})
		}
		f.MaxRate = r
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.CoachRepo.List(ctx, f)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"coaches": list})
}

// Coach returns one coach profile with their sports and visible
// reviews.
func (h *PublicHandler) Coach(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	co, err := h.CoachRepo.GetByID(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	sports, err := h.CoachRepo.SportsOf(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	reviews, err := h.Reviews.ListByCoach(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"coach":   co,
		"sports":  sports,
		"reviews": reviews,
	})
}

// Cities lists the distinct cities coaches operate in.
func (h *PublicHandler) Cities(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cities, err := h.CoachRepo.Cities(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cities": cities})
}

// SportsCatalog lists the sports, optionally filtered by category.
func (h *PublicHandler) SportsCatalog(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Sports.List(ctx, c.QueryParam("category"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"sports": list})
}

// SportCategories lists the distinct sport categories.
func (h *PublicHandler) SportCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cats, err := h.Sports.Categories(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": cats})
}
