package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/clipshelf/backend/internal/models"
	"github.com/clipshelf/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// timeNow is stubbed in tests.
var timeNow = time.Now

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// getUserIDFromContext reads the authenticated user ID set by the JWT
// middleware; 0 means unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// parsePagination clamps page/per_page query params to 1.. and 1..100.
func parsePagination(c echo.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	perPage, _ = strconv.Atoi(c.QueryParam("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

// paginationMeta builds the standard response meta block.
func paginationMeta(total int64, page, perPage int) echo.Map {
	lastPage := int(math.Ceil(float64(total) / float64(perPage)))
	if lastPage < 1 {
		lastPage = 1
	}
	return echo.Map{
		"total":        total,
		"per_page":     perPage,
		"current_page": page,
		"last_page":    lastPage,
	}
}

// httpError maps repository sentinels to HTTP errors; anything unmapped is
// a 500.
func httpError(err error, notFoundMsg string) *echo.HTTPError {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, notFoundMsg)
	case errors.Is(err, repositories.ErrAlreadyExists):
		return echo.NewHTTPError(http.StatusConflict, "Already exists")
	case errors.Is(err, repositories.ErrSelfReference):
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot target yourself")
	case errors.Is(err, repositories.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
