package handlers

import (
	"net/http"
	"strconv"

	"github.com/clipshelf/backend/internal/feed"
	"github.com/clipshelf/backend/internal/models"
	"github.com/clipshelf/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler composes the feed views over the activity repository's raw
// windows: fetch a bounded window, aggregate it in memory, enrich actor
// names, respond. The window cap is applied to raw rows before
// aggregation, so a page may carry fewer aggregated rows than per_page.
type FeedHandler struct {
	activityRepository repositories.ActivityRepository
	userRepository     repositories.UserRepository
	followRepository   repositories.FollowRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(activityRepo repositories.ActivityRepository, userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *FeedHandler {
	return &FeedHandler{
		activityRepository: activityRepo,
		userRepository:     userRepo,
		followRepository:   followRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/feed/global", h.GetGlobalFeed)
	g.GET("/feed/me", h.GetOwnFeed)
	g.GET("/feed/targeted", h.GetTargetedFeed)
	g.GET("/feed/trending", h.GetTrendingFeed)
	g.GET("/feed/filtered", h.GetFilteredFeed)
	g.GET("/feed/users/:username", h.GetUserPublicFeed)
	g.GET("/activity/stats", h.GetActivityStats)
}

// nameLookup builds the display-name resolver for one fetched window.
func (h *FeedHandler) nameLookup(window []models.Activity) feed.NameLookup {
	seen := make(map[uint]bool, len(window))
	ids := make([]uint, 0, len(window))
	for _, a := range window {
		if !seen[a.ActorID] {
			seen[a.ActorID] = true
			ids = append(ids, a.ActorID)
		}
	}
	users, err := h.userRepository.GetUsersByIDs(ids)
	if err != nil {
		users = map[uint]models.User{}
	}
	return func(actorID uint) string {
		if u, ok := users[actorID]; ok {
			return u.DisplayName()
		}
		return "Someone"
	}
}

func (h *FeedHandler) respond(c echo.Context, window []models.Activity, total int64, page, perPage int) error {
	aggregated := feed.Aggregate(window, h.nameLookup(window))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"activities": aggregated},
		"meta":    paginationMeta(total, page, perPage),
	})
}

// GetFeed returns the personalized feed for the current user
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, perPage := parsePagination(c)
	followingIDs, err := h.followRepository.GetFollowingIDs(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	window, total, err := h.activityRepository.PersonalizedWindow(currentUserID, followingIDs, (page-1)*perPage, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.respond(c, window, total, page, perPage)
}

// GetGlobalFeed returns all public activity
func (h *FeedHandler) GetGlobalFeed(c echo.Context) error {
	page, perPage := parsePagination(c)
	window, total, err := h.activityRepository.GlobalWindow((page-1)*perPage, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.respond(c, window, total, page, perPage)
}

// GetOwnFeed returns the current user's own activity
func (h *FeedHandler) GetOwnFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, perPage := parsePagination(c)
	window, total, err := h.activityRepository.OwnWindow(currentUserID, (page-1)*perPage, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.respond(c, window, total, page, perPage)
}

// GetTargetedFeed returns activity about the current user
func (h *FeedHandler) GetTargetedFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, perPage := parsePagination(c)
	window, total, err := h.activityRepository.TargetedWindow(currentUserID, (page-1)*perPage, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.respond(c, window, total, page, perPage)
}

// GetUserPublicFeed returns a user's public activity, resolved by username
func (h *FeedHandler) GetUserPublicFeed(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		return httpError(err, "User not found")
	}

	page, perPage := parsePagination(c)
	window, total, err := h.activityRepository.ActorPublicWindow(user.ID, (page-1)*perPage, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.respond(c, window, total, page, perPage)
}

// GetFilteredFeed returns public activity narrowed by optional exact-match
// filters on action, subject_kind and actor_id
func (h *FeedHandler) GetFilteredFeed(c echo.Context) error {
	filter := repositories.ActivityFilter{
		Action:      c.QueryParam("action"),
		SubjectKind: c.QueryParam("subject_kind"),
	}
	if filter.SubjectKind != "" && !models.ValidSubjectKind(filter.SubjectKind) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid subject_kind")
	}
	if raw := c.QueryParam("actor_id"); raw != "" {
		actorID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid actor_id")
		}
		filter.ActorID = uint(actorID)
	}

	page, perPage := parsePagination(c)
	window, total, err := h.activityRepository.FilteredWindow(filter, (page-1)*perPage, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.respond(c, window, total, page, perPage)
}

// GetTrendingFeed returns recent public activity within a period. Trending
// pages carry no total count.
func (h *FeedHandler) GetTrendingFeed(c echo.Context) error {
	period := models.TrendingPeriod(c.QueryParam("period"))
	if period == "" {
		period = models.PeriodDay
	}
	cutoff, ok := period.Cutoff(timeNow())
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid period; expected hour, day, week, month, year or all")
	}

	page, perPage := parsePagination(c)
	window, err := h.activityRepository.TrendingWindow(cutoff, (page-1)*perPage, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	aggregated := feed.Aggregate(window, h.nameLookup(window))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"activities": aggregated},
		"meta":    echo.Map{"per_page": perPage, "current_page": page, "period": string(period)},
	})
}

// GetActivityStats returns the current user's activity counts by action
func (h *FeedHandler) GetActivityStats(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	stats, err := h.activityRepository.StatsByActor(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"stats": stats}})
}
