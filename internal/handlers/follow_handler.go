package handlers

import (
	"net/http"
	"strconv"

	"github.com/clipshelf/backend/internal/events"
	"github.com/clipshelf/backend/internal/models"
	"github.com/clipshelf/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests. It commits the edge
// and adjusts counters itself (counter failures are fatal to the request);
// the orchestrator only gets the event after the edge is durable.
type FollowHandler struct {
	followRepository repositories.FollowRepository
	counters         repositories.CounterUpdater
	orchestrator     *events.Orchestrator
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, counters repositories.CounterUpdater, orchestrator *events.Orchestrator, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		counters:         counters,
		orchestrator:     orchestrator,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if _, err := h.userRepository.GetUserByID(uint(targetID)); err != nil {
		return httpError(err, "User not found")
	}

	follow := &models.Follow{
		FollowerID:  currentUserID,
		FollowingID: uint(targetID),
	}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return httpError(err, "User not found")
	}

	ctx := c.Request().Context()
	if err := h.counters.Adjust(ctx, models.SubjectUser, strconv.FormatUint(uint64(currentUserID), 10), "following_count", +1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.counters.Adjust(ctx, models.SubjectUser, strconv.FormatUint(targetID, 10), "follower_count", +1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.orchestrator.Dispatch(ctx, events.Event{
		Kind:    events.KindUserFollowed,
		ActorID: currentUserID,
		Subject: models.SubjectRef{Kind: models.SubjectUser, ID: strconv.FormatUint(targetID, 10)},
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": true}})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.followRepository.DeleteFollow(currentUserID, uint(targetID)); err != nil {
		return httpError(err, "Follow relationship not found")
	}

	ctx := c.Request().Context()
	if err := h.counters.Adjust(ctx, models.SubjectUser, strconv.FormatUint(uint64(currentUserID), 10), "following_count", -1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.counters.Adjust(ctx, models.SubjectUser, strconv.FormatUint(targetID, 10), "follower_count", -1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}
