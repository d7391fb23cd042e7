package handlers

import (
	"net/http"
	"strconv"

	"github.com/clipshelf/backend/internal/events"
	"github.com/clipshelf/backend/internal/models"
	"github.com/clipshelf/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles liking and unliking collections and videos
type LikeHandler struct {
	likeRepository       repositories.LikeRepository
	collectionRepository repositories.CollectionRepository
	videoRepository      repositories.VideoRepository
	counters             repositories.CounterUpdater
	orchestrator         *events.Orchestrator
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(
	likeRepo repositories.LikeRepository,
	collectionRepo repositories.CollectionRepository,
	videoRepo repositories.VideoRepository,
	counters repositories.CounterUpdater,
	orchestrator *events.Orchestrator,
) *LikeHandler {
	return &LikeHandler{
		likeRepository:       likeRepo,
		collectionRepository: collectionRepo,
		videoRepository:      videoRepo,
		counters:             counters,
		orchestrator:         orchestrator,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/collections/:id/likes", h.LikeCollection)
	g.DELETE("/collections/:id/likes", h.UnlikeCollection)
	g.POST("/videos/:id/likes", h.LikeVideo)
	g.DELETE("/videos/:id/likes", h.UnlikeVideo)
}

// LikeCollection handles liking a collection
func (h *LikeHandler) LikeCollection(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	collectionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid collection ID")
	}

	collection, err := h.collectionRepository.GetCollectionByID(uint(collectionID))
	if err != nil {
		return httpError(err, "Collection not found")
	}
	if collection.Owner() == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot like your own collection")
	}

	idStr := strconv.FormatUint(collectionID, 10)
	like := &models.Like{
		UserID:       currentUserID,
		LikeableKind: string(models.SubjectCollection),
		LikeableID:   idStr,
	}
	if err := h.likeRepository.CreateLike(like); err != nil {
		return httpError(err, "Collection not found")
	}

	ctx := c.Request().Context()
	if err := h.counters.Adjust(ctx, models.SubjectCollection, idStr, "like_count", +1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.orchestrator.Dispatch(ctx, events.Event{
		Kind:       events.KindCollectionLiked,
		ActorID:    currentUserID,
		Subject:    models.SubjectRef{Kind: models.SubjectCollection, ID: idStr},
		Visibility: collection.Visibility,
	})

	return c.JSON(http.StatusCreated, like)
}

// UnlikeCollection handles unliking a collection
func (h *LikeHandler) UnlikeCollection(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	collectionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid collection ID")
	}
	idStr := strconv.FormatUint(collectionID, 10)

	if err := h.likeRepository.DeleteLike(currentUserID, models.SubjectCollection, idStr); err != nil {
		return httpError(err, "Like not found")
	}

	if err := h.counters.Adjust(c.Request().Context(), models.SubjectCollection, idStr, "like_count", -1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// LikeVideo handles liking a video
func (h *LikeHandler) LikeVideo(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	videoID := c.Param("id")
	ctx := c.Request().Context()

	video, err := h.videoRepository.GetVideoByID(ctx, videoID)
	if err != nil {
		return httpError(err, "Video not found")
	}
	if video.Owner() == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot like your own video")
	}

	like := &models.Like{
		UserID:       currentUserID,
		LikeableKind: string(models.SubjectVideo),
		LikeableID:   videoID,
	}
	if err := h.likeRepository.CreateLike(like); err != nil {
		return httpError(err, "Video not found")
	}

	if err := h.counters.Adjust(ctx, models.SubjectVideo, videoID, "like_count", +1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.orchestrator.Dispatch(ctx, events.Event{
		Kind:    events.KindVideoLiked,
		ActorID: currentUserID,
		Subject: models.SubjectRef{Kind: models.SubjectVideo, ID: videoID},
	})

	return c.JSON(http.StatusCreated, like)
}

// UnlikeVideo handles unliking a video
func (h *LikeHandler) UnlikeVideo(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	videoID := c.Param("id")

	if err := h.likeRepository.DeleteLike(currentUserID, models.SubjectVideo, videoID); err != nil {
		return httpError(err, "Like not found")
	}

	if err := h.counters.Adjust(c.Request().Context(), models.SubjectVideo, videoID, "like_count", -1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
