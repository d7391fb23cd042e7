package handlers

import (
	"net/http"
	"strconv"

	"github.com/clipshelf/backend/internal/events"
	"github.com/clipshelf/backend/internal/models"
	"github.com/clipshelf/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// VideoHandler handles videos inside collections
type VideoHandler struct {
	videoRepository      repositories.VideoRepository
	collectionRepository repositories.CollectionRepository
	counters             repositories.CounterUpdater
	orchestrator         *events.Orchestrator
}

// NewVideoHandler creates a new VideoHandler
func NewVideoHandler(videoRepo repositories.VideoRepository, collectionRepo repositories.CollectionRepository, counters repositories.CounterUpdater, orchestrator *events.Orchestrator) *VideoHandler {
	return &VideoHandler{
		videoRepository:      videoRepo,
		collectionRepository: collectionRepo,
		counters:             counters,
		orchestrator:         orchestrator,
	}
}

// RegisterVideoRoutes registers video-related routes
func (h *VideoHandler) RegisterVideoRoutes(g *echo.Group) {
	g.POST("/collections/:id/videos", h.AddVideo)
	g.GET("/collections/:id/videos", h.GetVideosByCollection)
	g.GET("/videos/:id", h.GetVideo)
	g.DELETE("/videos/:id", h.DeleteVideo)
}

// AddVideo adds a video to a collection; collection owner only
func (h *VideoHandler) AddVideo(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	collectionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid collection ID")
	}

	var req models.AddVideoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	collection, err := h.collectionRepository.GetCollectionByID(uint(collectionID))
	if err != nil {
		return httpError(err, "Collection not found")
	}
	if collection.Owner() != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the collection owner")
	}

	ctx := c.Request().Context()
	video := &models.Video{
		CollectionID: collection.ID,
		OwnerID:      currentUserID,
		Title:        req.Title,
		SourceURL:    req.SourceURL,
		ThumbnailURL: req.ThumbnailURL,
		DurationSec:  req.DurationSec,
	}
	if err := h.videoRepository.CreateVideo(ctx, video); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	collectionIDStr := strconv.FormatUint(uint64(collection.ID), 10)
	if err := h.counters.Adjust(ctx, models.SubjectCollection, collectionIDStr, "video_count", +1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.orchestrator.Dispatch(ctx, events.Event{
		Kind:       events.KindVideoAdded,
		ActorID:    currentUserID,
		Subject:    models.SubjectRef{Kind: models.SubjectVideo, ID: video.ID.Hex()},
		Visibility: collection.Visibility,
		Extra:      models.Properties{"collection_id": collectionIDStr, "collection_title": collection.Title},
	})

	return c.JSON(http.StatusCreated, video)
}

// GetVideosByCollection lists a collection's videos
func (h *VideoHandler) GetVideosByCollection(c echo.Context) error {
	collectionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid collection ID")
	}

	collection, err := h.collectionRepository.GetCollectionByID(uint(collectionID))
	if err != nil {
		return httpError(err, "Collection not found")
	}
	if collection.Visibility == models.VisibilityPrivate && collection.Owner() != getUserIDFromContext(c) {
		return echo.NewHTTPError(http.StatusNotFound, "Collection not found")
	}

	page, perPage := parsePagination(c)
	skip := int64((page - 1) * perPage)

	videos, err := h.videoRepository.GetVideosByCollectionID(c.Request().Context(), collection.ID, skip, int64(perPage))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"videos": videos},
		"meta":    paginationMeta(collection.VideoCount, page, perPage),
	})
}

// GetVideo retrieves a video by ID
func (h *VideoHandler) GetVideo(c echo.Context) error {
	video, err := h.videoRepository.GetVideoByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err, "Video not found")
	}
	return c.JSON(http.StatusOK, video)
}

// DeleteVideo removes a video from its collection; owner only
func (h *VideoHandler) DeleteVideo(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	ctx := c.Request().Context()
	video, err := h.videoRepository.GetVideoByID(ctx, c.Param("id"))
	if err != nil {
		return httpError(err, "Video not found")
	}
	if video.Owner() != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the video owner")
	}

	if err := h.videoRepository.DeleteVideo(ctx, video.ID.Hex()); err != nil {
		return httpError(err, "Video not found")
	}

	collectionIDStr := strconv.FormatUint(uint64(video.CollectionID), 10)
	if err := h.counters.Adjust(ctx, models.SubjectCollection, collectionIDStr, "video_count", -1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
