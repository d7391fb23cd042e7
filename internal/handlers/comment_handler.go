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

// CommentHandler handles HTTP requests related to video comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	videoRepository   repositories.VideoRepository
	counters          repositories.CounterUpdater
	orchestrator      *events.Orchestrator
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, videoRepo repositories.VideoRepository, counters repositories.CounterUpdater, orchestrator *events.Orchestrator) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		videoRepository:   videoRepo,
		counters:          counters,
		orchestrator:      orchestrator,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/videos/:id/comments", h.CreateComment)
	g.GET("/videos/:id/comments", h.GetCommentsByVideoID)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a new comment on a video. The fan-out subject is
// the commented-on video, so its owner receives the notification.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	videoID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if _, err := h.videoRepository.GetVideoByID(ctx, videoID); err != nil {
		return httpError(err, "Video not found")
	}

	comment := &models.Comment{
		VideoID: videoID,
		UserID:  currentUserID,
		Body:    req.Body,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.counters.Adjust(ctx, models.SubjectVideo, videoID, "comment_count", +1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.orchestrator.Dispatch(ctx, events.Event{
		Kind:    events.KindCommentAdded,
		ActorID: currentUserID,
		Subject: models.SubjectRef{Kind: models.SubjectVideo, ID: videoID},
		Extra: models.Properties{
			"comment_id":   strconv.FormatUint(uint64(comment.ID), 10),
			"comment_body": comment.Body,
		},
	})

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByVideoID retrieves a video's comments, newest first
func (h *CommentHandler) GetCommentsByVideoID(c echo.Context) error {
	videoID := c.Param("id")

	if _, err := h.videoRepository.GetVideoByID(c.Request().Context(), videoID); err != nil {
		return httpError(err, "Video not found")
	}

	page, perPage := parsePagination(c)
	comments, total, err := h.commentRepository.GetCommentsByVideoID(videoID, page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"comments": comments},
		"meta":    paginationMeta(total, page, perPage),
	})
}

// DeleteComment deletes a comment; author only
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		return httpError(err, "Comment not found")
	}
	if comment.Owner() != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the comment author")
	}

	if err := h.commentRepository.DeleteComment(comment.ID); err != nil {
		return httpError(err, "Comment not found")
	}

	if err := h.counters.Adjust(c.Request().Context(), models.SubjectVideo, comment.VideoID, "comment_count", -1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
