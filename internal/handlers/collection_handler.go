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

// CollectionHandler handles collection CRUD and share links
type CollectionHandler struct {
	collectionRepository repositories.CollectionRepository
	shareRepository      repositories.ShareRepository
	orchestrator         *events.Orchestrator
}

// NewCollectionHandler creates a new CollectionHandler
func NewCollectionHandler(collectionRepo repositories.CollectionRepository, shareRepo repositories.ShareRepository, orchestrator *events.Orchestrator) *CollectionHandler {
	return &CollectionHandler{
		collectionRepository: collectionRepo,
		shareRepository:      shareRepo,
		orchestrator:         orchestrator,
	}
}

// RegisterCollectionRoutes registers collection-related routes
func (h *CollectionHandler) RegisterCollectionRoutes(g *echo.Group) {
	g.POST("/collections", h.CreateCollection)
	g.GET("/collections", h.GetOwnCollections)
	g.GET("/collections/:id", h.GetCollection)
	g.PUT("/collections/:id", h.UpdateCollection)
	g.DELETE("/collections/:id", h.DeleteCollection)
	g.POST("/collections/:id/shares", h.ShareCollection)
}

// CreateCollection creates a collection and fans the creation event out
func (h *CollectionHandler) CreateCollection(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateCollectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	collection := models.NewCollection(currentUserID, req.Title, req.Description, req.Visibility)
	if err := h.collectionRepository.CreateCollection(collection); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.orchestrator.Dispatch(c.Request().Context(), events.Event{
		Kind:       events.KindCollectionCreated,
		ActorID:    currentUserID,
		Subject:    models.SubjectRef{Kind: models.SubjectCollection, ID: strconv.FormatUint(uint64(collection.ID), 10)},
		Visibility: collection.Visibility,
	})

	return c.JSON(http.StatusCreated, collection)
}

// GetOwnCollections lists the authenticated user's collections
func (h *CollectionHandler) GetOwnCollections(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	collections, err := h.collectionRepository.GetCollectionsByUserID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"collections": collections}})
}

// GetCollection retrieves a collection by ID; private collections are only
// visible to their owner
func (h *CollectionHandler) GetCollection(c echo.Context) error {
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

	return c.JSON(http.StatusOK, collection)
}

// UpdateCollection updates a collection's metadata; owner only
func (h *CollectionHandler) UpdateCollection(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	collectionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid collection ID")
	}

	var req models.UpdateCollectionRequest
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

	if req.Title != "" {
		collection.Title = req.Title
		collection.Slug = models.Slugify(req.Title)
	}
	if req.Description != "" {
		collection.Description = req.Description
	}
	if req.Visibility != "" {
		collection.Visibility = req.Visibility
	}

	if err := h.collectionRepository.UpdateCollection(collection); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, collection)
}

// DeleteCollection deletes a collection; owner only
func (h *CollectionHandler) DeleteCollection(c echo.Context) error {
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
	if collection.Owner() != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the collection owner")
	}

	if err := h.collectionRepository.DeleteCollection(collection.ID); err != nil {
		return httpError(err, "Collection not found")
	}

	return c.NoContent(http.StatusNoContent)
}

// ShareCollection mints a share link for a collection and fans the share
// event out to the collection's owner
func (h *CollectionHandler) ShareCollection(c echo.Context) error {
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
	if collection.Visibility == models.VisibilityPrivate && collection.Owner() != currentUserID {
		return echo.NewHTTPError(http.StatusNotFound, "Collection not found")
	}

	share, err := h.shareRepository.CreateShare(collection.ID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.orchestrator.Dispatch(c.Request().Context(), events.Event{
		Kind:       events.KindCollectionShared,
		ActorID:    currentUserID,
		Subject:    models.SubjectRef{Kind: models.SubjectCollection, ID: strconv.FormatUint(uint64(collection.ID), 10)},
		Visibility: collection.Visibility,
		Extra:      models.Properties{"share_token": share.Token},
	})

	return c.JSON(http.StatusCreated, share)
}
