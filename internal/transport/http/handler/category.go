package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nbekov/noted/internal/domain"
)

type categoryServicer interface {
	ListCategories(ctx context.Context, token string) ([]*domain.Category, error)
	GetCategory(ctx context.Context, token string, id int64) (*domain.Category, error)
	CreateCategory(ctx context.Context, token, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, token string, id int64, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, token string, id int64) error
}

type CategoryHandler struct {
	data   categoryServicer
	logger *slog.Logger
}

func NewCategoryHandler(data categoryServicer, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{data: data, logger: logger.With("component", "category_handler")}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toCategoryResponse(c *domain.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name}
}

// GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.data.ListCategories(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, toCategoryResponse(category))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	category, err := h.data.GetCategory(c.Request.Context(), bearerToken(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(category))
}

// POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.data.CreateCategory(c.Request.Context(), bearerToken(c), req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.data.UpdateCategory(c.Request.Context(), bearerToken(c), id, req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(category))
}

// DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.data.DeleteCategory(c.Request.Context(), bearerToken(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// pathID parses the :id route parameter, writing a 400 on garbage.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
