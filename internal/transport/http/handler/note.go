package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nbekov/noted/internal/domain"
)

type noteServicer interface {
	ListNotes(ctx context.Context, token string, categoryID int64) ([]*domain.Note, error)
	GetNote(ctx context.Context, token string, id int64) (*domain.Note, error)
	CreateNote(ctx context.Context, token string, categoryID int64, name, content string) (*domain.Note, error)
	UpdateNote(ctx context.Context, token string, id int64, name, content string) (*domain.Note, error)
	DeleteNote(ctx context.Context, token string, id int64) error
}

type NoteHandler struct {
	data   noteServicer
	logger *slog.Logger
}

func NewNoteHandler(data noteServicer, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{data: data, logger: logger.With("component", "note_handler")}
}

type noteRequest struct {
	Name    string `json:"name" binding:"required"`
	Content string `json:"content"`
}

type noteResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

func toNoteResponse(n *domain.Note) noteResponse {
	return noteResponse{ID: n.ID, Name: n.Name, Content: n.Content}
}

// GET /api/categories/:id/notes
func (h *NoteHandler) List(c *gin.Context) {
	categoryID, ok := pathID(c)
	if !ok {
		return
	}

	notes, err := h.data.ListNotes(c.Request.Context(), bearerToken(c), categoryID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]noteResponse, 0, len(notes))
	for _, note := range notes {
		out = append(out, toNoteResponse(note))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/notes/:id
func (h *NoteHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	note, err := h.data.GetNote(c.Request.Context(), bearerToken(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toNoteResponse(note))
}

// POST /api/categories/:id/notes
func (h *NoteHandler) Create(c *gin.Context) {
	categoryID, ok := pathID(c)
	if !ok {
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.data.CreateNote(c.Request.Context(), bearerToken(c), categoryID, req.Name, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toNoteResponse(note))
}

// PUT /api/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.data.UpdateNote(c.Request.Context(), bearerToken(c), id, req.Name, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toNoteResponse(note))
}

// DELETE /api/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.data.DeleteNote(c.Request.Context(), bearerToken(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
