package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nbekov/noted/internal/usecase"
)

type profileServicer interface {
	GetProfile(ctx context.Context, token string) (*usecase.Profile, error)
	UpdateProfile(ctx context.Context, token, username, email string, password *string) (*usecase.Profile, error)
}

type UserHandler struct {
	data   profileServicer
	logger *slog.Logger
}

func NewUserHandler(data profileServicer, logger *slog.Logger) *UserHandler {
	return &UserHandler{data: data, logger: logger.With("component", "user_handler")}
}

type updateProfileRequest struct {
	Username string  `json:"username" binding:"required"`
	Email    string  `json:"email"    binding:"required"`
	Password *string `json:"password"`
}

type profileResponse struct {
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
	ActiveSessions int       `json:"active_sessions"`
}

func toProfileResponse(p *usecase.Profile) profileResponse {
	return profileResponse{
		Username:       p.Username,
		Email:          p.Email,
		CreatedAt:      p.CreatedAt,
		ActiveSessions: p.ActiveSessions,
	}
}

// GET /api/user
func (h *UserHandler) Get(c *gin.Context) {
	profile, err := h.data.GetProfile(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

// PUT /api/user
func (h *UserHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.data.UpdateProfile(c.Request.Context(), bearerToken(c), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}
