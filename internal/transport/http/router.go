package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/nbekov/noted/internal/transport/http/handler"
	"github.com/nbekov/noted/internal/transport/http/middleware"
	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	categoryHandler *handler.CategoryHandler,
	noteHandler *handler.NoteHandler,
	userHandler *handler.UserHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	api := r.Group("/api")

	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/token/valid", authHandler.TokenValid)

	api.GET("/categories", categoryHandler.List)
	api.POST("/categories", categoryHandler.Create)
	api.GET("/categories/:id", categoryHandler.Get)
	api.PUT("/categories/:id", categoryHandler.Update)
	api.DELETE("/categories/:id", categoryHandler.Delete)

	api.GET("/categories/:id/notes", noteHandler.List)
	api.POST("/categories/:id/notes", noteHandler.Create)
	api.GET("/notes/:id", noteHandler.Get)
	api.PUT("/notes/:id", noteHandler.Update)
	api.DELETE("/notes/:id", noteHandler.Delete)

	api.GET("/user", userHandler.Get)
	api.PUT("/user", userHandler.Update)

	return r
}
