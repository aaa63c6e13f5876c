package http

import (
	"github.com/gin-gonic/gin"

	"taskease/internal/adapter/http/handlers"
	"taskease/internal/adapter/http/middleware"
	"taskease/internal/core/ports"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Summary    *handlers.SummaryHandler
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Task       *handlers.TaskHandler
	TaskUpdate *handlers.TaskUpdateHandler
	Chat       *handlers.ChatHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers, tokens ports.SessionTokens) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)
		api.GET("/ping", h.Summary.Ping)

		api.POST("/auth/signup", h.Auth.Signup)
		api.POST("/auth/login", h.Auth.Login)

		api.GET("/chat/ws", middleware.QueryTokenAuthMiddleware(tokens), h.Chat.Connect)
	}

	authed := api.Group("", middleware.AuthMiddleware(tokens))
	{
		authed.GET("/users/emails", h.User.ListEmails)
		authed.GET("/users/me/detail", h.User.GetDetail)
		authed.PUT("/users/me/detail", h.User.SaveDetail)
		authed.GET("/users/:email", h.User.GetProfile)

		authed.POST("/tasks", h.Task.CreateTask)
		authed.GET("/tasks/assigned", h.Task.ListAssignedTasks)
		authed.GET("/tasks/created", h.Task.ListCreatedTasks)
		authed.GET("/tasks/:id", h.Task.GetTask)
		authed.POST("/tasks/:id/complete", h.Task.CompleteTask)
		authed.DELETE("/tasks/:id", h.Task.DeleteTask)
		authed.GET("/tasks/:id/updates", h.TaskUpdate.ListUpdates)
		authed.POST("/tasks/:id/updates", h.TaskUpdate.AddUpdate)

		authed.GET("/chat/messages", h.Chat.ListMessages)
	}
}
