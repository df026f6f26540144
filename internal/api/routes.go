package api

import (
	"github.com/labstack/echo/v4"

	"inkwell-backend/internal/auth"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api *echo.Group, authSvc *auth.Service) {
	// Initialize repositories
	InitPostRepo()

	// Store authSvc for use in handlers
	authService = authSvc

	// Health check (public)
	api.GET("/health", healthCheck)

	// Auth routes (public - registration and login are rate limited)
	authGroup := api.Group("/auth")
	authGroup.POST("/register", registerHandler, auth.LoginRateLimiter.Middleware())
	authGroup.POST("/login", loginHandler, auth.LoginRateLimiter.Middleware())
	authGroup.POST("/logout", logoutHandler)
	authGroup.GET("/me", getCurrentUser, auth.RequireAuth(authSvc))
	authGroup.DELETE("/sessions", revokeAllSessions, auth.RequireAuth(authSvc))

	// Post routes. Reads are public by design; mutations require a session
	// and ownership checks happen in the handlers.
	posts := api.Group("/posts")
	posts.GET("", listPostsHandler, auth.OptionalAuth(authSvc))
	posts.GET("/:id", getPostHandler, auth.OptionalAuth(authSvc))
	posts.POST("", createPostHandler, auth.RequireAuth(authSvc))
	posts.PUT("/:id", updatePostHandler, auth.RequireAuth(authSvc))
	posts.DELETE("/:id", deletePostHandler, auth.RequireAuth(authSvc))
}
