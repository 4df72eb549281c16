package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/aissouss/minishop-api/auth"
	"github.com/aissouss/minishop-api/middleware"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(deps.DB))
		authGroup.POST("/login", auth.Login(deps.DB, deps.Sessions, deps.JWTSecret))
		authGroup.POST("/logout",
			middleware.ValidateSession(deps.Sessions, deps.JWTSecret),
			auth.Logout(deps.Sessions))
	}
}
