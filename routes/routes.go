package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aissouss/minishop-api/services"
	"github.com/aissouss/minishop-api/session"
)

// Deps carries everything the route groups need, built once in main.
type Deps struct {
	DB        *gorm.DB
	Sessions  *session.Store
	Carts     *services.CartService
	Catalog   *services.CatalogService
	JWTSecret string
}

// SetupRoutes is the single entry-point that wires up the Auth, Public and
// User route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, deps)

	// Public product browsing
	SetupProductRoutes(r, deps)

	// Session-protected cart routes
	SetupUserRoutes(r, deps)
}
