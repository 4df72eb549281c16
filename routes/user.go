package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/aissouss/minishop-api/controllers/cart"
	productControllers "github.com/aissouss/minishop-api/controllers/product"
	"github.com/aissouss/minishop-api/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires a live session.
func SetupUserRoutes(r *gin.Engine, deps Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateSession(deps.Sessions, deps.JWTSecret))
	{
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCart(deps.Carts))                      // GET /user/cart
			cartGroup.POST("/", cartControllers.AddCartItem(deps.Carts))                 // POST /user/cart
			cartGroup.PUT("/:product_id", cartControllers.UpdateCartItem(deps.Carts))    // PUT /user/cart/:product_id
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(deps.Carts)) // DELETE /user/cart/:product_id
			cartGroup.DELETE("/", cartControllers.ClearCart(deps.Carts))                 // DELETE /user/cart
			cartGroup.POST("/validate", cartControllers.ValidateCart(deps.Carts))        // POST /user/cart/validate
			cartGroup.POST("/merge", cartControllers.MergeGuestCart(deps.Carts))         // POST /user/cart/merge
			cartGroup.GET("/count", cartControllers.GetCartItemCount(deps.Carts))        // GET /user/cart/count
		}
	}
}

// SetupProductRoutes registers the public product browsing endpoints.
func SetupProductRoutes(r *gin.Engine, deps Deps) {
	r.GET("/products", productControllers.GetProducts(deps.Catalog))
	r.GET("/products/:id", productControllers.GetProductByID(deps.Catalog))
}
