package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aissouss/minishop-api/services"
)

// POST /user/cart/merge
//
// Folds a guest cart (accumulated client-side before login) into the
// authenticated session cart. The payload is a JSON array of
// {productId, quantity} pairs. A structurally broken payload rejects the
// whole merge with zero items added; individual pairs that fail validation
// are skipped and only reduce the merged count.
func MergeGuestCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionFrom(c)
		if !ok {
			return
		}

		var items []services.GuestCartItem
		if err := c.ShouldBindJSON(&items); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":    false,
				"message":    "Invalid cart payload",
				"itemsAdded": 0,
			})
			return
		}

		result, err := carts.MergeGuestCart(c.Request.Context(), sess, items)
		if err != nil {
			c.JSON(statusFor(err), gin.H{
				"success":    false,
				"message":    "Failed to merge cart",
				"itemsAdded": 0,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"message":    result.Message,
			"itemsAdded": result.ItemsAdded,
		})
	}
}
