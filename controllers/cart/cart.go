package cartControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/aissouss/minishop-api/models"
	"github.com/aissouss/minishop-api/services"
	"github.com/aissouss/minishop-api/session"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type QuantityInput struct {
	Quantity int `json:"quantity"`
}

func sessionFrom(c *gin.Context) (*session.Session, bool) {
	sessVal, exists := c.Get("session")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	sess, ok := sessVal.(*session.Session)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return sess, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnavailable),
		errors.Is(err, models.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, models.ErrDependencyFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GET /user/cart
//
// The cart is reconciled against current stock before it is returned, so the
// client always sees quantities the catalog can actually satisfy. Adjustment
// messages, if any, ride along in the response.
func GetCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionFrom(c)
		if !ok {
			return
		}

		messages, err := carts.ValidateCart(c.Request.Context(), sess)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": "Failed to validate cart"})
			return
		}

		cart, err := carts.GetOrCreateCart(sess)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items":         cart.ItemsSortedByName(),
			"item_count":    cart.ItemCount(),
			"product_count": cart.ProductCount(),
			"total_cents":   cart.TotalCents(),
			"adjustments":   messages,
		})
	}
}

// POST /user/cart
func AddCartItem(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionFrom(c)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := carts.AddToCart(c.Request.Context(), sess, input.ProductID, input.Quantity); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":    "Added to cart",
			"item_count": carts.GetCartItemCount(sess),
		})
	}
}

// PUT /user/cart/:product_id
func UpdateCartItem(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionFrom(c)
		if !ok {
			return
		}

		productID, ok := productIDParam(c)
		if !ok {
			return
		}

		var input QuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := carts.UpdateQuantity(c.Request.Context(), sess, productID, input.Quantity); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":    "Cart updated",
			"item_count": carts.GetCartItemCount(sess),
		})
	}
}

// DELETE /user/cart/:product_id
func DeleteCartItem(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionFrom(c)
		if !ok {
			return
		}

		productID, ok := productIDParam(c)
		if !ok {
			return
		}

		if err := carts.RemoveFromCart(sess, productID); err != nil {
			c.JSON(statusFor(err), gin.H{"error": "Failed to delete item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionFrom(c)
		if !ok {
			return
		}

		if err := carts.ClearCart(sess); err != nil {
			c.JSON(statusFor(err), gin.H{"error": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// POST /user/cart/validate
func ValidateCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionFrom(c)
		if !ok {
			return
		}

		messages, err := carts.ValidateCart(c.Request.Context(), sess)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": "Failed to validate cart"})
			return
		}
		if messages == nil {
			messages = []string{}
		}

		c.JSON(http.StatusOK, gin.H{"adjustments": messages})
	}
}

// GET /user/cart/count
func GetCartItemCount(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionFrom(c)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, gin.H{"count": carts.GetCartItemCount(sess)})
	}
}

func productIDParam(c *gin.Context) (uint, bool) {
	idParam := c.Param("product_id")
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
		return 0, false
	}
	return uint(id), true
}
