package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aissouss/minishop-api/services"
)

// GetProducts lists active products with optional filtering and sorting.
// Query params: search, category, min_price, max_price (cents), sort_by, order.
func GetProducts(catalog *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts := services.ListOptions{
			Search:   c.Query("search"),
			Category: c.Query("category"),
			SortBy:   c.DefaultQuery("sort_by", "created_at"),
			Order:    c.DefaultQuery("order", "desc"),
		}

		if minPriceStr := c.Query("min_price"); minPriceStr != "" {
			mp, err := strconv.ParseInt(minPriceStr, 10, 64)
			if err != nil || mp < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
			opts.MinPriceCents = mp
		}
		if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
			mp, err := strconv.ParseInt(maxPriceStr, 10, 64)
			if err != nil || mp < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
			opts.MaxPriceCents = mp
		}

		products, err := catalog.ListProducts(c.Request.Context(), opts)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
