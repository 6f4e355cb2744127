package httpserver

import (
	"net/http"

	cartsvc "storefront/internal/service/cart"

	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	Products []cartsvc.ItemInput `json:"products"`
}

func addToCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := carts.AddItems(c.Request.Context(), currentUserID(c), req.Products); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "products added to cart"})
	}
}

func getCartHandler(carts cartReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.GetByUser(c.Request.Context(), currentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}
