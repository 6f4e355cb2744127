package httpserver

import (
	"net/http"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

func placeOrderHandler(checkout checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := checkout.PlaceOrder(c.Request.Context(), currentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order placed", "orderId": order.ID})
	}
}

func listOrdersHandler(orders orderReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := orders.ListByUser(c.Request.Context(), currentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		if result == nil {
			result = []domain.Order{}
		}
		c.JSON(http.StatusOK, result)
	}
}
