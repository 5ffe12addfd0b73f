package controllers

import (
	"fmt"
	"net/http"

	"storefront/middleware"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService *services.OrderService
}

func NewOrderController(orderService *services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// Checkout converts the session cart into a persisted order.
func (oc *OrderController) Checkout(c *gin.Context) {
	sessionID, session, err := middleware.GetSession(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required."})
		return
	}

	order, appErr := oc.orderService.Checkout(c.Request.Context(), sessionID, session)
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  fmt.Sprintf("Order placed successfully! Order ID: %d", order.ID),
		"order_id": order.ID,
		"total":    order.TotalAmount,
	})
}

// GetOrders lists the caller's own orders, newest first.
func (oc *OrderController) GetOrders(c *gin.Context) {
	_, session, err := middleware.GetSession(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required."})
		return
	}

	orders, appErr := oc.orderService.GetUserOrders(c.Request.Context(), session.UserID)
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
