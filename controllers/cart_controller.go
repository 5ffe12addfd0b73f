package controllers

import (
	"fmt"
	"net/http"

	"storefront/middleware"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	Quantity int `form:"quantity" json:"quantity" binding:"required"`
}

type CartController struct {
	cartService *services.CartService
}

func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// AddToCart merges a quantity of one product into the session cart.
func (cc *CartController) AddToCart(c *gin.Context) {
	sessionID, _, err := middleware.GetSession(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required."})
		return
	}

	productID, ok := parseProductID(c, "product_id")
	if !ok {
		return
	}

	var req addToCartRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity is required."})
		return
	}

	product, appErr := cc.cartService.AddToCart(c.Request.Context(), sessionID, productID, req.Quantity)
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Added %d x %s to cart.", req.Quantity, product.Name),
	})
}

// ViewCart shows the cart with per-line subtotals and the grand total.
func (cc *CartController) ViewCart(c *gin.Context) {
	_, session, err := middleware.GetSession(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required."})
		return
	}

	lines, total, appErr := cc.cartService.ViewCart(c.Request.Context(), session)
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": lines, "total": total})
}

// RemoveFromCart drops a product from the cart; absent entries no-op.
func (cc *CartController) RemoveFromCart(c *gin.Context) {
	sessionID, _, err := middleware.GetSession(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required."})
		return
	}

	productID, ok := parseProductID(c, "product_id")
	if !ok {
		return
	}

	if appErr := cc.cartService.RemoveFromCart(c.Request.Context(), sessionID, productID); appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart."})
}
