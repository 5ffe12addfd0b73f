package controllers

import (
	"net/http"
	"strconv"

	"storefront/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService *services.ProductService
}

func NewProductController(productService *services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ListProducts serves the catalog to logged-in users.
func (pc *ProductController) ListProducts(c *gin.Context) {
	products, appErr := pc.productService.ListProducts(c.Request.Context())
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// parseProductID reads the :product_id or :id route parameter.
func parseProductID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
		return 0, false
	}
	return uint(id), true
}
