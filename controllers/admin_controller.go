package controllers

import (
	"net/http"

	"storefront/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	productService *services.ProductService
	reportService  *services.ReportService
}

func NewAdminController(productService *services.ProductService, reportService *services.ReportService) *AdminController {
	return &AdminController{productService: productService, reportService: reportService}
}

// Dashboard serves the sales aggregates.
func (ac *AdminController) Dashboard(c *gin.Context) {
	report, appErr := ac.reportService.Dashboard(c.Request.Context())
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusOK, report)
}

// ListProducts serves the catalog for the admin view.
func (ac *AdminController) ListProducts(c *gin.Context) {
	products, appErr := ac.productService.ListProducts(c.Request.Context())
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// AddProduct creates a catalog entry.
func (ac *AdminController) AddProduct(c *gin.Context) {
	var input services.ProductInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, price, category and stock are required."})
		return
	}

	product, appErr := ac.productService.CreateProduct(c.Request.Context(), input)
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product added successfully.", "product": product})
}

// GetProduct fetches one product for the edit view.
func (ac *AdminController) GetProduct(c *gin.Context) {
	id, ok := parseProductID(c, "id")
	if !ok {
		return
	}

	product, appErr := ac.productService.GetProduct(c.Request.Context(), id)
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// EditProduct replaces a product's fields.
func (ac *AdminController) EditProduct(c *gin.Context) {
	id, ok := parseProductID(c, "id")
	if !ok {
		return
	}

	var input services.ProductInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, price, category and stock are required."})
		return
	}

	product, appErr := ac.productService.UpdateProduct(c.Request.Context(), id, input)
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully.", "product": product})
}

// DeleteProduct removes a product; past orders keep their line items.
func (ac *AdminController) DeleteProduct(c *gin.Context) {
	id, ok := parseProductID(c, "id")
	if !ok {
		return
	}

	if appErr := ac.productService.DeleteProduct(c.Request.Context(), id); appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully."})
}
