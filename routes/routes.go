package routes

import (
	"net/http"
	"time"

	"storefront/config"
	"storefront/controllers"
	"storefront/errors"
	"storefront/logger"
	"storefront/middleware"
	"storefront/repository"
	"storefront/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Register wires the full route table onto the router.
func Register(r *gin.Engine, db *gorm.DB, redisClient *redis.Client, cfg config.Config) {
	userRepo := repository.NewGormUserRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	sessionRepo := repository.NewRedisSessionRepository(redisClient, cfg.SessionTTL)

	authService := services.NewAuthService(userRepo, sessionRepo)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(productRepo, sessionRepo)
	orderService := services.NewOrderService(productRepo, orderRepo, sessionRepo)
	reportService := services.NewReportService(orderRepo)

	authController := controllers.NewAuthController(authService, cfg.SessionTTL)
	productController := controllers.NewProductController(productService)
	cartController := controllers.NewCartController(cartService)
	orderController := controllers.NewOrderController(orderService)
	adminController := controllers.NewAdminController(productService, reportService)

	r.Use(logger.RequestLogger())
	r.Use(errors.ErrorMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// Public credential routes, rate limited per IP
	authLimiter := middleware.RateLimitMiddleware(rate.Every(time.Minute/100), 50)
	r.POST("/register", authLimiter, authController.Register)
	r.POST("/login", authLimiter, authController.Login)
	r.GET("/logout", authController.Logout)

	// Customer routes
	auth := r.Group("/")
	auth.Use(middleware.RequireAuth(sessionRepo))
	{
		auth.GET("/", productController.ListProducts)
		auth.GET("/products", productController.ListProducts)
		auth.POST("/add_to_cart/:product_id", cartController.AddToCart)
		auth.GET("/cart", cartController.ViewCart)
		auth.GET("/remove_from_cart/:product_id", cartController.RemoveFromCart)
		auth.GET("/checkout", orderController.Checkout)
		auth.GET("/orders", orderController.GetOrders)
	}

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuth(sessionRepo), middleware.RequireAdmin())
	{
		admin.GET("", adminController.Dashboard)
		admin.GET("/products", adminController.ListProducts)
		admin.POST("/add_product", adminController.AddProduct)
		admin.GET("/edit_product/:id", adminController.GetProduct)
		admin.POST("/edit_product/:id", adminController.EditProduct)
		admin.GET("/delete_product/:id", adminController.DeleteProduct)
	}
}
