package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wapsender/totalshophn/internal/api/handlers"
	"github.com/wapsender/totalshophn/internal/api/middleware"
	"github.com/wapsender/totalshophn/internal/config"
	"github.com/wapsender/totalshophn/internal/repository"
	"github.com/wapsender/totalshophn/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	carts := service.NewCartService(repos, logger)
	checkout := service.NewCheckoutService(repos, logger)

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "TotalShop HN storefront API",
			"endpoints": []string{
				"GET /health",
				"GET /v1/catalog/products",
				"GET /v1/catalog/categories",
				"GET /v1/catalog/faqs",
				"GET /v1/settings/whatsapp",
				"GET /v1/cart",
				"POST /v1/cart/items",
				"POST /v1/cart/coupon",
				"POST /v1/checkout/balance",
				"POST /v1/checkout/whatsapp",
				"GET /v1/me",
				"GET /v1/me/purchases",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		// Public storefront reads
		v1.GET("/catalog/products", handlers.HandleListProducts(repos, logger))
		v1.GET("/catalog/categories", handlers.HandleListCategories(repos, logger))
		v1.GET("/catalog/faqs", handlers.HandleListFAQs(repos, logger))
		v1.GET("/settings/whatsapp", handlers.HandleGetWhatsAppNumber(repos, logger))

		// Cart routes serve both guests (X-Cart-Key) and signed-in users
		cartRoutes := v1.Group("")
		cartRoutes.Use(middleware.OptionalAuthMiddleware(cfg, repos, logger))
		{
			cartRoutes.GET("/cart", handlers.HandleGetCart(carts, logger))
			cartRoutes.POST("/cart/items", handlers.HandleAddCartItem(carts, logger))
			cartRoutes.DELETE("/cart/items/:productId", handlers.HandleRemoveCartItem(carts, logger))
			cartRoutes.DELETE("/cart", handlers.HandleClearCart(carts, logger))
			cartRoutes.POST("/cart/coupon", handlers.HandleApplyCoupon(carts, logger))
			cartRoutes.POST("/checkout/whatsapp", handlers.HandleWhatsAppCheckout(carts, checkout, logger))
		}

		// Authenticated routes (identity-provider session token required)
		userRoutes := v1.Group("")
		userRoutes.Use(middleware.AuthMiddleware(cfg, repos, logger))
		{
			userRoutes.POST("/checkout/balance", handlers.HandleBalanceCheckout(carts, checkout, logger))
			userRoutes.GET("/me", handlers.HandleGetProfile(logger))
			userRoutes.GET("/me/purchases", handlers.HandleGetPurchases(logger))
		}

		// Admin routes (admin role or service key)
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminMiddleware(cfg, repos, logger))
		{
			adminRoutes.POST("/products", handlers.HandleCreateProduct(repos, logger))
			adminRoutes.PUT("/products/:id", handlers.HandleUpdateProduct(repos, logger))
			adminRoutes.DELETE("/products/:id", handlers.HandleDeleteProduct(repos, logger))
			adminRoutes.POST("/products/:id/stock", handlers.HandleRestock(repos, logger))
			adminRoutes.POST("/products/:id/stock/import", handlers.HandleRestockImport(repos, logger))

			adminRoutes.GET("/coupons", handlers.HandleListCoupons(repos, logger))
			adminRoutes.POST("/coupons", handlers.HandleCreateCoupon(repos, logger))
			adminRoutes.PUT("/coupons/:id", handlers.HandleUpdateCoupon(repos, logger))
			adminRoutes.DELETE("/coupons/:id", handlers.HandleDeleteCoupon(repos, logger))

			adminRoutes.POST("/categories", handlers.HandleCreateCategory(repos, logger))
			adminRoutes.DELETE("/categories/:id", handlers.HandleDeleteCategory(repos, logger))

			adminRoutes.PUT("/settings", handlers.HandleUpdateSettings(repos, logger))

			adminRoutes.GET("/users", handlers.HandleListUsers(repos, logger))
			adminRoutes.POST("/users/:uid/balance", handlers.HandleCreditBalance(repos, logger))
			adminRoutes.PUT("/users/:uid/role", handlers.HandleUpdateUserRole(repos, logger))
			adminRoutes.DELETE("/users/:uid", handlers.HandleDeleteUser(repos, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
