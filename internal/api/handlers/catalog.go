package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wapsender/totalshophn/internal/repository"
)

// HandleListProducts handles GET /v1/catalog/products
func HandleListProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repos.Catalog.ListProducts(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		category := c.Query("category")
		if category != "" {
			filtered := products[:0]
			for _, p := range products {
				if p.Category == category {
					filtered = append(filtered, p)
				}
			}
			products = filtered
		}

		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// HandleListCategories handles GET /v1/catalog/categories
func HandleListCategories(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := repos.Catalog.ListCategories(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list categories", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// HandleListFAQs handles GET /v1/catalog/faqs
func HandleListFAQs(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		faqs, err := repos.Catalog.ListFAQs(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list faqs", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"faqs": faqs})
	}
}

// HandleGetWhatsAppNumber handles GET /v1/settings/whatsapp
func HandleGetWhatsAppNumber(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := repos.Catalog.GetSettings(c.Request.Context())
		if err != nil {
			logger.Error("Failed to get settings", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"whatsapp_number": settings.WhatsAppNumber})
	}
}
