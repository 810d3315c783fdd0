package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wapsender/totalshophn/internal/api/middleware"
	"github.com/wapsender/totalshophn/internal/domain"
	"github.com/wapsender/totalshophn/internal/service"
	"github.com/wapsender/totalshophn/pkg/errors"
)

// cartKey resolves the key a request's cart lives under: the uid for
// signed-in users, the X-Cart-Key header for guests.
func cartKey(c *gin.Context) (string, domain.UserRole, bool) {
	if user, ok := middleware.GetUserFromContext(c); ok {
		return user.UID, user.Role, true
	}
	key := c.GetHeader("X-Cart-Key")
	if key == "" {
		return "", "", false
	}
	return "guest:" + key, domain.RoleCustomer, true
}

// AddCartItemRequest is the add-to-cart payload
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// ApplyCouponRequest is the coupon apply payload
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// HandleAddCartItem handles POST /v1/cart/items
func HandleAddCartItem(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, role, ok := cartKey(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "X-Cart-Key header required for guest carts"})
			return
		}

		var req AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}

		summary, err := carts.Add(c.Request.Context(), key, req.ProductID, role)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to add cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// HandleRemoveCartItem handles DELETE /v1/cart/items/:productId
func HandleRemoveCartItem(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, _, ok := cartKey(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "X-Cart-Key header required for guest carts"})
			return
		}
		summary, err := carts.Remove(c.Request.Context(), key, c.Param("productId"))
		if err != nil {
			logger.Error("Failed to remove cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, _, ok := cartKey(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "X-Cart-Key header required for guest carts"})
			return
		}
		carts.Clear(c.Request.Context(), key)
		c.Status(http.StatusNoContent)
	}
}

// HandleGetCart handles GET /v1/cart
func HandleGetCart(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, _, ok := cartKey(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "X-Cart-Key header required for guest carts"})
			return
		}
		c.JSON(http.StatusOK, carts.Summary(c.Request.Context(), key))
	}
}

// HandleApplyCoupon handles POST /v1/cart/coupon
func HandleApplyCoupon(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, _, ok := cartKey(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "X-Cart-Key header required for guest carts"})
			return
		}

		var req ApplyCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}

		result, err := carts.ApplyCoupon(c.Request.Context(), key, req.Code)
		if err != nil {
			logger.Error("Failed to apply coupon", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
