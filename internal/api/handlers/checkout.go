package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wapsender/totalshophn/internal/api/middleware"
	"github.com/wapsender/totalshophn/internal/service"
	"github.com/wapsender/totalshophn/pkg/errors"
)

// checkoutErrorResponse maps a checkout failure to a status code and a stable
// error kind the client can branch on.
func checkoutErrorResponse(c *gin.Context, err error) bool {
	switch e := err.(type) {
	case *errors.ErrUserNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found", "message": e.Error()})
	case *errors.ErrCouponInvalid:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "coupon_invalid", "message": e.Error()})
	case *errors.ErrCouponExhausted:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "coupon_exhausted", "message": e.Error()})
	case *errors.ErrInsufficientBalance:
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient_balance", "message": e.Error()})
	case *errors.ErrProductMisconfigured:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "product_misconfigured", "message": e.Error()})
	case *errors.ErrOutOfStock:
		c.JSON(http.StatusConflict, gin.H{"error": "out_of_stock", "message": e.Error()})
	default:
		return false
	}
	return true
}

// HandleBalanceCheckout handles POST /v1/checkout/balance.
// On failure the cart and its applied coupon are left untouched so the buyer
// can retry after topping up; on success the cart is cleared.
func HandleBalanceCheckout(carts *service.CartService, checkout *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		lines, coupon := carts.Snapshot(c.Request.Context(), user.UID)
		if len(lines) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}

		couponID := ""
		if coupon != nil {
			couponID = coupon.ID
		}

		result, err := checkout.Purchase(c.Request.Context(), user.UID, lines, couponID)
		if err != nil {
			if checkoutErrorResponse(c, err) {
				return
			}
			logger.Error("Checkout failed", zap.Error(err), zap.String("uid", user.UID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		carts.Clear(c.Request.Context(), user.UID)
		c.JSON(http.StatusOK, result)
	}
}

// HandleWhatsAppCheckout handles POST /v1/checkout/whatsapp.
// The guest fallback: returns the store's WhatsApp number and an order text;
// the client builds the deep link and the conversation settles the sale.
func HandleWhatsAppCheckout(carts *service.CartService, checkout *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, _, ok := cartKey(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "X-Cart-Key header required for guest carts"})
			return
		}

		lines, coupon := carts.Snapshot(c.Request.Context(), key)
		if len(lines) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}

		order, err := checkout.BuildWhatsAppOrder(c.Request.Context(), lines, coupon)
		if err != nil {
			if _, ok := err.(*errors.ErrValidation); ok {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "whatsapp checkout is not configured"})
				return
			}
			logger.Error("Failed to build WhatsApp order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// HandleGetProfile handles GET /v1/me
func HandleGetProfile(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"uid":     user.UID,
			"email":   user.Email,
			"balance": user.Balance,
			"role":    user.Role,
		})
	}
}

// HandleGetPurchases handles GET /v1/me/purchases
func HandleGetPurchases(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"purchases": user.PurchasedCodes})
	}
}
