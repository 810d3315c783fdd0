package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/wapsender/totalshophn/internal/domain"
	"github.com/wapsender/totalshophn/internal/repository"
	"github.com/wapsender/totalshophn/pkg/errors"
)

// ProductRequest is the create/update product payload
type ProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" binding:"required,min=0"`
	OfferPrice    *float64 `json:"offer_price"`
	ResellerPrice *float64 `json:"reseller_price"`
	Image         string   `json:"image"`
	ImageHint     string   `json:"image_hint"`
	Category      string   `json:"category" binding:"required"`
}

func (r *ProductRequest) toDomain(id string) *domain.Product {
	return &domain.Product{
		ID:            id,
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		OfferPrice:    r.OfferPrice,
		ResellerPrice: r.ResellerPrice,
		Image:         r.Image,
		ImageHint:     r.ImageHint,
		Category:      r.Category,
	}
}

// HandleCreateProduct handles POST /v1/admin/products
func HandleCreateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}
		product := req.toDomain("")
		if err := repos.Catalog.AddProduct(c.Request.Context(), product); err != nil {
			logger.Error("Failed to create product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// HandleUpdateProduct handles PUT /v1/admin/products/:id.
// Replace-by-id: the existing stock list is preserved, everything else is
// taken from the payload.
func HandleUpdateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}

		existing, err := repos.Catalog.GetProduct(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		product := req.toDomain(id)
		product.Stock = existing.Stock

		if err := repos.Catalog.UpdateProduct(c.Request.Context(), product); err != nil {
			logger.Error("Failed to update product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// HandleDeleteProduct handles DELETE /v1/admin/products/:id
func HandleDeleteProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repos.Catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// RestockRequest is the JSON restock payload: raw values, one per unit.
// Values with a ':' become credential pairs.
type RestockRequest struct {
	Values []string `json:"values" binding:"required,min=1"`
}

// HandleRestock handles POST /v1/admin/products/:id/stock
func HandleRestock(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RestockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}
		product, err := repos.Catalog.Restock(c.Request.Context(), c.Param("id"), req.Values)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to restock product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// HandleRestockImport handles POST /v1/admin/products/:id/stock/import.
// Accepts an .xlsx upload with one stock value per row in the first column;
// a header row is skipped. Rows feed the same parser as the JSON endpoint.
func HandleRestockImport(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		f, err := file.Open()
		if err != nil {
			logger.Error("Failed to open upload", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
			return
		}
		defer f.Close()

		xlsx, err := excelize.OpenReader(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid Excel file"})
			return
		}
		defer xlsx.Close()

		sheet := xlsx.GetSheetName(0)
		rows, err := xlsx.GetRows(sheet)
		if err != nil {
			logger.Error("Failed to read sheet", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read sheet"})
			return
		}

		values := make([]string, 0, len(rows))
		for i, row := range rows {
			if i == 0 {
				continue // skip header
			}
			if len(row) == 0 || row[0] == "" {
				continue
			}
			values = append(values, row[0])
		}
		if len(values) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no stock values found in file"})
			return
		}

		product, err := repos.Catalog.Restock(c.Request.Context(), c.Param("id"), values)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to restock product from import", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"imported": len(values), "product": product})
	}
}

// CouponRequest is the create/update coupon payload
type CouponRequest struct {
	Code         string  `json:"code" binding:"required"`
	DiscountType string  `json:"discount_type" binding:"required"`
	Value        float64 `json:"value" binding:"required,min=0"`
	Quantity     int     `json:"quantity" binding:"required,min=1"`
}

// HandleListCoupons handles GET /v1/admin/coupons
func HandleListCoupons(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		coupons, err := repos.Catalog.ListCoupons(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list coupons", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"coupons": coupons})
	}
}

// HandleCreateCoupon handles POST /v1/admin/coupons
func HandleCreateCoupon(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}
		dt := domain.DiscountType(req.DiscountType)
		if !dt.IsValid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "discount_type must be percentage or fixed"})
			return
		}
		coupon := &domain.Coupon{
			Code:         req.Code,
			DiscountType: dt,
			Value:        req.Value,
			Quantity:     req.Quantity,
		}
		if err := repos.Catalog.AddCoupon(c.Request.Context(), coupon); err != nil {
			logger.Error("Failed to create coupon", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, coupon)
	}
}

// HandleUpdateCoupon handles PUT /v1/admin/coupons/:id
func HandleUpdateCoupon(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var req CouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}
		dt := domain.DiscountType(req.DiscountType)
		if !dt.IsValid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "discount_type must be percentage or fixed"})
			return
		}

		existing, err := repos.Catalog.GetCoupon(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "coupon not found"})
			return
		}
		coupon := &domain.Coupon{
			ID:           id,
			Code:         req.Code,
			DiscountType: dt,
			Value:        req.Value,
			Quantity:     req.Quantity,
			Uses:         existing.Uses,
		}
		if err := repos.Catalog.UpdateCoupon(c.Request.Context(), coupon); err != nil {
			logger.Error("Failed to update coupon", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, coupon)
	}
}

// HandleDeleteCoupon handles DELETE /v1/admin/coupons/:id
func HandleDeleteCoupon(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repos.Catalog.DeleteCoupon(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "coupon not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// CategoryRequest is the create category payload
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// HandleCreateCategory handles POST /v1/admin/categories
func HandleCreateCategory(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}
		category := &domain.Category{Name: req.Name}
		if err := repos.Catalog.AddCategory(c.Request.Context(), category); err != nil {
			logger.Error("Failed to create category", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// HandleDeleteCategory handles DELETE /v1/admin/categories/:id
func HandleDeleteCategory(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repos.Catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// SettingsRequest is the update settings payload
type SettingsRequest struct {
	WhatsAppNumber string `json:"whatsapp_number" binding:"required"`
}

// HandleUpdateSettings handles PUT /v1/admin/settings
func HandleUpdateSettings(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}
		settings := domain.AppSettings{WhatsAppNumber: req.WhatsAppNumber}
		if err := repos.Catalog.UpdateSettings(c.Request.Context(), settings); err != nil {
			logger.Error("Failed to update settings", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// HandleListUsers handles GET /v1/admin/users
func HandleListUsers(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := repos.User.List(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list users", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// CreditBalanceRequest is the balance credit payload. Amount may be negative
// for corrections.
type CreditBalanceRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// HandleCreditBalance handles POST /v1/admin/users/:uid/balance
func HandleCreditBalance(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreditBalanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}
		user, err := repos.User.CreditBalance(c.Request.Context(), c.Param("uid"), req.Amount)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": user.UID, "balance": user.Balance})
	}
}

// UpdateRoleRequest is the role assignment payload
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// HandleUpdateUserRole handles PUT /v1/admin/users/:uid/role
func HandleUpdateUserRole(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}
		role := domain.UserRole(req.Role)
		if !role.IsValid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "role must be customer, reseller or admin"})
			return
		}
		if err := repos.User.UpdateRole(c.Request.Context(), c.Param("uid"), role); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandleDeleteUser handles DELETE /v1/admin/users/:uid
func HandleDeleteUser(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repos.User.Delete(c.Request.Context(), c.Param("uid")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
