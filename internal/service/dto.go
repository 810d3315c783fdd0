package service

import (
	"github.com/wapsender/totalshophn/internal/domain"
)

// CartSummary is the derived view of a cart: lines, applied coupon and totals
type CartSummary struct {
	Key           string            `json:"key"`
	Lines         []domain.CartLine `json:"lines"`
	AppliedCoupon *domain.Coupon    `json:"applied_coupon,omitempty"`
	Subtotal      float64           `json:"subtotal"`
	Discount      float64           `json:"discount"`
	Total         float64           `json:"total"`
}

// ApplyCouponResult reports the outcome of a coupon apply attempt
type ApplyCouponResult struct {
	Applied bool           `json:"applied"`
	Coupon  *domain.Coupon `json:"coupon,omitempty"`
	Message string         `json:"message"`
}

// PurchaseResult reports a settled balance checkout
type PurchaseResult struct {
	Receipts []domain.PurchaseReceipt `json:"receipts"`
	Subtotal float64                  `json:"subtotal"`
	Discount float64                  `json:"discount"`
	Total    float64                  `json:"total"`
	Balance  float64                  `json:"balance"`
}

// WhatsAppOrder is the fallback checkout payload for guests: the configured
// number plus a ready-to-send order text. Building the deep link from these
// is the client's job.
type WhatsAppOrder struct {
	Number  string  `json:"number"`
	Message string  `json:"message"`
	Total   float64 `json:"total"`
}
