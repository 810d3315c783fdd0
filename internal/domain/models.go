package domain

import (
	"time"
)

// Product represents a sellable digital good backed by unique stock units
type Product struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Price         float64     `json:"price"`
	OfferPrice    *float64    `json:"offer_price,omitempty"`
	ResellerPrice *float64    `json:"reseller_price,omitempty"`
	Image         string      `json:"image"`
	ImageHint     string      `json:"image_hint,omitempty"`
	Category      string      `json:"category"`
	Stock         []StockUnit `json:"stock"`
}

// UnsoldStock counts the stock units still available for allocation
func (p *Product) UnsoldStock() int {
	n := 0
	for _, s := range p.Stock {
		if !s.Sold {
			n++
		}
	}
	return n
}

// StockUnit is one uniquely redeemable code or credential pair.
// Units are append-only; Sold flips exactly once, false to true, at checkout.
type StockUnit struct {
	Kind        StockKind   `json:"kind"`
	Value       string      `json:"value"`
	Credentials *Credential `json:"credentials,omitempty"`
	Sold        bool        `json:"sold"`
}

// Credential is the structured form of a credentials-kind stock unit
type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Coupon represents a discount code with a usage cap
type Coupon struct {
	ID           string       `json:"id"`
	Code         string       `json:"code"`
	DiscountType DiscountType `json:"discount_type"`
	Value        float64      `json:"value"`
	Quantity     int          `json:"quantity"`
	Uses         int          `json:"uses"`
}

// Exhausted reports whether the coupon has reached its usage limit
func (c *Coupon) Exhausted() bool {
	return c.Uses >= c.Quantity
}

// Discount computes the discount amount for a cart subtotal.
// Percentage coupons scale with the subtotal; fixed coupons are flat and may
// exceed the subtotal, the caller floors the total at zero.
func (c *Coupon) Discount(subtotal float64) float64 {
	if c.DiscountType == DiscountPercentage {
		return subtotal * (c.Value / 100)
	}
	return c.Value
}

// Category groups products for display
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AppSettings is the single mutable settings record, last-write-wins
type AppSettings struct {
	WhatsAppNumber string `json:"whatsapp_number"`
}

// FAQ is a static question/answer pair shown on the storefront
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// UserProfile mirrors an identity-provider account plus store-local state
type UserProfile struct {
	UID            string            `json:"uid"`
	Email          string            `json:"email"`
	Balance        float64           `json:"balance"`
	Role           UserRole          `json:"role"`
	PurchasedCodes []PurchaseReceipt `json:"purchased_codes"`
}

// PurchaseReceipt is an append-only record of one allocated stock unit
type PurchaseReceipt struct {
	ID          string      `json:"id"`
	ProductName string      `json:"product_name"`
	Code        string      `json:"code"`
	Credentials *Credential `json:"credentials,omitempty"`
	PurchasedAt time.Time   `json:"purchased_at"`
}

// CartLine is a product reference with the price locked in at add-time.
// The locked price, not a live recompute, is what checkout charges.
type CartLine struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	LockedPrice float64   `json:"locked_price"`
	AddedAt     time.Time `json:"added_at"`
}
