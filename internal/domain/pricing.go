package domain

import "math"

// ResolvePrice picks the price a buyer pays for a product at cart-add time.
// Precedence: offer price, then reseller price when the buyer is a reseller
// and the product carries one, then base price.
func ResolvePrice(p *Product, role UserRole) float64 {
	if p.OfferPrice != nil {
		return *p.OfferPrice
	}
	if role == RoleReseller && p.ResellerPrice != nil {
		return *p.ResellerPrice
	}
	return p.Price
}

// CartTotal applies an optional coupon to a subtotal. A fixed discount may
// exceed the subtotal; the total is floored at zero, never negative.
func CartTotal(subtotal float64, coupon *Coupon) (discount, total float64) {
	if coupon != nil {
		discount = coupon.Discount(subtotal)
	}
	return discount, math.Max(0, subtotal-discount)
}
