package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestResolvePrice(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		role    UserRole
		want    float64
	}{
		{
			name:    "base price for customer",
			product: Product{Price: 49.99},
			role:    RoleCustomer,
			want:    49.99,
		},
		{
			name:    "offer price beats everything",
			product: Product{Price: 150.0, OfferPrice: fptr(135.0), ResellerPrice: fptr(125.0)},
			role:    RoleReseller,
			want:    135.0,
		},
		{
			name:    "offer price applies to customers too",
			product: Product{Price: 15.99, OfferPrice: fptr(13.99), ResellerPrice: fptr(12.99)},
			role:    RoleCustomer,
			want:    13.99,
		},
		{
			name:    "reseller price when reseller and no offer",
			product: Product{Price: 49.99, ResellerPrice: fptr(39.99)},
			role:    RoleReseller,
			want:    39.99,
		},
		{
			name:    "customer never sees reseller price",
			product: Product{Price: 49.99, ResellerPrice: fptr(39.99)},
			role:    RoleCustomer,
			want:    49.99,
		},
		{
			name:    "reseller falls back to base without reseller price",
			product: Product{Price: 39.99},
			role:    RoleReseller,
			want:    39.99,
		},
		{
			name:    "admin pays base price",
			product: Product{Price: 29.99, ResellerPrice: fptr(24.99)},
			role:    RoleAdmin,
			want:    29.99,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePrice(&tt.product, tt.role))
		})
	}
}

func TestCartTotal(t *testing.T) {
	t.Run("no coupon", func(t *testing.T) {
		discount, total := CartTotal(45.0, nil)
		assert.Equal(t, 0.0, discount)
		assert.Equal(t, 45.0, total)
	})

	t.Run("percentage coupon", func(t *testing.T) {
		coupon := &Coupon{DiscountType: DiscountPercentage, Value: 10}
		discount, total := CartTotal(45.0, coupon)
		assert.InDelta(t, 4.50, discount, 1e-9)
		assert.InDelta(t, 40.50, total, 1e-9)
	})

	t.Run("fixed coupon larger than subtotal floors total at zero", func(t *testing.T) {
		coupon := &Coupon{DiscountType: DiscountFixed, Value: 5}
		discount, total := CartTotal(3.0, coupon)
		assert.Equal(t, 5.0, discount)
		assert.Equal(t, 0.0, total)
	})
}

func TestCouponExhausted(t *testing.T) {
	c := Coupon{Quantity: 10, Uses: 9}
	assert.False(t, c.Exhausted())
	c.Uses = 10
	assert.True(t, c.Exhausted())
	c.Uses = 11
	assert.True(t, c.Exhausted())
}
