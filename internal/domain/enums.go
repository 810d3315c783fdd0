package domain

// UserRole represents a storefront role
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleReseller UserRole = "reseller"
	RoleAdmin    UserRole = "admin"
)

// IsValid checks if the role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleCustomer, RoleReseller, RoleAdmin:
		return true
	default:
		return false
	}
}

// StockKind distinguishes license codes from credential pairs
type StockKind string

const (
	StockKindCode        StockKind = "code"
	StockKindCredentials StockKind = "credentials"
)

// IsValid checks if the stock kind is valid
func (k StockKind) IsValid() bool {
	return k == StockKindCode || k == StockKindCredentials
}

// DiscountType represents how a coupon discounts a cart
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// IsValid checks if the discount type is valid
func (d DiscountType) IsValid() bool {
	return d == DiscountPercentage || d == DiscountFixed
}
