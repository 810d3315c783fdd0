package repository

import (
	"context"

	"github.com/wapsender/totalshophn/internal/domain"
)

// CatalogRepository defines product, coupon, category and settings data access
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	AddProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	// Restock appends unsold stock units parsed from raw values. Values with a
	// ':' delimiter become credential pairs, anything else a plain code.
	Restock(ctx context.Context, productID string, values []string) (*domain.Product, error)
	// ClaimStockUnit flips the first unsold unit of the product to sold and
	// returns a copy of it. The flip happens under the store lock, so a unit
	// can never be claimed twice.
	ClaimStockUnit(ctx context.Context, productID string) (*domain.StockUnit, error)

	ListCoupons(ctx context.Context) ([]*domain.Coupon, error)
	GetCoupon(ctx context.Context, id string) (*domain.Coupon, error)
	GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error)
	AddCoupon(ctx context.Context, coupon *domain.Coupon) error
	UpdateCoupon(ctx context.Context, coupon *domain.Coupon) error
	DeleteCoupon(ctx context.Context, id string) error
	IncrementCouponUses(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]*domain.Category, error)
	AddCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id string) error

	GetSettings(ctx context.Context) (domain.AppSettings, error)
	UpdateSettings(ctx context.Context, settings domain.AppSettings) error
	ListFAQs(ctx context.Context) ([]domain.FAQ, error)
}

// UserRepository defines user profile data access
type UserRepository interface {
	GetByUID(ctx context.Context, uid string) (*domain.UserProfile, error)
	List(ctx context.Context) ([]*domain.UserProfile, error)
	// RegisterOrSync upserts a profile by uid-or-email match. An existing
	// profile keeps its balance and purchase history; the role is updated and
	// the uid re-synced to the identity provider's value.
	RegisterOrSync(ctx context.Context, uid, email string, role domain.UserRole) (*domain.UserProfile, error)
	// CreditBalance adds amount to the balance; negative amounts correct it.
	CreditBalance(ctx context.Context, uid string, amount float64) (*domain.UserProfile, error)
	Debit(ctx context.Context, uid string, amount float64) error
	UpdateRole(ctx context.Context, uid string, role domain.UserRole) error
	Delete(ctx context.Context, uid string) error
	AppendReceipt(ctx context.Context, uid string, receipt domain.PurchaseReceipt) error
}

// Repositories aggregates all repositories
type Repositories struct {
	Catalog CatalogRepository
	User    UserRepository
}
