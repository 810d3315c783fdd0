package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wapsender/totalshophn/internal/domain"
	"github.com/wapsender/totalshophn/pkg/errors"
)

// catalogRepository is the in-memory catalog store. One RWMutex guards the
// whole aggregate; every exported call is a single synchronous mutation or
// read, so no call needs more than the one lock.
type catalogRepository struct {
	mu         sync.RWMutex
	products   []*domain.Product
	coupons    []*domain.Coupon
	categories []*domain.Category
	settings   domain.AppSettings
	faqs       []domain.FAQ
	logger     *zap.Logger
}

// NewCatalogRepository creates a new in-memory catalog repository
func NewCatalogRepository(logger *zap.Logger) *catalogRepository {
	return &catalogRepository{logger: logger}
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, copyProduct(p))
	}
	return out, nil
}

func (r *catalogRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p := r.findProduct(id)
	if p == nil {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id}
	}
	return copyProduct(p), nil
}

func (r *catalogRepository) AddProduct(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.Stock == nil {
		product.Stock = []domain.StockUnit{}
	}
	// Newest products go first, matching the storefront listing order
	r.products = append([]*domain.Product{copyProduct(product)}, r.products...)
	r.logger.Info("Product added", zap.String("product_id", product.ID), zap.String("name", product.Name))
	return nil
}

func (r *catalogRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = copyProduct(product)
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "product", ID: product.ID}
}

func (r *catalogRepository) DeleteProduct(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.products[:0]
	found := false
	for _, p := range r.products {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	r.products = kept
	if !found {
		return &errors.ErrNotFound{Resource: "product", ID: id}
	}
	return nil
}

// Restock parses raw values into stock units and appends them unsold.
// "email:password" values become credential pairs, anything else a code.
func (r *catalogRepository) Restock(ctx context.Context, productID string, values []string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findProduct(productID)
	if p == nil {
		return nil, &errors.ErrNotFound{Resource: "product", ID: productID}
	}

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		unit := domain.StockUnit{Kind: domain.StockKindCode, Value: v}
		if email, password, ok := strings.Cut(v, ":"); ok {
			unit.Kind = domain.StockKindCredentials
			unit.Credentials = &domain.Credential{Email: email, Password: password}
		}
		p.Stock = append(p.Stock, unit)
	}

	r.logger.Info("Product restocked",
		zap.String("product_id", productID),
		zap.Int("added", len(values)),
		zap.Int("unsold", p.UnsoldStock()),
	)
	return copyProduct(p), nil
}

// ClaimStockUnit flips the first unsold unit (oldest-appended-first) to sold
// and returns a copy. The compare-and-flip runs under the store lock, so two
// claimants can never walk away with the same unit.
func (r *catalogRepository) ClaimStockUnit(ctx context.Context, productID string) (*domain.StockUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findProduct(productID)
	if p == nil {
		return nil, &errors.ErrProductMisconfigured{ProductID: productID}
	}
	for i := range p.Stock {
		if !p.Stock[i].Sold {
			p.Stock[i].Sold = true
			claimed := p.Stock[i]
			if claimed.Credentials != nil {
				cred := *claimed.Credentials
				claimed.Credentials = &cred
			}
			return &claimed, nil
		}
	}
	return nil, &errors.ErrOutOfStock{ProductID: productID, Name: p.Name}
}

func (r *catalogRepository) ListCoupons(ctx context.Context) ([]*domain.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Coupon, 0, len(r.coupons))
	for _, c := range r.coupons {
		cc := *c
		out = append(out, &cc)
	}
	return out, nil
}

func (r *catalogRepository) GetCoupon(ctx context.Context, id string) (*domain.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.coupons {
		if c.ID == id {
			cc := *c
			return &cc, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "coupon", ID: id}
}

func (r *catalogRepository) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.coupons {
		if strings.EqualFold(c.Code, code) {
			cc := *c
			return &cc, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "coupon", ID: code}
}

func (r *catalogRepository) AddCoupon(ctx context.Context, coupon *domain.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	coupon.Uses = 0
	cc := *coupon
	r.coupons = append([]*domain.Coupon{&cc}, r.coupons...)
	return nil
}

func (r *catalogRepository) UpdateCoupon(ctx context.Context, coupon *domain.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.coupons {
		if c.ID == coupon.ID {
			cc := *coupon
			r.coupons[i] = &cc
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "coupon", ID: coupon.ID}
}

func (r *catalogRepository) DeleteCoupon(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.coupons[:0]
	found := false
	for _, c := range r.coupons {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	r.coupons = kept
	if !found {
		return &errors.ErrNotFound{Resource: "coupon", ID: id}
	}
	return nil
}

// IncrementCouponUses bumps the use counter by one. The counter never passes
// the quantity limit even if a caller skipped the exhaustion pre-check.
func (r *catalogRepository) IncrementCouponUses(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.coupons {
		if c.ID == id {
			if c.Uses >= c.Quantity {
				return &errors.ErrCouponExhausted{Code: c.Code}
			}
			c.Uses++
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "coupon", ID: id}
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		cc := *c
		out = append(out, &cc)
	}
	return out, nil
}

func (r *catalogRepository) AddCategory(ctx context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	cc := *category
	r.categories = append(r.categories, &cc)
	return nil
}

// DeleteCategory removes the category only. Products referencing it keep the
// dangling name; the storefront has never enforced referential integrity here.
func (r *catalogRepository) DeleteCategory(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.categories[:0]
	found := false
	for _, c := range r.categories {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	r.categories = kept
	if !found {
		return &errors.ErrNotFound{Resource: "category", ID: id}
	}
	return nil
}

func (r *catalogRepository) GetSettings(ctx context.Context) (domain.AppSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings, nil
}

func (r *catalogRepository) UpdateSettings(ctx context.Context, settings domain.AppSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = settings
	return nil
}

func (r *catalogRepository) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.FAQ, len(r.faqs))
	copy(out, r.faqs)
	return out, nil
}

// findProduct returns the live product record. Callers must hold the lock.
func (r *catalogRepository) findProduct(id string) *domain.Product {
	for _, p := range r.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// copyProduct deep-copies a product so callers never hold a reference into
// the store's mutable state.
func copyProduct(p *domain.Product) *domain.Product {
	cp := *p
	cp.Stock = make([]domain.StockUnit, len(p.Stock))
	copy(cp.Stock, p.Stock)
	for i := range cp.Stock {
		if cp.Stock[i].Credentials != nil {
			cred := *cp.Stock[i].Credentials
			cp.Stock[i].Credentials = &cred
		}
	}
	if p.OfferPrice != nil {
		v := *p.OfferPrice
		cp.OfferPrice = &v
	}
	if p.ResellerPrice != nil {
		v := *p.ResellerPrice
		cp.ResellerPrice = &v
	}
	return &cp
}
