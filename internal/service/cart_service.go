package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wapsender/totalshophn/internal/domain"
	"github.com/wapsender/totalshophn/internal/repository"
	"github.com/wapsender/totalshophn/pkg/errors"
)

// cartState is one session's cart: selected lines plus at most one applied
// coupon, replaced wholesale by each successful apply.
type cartState struct {
	lines  []domain.CartLine
	coupon *domain.Coupon
}

// CartService holds per-session carts keyed by cart key (the uid for
// signed-in users, a client-supplied key for guests).
type CartService struct {
	repos  *repository.Repositories
	logger *zap.Logger

	mu    sync.Mutex
	carts map[string]*cartState
}

// NewCartService creates a new cart service
func NewCartService(repos *repository.Repositories, logger *zap.Logger) *CartService {
	return &CartService{
		repos:  repos,
		logger: logger,
		carts:  make(map[string]*cartState),
	}
}

// Add puts a product in the cart, locking in the price the buyer's role pays
// right now. Adding a product already in the cart is a no-op; the quantity is
// implicitly one per distinct product and the original locked price sticks.
func (s *CartService) Add(ctx context.Context, key, productID string, role domain.UserRole) (*CartSummary, error) {
	product, err := s.repos.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	price := domain.ResolvePrice(product, role)

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart(key)
	for _, line := range cart.lines {
		if line.ProductID == productID {
			return s.summary(key, cart), nil
		}
	}
	cart.lines = append(cart.lines, domain.CartLine{
		ProductID:   product.ID,
		ProductName: product.Name,
		LockedPrice: price,
		AddedAt:     time.Now(),
	})
	s.logger.Debug("Cart line added",
		zap.String("cart_key", key),
		zap.String("product_id", productID),
		zap.Float64("locked_price", price),
	)
	return s.summary(key, cart), nil
}

// Remove drops a product from the cart
func (s *CartService) Remove(ctx context.Context, key, productID string) (*CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart(key)
	kept := cart.lines[:0]
	for _, line := range cart.lines {
		if line.ProductID == productID {
			continue
		}
		kept = append(kept, line)
	}
	cart.lines = kept
	return s.summary(key, cart), nil
}

// Clear empties the cart and drops any applied coupon
func (s *CartService) Clear(ctx context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, key)
}

// ApplyCoupon looks a coupon up by code, case-insensitively. A successful
// apply replaces any previous coupon; a failed apply clears it, so the cart
// never keeps a stale coupon after a rejection.
func (s *CartService) ApplyCoupon(ctx context.Context, key, code string) (*ApplyCouponResult, error) {
	coupon, err := s.repos.Catalog.GetCouponByCode(ctx, code)

	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cart(key)

	if err != nil {
		cart.coupon = nil
		if _, ok := err.(*errors.ErrNotFound); ok {
			return &ApplyCouponResult{Message: "El código de cupón que ingresaste no es válido."}, nil
		}
		return nil, err
	}
	if coupon.Exhausted() {
		cart.coupon = nil
		return &ApplyCouponResult{Message: "Este cupón ha alcanzado su límite de usos."}, nil
	}

	cart.coupon = coupon
	discountText := fmt.Sprintf("L%.2f", coupon.Value)
	if coupon.DiscountType == domain.DiscountPercentage {
		discountText = fmt.Sprintf("%.0f%%", coupon.Value)
	}
	return &ApplyCouponResult{
		Applied: true,
		Coupon:  coupon,
		Message: fmt.Sprintf("Obtuviste un descuento de %s.", discountText),
	}, nil
}

// Summary returns the cart's lines, applied coupon and derived totals
func (s *CartService) Summary(ctx context.Context, key string) *CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary(key, s.cart(key))
}

// Snapshot returns copies of the cart lines and the applied coupon for
// checkout. The checkout service re-validates the coupon against the catalog.
func (s *CartService) Snapshot(ctx context.Context, key string) ([]domain.CartLine, *domain.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart(key)
	lines := make([]domain.CartLine, len(cart.lines))
	copy(lines, cart.lines)
	var coupon *domain.Coupon
	if cart.coupon != nil {
		c := *cart.coupon
		coupon = &c
	}
	return lines, coupon
}

// cart returns the live cart for a key, creating it if needed. Callers must
// hold the lock.
func (s *CartService) cart(key string) *cartState {
	c, ok := s.carts[key]
	if !ok {
		c = &cartState{}
		s.carts[key] = c
	}
	return c
}

// summary computes derived totals with the same formula checkout uses, so
// what the buyer sees is what the transaction charges. Callers must hold the
// lock.
func (s *CartService) summary(key string, cart *cartState) *CartSummary {
	subtotal := 0.0
	lines := make([]domain.CartLine, len(cart.lines))
	copy(lines, cart.lines)
	for _, line := range lines {
		subtotal += line.LockedPrice
	}
	discount, total := domain.CartTotal(subtotal, cart.coupon)

	var coupon *domain.Coupon
	if cart.coupon != nil {
		c := *cart.coupon
		coupon = &c
	}
	return &CartSummary{
		Key:           key,
		Lines:         lines,
		AppliedCoupon: coupon,
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         total,
	}
}
