package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wapsender/totalshophn/internal/domain"
	"github.com/wapsender/totalshophn/internal/repository"
	"github.com/wapsender/totalshophn/pkg/errors"
)

// CheckoutService settles balance purchases. The whole pre-check-through-
// mutation sequence runs under one mutex, so two concurrent buyers of a
// product's last unit can never both pass the stock pre-check.
type CheckoutService struct {
	repos  *repository.Repositories
	logger *zap.Logger

	mu sync.Mutex
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(repos *repository.Repositories, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		repos:  repos,
		logger: logger,
	}
}

// Purchase validates and settles a balance checkout for the given cart lines.
//
// Checks run in a fixed order before any mutation: buyer exists, coupon still
// valid and not exhausted, balance covers the discounted total, and every
// line's product has enough unsold stock. A multi-line cart therefore either
// fully succeeds or fully fails; there is no partial allocation. Only then
// does the mutation phase debit the balance, bump the coupon counter and
// claim one unit per line, appending a receipt to the buyer's history.
//
// couponID is empty when no coupon is attached. Each cart line charges its
// locked-in price, never a live re-price.
func (s *CheckoutService) Purchase(ctx context.Context, uid string, lines []domain.CartLine, couponID string) (*PurchaseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.repos.User.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	var coupon *domain.Coupon
	if couponID != "" {
		coupon, err = s.repos.Catalog.GetCoupon(ctx, couponID)
		if err != nil {
			return nil, &errors.ErrCouponInvalid{CouponID: couponID}
		}
		if coupon.Exhausted() {
			return nil, &errors.ErrCouponExhausted{Code: coupon.Code}
		}
	}

	subtotal := 0.0
	for _, line := range lines {
		subtotal += line.LockedPrice
	}
	discount, total := domain.CartTotal(subtotal, coupon)

	if user.Balance < total {
		return nil, &errors.ErrInsufficientBalance{Balance: user.Balance, Total: total}
	}

	// Stock pre-check for every line before touching anything. Required units
	// are counted per product so duplicate lines cannot oversell a product
	// with a single remaining unit.
	required := make(map[string]int, len(lines))
	for _, line := range lines {
		required[line.ProductID]++
	}
	for _, line := range lines {
		product, err := s.repos.Catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, &errors.ErrProductMisconfigured{ProductID: line.ProductID, Name: line.ProductName}
		}
		if product.UnsoldStock() < required[line.ProductID] {
			return nil, &errors.ErrOutOfStock{ProductID: product.ID, Name: product.Name}
		}
	}

	// Mutation phase. All checks passed; under the checkout mutex nothing
	// below can fail on stock or balance grounds.
	if err := s.repos.User.Debit(ctx, uid, total); err != nil {
		return nil, err
	}
	if coupon != nil {
		if err := s.repos.Catalog.IncrementCouponUses(ctx, coupon.ID); err != nil {
			s.logger.Error("Failed to increment coupon uses after pre-check", zap.Error(err))
		}
	}

	receipts := make([]domain.PurchaseReceipt, 0, len(lines))
	for _, line := range lines {
		unit, err := s.repos.Catalog.ClaimStockUnit(ctx, line.ProductID)
		if err != nil {
			// Unreachable after the pre-check while the mutex is held
			s.logger.Error("Stock claim failed after pre-check",
				zap.String("product_id", line.ProductID),
				zap.Error(err),
			)
			return nil, err
		}
		receipt := domain.PurchaseReceipt{
			ID:          uuid.New().String(),
			ProductName: line.ProductName,
			Code:        unit.Value,
			Credentials: unit.Credentials,
			PurchasedAt: time.Now(),
		}
		if err := s.repos.User.AppendReceipt(ctx, uid, receipt); err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}

	balance := user.Balance - total
	s.logger.Info("Purchase settled",
		zap.String("uid", uid),
		zap.Int("lines", len(lines)),
		zap.Float64("subtotal", subtotal),
		zap.Float64("discount", discount),
		zap.Float64("total", total),
		zap.Float64("balance", balance),
	)

	return &PurchaseResult{
		Receipts: receipts,
		Subtotal: subtotal,
		Discount: discount,
		Total:    total,
		Balance:  balance,
	}, nil
}

// BuildWhatsAppOrder assembles the guest fallback checkout payload: the
// store's WhatsApp number from settings plus a ready-to-send order text.
func (s *CheckoutService) BuildWhatsAppOrder(ctx context.Context, lines []domain.CartLine, coupon *domain.Coupon) (*WhatsAppOrder, error) {
	settings, err := s.repos.Catalog.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings.WhatsAppNumber == "" {
		return nil, &errors.ErrValidation{Message: "whatsapp number is not configured"}
	}

	subtotal := 0.0
	var b strings.Builder
	b.WriteString("Hola, quiero hacer un pedido:\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "- %s (L%.2f)\n", line.ProductName, line.LockedPrice)
		subtotal += line.LockedPrice
	}
	discount, total := domain.CartTotal(subtotal, coupon)
	if discount > 0 {
		fmt.Fprintf(&b, "Cupón: %s (-L%.2f)\n", coupon.Code, discount)
	}
	fmt.Fprintf(&b, "Total: L%.2f", total)

	return &WhatsAppOrder{
		Number:  settings.WhatsAppNumber,
		Message: b.String(),
		Total:   total,
	}, nil
}
