package memory

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wapsender/totalshophn/internal/domain"
	"github.com/wapsender/totalshophn/pkg/errors"
)

// userRepository is the in-memory user store
type userRepository struct {
	mu     sync.RWMutex
	users  []*domain.UserProfile
	logger *zap.Logger
}

// NewUserRepository creates a new in-memory user repository
func NewUserRepository(logger *zap.Logger) *userRepository {
	return &userRepository{logger: logger}
}

func (r *userRepository) GetByUID(ctx context.Context, uid string) (*domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u := r.findByUID(uid)
	if u == nil {
		return nil, &errors.ErrUserNotFound{UID: uid}
	}
	return copyUser(u), nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.UserProfile, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, copyUser(u))
	}
	return out, nil
}

// RegisterOrSync upserts a profile by uid-or-email match. A profile seeded
// before the identity provider assigned a uid is matched by email and its uid
// re-synced; balance and purchase history survive the sync.
func (r *userRepository) RegisterOrSync(ctx context.Context, uid, email string, role domain.UserRole) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.UID == uid || strings.EqualFold(u.Email, email) {
			u.Role = role
			if u.UID != uid {
				r.logger.Info("Re-syncing user uid from identity provider",
					zap.String("email", u.Email),
					zap.String("old_uid", u.UID),
					zap.String("new_uid", uid),
				)
				u.UID = uid
			}
			return copyUser(u), nil
		}
	}

	u := &domain.UserProfile{
		UID:            uid,
		Email:          email,
		Balance:        0,
		Role:           role,
		PurchasedCodes: []domain.PurchaseReceipt{},
	}
	r.users = append(r.users, u)
	r.logger.Info("User registered", zap.String("uid", uid), zap.String("role", string(role)))
	return copyUser(u), nil
}

func (r *userRepository) CreditBalance(ctx context.Context, uid string, amount float64) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.findByUID(uid)
	if u == nil {
		return nil, &errors.ErrUserNotFound{UID: uid}
	}
	u.Balance += amount
	r.logger.Info("Balance credited",
		zap.String("uid", uid),
		zap.Float64("amount", amount),
		zap.Float64("balance", u.Balance),
	)
	return copyUser(u), nil
}

func (r *userRepository) Debit(ctx context.Context, uid string, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.findByUID(uid)
	if u == nil {
		return &errors.ErrUserNotFound{UID: uid}
	}
	if u.Balance < amount {
		return &errors.ErrInsufficientBalance{Balance: u.Balance, Total: amount}
	}
	u.Balance -= amount
	return nil
}

func (r *userRepository) UpdateRole(ctx context.Context, uid string, role domain.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.findByUID(uid)
	if u == nil {
		return &errors.ErrUserNotFound{UID: uid}
	}
	u.Role = role
	return nil
}

func (r *userRepository) Delete(ctx context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.users[:0]
	found := false
	for _, u := range r.users {
		if u.UID == uid {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	r.users = kept
	if !found {
		return &errors.ErrUserNotFound{UID: uid}
	}
	return nil
}

func (r *userRepository) AppendReceipt(ctx context.Context, uid string, receipt domain.PurchaseReceipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.findByUID(uid)
	if u == nil {
		return &errors.ErrUserNotFound{UID: uid}
	}
	u.PurchasedCodes = append(u.PurchasedCodes, receipt)
	return nil
}

// findByUID returns the live profile record. Callers must hold the lock.
func (r *userRepository) findByUID(uid string) *domain.UserProfile {
	for _, u := range r.users {
		if u.UID == uid {
			return u
		}
	}
	return nil
}

func copyUser(u *domain.UserProfile) *domain.UserProfile {
	cp := *u
	cp.PurchasedCodes = make([]domain.PurchaseReceipt, len(u.PurchasedCodes))
	copy(cp.PurchasedCodes, u.PurchasedCodes)
	for i := range cp.PurchasedCodes {
		if cp.PurchasedCodes[i].Credentials != nil {
			cred := *cp.PurchasedCodes[i].Credentials
			cp.PurchasedCodes[i].Credentials = &cred
		}
	}
	return &cp
}
