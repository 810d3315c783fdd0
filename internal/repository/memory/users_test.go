package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wapsender/totalshophn/internal/domain"
	"github.com/wapsender/totalshophn/pkg/errors"
)

func newUsers(t *testing.T) *userRepository {
	t.Helper()
	return NewUserRepository(zap.NewNop())
}

func TestRegisterOrSyncCreatesNewProfile(t *testing.T) {
	repo := newUsers(t)
	ctx := context.Background()

	u, err := repo.RegisterOrSync(ctx, "uid-1", "ana@mail.com", domain.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", u.UID)
	assert.Equal(t, 0.0, u.Balance)
	assert.Empty(t, u.PurchasedCodes)
}

func TestRegisterOrSyncResyncsUIDByEmail(t *testing.T) {
	repo := newUsers(t)
	ctx := context.Background()

	// Profile seeded before the identity provider assigned a real uid
	seeded, err := repo.RegisterOrSync(ctx, "PLACEHOLDER", "admin@mail.com", domain.RoleAdmin)
	require.NoError(t, err)
	_, err = repo.CreditBalance(ctx, seeded.UID, 9999)
	require.NoError(t, err)
	require.NoError(t, repo.AppendReceipt(ctx, seeded.UID, domain.PurchaseReceipt{
		ProductName: "VPN", Code: "X", PurchasedAt: time.Now(),
	}))

	// First real login re-syncs the uid, keeping balance and history
	synced, err := repo.RegisterOrSync(ctx, "firebase-uid-9", "admin@mail.com", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "firebase-uid-9", synced.UID)
	assert.Equal(t, 9999.0, synced.Balance)
	assert.Len(t, synced.PurchasedCodes, 1)

	// Old uid no longer resolves
	_, err = repo.GetByUID(ctx, "PLACEHOLDER")
	var notFound *errors.ErrUserNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestRegisterOrSyncUpdatesRoleOnly(t *testing.T) {
	repo := newUsers(t)
	ctx := context.Background()

	u, err := repo.RegisterOrSync(ctx, "uid-1", "ana@mail.com", domain.RoleCustomer)
	require.NoError(t, err)
	_, err = repo.CreditBalance(ctx, u.UID, 50)
	require.NoError(t, err)

	promoted, err := repo.RegisterOrSync(ctx, "uid-1", "ana@mail.com", domain.RoleReseller)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleReseller, promoted.Role)
	assert.Equal(t, 50.0, promoted.Balance)
}

func TestCreditBalanceNegativeCorrection(t *testing.T) {
	repo := newUsers(t)
	ctx := context.Background()

	u, err := repo.RegisterOrSync(ctx, "uid-1", "ana@mail.com", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = repo.CreditBalance(ctx, u.UID, 100)
	require.NoError(t, err)
	got, err := repo.CreditBalance(ctx, u.UID, -30)
	require.NoError(t, err)
	assert.Equal(t, 70.0, got.Balance)
}

func TestCreditBalanceUnknownUser(t *testing.T) {
	repo := newUsers(t)

	_, err := repo.CreditBalance(context.Background(), "missing", 10)
	var notFound *errors.ErrUserNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestDebitInsufficientBalance(t *testing.T) {
	repo := newUsers(t)
	ctx := context.Background()

	u, err := repo.RegisterOrSync(ctx, "uid-1", "ana@mail.com", domain.RoleCustomer)
	require.NoError(t, err)
	_, err = repo.CreditBalance(ctx, u.UID, 20)
	require.NoError(t, err)

	err = repo.Debit(ctx, u.UID, 40.50)
	var insufficient *errors.ErrInsufficientBalance
	require.ErrorAs(t, err, &insufficient)

	got, err := repo.GetByUID(ctx, u.UID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.Balance)
}
