package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wapsender/totalshophn/internal/domain"
)

func TestSeedDemoData(t *testing.T) {
	repos := NewRepositories(zap.NewNop())
	require.NoError(t, SeedDemoData(repos, zap.NewNop()))
	ctx := context.Background()

	products, err := repos.Catalog.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 5)
	assert.Equal(t, "1", products[0].ID, "listing keeps declaration order")
	assert.Equal(t, 2, products[0].UnsoldStock())
	assert.Equal(t, domain.StockKindCredentials, products[0].Stock[0].Kind)

	// Seeded use counters survive the AddCoupon reset
	coupon, err := repos.Catalog.GetCouponByCode(ctx, "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, 5, coupon.Uses)
	assert.False(t, coupon.Exhausted())

	categories, err := repos.Catalog.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 4)

	faqs, err := repos.Catalog.ListFAQs(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, faqs)

	admin, err := repos.User.GetByUID(ctx, "ADMIN_UID_PLACEHOLDER")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.Equal(t, 9999.0, admin.Balance)
}

func TestSeedAdminUIDResyncsOnLogin(t *testing.T) {
	repos := NewRepositories(zap.NewNop())
	require.NoError(t, SeedDemoData(repos, zap.NewNop()))
	ctx := context.Background()

	// First identity-provider login matches the seeded profile by email
	admin, err := repos.User.RegisterOrSync(ctx, "real-uid", "eliazar.zacapa@gmail.com", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "real-uid", admin.UID)
	assert.Equal(t, 9999.0, admin.Balance, "balance survives the uid re-sync")

	_, err = repos.User.GetByUID(ctx, "ADMIN_UID_PLACEHOLDER")
	assert.Error(t, err)
}
