package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wapsender/totalshophn/internal/domain"
	"github.com/wapsender/totalshophn/pkg/errors"
)

func newCatalog(t *testing.T) *catalogRepository {
	t.Helper()
	return NewCatalogRepository(zap.NewNop())
}

func TestRestockParsesCredentialsAndCodes(t *testing.T) {
	repo := newCatalog(t)
	ctx := context.Background()

	require.NoError(t, repo.AddProduct(ctx, &domain.Product{ID: "p1", Name: "VPN", Price: 39.99}))

	product, err := repo.Restock(ctx, "p1", []string{
		"user@mail.com:secret",
		"CODE-1234-5678",
		"  ",
	})
	require.NoError(t, err)
	require.Len(t, product.Stock, 2)

	cred := product.Stock[0]
	assert.Equal(t, domain.StockKindCredentials, cred.Kind)
	assert.Equal(t, "user@mail.com:secret", cred.Value)
	require.NotNil(t, cred.Credentials)
	assert.Equal(t, "user@mail.com", cred.Credentials.Email)
	assert.Equal(t, "secret", cred.Credentials.Password)
	assert.False(t, cred.Sold)

	code := product.Stock[1]
	assert.Equal(t, domain.StockKindCode, code.Kind)
	assert.Nil(t, code.Credentials)
}

func TestRestockUnknownProduct(t *testing.T) {
	repo := newCatalog(t)

	_, err := repo.Restock(context.Background(), "missing", []string{"X"})
	var notFound *errors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestClaimStockUnitFIFO(t *testing.T) {
	repo := newCatalog(t)
	ctx := context.Background()

	require.NoError(t, repo.AddProduct(ctx, &domain.Product{ID: "p1", Name: "Windows", Price: 49.99}))
	_, err := repo.Restock(ctx, "p1", []string{"FIRST", "SECOND"})
	require.NoError(t, err)

	unit, err := repo.ClaimStockUnit(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "FIRST", unit.Value)
	assert.True(t, unit.Sold)

	unit, err = repo.ClaimStockUnit(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "SECOND", unit.Value)

	_, err = repo.ClaimStockUnit(ctx, "p1")
	var oos *errors.ErrOutOfStock
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, "p1", oos.ProductID)
}

func TestClaimStockUnitMissingProduct(t *testing.T) {
	repo := newCatalog(t)

	_, err := repo.ClaimStockUnit(context.Background(), "missing")
	var misconfigured *errors.ErrProductMisconfigured
	require.ErrorAs(t, err, &misconfigured)
}

func TestSoldCountNeverDecreases(t *testing.T) {
	repo := newCatalog(t)
	ctx := context.Background()

	require.NoError(t, repo.AddProduct(ctx, &domain.Product{ID: "p1", Name: "X", Price: 1}))
	_, err := repo.Restock(ctx, "p1", []string{"A", "B", "C"})
	require.NoError(t, err)

	sold := 0
	for i := 0; i < 3; i++ {
		_, err := repo.ClaimStockUnit(ctx, "p1")
		require.NoError(t, err)

		p, err := repo.GetProduct(ctx, "p1")
		require.NoError(t, err)
		now := len(p.Stock) - p.UnsoldStock()
		assert.Greater(t, now, sold)
		assert.LessOrEqual(t, now, len(p.Stock))
		sold = now
	}
}

func TestCouponLookupIsCaseInsensitive(t *testing.T) {
	repo := newCatalog(t)
	ctx := context.Background()

	require.NoError(t, repo.AddCoupon(ctx, &domain.Coupon{Code: "SAVE10", DiscountType: domain.DiscountPercentage, Value: 10, Quantity: 20}))

	coupon, err := repo.GetCouponByCode(ctx, "save10")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", coupon.Code)
}

func TestIncrementCouponUsesRespectsLimit(t *testing.T) {
	repo := newCatalog(t)
	ctx := context.Background()

	coupon := &domain.Coupon{Code: "HNSPECIAL", DiscountType: domain.DiscountFixed, Value: 5, Quantity: 2}
	require.NoError(t, repo.AddCoupon(ctx, coupon))

	require.NoError(t, repo.IncrementCouponUses(ctx, coupon.ID))
	require.NoError(t, repo.IncrementCouponUses(ctx, coupon.ID))

	err := repo.IncrementCouponUses(ctx, coupon.ID)
	var exhausted *errors.ErrCouponExhausted
	require.ErrorAs(t, err, &exhausted)

	got, err := repo.GetCoupon(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Uses)
	assert.LessOrEqual(t, got.Uses, got.Quantity)
}

func TestAddCouponZeroesUses(t *testing.T) {
	repo := newCatalog(t)
	ctx := context.Background()

	coupon := &domain.Coupon{Code: "NEW", DiscountType: domain.DiscountFixed, Value: 1, Quantity: 5, Uses: 3}
	require.NoError(t, repo.AddCoupon(ctx, coupon))

	got, err := repo.GetCoupon(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Uses)
}

func TestDeleteCategoryLeavesProductsUntouched(t *testing.T) {
	repo := newCatalog(t)
	ctx := context.Background()

	cat := &domain.Category{Name: "Streaming"}
	require.NoError(t, repo.AddCategory(ctx, cat))
	require.NoError(t, repo.AddProduct(ctx, &domain.Product{ID: "p1", Name: "X", Price: 1, Category: "Streaming"}))

	require.NoError(t, repo.DeleteCategory(ctx, cat.ID))

	// Products keep the dangling category name; no reassignment happens
	p, err := repo.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Streaming", p.Category)
}

func TestProductCopiesAreIsolated(t *testing.T) {
	repo := newCatalog(t)
	ctx := context.Background()

	require.NoError(t, repo.AddProduct(ctx, &domain.Product{ID: "p1", Name: "X", Price: 1}))
	_, err := repo.Restock(ctx, "p1", []string{"A"})
	require.NoError(t, err)

	p, err := repo.GetProduct(ctx, "p1")
	require.NoError(t, err)
	p.Stock[0].Sold = true // mutating the copy must not touch the store

	fresh, err := repo.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, fresh.Stock[0].Sold)
}

func TestSettingsLastWriteWins(t *testing.T) {
	repo := newCatalog(t)
	ctx := context.Background()

	require.NoError(t, repo.UpdateSettings(ctx, domain.AppSettings{WhatsAppNumber: "111"}))
	require.NoError(t, repo.UpdateSettings(ctx, domain.AppSettings{WhatsAppNumber: "222"}))

	settings, err := repo.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "222", settings.WhatsAppNumber)
}
