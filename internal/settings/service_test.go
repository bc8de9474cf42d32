package settings

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hiddenspringfield/shop-backend/internal/cache"
	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
	"github.com/hiddenspringfield/shop-backend/pkg/enums"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
	"github.com/hiddenspringfield/shop-backend/pkg/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(models.All()...))
	return conn
}

func newTestService(t *testing.T) (Service, *Repository, *cache.Cache[any]) {
	t.Helper()
	repo := NewRepository(newTestDB(t))
	records := cache.New[any]()
	svc, err := NewService(repo, records, testLogger())
	require.NoError(t, err)
	return svc, repo, records
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(nil, nil, testLogger())
	assert.Error(t, err)
	_, err = NewService(NewRepository(nil), nil, nil)
	assert.Error(t, err)
}

func TestGetCreatesDefaultsOnFirstAccess(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	row, err := repo.Find(ctx)
	require.NoError(t, err)
	assert.Nil(t, row)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)

	row, err = repo.Find(ctx)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "HIDDEN SPINGFIELD", row.ShopName)
}

func TestUpdateMergesOntoStoredRow(t *testing.T) {
	svc, repo, records := newTestService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, records.Stats().Active)

	social := []types.SocialLink{{ID: "3", Name: "Signal", URL: "https://signal.me/x", Enabled: false}}
	got, err := svc.Update(ctx, Patch{
		BannerText:  Ptr("SOLDES"),
		SellerLinks: map[string]string{SellerApu: "https://wa.me/33611111111"},
		SocialLinks: &social,
	})
	require.NoError(t, err)
	assert.Equal(t, "SOLDES", got.BannerText)
	assert.Equal(t, "HIDDEN SPINGFIELD", got.ShopName)
	assert.Equal(t, "https://wa.me/33611111111", got.SellerLinks[SellerApu])
	assert.Contains(t, got.SellerLinks, SellerBurns)
	assert.Equal(t, social, got.SocialLinks)
	assert.Equal(t, 0, records.Stats().Total, "update invalidates the settings domain")

	again, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	row, err := repo.Find(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SOLDES", row.BannerText)
	assert.False(t, row.SocialLinks[0].Enabled)
}

func TestUpdateRejectsInvalidPatch(t *testing.T) {
	svc, _, _ := newTestService(t)
	bad := enums.ImageFit("fill")
	_, err := svc.Update(context.Background(), Patch{BannerImageFit: &bad})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestUpdateEmptyPatchReturnsCurrent(t *testing.T) {
	svc, _, _ := newTestService(t)
	got, err := svc.Update(context.Background(), Patch{})
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
}

func TestLocalGatewayBacksStore(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Update(ctx, Patch{ShopName: Ptr("Remote Shop")})
	require.NoError(t, err)

	store := NewStore(NewLocalGateway(svc), nil, testLogger())
	assert.Equal(t, "Remote Shop", store.Load(ctx).ShopName)

	_, done := store.Update(ctx, Patch{OrderLink: Ptr("https://t.me/hs")})
	require.NoError(t, <-done)

	persisted, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://t.me/hs", persisted.OrderLink)
	assert.Equal(t, "Remote Shop", persisted.ShopName)
}
