package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hiddenspringfield/shop-backend/internal/cache"
	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
	"github.com/hiddenspringfield/shop-backend/pkg/enums"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
	"github.com/hiddenspringfield/shop-backend/pkg/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(models.All()...))
	return conn
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test"})
}

func newTestService(t *testing.T) (Service, *Repository, *cache.Cache[any]) {
	t.Helper()
	repo := NewRepository(newTestDB(t))
	records := cache.New[any]()
	svc, err := NewService(repo, records, testLogger())
	require.NoError(t, err)
	return svc, repo, records
}

type brokenRepo struct{}

var errDown = errors.New("db down")

func (brokenRepo) List(context.Context) ([]models.Product, error) { return nil, errDown }
func (brokenRepo) FindByID(context.Context, string) (*models.Product, error) {
	return nil, errDown
}
func (brokenRepo) Create(context.Context, *models.Product) (*models.Product, error) {
	return nil, errDown
}
func (brokenRepo) Save(context.Context, *models.Product) (*models.Product, error) {
	return nil, errDown
}
func (brokenRepo) Delete(context.Context, string) (bool, error) { return false, errDown }

func TestListFallsBackToStaticWhenEmpty(t *testing.T) {
	svc, _, _ := newTestService(t)
	got, err := svc.List(context.Background(), ListFilters{})
	require.NoError(t, err)
	require.Len(t, got, 9)
	for _, p := range got {
		assert.Equal(t, StaticQuantity, p.Quantity)
		assert.True(t, p.Available)
	}
}

func TestListFallsBackToStaticOnFailure(t *testing.T) {
	records := cache.New[any]()
	svc, err := NewService(brokenRepo{}, records, testLogger())
	require.NoError(t, err)

	got, err := svc.List(context.Background(), ListFilters{Category: "hash"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 0, records.Stats().Total, "fallbacks on failure are not cached")

	p, err := svc.Get(context.Background(), "9")
	require.NoError(t, err)
	assert.Len(t, p.PricingOptions, 2)
}

func TestListNewestFirstAndCached(t *testing.T) {
	svc, repo, records := newTestService(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"Old", "New"} {
		_, err := repo.Create(ctx, &models.Product{
			ID: name, Name: name, Price: decimal.NewFromInt(10), Category: enums.ProductCategoryWeed,
			TagColor: enums.TagColorGreen, Country: "FR", Available: true,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	got, err := svc.List(ctx, ListFilters{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "New", got[0].ID)
	assert.Equal(t, 1, records.Stats().Active)

	_, err = repo.Delete(ctx, "New")
	require.NoError(t, err)
	got, err = svc.List(ctx, ListFilters{})
	require.NoError(t, err)
	assert.Len(t, got, 2, "served from cache until invalidated")
}

func TestGetPrefersDatabaseThenStatic(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Cali Spain", p.Name)

	_, err = repo.Create(ctx, &models.Product{
		ID: "db-1", Name: "Gelato 41", Price: decimal.NewFromInt(80), Category: enums.ProductCategoryWeed,
		TagColor: enums.TagColorRed, Country: "US", Available: true,
	})
	require.NoError(t, err)
	p, err = svc.Get(ctx, "db-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(80).Equal(p.Price))

	_, err = svc.Get(ctx, "missing")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestCreateValidatesAndInvalidates(t *testing.T) {
	svc, _, records := newTestService(t)
	ctx := context.Background()

	_, err := svc.List(ctx, ListFilters{})
	require.NoError(t, err)
	require.Equal(t, 1, records.Stats().Total)

	created, err := svc.Create(ctx, CreateProductInput{
		Name:     "Gorilla Glue",
		Price:    decimal.RequireFromString("55.50"),
		Category: enums.ProductCategoryWeed,
		PricingOptions: []models.PricingOption{
			{Weight: "5g", Price: decimal.NewFromInt(50)},
			{Weight: "10g", Price: decimal.NewFromInt(90)},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "FR", created.Country)
	assert.Equal(t, enums.TagColorGreen, created.TagColor)
	assert.True(t, created.Available)
	assert.Equal(t, 0, records.Stats().Total)

	got, err := svc.List(ctx, ListFilters{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].PricingOptions, 2)

	_, err = svc.Create(ctx, CreateProductInput{Name: "Bad", Category: "flower"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	_, err = svc.Create(ctx, CreateProductInput{Name: "Neg", Category: enums.ProductCategoryHash, Price: decimal.NewFromInt(-1)})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	_, err = svc.Create(ctx, CreateProductInput{ID: created.ID, Name: "Dup", Category: enums.ProductCategoryHash})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict))
}

func TestUpdateStaticProductMaterializesIt(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	unavailable := false
	updated, err := svc.Update(ctx, "4", UpdateProductInput{Available: &unavailable, Tag: strPtr("RUPTURE")})
	require.NoError(t, err)
	assert.Equal(t, "Moroccan Hash", updated.Name)
	assert.False(t, updated.Available)
	assert.Equal(t, "RUPTURE", updated.Tag)

	row, err := repo.FindByID(ctx, "4")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.False(t, row.Available)
	assert.Equal(t, StaticQuantity, row.Quantity)

	again, err := svc.Update(ctx, "4", UpdateProductInput{Quantity: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, again.Quantity)
	assert.False(t, again.Available, "absent fields are left unchanged")

	_, err = svc.Update(ctx, "nope", UpdateProductInput{})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestDelete(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	_, err := repo.Create(ctx, &models.Product{ID: "x", Name: "X", Category: enums.ProductCategoryHash, TagColor: enums.TagColorGreen, Country: "FR"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "x"))
	assert.True(t, pkgerrors.Is(svc.Delete(ctx, "x"), pkgerrors.CodeNotFound))
}

func TestStaticServiceIsReadOnly(t *testing.T) {
	svc := NewStaticService()
	got, err := svc.List(context.Background(), ListFilters{Query: "haze"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = svc.Create(context.Background(), CreateProductInput{})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeForbidden))
	assert.True(t, pkgerrors.Is(svc.Delete(context.Background(), "1"), pkgerrors.CodeForbidden))
}

func TestDecodeFilters(t *testing.T) {
	f, err := DecodeFilters(url.Values{"category": {"HASH"}, "available": {"true"}, "q": {" kush "}, "page": {"2"}})
	require.NoError(t, err)
	assert.Equal(t, "hash", f.Category)
	assert.Equal(t, "kush", f.Query)
	require.NotNil(t, f.Available)
	assert.True(t, *f.Available)

	f, err = DecodeFilters(url.Values{"category": {"all"}})
	require.NoError(t, err)
	assert.Empty(t, f.Category)

	_, err = DecodeFilters(url.Values{"category": {"edibles"}})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	_, err = DecodeFilters(url.Values{"available": {"maybe"}})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestFiltersOrderable(t *testing.T) {
	info := models.Product{Name: "Info", Category: enums.ProductCategoryWeed}
	priced := models.Product{Name: "Priced", Category: enums.ProductCategoryWeed, Price: decimal.NewFromInt(1)}
	yes := true
	got := applyFilters([]models.Product{info, priced}, ListFilters{Orderable: &yes})
	require.Len(t, got, 1)
	assert.Equal(t, "Priced", got[0].Name)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
