package categories

import (
	"context"
	"errors"
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
	"github.com/hiddenspringfield/shop-backend/pkg/logger"
)

func newTestService(t *testing.T) (Service, *cache.Cache[any]) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(models.All()...))

	records := cache.New[any]()
	svc, err := NewService(NewRepository(conn), records, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return svc, records
}

func TestCreateDefaultsOrderAndSlug(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Résine Premium", Icon: "🍫"})
	require.NoError(t, err)
	assert.Equal(t, DefaultOrder, created.Order)
	assert.Equal(t, "resine-premium", created.Slug)
	assert.True(t, created.Active)
	assert.NotEmpty(t, created.ID)
}

func TestListSortedByOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for _, in := range []CreateCategoryInput{
		{Name: "Hash", Order: 3},
		{Name: "Weed", Order: 2},
		{Name: "Promos"},
	} {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Promos", "Weed", "Hash"}, []string{got[0].Name, got[1].Name, got[2].Name})
}

func TestUniqueNameAndSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, CreateCategoryInput{Name: "Weed"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateCategoryInput{Name: "Weed"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict))

	_, err = svc.Create(ctx, CreateCategoryInput{Name: "Weed!", Slug: "WEED"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict), "slugs are compared lowercased")
}

func TestMutationsInvalidateCategoriesAndProducts(t *testing.T) {
	svc, records := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, CreateCategoryInput{Name: "Hash"})
	require.NoError(t, err)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	records.Set(cache.Key{Domain: enums.CacheDomainProducts, ID: "list"}, "x", 0)
	records.Set(cache.Key{Domain: enums.CacheDomainSettings, ID: "record"}, "y", 0)
	require.Equal(t, 3, records.Stats().Total)

	inactive := false
	updated, err := svc.Update(ctx, created.ID, UpdateCategoryInput{Active: &inactive, Name: strPtr("Hashish")})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, "hash", updated.Slug, "an existing slug is kept on rename")
	assert.Equal(t, 1, records.Stats().Total, "only settings survive")

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.True(t, pkgerrors.Is(svc.Delete(ctx, created.ID), pkgerrors.CodeNotFound))

	_, err = svc.Update(ctx, "missing", UpdateCategoryInput{})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

type failingRepo struct{ categoryRepository }

func (failingRepo) List(context.Context) ([]models.Category, error) {
	return nil, errors.New("db down")
}

func TestListFailureYieldsEmpty(t *testing.T) {
	svc, err := NewService(failingRepo{}, nil, logger.New(logger.Options{}))
	require.NoError(t, err)
	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Weed":             "weed",
		"  Hash & Résine ": "hash-resine",
		"CBD--Fleurs":      "cbd-fleurs",
		"🌿":                "",
		"Édition Limitée 2": "edition-limitee-2",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), CreateCategoryInput{Name: "   "})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func strPtr(s string) *string { return &s }
