package cachesync

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiddenspringfield/shop-backend/internal/cache"
	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
	"github.com/hiddenspringfield/shop-backend/pkg/enums"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
	"github.com/hiddenspringfield/shop-backend/pkg/logger"
)

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...Option) (Service, *cache.Cache[any]) {
	t.Helper()
	records := cache.New[any]()
	opts = append(opts, WithClock(func() time.Time { return fixedNow }))
	svc, err := NewService(records, logger.New(logger.Options{ServiceName: "test"}), opts...)
	require.NoError(t, err)
	return svc, records
}

func fill(records *cache.Cache[any]) {
	for _, d := range enums.CacheDomains() {
		records.Set(cache.Key{Domain: d, ID: "list"}, "v", 0)
	}
}

func TestSyncProductsInvalidatesAndSeeds(t *testing.T) {
	svc, records := newTestService(t)
	fill(records)

	data, _ := json.Marshal(models.Product{ID: "42", Name: "Zkittlez", Category: enums.ProductCategoryWeed})
	res, err := svc.Sync(context.Background(), Request{Type: enums.CacheDomainProducts, Action: enums.SyncActionUpdate, Data: data})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Invalidated)
	assert.True(t, res.Seeded)
	assert.Equal(t, fixedNow, res.Timestamp)

	cached, ok := records.Get(cache.Key{Domain: enums.CacheDomainProducts, ID: "42"})
	require.True(t, ok)
	assert.Equal(t, "Zkittlez", cached.(models.Product).Name)
	_, ok = records.Get(cache.Key{Domain: enums.CacheDomainCategories, ID: "list"})
	assert.True(t, ok, "product sync leaves categories alone")
}

func TestSyncDeleteDoesNotSeed(t *testing.T) {
	svc, _ := newTestService(t)
	data, _ := json.Marshal(models.Product{ID: "42"})
	res, err := svc.Sync(context.Background(), Request{Type: enums.CacheDomainProducts, Action: enums.SyncActionDelete, Data: data})
	require.NoError(t, err)
	assert.False(t, res.Seeded)
}

func TestSyncCategoriesAlsoDropsProducts(t *testing.T) {
	svc, records := newTestService(t)
	fill(records)

	res, err := svc.Sync(context.Background(), Request{Type: enums.CacheDomainCategories, Action: enums.SyncActionRefresh})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Invalidated)
	assert.Equal(t, 1, records.Stats().Total)
}

func TestSyncSettingsReloads(t *testing.T) {
	reloads := 0
	svc, records := newTestService(t, WithSettingsReload(func(context.Context) { reloads++ }))
	fill(records)

	res, err := svc.Sync(context.Background(), Request{Type: enums.CacheDomainSettings, Action: enums.SyncActionUpdate, Data: json.RawMessage(`{"shopName":"X"}`)})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Invalidated)
	assert.False(t, res.Seeded)
	assert.Equal(t, 1, reloads)
}

func TestSyncRejectsUnknownTypeAndAction(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Sync(context.Background(), Request{Type: "orders", Action: enums.SyncActionRefresh})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	_, err = svc.Sync(context.Background(), Request{Type: enums.CacheDomainProducts, Action: "purge"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestStats(t *testing.T) {
	svc, records := newTestService(t)
	fill(records)
	report := svc.Stats(context.Background())
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 3, report.Active)
	assert.Len(t, report.Domains, 3)

	raw, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"total":3`)
}
