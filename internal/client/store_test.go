package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogStore_FetchAll(t *testing.T) {
	gw := newFakeGateway(
		[]domain.Category{{ID: 1, Name: "tea"}},
		[]domain.Product{{ID: "a", Title: "Green Tea", CategoryID: 1}},
	)
	store := newTestStore(gw)

	snap, err := store.FetchAll(context.Background())

	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Len(t, snap.Categories, 1)
	assert.Len(t, snap.Products, 1)

	current, stale := store.Current()
	assert.Equal(t, snap, current)
	assert.False(t, stale)
	assert.NoError(t, store.LastError())
}

func TestCatalogStore_ConcurrentFetchesCoalesce(t *testing.T) {
	gw := newFakeGateway(
		[]domain.Category{{ID: 1, Name: "tea"}},
		[]domain.Product{{ID: "a", Title: "Green Tea", CategoryID: 1}},
	)
	gw.blockList = make(chan struct{})
	store := newTestStore(gw)

	const callers = 5
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.FetchAll(context.Background())
			errs <- err
		}()
	}

	// Первый вызов дошёл до шлюза и завис; остальным остаётся только
	// присоединиться к уже летящему запросу.
	require.Eventually(t, func() bool {
		gw.mu.Lock()
		defer gw.mu.Unlock()
		return gw.listCategoriesCalls == 1
	}, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	close(gw.blockList)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	gw.mu.Lock()
	defer gw.mu.Unlock()
	assert.Equal(t, 1, gw.listCategoriesCalls, "concurrent fetches must share one network call")
	assert.Equal(t, 1, gw.listProductsCalls)
}

func TestCatalogStore_CurrentBeforeFetch(t *testing.T) {
	store := newTestStore(newFakeGateway(nil, nil))

	snap, stale := store.Current()

	assert.Nil(t, snap)
	assert.True(t, stale)
}

func TestCatalogStore_FetchFailureKeepsLastGoodSnapshot(t *testing.T) {
	gw := newFakeGateway(
		[]domain.Category{{ID: 1, Name: "tea"}},
		[]domain.Product{{ID: "a", Title: "Green Tea", CategoryID: 1}},
	)
	store := newTestStore(gw)

	_, err := store.FetchAll(context.Background())
	require.NoError(t, err)

	gw.mu.Lock()
	gw.listProductsErr = errors.New("connection refused")
	gw.mu.Unlock()

	_, err = store.FetchAll(context.Background())
	require.Error(t, err)

	snap, stale := store.Current()
	require.NotNil(t, snap, "failed refetch must not clear existing data")
	assert.Len(t, snap.Products, 1)
	assert.True(t, stale)
	assert.Error(t, store.LastError())
}

func TestCatalogStore_PatchReplacesProduct(t *testing.T) {
	gw := newFakeGateway(nil, []domain.Product{{ID: "a", Title: "Green Tea"}})
	store := newTestStore(gw)

	_, err := store.FetchAll(context.Background())
	require.NoError(t, err)

	store.Patch(&domain.Product{ID: "a", Title: "Green Tea", IsHidden: true})

	snap, _ := store.Current()
	product, ok := snap.ProductByID("a")
	require.True(t, ok)
	assert.True(t, product.IsHidden)
}

func TestCatalogStore_RemoveDropsProduct(t *testing.T) {
	gw := newFakeGateway(nil, []domain.Product{{ID: "a"}, {ID: "b"}})
	store := newTestStore(gw)

	_, err := store.FetchAll(context.Background())
	require.NoError(t, err)

	store.Remove("a")

	snap, _ := store.Current()
	_, ok := snap.ProductByID("a")
	assert.False(t, ok)
	assert.Len(t, snap.Products, 1)
}

func TestCatalogStore_SnapshotLookups(t *testing.T) {
	snap := &Snapshot{
		Categories: []domain.Category{{ID: 7, Name: "tea"}},
		Products:   []domain.Product{{ID: "a"}},
	}

	category, ok := snap.CategoryByID(7)
	require.True(t, ok)
	assert.Equal(t, "tea", category.Name)

	_, ok = snap.CategoryByID(8)
	assert.False(t, ok)

	_, ok = snap.ProductByID("a")
	assert.True(t, ok)
}

func TestCatalogStore_CloseStopsUpdates(t *testing.T) {
	gw := newFakeGateway(nil, []domain.Product{{ID: "a"}})
	store := newTestStore(gw)

	_, err := store.FetchAll(context.Background())
	require.NoError(t, err)

	store.Close()
	store.Remove("a")

	snap, _ := store.Current()
	assert.Len(t, snap.Products, 1, "updates after Close must be no-ops")
}
