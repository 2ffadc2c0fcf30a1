package handler

import (
	"context"
	"sync"
	"time"

	"github.com/phoffmann/entitysync/internal/domain"
)

// DefaultCatalogTTL bounds how stale the cached product set may get before
// a lookup triggers a reload.
const DefaultCatalogTTL = 5 * time.Minute

// ProductCatalog caches the product set for order-item enrichment. The
// cache loads lazily on first lookup and reloads once its TTL elapses;
// between reloads, lookups may observe products up to one TTL stale. A
// failed reload keeps serving the previous snapshot, since enrichment is
// best effort.
type ProductCatalog struct {
	store ProductStore
	ttl   time.Duration

	mu       sync.Mutex
	byID     map[int64]domain.Product
	loadedAt time.Time
}

func NewProductCatalog(store ProductStore, ttl time.Duration) *ProductCatalog {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &ProductCatalog{store: store, ttl: ttl}
}

// Lookup returns the cached product for the id, loading or refreshing the
// catalog first when it is missing or stale. It reports false for unknown
// ids and when the catalog cannot be loaded at all.
func (c *ProductCatalog) Lookup(ctx context.Context, id int64) (domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.byID == nil || time.Since(c.loadedAt) > c.ttl {
		// A reload failure is tolerated while a previous snapshot exists.
		if err := c.refreshLocked(ctx); err != nil && c.byID == nil {
			return domain.Product{}, false
		}
	}

	product, ok := c.byID[id]
	return product, ok
}

// Refresh reloads the catalog immediately, regardless of staleness.
func (c *ProductCatalog) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(ctx)
}

func (c *ProductCatalog) refreshLocked(ctx context.Context) error {
	products, err := c.store.ListProducts(ctx)
	if err != nil {
		return err
	}

	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	c.byID = byID
	c.loadedAt = time.Now()
	return nil
}
