package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"cat-api/internal/domain/cats"
)

const defaultTTL = 5 * time.Minute

// CatsCache decora un cats.Repository con un read-through cache por id en
// Redis. Solo cachea GetByID (el hot path de resolver owners en listados);
// los scans van siempre al store. Toda mutación invalida la key, así que el
// cache nunca revive un registro borrado ni sirve un owner viejo.
type CatsCache struct {
	inner cats.Repository
	rdb   *redis.Client
	ttl   time.Duration
}

func New(inner cats.Repository, rdb *redis.Client) *CatsCache {
	return &CatsCache{
		inner: inner,
		rdb:   rdb,
		ttl:   defaultTTL,
	}
}

func key(id string) string {
	return "cat:" + id
}

func (c *CatsCache) Create(ctx context.Context, cat cats.Cat) error {
	return c.inner.Create(ctx, cat)
}

func (c *CatsCache) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	if b, err := c.rdb.Get(ctx, key(id)).Bytes(); err == nil {
		var cat cats.Cat
		if json.Unmarshal(b, &cat) == nil {
			return cat, nil
		}
		// Entrada corrupta: la tiramos y seguimos al store.
		c.rdb.Del(ctx, key(id))
	}

	cat, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return cats.Cat{}, err
	}

	if b, err := json.Marshal(cat); err == nil {
		// Best effort: si Redis está caído el store sigue siendo la verdad.
		c.rdb.Set(ctx, key(id), b, c.ttl)
	}
	return cat, nil
}

func (c *CatsCache) ListAll(ctx context.Context) ([]cats.Cat, error) {
	return c.inner.ListAll(ctx)
}

func (c *CatsCache) ListByOwner(ctx context.Context, ownerUserID string) ([]cats.Cat, error) {
	return c.inner.ListByOwner(ctx, ownerUserID)
}

func (c *CatsCache) FindInBox(ctx context.Context, bottomLeft, topRight cats.GeoPoint) ([]cats.Cat, error) {
	return c.inner.FindInBox(ctx, bottomLeft, topRight)
}

func (c *CatsCache) UpdateOwned(ctx context.Context, id, ownerUserID string, in cats.UpdateInput, now time.Time) (cats.Cat, error) {
	cat, err := c.inner.UpdateOwned(ctx, id, ownerUserID, in, now)
	if err != nil {
		return cats.Cat{}, err
	}
	c.rdb.Del(ctx, key(id))
	return cat, nil
}

func (c *CatsCache) DeleteOwned(ctx context.Context, id, ownerUserID string) (cats.Cat, error) {
	cat, err := c.inner.DeleteOwned(ctx, id, ownerUserID)
	if err != nil {
		return cats.Cat{}, err
	}
	c.rdb.Del(ctx, key(id))
	return cat, nil
}

func (c *CatsCache) UpdateByID(ctx context.Context, id string, in cats.AdminUpdateInput, now time.Time) (cats.Cat, error) {
	cat, err := c.inner.UpdateByID(ctx, id, in, now)
	if err != nil {
		return cats.Cat{}, err
	}
	c.rdb.Del(ctx, key(id))
	return cat, nil
}

func (c *CatsCache) DeleteByID(ctx context.Context, id string) (cats.Cat, error) {
	cat, err := c.inner.DeleteByID(ctx, id)
	if err != nil {
		return cats.Cat{}, err
	}
	c.rdb.Del(ctx, key(id))
	return cat, nil
}
