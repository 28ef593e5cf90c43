package revenue

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/angelmondragon/retailops-backend/pkg/logger"
	"github.com/angelmondragon/retailops-backend/pkg/metrics"
	"github.com/angelmondragon/retailops-backend/pkg/redis"
)

const generationCounter = "revenue_generation"

// Store is the key/value surface the cache needs. *redis.Client satisfies it.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
	Counter(ctx context.Context, key string) (int64, error)
	RevenueKey(parts ...string) string
	CounterKey(name string) string
}

// Cache memoizes window totals. Keys embed a generation counter, so one INCR
// expires every cached figure.
type Cache struct {
	store   Store
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.RevenueMetrics
	logg    *logger.Logger
}

func NewCache(store Store, ttl time.Duration, m *metrics.RevenueMetrics, logg *logger.Logger) *Cache {
	return &Cache{store: store, ttl: ttl, metrics: m, logg: logg}
}

// Invalidate bumps the generation counter.
func (c *Cache) Invalidate(ctx context.Context) error {
	if c == nil || c.store == nil {
		return nil
	}
	_, err := c.store.Incr(ctx, c.store.CounterKey(generationCounter))
	return err
}

// Fetch returns cached totals for the window or computes them with load.
// Store failures are logged and fall through to load.
func (c *Cache) Fetch(ctx context.Context, period string, w Window, load func(context.Context) (Totals, error)) (Totals, error) {
	if c == nil || c.store == nil {
		return load(ctx)
	}
	ctx = c.logg.WithFields(ctx, map[string]any{"period": period, "window": w.Key()})

	generation, err := c.store.Counter(ctx, c.store.CounterKey(generationCounter))
	if err != nil {
		c.metrics.IncCache(period, metrics.CacheError)
		c.logg.Error(ctx, "revenue cache generation lookup failed", err)
		return load(ctx)
	}
	key := c.store.RevenueKey("g"+strconv.FormatInt(generation, 10), period, w.Key())

	value, err, _ := c.group.Do(key, func() (any, error) {
		// Every caller in this flight shares the load; the first caller's cancellation must not fail the rest.
		shared := context.WithoutCancel(ctx)
		if cached, ok := c.lookup(shared, period, key); ok {
			return cached, nil
		}
		totals, err := load(shared)
		if err != nil {
			return Totals{}, err
		}
		if err := c.store.Set(shared, key, encodeTotals(totals), c.ttl); err != nil {
			c.logg.Error(shared, "revenue cache write failed", err)
		}
		return totals, nil
	})
	if err != nil {
		return Totals{}, err
	}
	return value.(Totals), nil
}

func (c *Cache) lookup(ctx context.Context, period, key string) (Totals, bool) {
	raw, err := c.store.Get(ctx, key)
	if redis.IsMiss(err) {
		c.metrics.IncCache(period, metrics.CacheMiss)
		return Totals{}, false
	}
	if err != nil {
		c.metrics.IncCache(period, metrics.CacheError)
		c.logg.Error(ctx, "revenue cache read failed", err)
		return Totals{}, false
	}
	var totals Totals
	if err := json.Unmarshal([]byte(raw), &totals); err != nil {
		c.metrics.IncCache(period, metrics.CacheError)
		c.logg.Warn(ctx, "discarding malformed revenue cache entry")
		return Totals{}, false
	}
	c.metrics.IncCache(period, metrics.CacheHit)
	c.logg.Debug(ctx, "revenue cache hit")
	return totals, true
}

func encodeTotals(t Totals) string {
	payload, _ := json.Marshal(t)
	return string(payload)
}
