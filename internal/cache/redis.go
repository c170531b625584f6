package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"theater-backend/internal/config"
)

// Cache key formats
const (
	EventListKey        = "events:list"
	EventOccupancyFmt   = "events:occupancy:%d"
	DashboardStatsKey   = "stats:dashboard"
	SettingsKeyFmt      = "settings:%s"
	MerchandiseListKey  = "merchandise:list"
	CustomerProfilesKey = "customers:profiles"
)

var client *redis.Client

// Init initializes the Redis connection. The server keeps running without
// Redis, every helper degrades to a no-op when client is nil.
func Init(cfg *config.Config) error {
	addr := cfg.Redis.Addr
	if addr == "" {
		addr = "localhost:6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateReservationCaches clears everything a reservation mutation can
// change: occupancy, dashboard stats and customer projections.
func InvalidateReservationCaches(ctx context.Context) {
	InvalidatePattern(ctx, "events:occupancy:*")
	InvalidateKeys(ctx, DashboardStatsKey, CustomerProfilesKey)
}

// InvalidateEventCaches clears event-related caches
// Called when: CreateEvent, UpdateEvent, status toggles
func InvalidateEventCaches(ctx context.Context) {
	InvalidateKeys(ctx, EventListKey, DashboardStatsKey)
	InvalidatePattern(ctx, "events:occupancy:*")
}

// InvalidatePaymentCaches clears payment-related caches
// Called when: RecordPayment, RecordRefund, webhook settlement
func InvalidatePaymentCaches(ctx context.Context) {
	InvalidateKeys(ctx, DashboardStatsKey, CustomerProfilesKey)
}

// InvalidateSettingCaches clears setting-related caches
// Called when: UpdateSetting
func InvalidateSettingCaches(ctx context.Context) {
	InvalidatePattern(ctx, "settings:*")
	InvalidateKeys(ctx, DashboardStatsKey)
}

// InvalidateMerchandiseCaches clears merchandise caches
func InvalidateMerchandiseCaches(ctx context.Context) {
	InvalidateKeys(ctx, MerchandiseListKey)
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

// PreWarmKey populates a cache key in the background, typically right after
// an invalidation so the next request is served from cache.
func PreWarmKey(key string, fetcher func(ctx context.Context) ([]byte, error), ttl time.Duration) {
	if client == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		data, err := fetcher(ctx)
		if err != nil {
			return
		}

		SetCached(ctx, key, data, ttl)
	}()
}
