// Package app holds startup helpers shared by the api and worker binaries.
package app

import (
	"net/http"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	redis "github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	mhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// RunMigrations applies pending schema migrations. An already up-to-date
// schema is not an error.
func RunMigrations(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// NewIPRateLimiter builds middleware that throttles each client IP across the
// whole API surface. Login gets its own tighter limiter on top of this one.
func NewIPRateLimiter(rdb *redis.Client, max int64, window time.Duration) (func(http.Handler) http.Handler, error) {
	store, err := limiterredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: "rl:api"})
	if err != nil {
		return nil, err
	}
	mw := mhttp.NewMiddleware(limiter.New(store, limiter.Rate{Period: window, Limit: max}))
	return mw.Handler, nil
}
