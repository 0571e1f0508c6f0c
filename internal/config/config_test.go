package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMemoryDatastore(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATASTORE", "Memory")
	t.Setenv("MENU_BASE_URL", "https://menu.ezorder.ph/")
	t.Setenv("ADMIN_EMAIL", " Admin@EZOrder.ph ")
	t.Setenv("BCRYPT_COST", "4")

	cfg := Load()
	require.Equal(t, DatastoreMemory, cfg.Datastore)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "https://menu.ezorder.ph", cfg.MenuBaseURL)
	require.Equal(t, "admin@ezorder.ph", cfg.AdminEmail)
	require.Equal(t, 4, cfg.BcryptCost)
	require.Equal(t, 15, cfg.AccessTTLMin)
	require.True(t, cfg.IsDev())
	require.False(t, cfg.Queue.Enabled)
	require.Equal(t, "order.status_changed", cfg.Queue.Name)
	require.Empty(t, cfg.DBHost)
}

func TestLoadMySQLDatastore(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_USER", "ezorder")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "ezorder")
	t.Setenv("AMQP_URL", "amqp://mq:5672/")

	cfg := Load()
	require.Equal(t, DatastoreMySQL, cfg.Datastore)
	require.Equal(t, "3306", cfg.DBPort)
	require.Equal(t, "amqp://mq:5672/", cfg.Queue.URL)
	require.False(t, cfg.IsDev())
}

func TestLoadRateLimitConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	t.Setenv("RATE_LIMIT_ENABLED", "off")

	cfg := LoadRateLimitConfig()
	require.False(t, cfg.Enabled)
	require.Equal(t, 5, cfg.Capacity)
	require.Equal(t, 1, cfg.RefillTokens)
	require.Equal(t, 2*time.Second, cfg.RefillInterval)
	require.Equal(t, 10*time.Second, cfg.TTL)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "nonsense")

	cfg := LoadCacheConfig()
	require.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Methods)
	require.Equal(t, 30*time.Second, cfg.TTL)
	require.Equal(t, "user_route_query", cfg.KeyStrategy)
	require.True(t, cfg.InvalidateOnWrite)
}

func TestLoadRedisConfig(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	require.Equal(t, "cache:6380", LoadRedisConfig().Addr)

	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("REDIS_DB", "2")
	cfg := LoadRedisConfig()
	require.Equal(t, "redis:6379", cfg.Addr)
	require.Equal(t, 2, cfg.DB)
}
