package config

import "time"

// CacheConfig drives the Redis response cache. Responses are cached per
// user, and a user's successful write drops that user's cached entries.
type CacheConfig struct {
	Enabled bool
	// Methods lists the HTTP methods whose responses are cached.
	Methods map[string]bool
	TTL     time.Duration
	// KeyStrategy picks the request parts in a cache key: route,
	// route_query, user_route or user_route_query (default).
	KeyStrategy       string
	Prefix            string
	MaxBodyBytes      int
	InvalidateOnWrite bool
}

func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Enabled:           envBool("CACHE_ENABLED", true),
		Methods:           envSet("CACHE_METHODS", "GET"),
		TTL:               envDur("CACHE_TTL", 30*time.Second),
		KeyStrategy:       envStr("CACHE_KEY_STRATEGY", "user_route_query"),
		Prefix:            envStr("CACHE_PREFIX", "ezorder:cache"),
		MaxBodyBytes:      envInt("CACHE_MAX_BODY_BYTES", 1<<20),
		InvalidateOnWrite: envBool("CACHE_INVALIDATE_ON_WRITE", true),
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Second
	}
	return cfg
}
