package main

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache prefixes for different types of cached items
const (
	PrefixStatus = "status:"
)

// Default expiration times
const (
	DefaultStatusExpiration = 5 * time.Minute
	CleanupInterval         = 1 * time.Minute
)

// AppCache wraps go-cache with convenience methods for provider checks
type AppCache struct {
	c *cache.Cache
}

var appCache *AppCache

// NewAppCache returns a cache whose items expire after expiration
func NewAppCache(expiration time.Duration) *AppCache {
	return &AppCache{c: cache.New(expiration, CleanupInterval)}
}

// InitCache initializes the application cache
func InitCache() {
	appCache = NewAppCache(DefaultStatusExpiration)
}

// GetCache returns the application cache instance
func GetCache() *AppCache {
	if appCache == nil {
		InitCache()
	}
	return appCache
}

// SetStatus stores the reachability result of a provider
func (ac *AppCache) SetStatus(provider string, st ProviderStatus) {
	ac.c.Set(PrefixStatus+provider, st, cache.DefaultExpiration)
}

// GetStatus returns the cached result, if it has not expired
func (ac *AppCache) GetStatus(provider string) (ProviderStatus, bool) {
	if val, found := ac.c.Get(PrefixStatus + provider); found {
		if st, ok := val.(ProviderStatus); ok {
			return st, true
		}
	}
	return ProviderStatus{}, false
}

// DeleteStatus forgets the result for a provider
func (ac *AppCache) DeleteStatus(provider string) {
	ac.c.Delete(PrefixStatus + provider)
}

// Clear removes all items from the cache
func (ac *AppCache) Clear() {
	ac.c.Flush()
}

// ItemCount returns the number of items in the cache
func (ac *AppCache) ItemCount() int {
	return ac.c.ItemCount()
}

// Stats returns cache statistics as a formatted string
func (ac *AppCache) Stats() string {
	return fmt.Sprintf("Cache items: %d", ac.c.ItemCount())
}
