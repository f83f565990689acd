package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/getmentor/companyforms/internal/models"
	"github.com/getmentor/companyforms/pkg/logger"
	"github.com/getmentor/companyforms/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	assetCacheName       = "uploaded_assets"
	defaultAssetCacheTTL = 30 * time.Minute
)

// AssetCache remembers assets that were already uploaded, keyed by a hash
// of their content, so re-selecting the same file skips the network
type AssetCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewAssetCache creates a cache whose entries expire after ttl
func NewAssetCache(ttl time.Duration) *AssetCache {
	if ttl <= 0 {
		ttl = defaultAssetCacheTTL
	}
	return &AssetCache{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// ContentKey derives the cache key for a file's content
func ContentKey(contentType string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(contentType))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached reference for key
func (ac *AssetCache) Get(key string) (models.AssetRef, bool) {
	data, found := ac.cache.Get(key)
	if !found {
		metrics.CacheMisses.WithLabelValues(assetCacheName).Inc()
		return models.AssetRef{}, false
	}

	ref, ok := data.(models.AssetRef)
	if !ok {
		logger.Error("Invalid asset cache data type", zap.String("key", key))
		ac.cache.Delete(key)
		return models.AssetRef{}, false
	}

	metrics.CacheHits.WithLabelValues(assetCacheName).Inc()
	return ref, true
}

// Set stores ref under key
func (ac *AssetCache) Set(key string, ref models.AssetRef) {
	ac.cache.Set(key, ref, ac.ttl)
	logger.Debug("Asset cached", zap.String("storage_key", ref.StorageKey))
}

// Len returns the number of live entries
func (ac *AssetCache) Len() int {
	return ac.cache.ItemCount()
}
