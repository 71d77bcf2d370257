package classifier

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"quiz-forge/internal/cache"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedClassifier memoizes another classifier in the shared cache and
// collapses concurrent lookups for the same text. Cache faults are bypassed.
type CachedClassifier struct {
	next      domain.TopicClassifier
	cache     domain.Cache
	ttl       time.Duration
	namespace string
	group     singleflight.Group
}

// NewCachedClassifier wraps next. namespace separates entries produced by
// different strategies or models.
func NewCachedClassifier(next domain.TopicClassifier, c domain.Cache, ttl time.Duration, namespace string) *CachedClassifier {
	return &CachedClassifier{next: next, cache: c, ttl: ttl, namespace: namespace}
}

func (c *CachedClassifier) Classify(ctx context.Context, text string) domain.CategoryDraft {
	key := c.key(text)

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		if cached, ok := c.lookup(ctx, key); ok {
			return cached, nil
		}
		category := c.next.Classify(ctx, text)
		c.store(ctx, key, category)
		return category, nil
	})
	return v.(domain.CategoryDraft)
}

func (c *CachedClassifier) key(text string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	sum := sha256.Sum256([]byte(normalized))
	return cache.GenerateCacheKey("classifier", "category", hex.EncodeToString(sum[:16]), c.namespace)
}

func (c *CachedClassifier) lookup(ctx context.Context, key string) (domain.CategoryDraft, bool) {
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Classification cache read failed", zap.String("key", key), zap.Error(err))
		}
		return domain.CategoryDraft{}, false
	}
	var category domain.CategoryDraft
	if err := json.Unmarshal([]byte(raw), &category); err != nil || category.Slug == "" {
		logger.Get().Warn("Discarding unreadable classification cache entry", zap.String("key", key))
		return domain.CategoryDraft{}, false
	}
	return category, true
}

func (c *CachedClassifier) store(ctx context.Context, key string, category domain.CategoryDraft) {
	// A fallback answer may come from a transient upstream fault; keep it out of the cache.
	if category == FallbackCategory() {
		return
	}
	b, err := json.Marshal(category)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, string(b), c.ttl); err != nil {
		logger.Get().Warn("Classification cache write failed", zap.String("key", key), zap.Error(err))
	}
}
