package trending

import (
	"fmt"
	"strconv"
	"time"
)

// Store is the cache the decorator writes score values through. Both the
// Redis wrapper and the in-memory store satisfy it. Any Get error is
// treated as a miss.
type Store interface {
	Get(key string) (string, error)
	Set(key string, value interface{}, ttl time.Duration) error
}

// CachedScorer memoizes Score results keyed by item and the hour bucket
// of the reference time. The cache is never authoritative: a miss or an
// evicted entry reproduces the identical value by recomputation.
type CachedScorer struct {
	scorer   *Scorer
	store    Store
	itemType string
	bypass   bool
}

// NewCachedScorer wraps a scorer with a cache for the given item type
func NewCachedScorer(scorer *Scorer, store Store, itemType string) *CachedScorer {
	return &CachedScorer{
		scorer:   scorer,
		store:    store,
		itemType: itemType,
	}
}

// SetBypass toggles cache bypass; when bypassed every call recomputes
// and the cache is neither read nor written
func (c *CachedScorer) SetBypass(bypass bool) {
	c.bypass = bypass
}

// Score returns the cached score for the item's hour bucket, computing
// and populating the cache on a miss
func (c *CachedScorer) Score(itemID int64, counts EngagementCounts, referenceTime time.Time) float64 {
	if c.bypass || c.store == nil {
		return c.scorer.Score(counts, referenceTime)
	}

	key := c.key(itemID, referenceTime)
	if raw, err := c.store.Get(key); err == nil {
		if score, err := strconv.ParseFloat(raw, 64); err == nil {
			return score
		}
	}

	score := c.scorer.Score(counts, referenceTime)

	// Best effort; concurrent writers race to the same deterministic value
	ttl := time.Duration(c.scorer.Weights().CacheDurationMinutes) * time.Minute
	if ttl > 0 {
		_ = c.store.Set(key, strconv.FormatFloat(score, 'g', -1, 64), ttl)
	}

	return score
}

// key buckets the reference time to the hour so repeated lookups within
// the hour share one entry
func (c *CachedScorer) key(itemID int64, referenceTime time.Time) string {
	bucket := referenceTime.UTC().Truncate(time.Hour).Unix()
	return fmt.Sprintf("trend:%s:%d:%d", c.itemType, itemID, bucket)
}
