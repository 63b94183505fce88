package trending

import (
	"fmt"
	"testing"
	"time"
)

// fakeStore records cache traffic for assertions
type fakeStore struct {
	entries map[string]string
	gets    int
	sets    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]string)}
}

func (f *fakeStore) Get(key string) (string, error) {
	f.gets++
	if v, ok := f.entries[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("miss")
}

func (f *fakeStore) Set(key string, value interface{}, ttl time.Duration) error {
	f.sets++
	f.entries[key] = fmt.Sprintf("%v", value)
	return nil
}

func TestCachedScorerMemoizes(t *testing.T) {
	scorer := mustScorer(t, DefaultWeights())
	store := newFakeStore()
	cached := NewCachedScorer(scorer, store, "topic")

	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	counts := EngagementCounts{
		TotalViews: 100,
		LikeCount:  7,
		CreatedAt:  now.Add(-3 * time.Hour),
	}

	first := cached.Score(42, counts, now)
	if store.sets != 1 {
		t.Fatalf("expected one cache write after first call, got %d", store.sets)
	}

	// Same hour bucket hits the cache
	second := cached.Score(42, counts, now.Add(10*time.Minute))
	if store.sets != 1 {
		t.Errorf("second call within the hour should not write, got %d writes", store.sets)
	}
	if first != second {
		t.Errorf("cached score %v differs from computed score %v", second, first)
	}

	// Cached value matches direct computation
	if direct := scorer.Score(counts, now); direct != first {
		t.Errorf("cached score %v differs from direct Score() %v", first, direct)
	}
}

func TestCachedScorerHourBuckets(t *testing.T) {
	scorer := mustScorer(t, DefaultWeights())
	store := newFakeStore()
	cached := NewCachedScorer(scorer, store, "topic")

	now := time.Date(2025, 6, 1, 12, 59, 0, 0, time.UTC)
	counts := EngagementCounts{TotalViews: 10, CreatedAt: now.Add(-time.Hour)}

	cached.Score(1, counts, now)
	cached.Score(1, counts, now.Add(2*time.Minute)) // crosses into 13:00

	if store.sets != 2 {
		t.Errorf("expected a write per hour bucket, got %d writes", store.sets)
	}
}

func TestCachedScorerDistinguishesItems(t *testing.T) {
	scorer := mustScorer(t, DefaultWeights())
	store := newFakeStore()
	cached := NewCachedScorer(scorer, store, "topic")

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := EngagementCounts{TotalViews: 10, CreatedAt: now.Add(-time.Hour)}
	b := EngagementCounts{TotalViews: 500, CreatedAt: now.Add(-time.Hour)}

	scoreA := cached.Score(1, a, now)
	scoreB := cached.Score(2, b, now)
	if scoreA == scoreB {
		t.Error("distinct items collided in the cache")
	}
}

func TestCachedScorerBypass(t *testing.T) {
	scorer := mustScorer(t, DefaultWeights())
	store := newFakeStore()
	cached := NewCachedScorer(scorer, store, "topic")
	cached.SetBypass(true)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	counts := EngagementCounts{TotalViews: 10, CreatedAt: now.Add(-time.Hour)}

	cached.Score(1, counts, now)
	cached.Score(1, counts, now)

	if store.gets != 0 || store.sets != 0 {
		t.Errorf("bypassed scorer touched the cache: %d gets, %d sets", store.gets, store.sets)
	}
}

func TestCachedScorerNilStore(t *testing.T) {
	scorer := mustScorer(t, DefaultWeights())
	cached := NewCachedScorer(scorer, nil, "topic")

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	counts := EngagementCounts{TotalViews: 10, CreatedAt: now.Add(-time.Hour)}

	if got, want := cached.Score(1, counts, now), scorer.Score(counts, now); got != want {
		t.Errorf("Score() without store = %v, want %v", got, want)
	}
}

func TestCachedScorerIgnoresCorruptEntry(t *testing.T) {
	scorer := mustScorer(t, DefaultWeights())
	store := newFakeStore()
	cached := NewCachedScorer(scorer, store, "topic")

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	counts := EngagementCounts{TotalViews: 10, CreatedAt: now.Add(-time.Hour)}

	// Poison the slot the scorer will read
	key := cached.key(1, now)
	store.entries[key] = "not-a-number"

	if got, want := cached.Score(1, counts, now), scorer.Score(counts, now); got != want {
		t.Errorf("Score() with corrupt cache entry = %v, want recomputed %v", got, want)
	}
}
