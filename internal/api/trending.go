package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guildworks/guildhall/internal/cache"
	"github.com/guildworks/guildhall/internal/trending"
)

// candidateWindow caps how many recent topics are fetched for ranking
const candidateWindow = 1000

// CountsProvider supplies engagement snapshots from storage
type CountsProvider interface {
	CountsFor(ctx context.Context, topicID int64) (*trending.EngagementCounts, error)
	CountsForForum(ctx context.Context, forumID int64, limit int) ([]trending.Item, error)
}

// TrendingAPI provides trending topic API methods
type TrendingAPI struct {
	counts CountsProvider
	scorer *trending.Scorer
	cached *trending.CachedScorer
	cache  *cache.Cache
}

// NewTrendingAPI creates a new trending API
func NewTrendingAPI(counts CountsProvider, scorer *trending.Scorer, store trending.Store, redisCache *cache.Cache) *TrendingAPI {
	return &TrendingAPI{
		counts: counts,
		scorer: scorer,
		cached: trending.NewCachedScorer(scorer, store, "topic"),
		cache:  redisCache,
	}
}

// timeframeHours maps a timeframe name to its max-age window in hours.
// Zero means no age filter.
func timeframeHours(timeframe string) (float64, error) {
	switch timeframe {
	case "day":
		return 24, nil
	case "week":
		return 168, nil
	case "month":
		return 720, nil
	case "year":
		return 8760, nil
	case "", "all":
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: unknown timeframe %q", ErrInvalidParams, timeframe)
	}
}

// GetTrendingTopics handles forum.get_trending_topics
func (t *TrendingAPI) GetTrendingTopics(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var pMap map[string]interface{}
	if err := json.Unmarshal(params, &pMap); err != nil {
		return nil, fmt.Errorf("%w: invalid parameters format", ErrInvalidParams)
	}

	forumID := int64(0)
	if f, ok := pMap["forum_id"].(float64); ok {
		forumID = int64(f)
	}
	timeframe := ""
	if tf, ok := pMap["timeframe"].(string); ok {
		timeframe = tf
	}
	limit := 20
	if l, ok := pMap["limit"].(float64); ok {
		limit = int(l)
		if limit > 100 {
			limit = 100
		}
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidParams)
	}

	maxAge, err := timeframeHours(timeframe)
	if err != nil {
		return nil, err
	}

	// Generate cache key using hash to shorten long keys
	cacheKeyParts := []string{
		"forum_get_trending_topics",
		fmt.Sprintf("%d", forumID),
		timeframe,
		fmt.Sprintf("%d", limit),
	}
	cacheKey := cache.HashKey(cacheKeyParts...)

	// Check cache
	if t.cache != nil {
		var cachedResult []TrendingEntry
		if err := t.cache.GetJSON(cacheKey, &cachedResult); err == nil {
			return cachedResult, nil
		}
	}

	items, err := t.counts.CountsForForum(ctx.Request.Context(), forumID, candidateWindow)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	items = t.scorer.FilterByAge(items, now, maxAge)
	ranked := t.scorer.AboveThreshold(t.scorer.Rank(items, now, limit))

	result := make([]TrendingEntry, 0, len(ranked))
	for _, r := range ranked {
		result = append(result, TrendingEntry{TopicID: r.ID, Score: r.Score})
	}

	// Cache result; a failed write only costs the next caller a recompute
	if t.cache != nil {
		_ = t.cache.SetJSON(cacheKey, result, t.listTTL(timeframe))
	}

	return result, nil
}

// TrendingEntry is one row of a trending listing
type TrendingEntry struct {
	TopicID int64   `json:"topic_id"`
	Score   float64 `json:"score"`
}

// listTTL returns the listing cache TTL for a timeframe; short windows
// go stale faster
func (t *TrendingAPI) listTTL(timeframe string) time.Duration {
	switch timeframe {
	case "day":
		return 60 * time.Second
	case "week":
		return 300 * time.Second
	default:
		return 600 * time.Second
	}
}

// GetTopicScore handles forum.get_topic_score
func (t *TrendingAPI) GetTopicScore(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var pMap map[string]interface{}
	if err := json.Unmarshal(params, &pMap); err != nil {
		return nil, fmt.Errorf("%w: invalid parameters format", ErrInvalidParams)
	}

	topicIDf, ok := pMap["topic_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing required parameter: topic_id", ErrInvalidParams)
	}
	topicID := int64(topicIDf)

	bypass := false
	if b, ok := pMap["bypass_cache"].(bool); ok {
		bypass = b
	}

	counts, err := t.counts.CountsFor(ctx.Request.Context(), topicID)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		return nil, fmt.Errorf("%w: unknown topic %d", ErrInvalidParams, topicID)
	}

	now := time.Now().UTC()
	var score float64
	if bypass {
		score = t.scorer.Score(*counts, now)
	} else {
		score = t.cached.Score(topicID, *counts, now)
	}

	return gin.H{
		"topic_id":    topicID,
		"score":       score,
		"computed_at": now.Format(time.RFC3339),
	}, nil
}
