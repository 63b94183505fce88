package trending

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/guildworks/guildhall/pkg/config"
)

// EngagementCounts is a read-only snapshot of one topic's engagement at
// one instant. The storage layer supplies it fresh per scoring call.
type EngagementCounts struct {
	TotalViews  int64
	UniqueViews int64
	ReplyCount  int64
	ReadCount   int64
	LikeCount   int64
	CreatedAt   time.Time
}

// IsZero reports whether the snapshot carries no engagement at all
func (c EngagementCounts) IsZero() bool {
	return c.TotalViews == 0 && c.UniqueViews == 0 && c.ReplyCount == 0 &&
		c.ReadCount == 0 && c.LikeCount == 0
}

// Weights holds the scoring weights and decay policy. Built once at
// startup from configuration and immutable afterwards.
type Weights struct {
	View       float64
	UniqueView float64
	Reply      float64
	Read       float64
	Like       float64

	RecencyThresholdHours    int
	RecencyMultiplier        float64
	OldContentThresholdHours int
	OldContentMultiplier     float64
	HalfLifeHours            float64

	MinEngagementThreshold float64
	CacheDurationMinutes   int
}

// DefaultWeights returns the stock scoring policy
func DefaultWeights() Weights {
	return Weights{
		View:                     1.0,
		UniqueView:               1.5,
		Reply:                    3.0,
		Read:                     2.0,
		Like:                     2.5,
		RecencyThresholdHours:    24,
		RecencyMultiplier:        2.0,
		OldContentThresholdHours: 720,
		OldContentMultiplier:     0.1,
		HalfLifeHours:            168,
		MinEngagementThreshold:   1,
		CacheDurationMinutes:     60,
	}
}

// WeightsFrom builds Weights from the trending configuration section
func WeightsFrom(cfg *config.TrendingConfig) Weights {
	return Weights{
		View:                     cfg.ViewWeight,
		UniqueView:               cfg.UniqueViewWeight,
		Reply:                    cfg.ReplyWeight,
		Read:                     cfg.ReadWeight,
		Like:                     cfg.LikeWeight,
		RecencyThresholdHours:    cfg.RecencyThresholdHours,
		RecencyMultiplier:        cfg.RecencyMultiplier,
		OldContentThresholdHours: cfg.OldContentThresholdHours,
		OldContentMultiplier:     cfg.OldContentMultiplier,
		HalfLifeHours:            cfg.HalfLifeHours,
		MinEngagementThreshold:   cfg.MinEngagementThreshold,
		CacheDurationMinutes:     cfg.CacheDurationMinutes,
	}
}

// Validate rejects weight sets that cannot produce meaningful scores
func (w Weights) Validate() error {
	if w.View < 0 || w.UniqueView < 0 || w.Reply < 0 || w.Read < 0 || w.Like < 0 {
		return fmt.Errorf("engagement weights must not be negative")
	}
	if w.RecencyMultiplier < 0 || w.OldContentMultiplier < 0 {
		return fmt.Errorf("time multipliers must not be negative")
	}
	if w.HalfLifeHours <= 0 {
		return fmt.Errorf("half-life must be positive")
	}
	if w.RecencyThresholdHours < 0 {
		return fmt.Errorf("recency threshold must not be negative")
	}
	if w.OldContentThresholdHours < w.RecencyThresholdHours {
		return fmt.Errorf("old-content threshold must not be below recency threshold")
	}
	return nil
}

// Item pairs a topic ID with its engagement snapshot for ranking
type Item struct {
	ID     int64
	Counts EngagementCounts
}

// RankedItem is one entry of a ranked result
type RankedItem struct {
	ID    int64
	Score float64
}

// Scorer computes decayed engagement scores. It is pure and safe for
// concurrent use; all state is the immutable weight set.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer, validating the weights up front so scoring
// calls never fail
func NewScorer(w Weights) (*Scorer, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trending weights: %w", err)
	}
	return &Scorer{weights: w}, nil
}

// Weights returns the scorer's weight set
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score computes the decayed engagement score for one item at the given
// reference time. Zero-engagement items score 0 regardless of age.
func (s *Scorer) Score(counts EngagementCounts, referenceTime time.Time) float64 {
	engagement := s.engagementScore(counts)
	if engagement == 0 {
		return 0
	}
	return engagement * s.timeMultiplier(ageHours(counts.CreatedAt, referenceTime))
}

// engagementScore is the weighted log-dampened sum of the five counts
func (s *Scorer) engagementScore(c EngagementCounts) float64 {
	return math.Log1p(float64(c.TotalViews))*s.weights.View +
		math.Log1p(float64(c.UniqueViews))*s.weights.UniqueView +
		math.Log1p(float64(c.ReplyCount))*s.weights.Reply +
		math.Log1p(float64(c.ReadCount))*s.weights.Read +
		math.Log1p(float64(c.LikeCount))*s.weights.Like
}

// timeMultiplier applies the recency boost, old-content floor, or the
// half-life decay curve between them
func (s *Scorer) timeMultiplier(age float64) float64 {
	switch {
	case age <= float64(s.weights.RecencyThresholdHours):
		return s.weights.RecencyMultiplier
	case age >= float64(s.weights.OldContentThresholdHours):
		return s.weights.OldContentMultiplier
	default:
		return math.Pow(0.5, age/s.weights.HalfLifeHours)
	}
}

// ageHours returns the item age in hours, clamped to zero for
// future-dated items
func ageHours(createdAt, referenceTime time.Time) float64 {
	h := referenceTime.Sub(createdAt).Hours()
	if h < 0 {
		return 0
	}
	return h
}

// Rank scores all items and returns them ordered by score descending,
// ties broken by ID ascending, truncated to limit. The ordering is
// fully determined by the inputs.
func (s *Scorer) Rank(items []Item, referenceTime time.Time, limit int) []RankedItem {
	ranked := make([]RankedItem, 0, len(items))
	for _, item := range items {
		ranked = append(ranked, RankedItem{
			ID:    item.ID,
			Score: s.Score(item.Counts, referenceTime),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// FilterByAge drops items older than maxAgeHours at the reference time.
// A non-positive maxAgeHours disables filtering.
func (s *Scorer) FilterByAge(items []Item, referenceTime time.Time, maxAgeHours float64) []Item {
	if maxAgeHours <= 0 {
		return items
	}
	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if ageHours(item.Counts.CreatedAt, referenceTime) <= maxAgeHours {
			kept = append(kept, item)
		}
	}
	return kept
}

// AboveThreshold filters a ranked list down to entries at or above the
// minimum engagement threshold. Thresholding is a listing concern; Score
// itself always returns the raw value.
func (s *Scorer) AboveThreshold(ranked []RankedItem) []RankedItem {
	kept := make([]RankedItem, 0, len(ranked))
	for _, r := range ranked {
		if r.Score >= s.weights.MinEngagementThreshold {
			kept = append(kept, r)
		}
	}
	return kept
}
