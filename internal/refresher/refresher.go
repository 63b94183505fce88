package refresher

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/guildworks/guildhall/internal/db"
	"github.com/guildworks/guildhall/internal/trending"
	"github.com/guildworks/guildhall/pkg/config"
	"github.com/guildworks/guildhall/pkg/logging"
)

// Refresher periodically recomputes stored trending scores for recent
// topics. The stored column only accelerates listings; on-demand
// computation through the scorer stays authoritative.
type Refresher struct {
	cfg    *config.RefresherConfig
	topics *db.TopicRepository
	counts *db.EngagementRepository
	scorer *trending.Scorer
	logger *zap.Logger
}

// New creates a new refresher
func New(cfg *config.RefresherConfig, database *db.DB, scorer *trending.Scorer) *Refresher {
	repo := db.NewRepository(database.DB)
	return &Refresher{
		cfg:    cfg,
		topics: db.NewTopicRepository(repo),
		counts: db.NewEngagementRepository(repo),
		scorer: scorer,
		logger: logging.GetLogger().With(zap.String("component", "refresher")),
	}
}

// Run refreshes on the configured interval until the context is done
func (r *Refresher) Run(ctx context.Context) error {
	interval := time.Duration(r.cfg.IntervalMinutes) * time.Minute
	r.logger.Info("Starting trending score refresher", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.RefreshOnce(ctx); err != nil {
				r.logger.Error("Refresh pass failed", zap.Error(err))
			}
		}
	}
}

// RefreshOnce recomputes and persists scores for one batch of recent
// topics
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	maxAge := time.Duration(r.cfg.MaxTopicAgeHours) * time.Hour

	ids, err := r.topics.RecentIDs(ctx, maxAge, r.cfg.BatchSize)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	updated := 0
	for _, id := range ids {
		counts, err := r.counts.CountsFor(ctx, id)
		if err != nil {
			r.logger.Warn("Failed to fetch counts",
				zap.Int64("topic_id", id),
				zap.Error(err))
			continue
		}
		if counts == nil {
			continue
		}

		score := r.scorer.Score(*counts, now)
		if err := r.topics.UpdateTrendingScore(ctx, id, score, now); err != nil {
			r.logger.Warn("Failed to store score",
				zap.Int64("topic_id", id),
				zap.Error(err))
			continue
		}
		updated++
	}

	r.logger.Info("Refresh pass complete",
		zap.Int("candidates", len(ids)),
		zap.Int("updated", updated))
	return nil
}
