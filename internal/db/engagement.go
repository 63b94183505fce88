package db

import (
	"context"
	"time"

	"github.com/guildworks/guildhall/internal/models"
	"github.com/guildworks/guildhall/internal/trending"
)

// EngagementRepository supplies engagement count snapshots for scoring
type EngagementRepository struct {
	*Repository
}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository(repo *Repository) *EngagementRepository {
	return &EngagementRepository{Repository: repo}
}

// engagementRow is the scan target for the aggregate counts query
type engagementRow struct {
	TopicID     int64     `gorm:"column:topic_id"`
	TotalViews  int64     `gorm:"column:total_views"`
	UniqueViews int64     `gorm:"column:unique_views"`
	ReplyCount  int64     `gorm:"column:reply_count"`
	ReadCount   int64     `gorm:"column:read_count"`
	LikeCount   int64     `gorm:"column:like_count"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

const countsQuery = `
SELECT t.id AS topic_id,
       t.created_at,
       COALESCE(v.total_views, 0)  AS total_views,
       COALESCE(v.unique_views, 0) AS unique_views,
       COALESCE(rp.reply_count, 0) AS reply_count,
       COALESCE(rd.read_count, 0)  AS read_count,
       COALESCE(lk.like_count, 0)  AS like_count
FROM topics t
LEFT JOIN (
    SELECT topic_id, COUNT(*) AS total_views, COUNT(DISTINCT visitor_id) AS unique_views
    FROM topic_views GROUP BY topic_id
) v ON v.topic_id = t.id
LEFT JOIN (
    SELECT topic_id, COUNT(*) AS reply_count FROM topic_replies GROUP BY topic_id
) rp ON rp.topic_id = t.id
LEFT JOIN (
    SELECT topic_id, COUNT(*) AS read_count FROM topic_reads GROUP BY topic_id
) rd ON rd.topic_id = t.id
LEFT JOIN (
    SELECT topic_id, COUNT(*) AS like_count FROM topic_likes GROUP BY topic_id
) lk ON lk.topic_id = t.id
`

// CountsFor retrieves the engagement snapshot for one topic. Returns nil
// when the topic does not exist.
func (r *EngagementRepository) CountsFor(ctx context.Context, topicID int64) (*trending.EngagementCounts, error) {
	var rows []engagementRow
	err := r.db.WithContext(ctx).
		Raw(countsQuery+" WHERE t.id = ?", topicID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	counts := rows[0].toCounts()
	return &counts, nil
}

// CountsForForum retrieves engagement snapshots for a forum's topics,
// newest first, capped at limit. A zero forumID spans all forums.
func (r *EngagementRepository) CountsForForum(ctx context.Context, forumID int64, limit int) ([]trending.Item, error) {
	var rows []engagementRow

	query := countsQuery
	args := []interface{}{}
	if forumID != 0 {
		query += " WHERE t.forum_id = ?"
		args = append(args, forumID)
	}
	query += " ORDER BY t.id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]trending.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, trending.Item{ID: row.TopicID, Counts: row.toCounts()})
	}
	return items, nil
}

// RecordView appends a view row for the topic
func (r *EngagementRepository) RecordView(ctx context.Context, topicID int64, visitorID string) error {
	view := &models.TopicView{
		TopicID:   topicID,
		VisitorID: visitorID,
		CreatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Create(view).Error
}

func (row engagementRow) toCounts() trending.EngagementCounts {
	return trending.EngagementCounts{
		TotalViews:  row.TotalViews,
		UniqueViews: row.UniqueViews,
		ReplyCount:  row.ReplyCount,
		ReadCount:   row.ReadCount,
		LikeCount:   row.LikeCount,
		CreatedAt:   row.CreatedAt,
	}
}
