package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/guildworks/guildhall/internal/models"
	"github.com/guildworks/guildhall/internal/perms"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ForumRepository provides forum-related database operations
type ForumRepository struct {
	*Repository
}

// NewForumRepository creates a new forum repository
func NewForumRepository(repo *Repository) *ForumRepository {
	return &ForumRepository{Repository: repo}
}

// GetByID retrieves a forum by ID
func (r *ForumRepository) GetByID(ctx context.Context, id int64) (*models.Forum, error) {
	var forum models.Forum
	if err := r.db.WithContext(ctx).First(&forum, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &forum, nil
}

// GetBySlug retrieves a forum by slug
func (r *ForumRepository) GetBySlug(ctx context.Context, slug string) (*models.Forum, error) {
	var forum models.Forum
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&forum).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &forum, nil
}

// ListVisible retrieves visible forums ordered by position
func (r *ForumRepository) ListVisible(ctx context.Context) ([]*models.Forum, error) {
	var forums []*models.Forum
	if err := r.db.WithContext(ctx).
		Where("is_visible = ?", true).
		Order("position ASC, id ASC").
		Find(&forums).Error; err != nil {
		return nil, err
	}
	return forums, nil
}

// Create creates a new forum
func (r *ForumRepository) Create(ctx context.Context, forum *models.Forum) error {
	return r.db.WithContext(ctx).Create(forum).Error
}

// TopicRepository provides topic-related database operations
type TopicRepository struct {
	*Repository
}

// NewTopicRepository creates a new topic repository
func NewTopicRepository(repo *Repository) *TopicRepository {
	return &TopicRepository{Repository: repo}
}

// GetByID retrieves a topic by ID
func (r *TopicRepository) GetByID(ctx context.Context, id int64) (*models.Topic, error) {
	var topic models.Topic
	if err := r.db.WithContext(ctx).First(&topic, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &topic, nil
}

// Create creates a new topic
func (r *TopicRepository) Create(ctx context.Context, topic *models.Topic) error {
	return r.db.WithContext(ctx).Create(topic).Error
}

// RecentIDs retrieves IDs of topics created within the age window,
// newest first, capped at limit
func (r *TopicRepository) RecentIDs(ctx context.Context, maxAge time.Duration, limit int) ([]int64, error) {
	var ids []int64
	cutoff := time.Now().UTC().Add(-maxAge)
	if err := r.db.WithContext(ctx).
		Model(&models.Topic{}).
		Where("created_at >= ?", cutoff).
		Order("id DESC").
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateTrendingScore persists a freshly computed score on the topic row
func (r *TopicRepository) UpdateTrendingScore(ctx context.Context, topicID int64, score float64, scoredAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Topic{}).
		Where("id = ?", topicID).
		Updates(map[string]interface{}{
			"trending_score": score,
			"scored_at":      scoredAt,
		}).Error
}

// MembershipRepository provides group membership database operations
type MembershipRepository struct {
	*Repository
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(repo *Repository) *MembershipRepository {
	return &MembershipRepository{Repository: repo}
}

// GroupsFor retrieves the IDs of all groups the user belongs to
func (r *MembershipRepository) GroupsFor(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.GroupMember{}).
		Where("user_id = ?", userID).
		Pluck("group_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// PermissionRepository provides forum permission database operations
type PermissionRepository struct {
	*Repository
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(repo *Repository) *PermissionRepository {
	return &PermissionRepository{Repository: repo}
}

// GrantsFor retrieves all group grants on a forum
func (r *PermissionRepository) GrantsFor(ctx context.Context, forumID int64) ([]perms.Grant, error) {
	var rows []models.ForumPermission
	if err := r.db.WithContext(ctx).
		Where("forum_id = ?", forumID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	grants := make([]perms.Grant, 0, len(rows))
	for _, row := range rows {
		grants = append(grants, perms.Grant{
			GroupID:  row.GroupID,
			ForumID:  row.ForumID,
			Create:   row.CanCreate,
			Read:     row.CanRead,
			Update:   row.CanUpdate,
			Delete:   row.CanDelete,
			Moderate: row.CanModerate,
			Reply:    row.CanReply,
			Report:   row.CanReport,
			Pin:      row.CanPin,
			Lock:     row.CanLock,
			Move:     row.CanMove,
		})
	}
	return grants, nil
}

// ReadableForumIDs retrieves the IDs of all forums any of the groups can
// read. Returns nothing for an empty group set, matching the fail-closed
// resolution semantics.
func (r *PermissionRepository) ReadableForumIDs(ctx context.Context, groupIDs []int64) ([]int64, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.ForumPermission{}).
		Where("group_id IN ? AND can_read = ?", groupIDs, true).
		Distinct().
		Order("forum_id ASC").
		Pluck("forum_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
