package models

import (
	"database/sql"
	"time"
)

// Topic represents a forum topic
type Topic struct {
	ID       int64  `gorm:"primaryKey;autoIncrement;column:id"`
	ForumID  int64  `gorm:"not null;index;column:forum_id"`
	AuthorID int64  `gorm:"not null;column:author_id"`
	Title    string `gorm:"type:varchar(255);not null;column:title"`
	Slug     string `gorm:"type:varchar(255);not null;column:slug"`
	Body     string `gorm:"type:text;column:body"`

	IsPinned bool `gorm:"not null;default:false;column:is_pinned"`
	IsLocked bool `gorm:"not null;default:false;column:is_locked"`

	// Stored score refreshed by the background worker. Best-effort
	// acceleration only; on-demand computation is authoritative.
	TrendingScore sql.NullFloat64 `gorm:"type:float;column:trending_score"`
	ScoredAt      sql.NullTime    `gorm:"column:scored_at"`

	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`

	// Relationships
	Forum   *Forum       `gorm:"foreignKey:ForumID;references:ID"`
	Replies []TopicReply `gorm:"foreignKey:TopicID;references:ID"`
}

// TableName specifies the table name for Topic
func (Topic) TableName() string {
	return "topics"
}

// TopicReply represents a reply within a topic
type TopicReply struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	TopicID   int64     `gorm:"not null;index;column:topic_id"`
	AuthorID  int64     `gorm:"not null;column:author_id"`
	Body      string    `gorm:"type:text;not null;column:body"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Topic *Topic `gorm:"foreignKey:TopicID;references:ID"`
}

// TableName specifies the table name for TopicReply
func (TopicReply) TableName() string {
	return "topic_replies"
}
