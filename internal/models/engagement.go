package models

import (
	"time"
)

// TopicView records one view of a topic. VisitorID identifies the
// viewing device so unique views can be counted with a distinct query.
type TopicView struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	TopicID   int64     `gorm:"not null;index;column:topic_id"`
	VisitorID string    `gorm:"type:varchar(64);not null;index;column:visitor_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for TopicView
func (TopicView) TableName() string {
	return "topic_views"
}

// TopicRead marks a topic as read by a user
type TopicRead struct {
	TopicID   int64     `gorm:"primaryKey;column:topic_id"`
	UserID    int64     `gorm:"primaryKey;column:user_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for TopicRead
func (TopicRead) TableName() string {
	return "topic_reads"
}

// TopicLike records a user liking a topic
type TopicLike struct {
	TopicID   int64     `gorm:"primaryKey;column:topic_id"`
	UserID    int64     `gorm:"primaryKey;column:user_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for TopicLike
func (TopicLike) TableName() string {
	return "topic_likes"
}
