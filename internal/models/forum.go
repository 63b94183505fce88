package models

import (
	"database/sql"
	"time"
)

// Forum represents a forum board, optionally nested under a parent
type Forum struct {
	ID          int64         `gorm:"primaryKey;autoIncrement;column:id"`
	ParentID    sql.NullInt64 `gorm:"column:parent_id"`
	Name        string        `gorm:"type:varchar(100);not null;column:name"`
	Slug        string        `gorm:"type:varchar(100);not null;uniqueIndex:forums_slug_ux;column:slug"`
	Description string        `gorm:"type:varchar(500);not null;default:'';column:description"`
	Position    int           `gorm:"not null;default:0;column:position"`
	IsVisible   bool          `gorm:"not null;default:true;column:is_visible"`
	CreatedAt   time.Time     `gorm:"not null;column:created_at"`
	UpdatedAt   time.Time     `gorm:"not null;column:updated_at"`

	// Relationships
	Parent   *Forum  `gorm:"foreignKey:ParentID;references:ID"`
	Children []Forum `gorm:"foreignKey:ParentID;references:ID"`
}

// TableName specifies the table name for Forum
func (Forum) TableName() string {
	return "forums"
}

// ForumPermission represents one group's permission row on one forum.
// One row per (group, forum) pair; no row means no grant.
type ForumPermission struct {
	GroupID int64 `gorm:"primaryKey;column:group_id"`
	ForumID int64 `gorm:"primaryKey;column:forum_id"`

	CanCreate   bool `gorm:"not null;default:false;column:can_create"`
	CanRead     bool `gorm:"not null;default:false;column:can_read"`
	CanUpdate   bool `gorm:"not null;default:false;column:can_update"`
	CanDelete   bool `gorm:"not null;default:false;column:can_delete"`
	CanModerate bool `gorm:"not null;default:false;column:can_moderate"`
	CanReply    bool `gorm:"not null;default:false;column:can_reply"`
	CanReport   bool `gorm:"not null;default:false;column:can_report"`
	CanPin      bool `gorm:"not null;default:false;column:can_pin"`
	CanLock     bool `gorm:"not null;default:false;column:can_lock"`
	CanMove     bool `gorm:"not null;default:false;column:can_move"`

	// Relationships
	Group *Group `gorm:"foreignKey:GroupID;references:ID"`
	Forum *Forum `gorm:"foreignKey:ForumID;references:ID"`
}

// TableName specifies the table name for ForumPermission
func (ForumPermission) TableName() string {
	return "forum_group_permissions"
}
