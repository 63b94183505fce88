package models

import (
	"time"
)

// Group represents a user group
type Group struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `gorm:"type:varchar(60);not null;uniqueIndex:groups_name_ux;column:name"`
	IsGuest   bool      `gorm:"not null;default:false;column:is_guest"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Group
func (Group) TableName() string {
	return "groups"
}

// GroupMember represents a user's membership in a group
type GroupMember struct {
	GroupID   int64     `gorm:"primaryKey;column:group_id"`
	UserID    int64     `gorm:"primaryKey;column:user_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Group *Group `gorm:"foreignKey:GroupID;references:ID"`
}

// TableName specifies the table name for GroupMember
func (GroupMember) TableName() string {
	return "group_members"
}
