package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityAction is the kind of completed mutation an activity describes.
type ActivityAction string

const (
	ActionCreate   ActivityAction = "create"
	ActionUpdate   ActivityAction = "update"
	ActionDelete   ActivityAction = "delete"
	ActionAssign   ActivityAction = "assign"
	ActionUnassign ActivityAction = "unassign"
)

// EntityType is the kind of entity an activity refers to.
type EntityType string

const (
	EntityTag  EntityType = "tag"
	EntityUser EntityType = "user"
)

// Activity is one immutable audit-log entry. EntityID/EntityName and
// UserID/UserName are snapshots taken when the action happened; they stay
// correct after the entity or actor is renamed or deleted.
type Activity struct {
	Seq        uint64            `gorm:"primaryKey;autoIncrement" json:"-"`
	ActivityID string            `gorm:"size:32;uniqueIndex;not null" json:"id"`
	Action     ActivityAction    `gorm:"size:16;not null" json:"action"`
	EntityType EntityType        `gorm:"size:16;not null" json:"entityType"`
	EntityID   string            `gorm:"type:char(36);not null" json:"entityId"`
	EntityName string            `gorm:"size:255;not null" json:"entityName"`
	UserID     string            `gorm:"type:char(36);not null" json:"userId"`
	UserName   string            `gorm:"size:255;not null" json:"userName"`
	Timestamp  time.Time         `gorm:"not null" json:"timestamp"`
	Details    datatypes.JSONMap `gorm:"type:json" json:"details,omitempty"`
}

// TableName overrides the table name for Activity
func (Activity) TableName() string {
	return "activities"
}
