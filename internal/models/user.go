package models

import (
	"time"
)

// UserRole is the stored role label of a user. Roles are labels only,
// nothing in the service enforces them.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleEditor UserRole = "editor"
	RoleViewer UserRole = "viewer"
)

// Valid reports whether r is one of the known role labels.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// User represents a managed user account
type User struct {
	Seq       uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID    string    `gorm:"type:char(36);uniqueIndex;not null" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role      UserRole  `gorm:"size:16;not null" json:"role"`
	Avatar    string    `gorm:"size:1024" json:"avatar,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
