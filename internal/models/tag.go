package models

import (
	"time"
)

// TagColor is one of the fixed palette of presentational colors.
type TagColor string

const (
	ColorViolet TagColor = "violet"
	ColorIndigo TagColor = "indigo"
	ColorBlue   TagColor = "blue"
	ColorGreen  TagColor = "green"
	ColorYellow TagColor = "yellow"
	ColorOrange TagColor = "orange"
	ColorRed    TagColor = "red"
	ColorPink   TagColor = "pink"
	ColorGray   TagColor = "gray"
)

// Valid reports whether c is one of the palette colors.
func (c TagColor) Valid() bool {
	switch c {
	case ColorViolet, ColorIndigo, ColorBlue, ColorGreen, ColorYellow,
		ColorOrange, ColorRed, ColorPink, ColorGray:
		return true
	}
	return false
}

// Tag represents a managed tag with its assigned user ids.
// Count is a manually maintained usage statistic, never recomputed from
// the assignment list.
type Tag struct {
	Seq           uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	TagID         string    `gorm:"type:char(36);uniqueIndex;not null" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Color         TagColor  `gorm:"size:16;not null" json:"color"`
	Count         uint64    `gorm:"not null;default:0" json:"count"`
	AssignedUsers IDList    `gorm:"type:json" json:"assignedUsers"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// TableName overrides the table name for Tag
func (Tag) TableName() string {
	return "tags"
}
