// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Flick is a user post: text plus an optional stored image.
//
// AuthorUsername is denormalized at creation time and intentionally never
// synced with later username changes.
//
// Upvotes is a denormalized counter over flick_upvotes; both are mutated in
// the same transaction so Upvotes == COUNT(flick_upvotes) holds after every
// toggle.
type Flick struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	AuthorID       uint   `gorm:"not null;index" json:"author_id"`
	AuthorUsername string `gorm:"not null" json:"username"`
	Text           string `gorm:"type:text;not null" json:"text"`
	ImageURL       string `json:"image_url,omitempty"`
	Upvotes        int    `gorm:"not null;default:0" json:"upvotes"`
	// Upvoted indicates whether the requesting user has upvoted this flick (computed)
	Upvoted   bool           `gorm:"->" json:"upvoted"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

// FlickUpvote records one user's upvote on one flick.
type FlickUpvote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FlickID   uint      `gorm:"not null;uniqueIndex:idx_flick_upvote" json:"flick_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_flick_upvote" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (FlickUpvote) TableName() string {
	return "flick_upvotes"
}
