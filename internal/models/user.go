// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a GymFlick account.
//
// Accounts are never deleted by the application; DeletedAt exists only so an
// operator can soft-retire a record without breaking friend requests that
// reference it (the username then resolves to "Unknown").
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Username      string         `gorm:"unique;not null" json:"username"`
	Email         string         `gorm:"unique;not null" json:"email"`
	Password      string         `gorm:"not null" json:"-"`
	EmailVerified bool           `gorm:"not null;default:false" json:"email_verified"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Flicks        []Flick        `gorm:"foreignKey:AuthorID" json:"flicks,omitempty"`
}
