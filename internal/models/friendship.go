// Package models contains data structures for the application's domain models.
package models

import "time"

// FriendshipStatus represents the status of a friendship row.
type FriendshipStatus string

const (
	// FriendshipStatusPending indicates an unanswered friend request.
	FriendshipStatusPending FriendshipStatus = "pending"
	// FriendshipStatusAccepted indicates an established friendship.
	FriendshipStatusAccepted FriendshipStatus = "accepted"
)

// Friendship is a single row covering both a pending friend request and an
// established friendship. A pending row belongs conceptually to the addressee
// (it is their incoming request); flipping Status to accepted makes the
// relationship symmetric in one atomic write.
type Friendship struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RequesterID uint             `gorm:"not null;uniqueIndex:idx_friendship_users" json:"requester_id"`
	AddresseeID uint             `gorm:"not null;uniqueIndex:idx_friendship_users" json:"addressee_id"`
	Status      FriendshipStatus `gorm:"type:varchar(20);default:'pending';index:idx_friendships_status" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Addressee User `gorm:"foreignKey:AddresseeID" json:"addressee,omitempty"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}

// IncomingRequest is a pending request entry resolved for display, ordered as
// the requests arrived. Username falls back to "Unknown" when the sender no
// longer resolves.
type IncomingRequest struct {
	ID       uint   `json:"id"`
	UID      uint   `json:"uid"`
	Username string `json:"username"`
}
