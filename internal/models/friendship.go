package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type FriendStatus string

const (
	FriendStatusPending  FriendStatus = "pending"
	FriendStatusAccepted FriendStatus = "accepted"
	FriendStatusRejected FriendStatus = "rejected"
	FriendStatusBlocked  FriendStatus = "blocked"
)

// Valid reports whether s is one of the known statuses.
func (s FriendStatus) Valid() bool {
	switch s {
	case FriendStatusPending, FriendStatusAccepted, FriendStatusRejected, FriendStatusBlocked:
		return true
	}
	return false
}

// Friendship is a request from Requester to Addressee. Once accepted it is
// read as a symmetric relation.
type Friendship struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	RequesterID uint         `gorm:"not null;index" json:"requesterId"`
	AddresseeID uint         `gorm:"not null;index" json:"addresseeId"`
	PairKey     string       `gorm:"size:41;not null;uniqueIndex" json:"-"`
	Status      FriendStatus `gorm:"size:16;not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   *time.Time   `gorm:"autoUpdateTime:false" json:"updatedAt"`

	Requester *UserProfile `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE" json:"requester,omitempty"`
	Addressee *UserProfile `gorm:"foreignKey:AddresseeID;constraint:OnDelete:CASCADE" json:"addressee,omitempty"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// FriendPairKey identifies the unordered pair {a, b}; it is the same for both
// request directions.
func FriendPairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// BeforeSave keeps PairKey in step with the party ids.
func (f *Friendship) BeforeSave(tx *gorm.DB) error {
	f.PairKey = FriendPairKey(f.RequesterID, f.AddresseeID)
	return nil
}

// Other returns the id of the party that is not userID.
func (f *Friendship) Other(userID uint) uint {
	if f.RequesterID == userID {
		return f.AddresseeID
	}
	return f.RequesterID
}
