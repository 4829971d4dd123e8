package models

import (
	"time"
)

// User is the login identity. Profile data lives in UserProfile, which shares
// the same id.
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Email        string     `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FirstName    string     `gorm:"size:50;not null" json:"firstName"`
	LastName     string     `gorm:"size:50;not null" json:"lastName"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
}

func (User) TableName() string {
	return "users"
}
