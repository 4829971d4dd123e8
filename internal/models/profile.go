package models

import (
	"time"
)

type UserProfile struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	FirstName        string    `gorm:"size:50;not null" json:"firstName"`
	LastName         string    `gorm:"size:50;not null" json:"lastName"`
	Email            string    `gorm:"size:254" json:"email"`
	DateOfBirth      time.Time `json:"dateOfBirth"`
	Bio              *string   `gorm:"size:500" json:"bio"`
	Location         *string   `json:"location"`
	Gender           *string   `json:"gender"`
	InterestedIn     *string   `json:"interestedIn"`
	Occupation       *string   `gorm:"size:100" json:"occupation"`
	Skills           *string   `json:"skills"`
	Education        *string   `json:"education"`
	ProfileImagePath *string   `json:"profileImagePath"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
