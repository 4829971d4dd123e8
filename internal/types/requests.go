package types

import (
	"time"

	"github.com/pageza/habyx/backend/internal/models"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required,strongpassword"`
	FirstName string `json:"firstName" binding:"required,max=50"`
	LastName  string `json:"lastName" binding:"required,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type RespondFriendRequest struct {
	Status models.FriendStatus `json:"status" binding:"required"`
}

type SendMessageRequest struct {
	ReceiverID uint   `json:"receiverId" binding:"required"`
	Content    string `json:"content"`
}

// ProfileRequest is the full editable field set of a profile. Updates
// overwrite every field, so omitted optional fields are cleared.
type ProfileRequest struct {
	ID           uint      `json:"id"`
	FirstName    string    `json:"firstName" binding:"required,max=50"`
	LastName     string    `json:"lastName" binding:"required,max=50"`
	Email        string    `json:"email" binding:"omitempty,email"`
	DateOfBirth  time.Time `json:"dateOfBirth"`
	Bio          *string   `json:"bio" binding:"omitempty,max=500"`
	Location     *string   `json:"location"`
	Gender       *string   `json:"gender"`
	InterestedIn *string   `json:"interestedIn"`
	Occupation   *string   `json:"occupation" binding:"omitempty,max=100"`
	Skills       *string   `json:"skills"`
	Education    *string   `json:"education"`
}

// ToModel copies the editable fields into a profile model.
func (r *ProfileRequest) ToModel() *models.UserProfile {
	return &models.UserProfile{
		ID:           r.ID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		DateOfBirth:  r.DateOfBirth,
		Bio:          r.Bio,
		Location:     r.Location,
		Gender:       r.Gender,
		InterestedIn: r.InterestedIn,
		Occupation:   r.Occupation,
		Skills:       r.Skills,
		Education:    r.Education,
	}
}

type UploadImageResponse struct {
	Path string `json:"path"`
}
