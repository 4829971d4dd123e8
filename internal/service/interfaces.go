package service

import (
	"context"

	"github.com/pageza/habyx/backend/internal/models"
	"github.com/pageza/habyx/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, id uint) (*models.UserProfile, error)
	ListProfiles(ctx context.Context) ([]models.UserProfile, error)
	CreateProfile(ctx context.Context, callerID uint, profile *models.UserProfile) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, callerID, id uint, profile *models.UserProfile) error
	DeleteProfile(ctx context.Context, callerID, id uint) error
	UploadImage(ctx context.Context, callerID uint, filename, contentType string, data []byte) (string, error)
	DeleteImage(ctx context.Context, callerID uint) error
}

// IFriendService defines the interface for friendship operations
type IFriendService interface {
	SendRequest(ctx context.Context, requesterID, addresseeID uint) (*models.Friendship, error)
	Respond(ctx context.Context, requestID, actingUserID uint, status models.FriendStatus) error
	Remove(ctx context.Context, friendshipID, actingUserID uint) error
	ListFriends(ctx context.Context, userID uint) ([]models.Friendship, error)
	ListPending(ctx context.Context, userID uint) ([]models.Friendship, error)
}

// IMessageService defines the interface for direct messaging operations
type IMessageService interface {
	Send(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error)
	GetConversation(ctx context.Context, userID, otherUserID uint) ([]models.Message, error)
	GetUnread(ctx context.Context, userID uint) ([]models.Message, error)
	MarkRead(ctx context.Context, messageID, actingUserID uint) error
}
