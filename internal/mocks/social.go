package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/habyx/backend/internal/models"
)

// MockFriendService is a mock implementation of the FriendService interface
type MockFriendService struct {
	mock.Mock
}

func (m *MockFriendService) SendRequest(ctx context.Context, requesterID, addresseeID uint) (*models.Friendship, error) {
	args := m.Called(ctx, requesterID, addresseeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Friendship), args.Error(1)
}

func (m *MockFriendService) Respond(ctx context.Context, requestID, actingUserID uint, status models.FriendStatus) error {
	args := m.Called(ctx, requestID, actingUserID, status)
	return args.Error(0)
}

func (m *MockFriendService) Remove(ctx context.Context, friendshipID, actingUserID uint) error {
	args := m.Called(ctx, friendshipID, actingUserID)
	return args.Error(0)
}

func (m *MockFriendService) ListFriends(ctx context.Context, userID uint) ([]models.Friendship, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Friendship), args.Error(1)
}

func (m *MockFriendService) ListPending(ctx context.Context, userID uint) ([]models.Friendship, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Friendship), args.Error(1)
}

// MockMessageService is a mock implementation of the MessageService interface
type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) Send(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error) {
	args := m.Called(ctx, senderID, receiverID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageService) GetConversation(ctx context.Context, userID, otherUserID uint) ([]models.Message, error) {
	args := m.Called(ctx, userID, otherUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageService) GetUnread(ctx context.Context, userID uint) ([]models.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageService) MarkRead(ctx context.Context, messageID, actingUserID uint) error {
	args := m.Called(ctx, messageID, actingUserID)
	return args.Error(0)
}
