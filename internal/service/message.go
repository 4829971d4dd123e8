package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/habyx/backend/internal/authz"
	"github.com/pageza/habyx/backend/internal/models"
)

type MessageService struct {
	db    *gorm.DB
	authz *authz.Authorizer
}

func NewMessageService(db *gorm.DB, authorizer *authz.Authorizer) *MessageService {
	return &MessageService{
		db:    db,
		authz: authorizer,
	}
}

// Send appends a message from senderID to receiverID. Users do not need to be
// friends to message each other.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: message content is required", ErrValidation)
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range []uint{senderID, receiverID} {
			if err := profileExists(tx, id); err != nil {
				return err
			}
		}
		return tx.Create(message).Error
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

// GetConversation returns the messages exchanged between the two users in
// either direction, oldest first.
func (s *MessageService) GetConversation(ctx context.Context, userID, otherUserID uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherUserID, otherUserID, userID).
		Order("created_at, id").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *MessageService) GetUnread(ctx context.Context, userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Preload("Sender").
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Order("created_at, id").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead flags a message as read. Only the receiver may do so, and marking
// an already read message again succeeds.
func (s *MessageService) MarkRead(ctx context.Context, messageID, actingUserID uint) error {
	var message models.Message
	if err := s.db.WithContext(ctx).First(&message, messageID).Error; err != nil {
		return notFound(err)
	}
	if err := s.authz.RequireParty(ctx, actingUserID, message.ReceiverID); err != nil {
		return forbidden(err)
	}
	if message.IsRead {
		return nil
	}

	return s.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", messageID).
		UpdateColumn("is_read", true).Error
}
