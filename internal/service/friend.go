package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/habyx/backend/internal/authz"
	"github.com/pageza/habyx/backend/internal/models"
)

type FriendService struct {
	db    *gorm.DB
	authz *authz.Authorizer
	now   func() time.Time
}

func NewFriendService(db *gorm.DB, authorizer *authz.Authorizer) *FriendService {
	return &FriendService{
		db:    db,
		authz: authorizer,
		now:   time.Now,
	}
}

// SendRequest creates a pending request from requesterID to addresseeID. Only
// one friendship may exist per pair of users, whichever side asked first.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, addresseeID uint) (*models.Friendship, error) {
	if requesterID == addresseeID {
		return nil, fmt.Errorf("%w: cannot send a friend request to yourself", ErrInvalidOperation)
	}

	friendship := &models.Friendship{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      models.FriendStatusPending,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range []uint{requesterID, addresseeID} {
			if err := profileExists(tx, id); err != nil {
				return err
			}
		}

		var count int64
		if err := tx.Model(&models.Friendship{}).
			Where("pair_key = ?", models.FriendPairKey(requesterID, addresseeID)).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("friend request %w", ErrConflict)
		}

		if err := tx.Create(friendship).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("friend request %w", ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return friendship, nil
}

// Respond accepts or rejects a request. Only the addressee may respond.
func (s *FriendService) Respond(ctx context.Context, requestID, actingUserID uint, status models.FriendStatus) error {
	if status != models.FriendStatusAccepted && status != models.FriendStatusRejected {
		return fmt.Errorf("%w: status must be accepted or rejected", ErrValidation)
	}

	friendship, err := s.get(ctx, requestID)
	if err != nil {
		return err
	}
	if err := s.authz.RequireParty(ctx, actingUserID, friendship.AddresseeID); err != nil {
		return forbidden(err)
	}

	result := s.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("id = ?", requestID).
		UpdateColumns(map[string]interface{}{
			"status":     status,
			"updated_at": s.now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Remove deletes a friendship in any state. Either party may remove it.
func (s *FriendService) Remove(ctx context.Context, friendshipID, actingUserID uint) error {
	friendship, err := s.get(ctx, friendshipID)
	if err != nil {
		return err
	}
	if err := s.authz.RequireParty(ctx, actingUserID, friendship.RequesterID, friendship.AddresseeID); err != nil {
		return forbidden(err)
	}

	result := s.db.WithContext(ctx).Delete(&models.Friendship{}, friendshipID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := s.db.WithContext(ctx).
		Preload("Requester").
		Preload("Addressee").
		Where("status = ?", models.FriendStatusAccepted).
		Where("requester_id = ? OR addressee_id = ?", userID, userID).
		Order("id").
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}
	return friendships, nil
}

func (s *FriendService) ListPending(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := s.db.WithContext(ctx).
		Preload("Requester").
		Where("addressee_id = ? AND status = ?", userID, models.FriendStatusPending).
		Order("created_at, id").
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}
	return friendships, nil
}

func (s *FriendService) get(ctx context.Context, id uint) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := s.db.WithContext(ctx).First(&friendship, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &friendship, nil
}

func profileExists(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.UserProfile{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("user %d %w", id, ErrNotFound)
	}
	return nil
}
