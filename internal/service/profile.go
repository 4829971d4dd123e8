package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"gorm.io/gorm"

	"github.com/pageza/habyx/backend/internal/authz"
	"github.com/pageza/habyx/backend/internal/models"
	"github.com/pageza/habyx/backend/internal/storage"
)

// profileColumns are the fields a profile update overwrites.
var profileColumns = []string{
	"first_name", "last_name", "email", "date_of_birth", "bio", "location",
	"gender", "interested_in", "occupation", "skills", "education", "updated_at",
}

type ProfileService struct {
	db     *gorm.DB
	images storage.ImageStore
	authz  *authz.Authorizer
	now    func() time.Time
}

func NewProfileService(db *gorm.DB, images storage.ImageStore, authorizer *authz.Authorizer) *ProfileService {
	return &ProfileService{
		db:     db,
		images: images,
		authz:  authorizer,
		now:    time.Now,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, id uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

func (s *ProfileService) ListProfiles(ctx context.Context) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	if err := s.db.WithContext(ctx).Order("id").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// CreateProfile stores a profile for the caller. The profile always takes the
// caller's identity id, whatever the request carried.
func (s *ProfileService) CreateProfile(ctx context.Context, callerID uint, profile *models.UserProfile) (*models.UserProfile, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	profile.ID = callerID
	profile.ProfileImagePath = nil

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.UserProfile{}).Where("id = ?", callerID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("profile %w", ErrConflict)
		}
		if err := tx.Create(profile).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("profile %w", ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile overwrites every editable field of profile id. Fields left
// empty in the request are cleared.
func (s *ProfileService) UpdateProfile(ctx context.Context, callerID, id uint, profile *models.UserProfile) error {
	if profile.ID != id {
		return fmt.Errorf("%w: profile id does not match the path", ErrValidation)
	}
	if err := s.authz.RequireParty(ctx, callerID, id); err != nil {
		return forbidden(err)
	}
	if err := validateProfile(profile); err != nil {
		return err
	}

	profile.UpdatedAt = s.now()
	result := s.db.WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("id = ?", id).
		Select(profileColumns).
		Updates(profile)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProfile removes the profile together with its friendships and
// messages. Stored images are left in place.
func (s *ProfileService) DeleteProfile(ctx context.Context, callerID, id uint) error {
	if err := s.authz.RequireParty(ctx, callerID, id); err != nil {
		return forbidden(err)
	}

	result := s.db.WithContext(ctx).Delete(&models.UserProfile{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UploadImage stores data as the caller's profile image and records the
// returned path on the profile.
func (s *ProfileService) UploadImage(ctx context.Context, callerID uint, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: no file uploaded", ErrValidation)
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(data).String()
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: file must be an image", ErrValidation)
	}

	if _, err := s.GetProfile(ctx, callerID); err != nil {
		return "", err
	}

	key := storage.ImageKey(callerID, filename, data)
	path, err := s.images.Save(ctx, key, contentType, data)
	if err != nil {
		return "", err
	}

	result := s.db.WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("id = ?", callerID).
		Updates(map[string]interface{}{
			"profile_image_path": path,
			"updated_at":         s.now(),
		})
	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected == 0 {
		_ = s.images.Delete(ctx, path)
		return "", ErrNotFound
	}
	return path, nil
}

// DeleteImage removes the caller's stored image and clears the path.
func (s *ProfileService) DeleteImage(ctx context.Context, callerID uint) error {
	profile, err := s.GetProfile(ctx, callerID)
	if err != nil {
		return err
	}
	if profile.ProfileImagePath == nil || *profile.ProfileImagePath == "" {
		return fmt.Errorf("profile image %w", ErrNotFound)
	}

	// A path issued by a different backend cannot be removed here; the
	// reference is still cleared.
	if err := s.images.Delete(ctx, *profile.ProfileImagePath); err != nil && !errors.Is(err, storage.ErrInvalidPath) {
		return err
	}

	return s.db.WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("id = ?", callerID).
		Updates(map[string]interface{}{
			"profile_image_path": nil,
			"updated_at":         s.now(),
		}).Error
}

func validateProfile(profile *models.UserProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is required", ErrValidation)
	}
	first := strings.TrimSpace(profile.FirstName)
	last := strings.TrimSpace(profile.LastName)
	switch {
	case first == "" || last == "":
		return fmt.Errorf("%w: first and last name are required", ErrValidation)
	case len(first) > 50 || len(last) > 50:
		return fmt.Errorf("%w: names must be at most 50 characters", ErrValidation)
	case profile.Bio != nil && len(*profile.Bio) > 500:
		return fmt.Errorf("%w: bio must be at most 500 characters", ErrValidation)
	case profile.Occupation != nil && len(*profile.Occupation) > 100:
		return fmt.Errorf("%w: occupation must be at most 100 characters", ErrValidation)
	}
	return nil
}
