package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pageza/habyx/backend/internal/authz"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrConflict         = errors.New("already exists")
	ErrUnauthorized     = errors.New("invalid email or password")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
)

// notFound maps gorm's missing-row error onto ErrNotFound and passes every
// other error through.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func forbidden(err error) error {
	if errors.Is(err, authz.ErrNotParty) {
		return ErrForbidden
	}
	return err
}
