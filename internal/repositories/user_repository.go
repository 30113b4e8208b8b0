// internal/repositories/user_repository.go
package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazarco/backend/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = normalizeEmail(user.Email)
	if user.Role == "" {
		user.Role = models.UserRoleBuyer
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrEmailTaken
		}
		return fmt.Errorf("database error: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = ?", normalizeEmail(email))
}

// FindByResetToken matches the hashed token and requires it to be unexpired.
func (r *UserRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	return r.findOne(ctx, "reset_password_token = ? AND reset_password_expires > ?", tokenHash, now)
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) (*models.User, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return nil, fmt.Errorf("database error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, models.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepository) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expires time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"reset_password_token":   tokenHash,
		"reset_password_expires": expires,
	}).Error
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	return nil
}

// ResetPassword stores the new hash and clears the reset token.
func (r *UserRepository) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_hash":          passwordHash,
		"reset_password_token":   nil,
		"reset_password_expires": nil,
	}).Error
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	return nil
}

type InvitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// Create adds the email to the notify list. created is false when the
// address was already there.
func (r *InvitationRepository) Create(ctx context.Context, email string) (created bool, err error) {
	invitation := &models.UserInvitation{Email: normalizeEmail(email)}
	if err := r.db.WithContext(ctx).Create(invitation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, fmt.Errorf("database error: %w", err)
	}
	return true, nil
}

func (r *InvitationRepository) Exists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserInvitation{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}

func (r *InvitationRepository) ListEmails(ctx context.Context) ([]string, error) {
	var emails []string
	if err := r.db.WithContext(ctx).Model(&models.UserInvitation{}).Order("created_at ASC").Pluck("email", &emails).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return emails, nil
}
