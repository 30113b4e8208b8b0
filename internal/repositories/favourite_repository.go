// internal/repositories/favourite_repository.go
package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazarco/backend/internal/models"
)

type FavouriteRepository struct {
	db *gorm.DB
}

func NewFavouriteRepository(db *gorm.DB) *FavouriteRepository {
	return &FavouriteRepository{db: db}
}

// Add relies on the composite key to reject a second favourite of the same pair.
func (r *FavouriteRepository) Add(ctx context.Context, userID, productID uuid.UUID) error {
	favourite := &models.Favourite{UserID: userID, ProductID: productID}
	if err := r.db.WithContext(ctx).Create(favourite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrFavouriteExists
		}
		return fmt.Errorf("database error: %w", err)
	}
	return nil
}

func (r *FavouriteRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favourite{})
	if result.Error != nil {
		return fmt.Errorf("database error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrFavouriteNotFound
	}
	return nil
}

func (r *FavouriteRepository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favourite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}

// ListProductIDs returns the user's favourited product ids, newest first.
func (r *FavouriteRepository) ListProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.Favourite{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return ids, nil
}
