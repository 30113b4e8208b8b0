// internal/repositories/catalog_repository.go
package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazarco/backend/internal/models"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name_key ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "name_key = ?", models.NormalizeName(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

// Create returns the existing category when one matches case-insensitively.
// created reports whether a new row was written.
func (r *CategoryRepository) Create(ctx context.Context, name string) (category *models.Category, created bool, err error) {
	name = strings.TrimSpace(name)

	existing, err := r.FindByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, models.ErrCategoryNotFound) {
		return nil, false, err
	}

	category = &models.Category{Name: name}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		// lost a race with a concurrent create
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, findErr := r.FindByName(ctx, name); findErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("database error: %w", err)
	}
	return category, true, nil
}

// Delete removes the category only. Products keep the dangling id.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	if result.Error != nil {
		return fmt.Errorf("database error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrCategoryNotFound
	}
	return nil
}

// NamesByIDs resolves ids to names in one round trip. Unknown ids are absent
// from the map.
func (r *CategoryRepository) NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return namesByIDs(ctx, r.db, &models.Category{}, ids)
}

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("name_key ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return tags, nil
}

func (r *TagRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTagNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &tag, nil
}

func (r *TagRepository) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, "name_key = ?", models.NormalizeName(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTagNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &tag, nil
}

func (r *TagRepository) Create(ctx context.Context, name string) (tag *models.Tag, created bool, err error) {
	name = strings.TrimSpace(name)

	existing, err := r.FindByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, models.ErrTagNotFound) {
		return nil, false, err
	}

	tag = &models.Tag{Name: name}
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, findErr := r.FindByName(ctx, name); findErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("database error: %w", err)
	}
	return tag, true, nil
}

// Delete removes the tag row. Join rows are left in place, the same way a
// deleted category stays referenced.
func (r *TagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Tag{})
	if result.Error != nil {
		return fmt.Errorf("database error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrTagNotFound
	}
	return nil
}

func (r *TagRepository) NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return namesByIDs(ctx, r.db, &models.Tag{}, ids)
}

func namesByIDs(ctx context.Context, db *gorm.DB, model interface{}, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID   uuid.UUID
		Name string
	}
	if err := db.WithContext(ctx).Model(model).Select("id", "name").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}
