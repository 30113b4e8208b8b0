// internal/repositories/product_repository.go
package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bazarco/backend/internal/database"
	"github.com/bazarco/backend/internal/models"
	"github.com/bazarco/backend/internal/utils"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// BrowseFilter selects active products for the store-backed listing.
type BrowseFilter struct {
	Query      string
	CategoryID *uuid.UUID
	TagIDs     []uuid.UUID
	Pagination utils.PaginationParams
}

// ProductUpdate carries the fields a seller edit may change. Nil means
// untouched. ClearCategory removes the category reference.
type ProductUpdate struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	ImageURL      *string
	CategoryID    *uuid.UUID
	ClearCategory bool
	TagIDs        *[]uuid.UUID
	Status        *models.ProductStatus
}

func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil && u.ImageURL == nil &&
		u.CategoryID == nil && !u.ClearCategory && u.TagIDs == nil && u.Status == nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.TagIDs = dedupeIDs(product.TagIDs)

	return database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		return replaceTags(tx, product.ID, product.TagIDs)
	})
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	products := []models.Product{product}
	if err := r.loadTagIDs(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

// FindByIDs returns the products that still exist, in no particular order.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if err := r.loadTagIDs(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindBySeller lists a seller's products newest first, optionally by status.
func (r *ProductRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, status *models.ProductStatus) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Where("seller_id = ?", sellerID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Order("id DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if err := r.loadTagIDs(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// Update applies the change to a product owned by sellerID and returns the
// stored row. A product owned by someone else is reported as not found.
func (r *ProductRepository) Update(ctx context.Context, id, sellerID uuid.UUID, update ProductUpdate) (*models.Product, error) {
	err := database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("id = ? AND seller_id = ?", id, sellerID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrProductNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		updates := map[string]interface{}{}
		if update.Name != nil {
			updates["name"] = *update.Name
		}
		if update.Description != nil {
			updates["description"] = *update.Description
		}
		if update.Price != nil {
			updates["price"] = *update.Price
		}
		if update.ImageURL != nil {
			updates["image_url"] = *update.ImageURL
		}
		if update.ClearCategory {
			updates["category_id"] = nil
		} else if update.CategoryID != nil {
			updates["category_id"] = *update.CategoryID
		}
		if update.Status != nil {
			updates["status"] = *update.Status
		}
		if len(updates) == 0 && update.TagIDs != nil {
			updates["updated_at"] = time.Now()
		}

		if len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return fmt.Errorf("database error: %w", err)
			}
		}
		if update.TagIDs != nil {
			if err := replaceTags(tx, product.ID, dedupeIDs(*update.TagIDs)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func (r *ProductRepository) Delete(ctx context.Context, id, sellerID uuid.UUID) error {
	return database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND seller_id = ?", id, sellerID).Delete(&models.Product{})
		if result.Error != nil {
			return fmt.Errorf("database error: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return models.ErrProductNotFound
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductTag{}).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Favourite{}).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		return nil
	})
}

// FindActiveForBrowse returns one page of active products matching the
// filter, newest first with id as tie-breaker, plus the total match count.
func (r *ProductRepository) FindActiveForBrowse(ctx context.Context, filter BrowseFilter) ([]models.Product, int64, error) {
	db := r.db.WithContext(ctx)
	query := db.Model(&models.Product{}).Where("status = ?", models.ProductStatusActive)

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if len(filter.TagIDs) > 0 {
		tagged := db.Model(&models.ProductTag{}).Select("product_id").Where("tag_id IN ?", filter.TagIDs)
		query = query.Where("id IN (?)", tagged)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
		query = query.Where(
			`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`,
			pattern, pattern,
		)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	var products []models.Product
	if total > 0 {
		err := utils.ApplyPagination(query.Order("created_at DESC").Order("id DESC"), filter.Pagination).
			Find(&products).Error
		if err != nil {
			return nil, 0, fmt.Errorf("database error: %w", err)
		}
	}
	if err := r.loadTagIDs(ctx, products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// loadTagIDs fills TagIDs for all products with one query.
func (r *ProductRepository) loadTagIDs(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(products))
	for i := range products {
		ids[i] = products[i].ID
		products[i].TagIDs = []uuid.UUID{}
	}

	var links []models.ProductTag
	if err := r.db.WithContext(ctx).Where("product_id IN ?", ids).Order("tag_id").Find(&links).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	byProduct := make(map[uuid.UUID][]uuid.UUID, len(products))
	for _, link := range links {
		byProduct[link.ProductID] = append(byProduct[link.ProductID], link.TagID)
	}
	for i := range products {
		if tagIDs, ok := byProduct[products[i].ID]; ok {
			products[i].TagIDs = tagIDs
		}
	}
	return nil
}

func replaceTags(tx *gorm.DB, productID uuid.UUID, tagIDs []uuid.UUID) error {
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductTag{}).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if len(tagIDs) == 0 {
		return nil
	}

	links := make([]models.ProductTag, len(tagIDs))
	for i, tagID := range tagIDs {
		links[i] = models.ProductTag{ProductID: productID, TagID: tagID}
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	return nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
