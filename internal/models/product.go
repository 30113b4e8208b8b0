// internal/models/product.go
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MaxProductNameLength        = 200
	MaxProductDescriptionLength = 5000
)

var (
	ErrProductNameRequired    = errors.New("name is required")
	ErrProductNameTooLong     = fmt.Errorf("name must be at most %d characters", MaxProductNameLength)
	ErrProductDescTooLong     = fmt.Errorf("description must be at most %d characters", MaxProductDescriptionLength)
	ErrProductNegativePrice   = errors.New("price must be a non-negative number")
	ErrProductInvalidStatus   = errors.New("status must be active or archived")
	ErrProductSellerRequired  = errors.New("seller is required")
	ErrProductSellerImmutable = errors.New("seller cannot be changed")
)

// Product references its category and tags by id only. Deleting a category
// or tag leaves those ids dangling on purpose.
type Product struct {
	BaseModel
	Name             string          `json:"name" gorm:"size:200;not null"`
	Description      string          `json:"description,omitempty" gorm:"type:text"`
	Price            decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	ImageURL         string          `json:"imageUrl,omitempty" gorm:"type:text"`
	CategoryID       *uuid.UUID      `json:"categoryId,omitempty" gorm:"type:uuid;index"`
	TagIDs           []uuid.UUID     `json:"tagIds" gorm:"-"`
	Status           ProductStatus   `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	ShopifyProductID *string         `json:"shopifyProductId,omitempty" gorm:"size:255"`
	SellerID         uuid.UUID       `json:"sellerId" gorm:"type:uuid;not null;index"`
}

// ProductTag is the product/tag join row. No foreign keys, see Product.
type ProductTag struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID     uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (p *Product) Validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return ErrProductNameRequired
	}
	if utf8.RuneCountInString(name) > MaxProductNameLength {
		return ErrProductNameTooLong
	}
	if utf8.RuneCountInString(p.Description) > MaxProductDescriptionLength {
		return ErrProductDescTooLong
	}
	if p.Price.IsNegative() {
		return ErrProductNegativePrice
	}
	if p.Status == "" {
		p.Status = ProductStatusActive
	}
	if !p.Status.Valid() {
		return ErrProductInvalidStatus
	}
	if p.SellerID == uuid.Nil {
		return ErrProductSellerRequired
	}
	return nil
}

// Favourite is the identity-less (user, product) pair.
type Favourite struct {
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `json:"createdAt"`
}

// CanTransitionTo reports whether a product may move from s to next.
// Only active and archived exist, and re-applying the current status is a no-op.
func (s ProductStatus) CanTransitionTo(next ProductStatus) bool {
	return s.Valid() && next.Valid()
}
