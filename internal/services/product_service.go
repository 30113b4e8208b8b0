// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/bazarco/backend/internal/models"
	"github.com/bazarco/backend/internal/repositories"
	"github.com/bazarco/backend/internal/search"
)

var ErrPriceRequired = errors.New("valid price is required")

type ProductService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
	tags       *repositories.TagRepository
	images     ImageStore
	shopify    ExternalCatalog
	projector  *search.Projector
}

type CreateProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *uuid.UUID       `json:"-"`
	TagIDs      []uuid.UUID      `json:"-"`
	Image       []byte           `json:"-"`
}

// UpdateProductRequest carries only the fields the caller sent. A set
// ClearCategory removes the category reference.
type UpdateProductRequest struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	CategoryID    *uuid.UUID
	ClearCategory bool
	TagIDs        *[]uuid.UUID
	Image         []byte
}

func NewProductService(
	products *repositories.ProductRepository,
	categories *repositories.CategoryRepository,
	tags *repositories.TagRepository,
	images ImageStore,
	shopify ExternalCatalog,
	projector *search.Projector,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		tags:       tags,
		images:     images,
		shopify:    shopify,
		projector:  projector,
	}
}

// ListMine lists the seller's own products, optionally filtered by status.
func (s *ProductService) ListMine(ctx context.Context, sellerID uuid.UUID, status *models.ProductStatus) ([]ProductResponse, error) {
	products, err := s.products.FindBySeller(ctx, sellerID, status)
	if err != nil {
		return nil, err
	}

	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, toProductResponse(&products[i], nil))
	}
	return result, nil
}

func (s *ProductService) Create(ctx context.Context, sellerID uuid.UUID, req *CreateProductRequest) (*ProductResponse, error) {
	if req.Price == nil {
		return nil, invalid(ErrPriceRequired)
	}

	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       *req.Price,
		CategoryID:  req.CategoryID,
		TagIDs:      req.TagIDs,
		Status:      models.ProductStatusActive,
		SellerID:    sellerID,
	}
	if err := product.Validate(); err != nil {
		return nil, invalid(err)
	}

	names, err := resolveNames(ctx, s.categories, s.tags, *product)
	if err != nil {
		return nil, err
	}

	product.ImageURL = s.uploadImage(ctx, req.Image)

	if s.shopify != nil {
		if id, ok := s.shopify.CreateProduct(ctx, product.Name, product.Description); ok {
			product.ShopifyProductID = &id
		}
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.projector.IndexProduct(ctx, toRecord(product, names))

	resp := toProductResponse(product, names)
	return &resp, nil
}

// Update applies a partial change to a product owned by sellerID. Only the
// fields that changed are sent to the search mirror.
func (s *ProductService) Update(ctx context.Context, id, sellerID uuid.UUID, req *UpdateProductRequest) (*ProductResponse, error) {
	before, err := s.ownedProduct(ctx, id, sellerID)
	if err != nil {
		return nil, err
	}

	update := repositories.ProductUpdate{
		CategoryID:    req.CategoryID,
		ClearCategory: req.ClearCategory,
		TagIDs:        req.TagIDs,
		Price:         req.Price,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		update.Name = &name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		update.Description = &description
	}
	if err := validateUpdate(before, update); err != nil {
		return nil, err
	}
	if url := s.uploadImage(ctx, req.Image); url != "" {
		update.ImageURL = &url
	}

	beforeNames, err := resolveNames(ctx, s.categories, s.tags, *before)
	if err != nil {
		return nil, err
	}

	after := before
	if !update.IsEmpty() {
		if after, err = s.products.Update(ctx, id, sellerID, update); err != nil {
			return nil, err
		}
	}

	// The write is committed; a name lookup failure only narrows what the
	// mirror and the response can show.
	afterNames, err := resolveNames(ctx, s.categories, s.tags, *after)
	if err != nil {
		logrus.WithError(err).WithField("product_id", after.ID).Warn("Resolving names after product update failed")
		afterNames = nil
	}

	fields := search.Diff(toRecord(before, beforeNames), toRecord(after, afterNames))
	if afterNames == nil {
		delete(fields, "category")
		delete(fields, "tags")
	}
	s.projector.UpdateProduct(ctx, after.ID.String(), fields)

	resp := toProductResponse(after, afterNames)
	return &resp, nil
}

func (s *ProductService) Delete(ctx context.Context, id, sellerID uuid.UUID) error {
	if err := s.products.Delete(ctx, id, sellerID); err != nil {
		return err
	}
	s.projector.RemoveProduct(ctx, id.String())
	return nil
}

func (s *ProductService) Archive(ctx context.Context, id, sellerID uuid.UUID) (*ProductResponse, error) {
	return s.setStatus(ctx, id, sellerID, models.ProductStatusArchived)
}

func (s *ProductService) Unarchive(ctx context.Context, id, sellerID uuid.UUID) (*ProductResponse, error) {
	return s.setStatus(ctx, id, sellerID, models.ProductStatusActive)
}

// setStatus is idempotent. The mirror is only written when the status
// actually changes.
func (s *ProductService) setStatus(ctx context.Context, id, sellerID uuid.UUID, status models.ProductStatus) (*ProductResponse, error) {
	before, err := s.ownedProduct(ctx, id, sellerID)
	if err != nil {
		return nil, err
	}
	if !before.Status.CanTransitionTo(status) {
		return nil, models.ErrInvalidStatusChange
	}

	product := before
	if before.Status != status {
		product, err = s.products.Update(ctx, id, sellerID, repositories.ProductUpdate{Status: &status})
		if err != nil {
			return nil, err
		}
		s.projector.UpdateProduct(ctx, id.String(), search.Fields{"status": string(status)})
	}

	resp := toProductResponse(product, nil)
	return &resp, nil
}

// ownedProduct hides other sellers' products behind ErrProductNotFound.
func (s *ProductService) ownedProduct(ctx context.Context, id, sellerID uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, models.ErrProductNotFound
	}
	return product, nil
}

// uploadImage returns the hosted URL, or "" when there is no image, no
// image store, or the upload failed.
func (s *ProductService) uploadImage(ctx context.Context, data []byte) string {
	if len(data) == 0 || s.images == nil || !s.images.Configured() {
		return ""
	}

	url, err := s.images.UploadImage(ctx, data)
	if err != nil {
		logrus.WithError(err).Warn("Product image upload failed, continuing without image")
		return ""
	}
	return url
}

func validateUpdate(current *models.Product, update repositories.ProductUpdate) error {
	candidate := *current
	if update.Name != nil {
		candidate.Name = *update.Name
	}
	if update.Description != nil {
		candidate.Description = *update.Description
	}
	if update.Price != nil {
		candidate.Price = *update.Price
	}
	if err := candidate.Validate(); err != nil {
		return invalid(err)
	}
	return nil
}
