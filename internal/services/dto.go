// internal/services/dto.go
package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/bazarco/backend/internal/models"
	"github.com/bazarco/backend/internal/search"
)

// ValidationError is a rejected input. Its message is safe to show to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(err error) error {
	return &ValidationError{Message: err.Error()}
}

type CatalogItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProductResponse struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	Description      string               `json:"description,omitempty"`
	Price            float64              `json:"price"`
	ImageURL         string               `json:"imageUrl,omitempty"`
	Status           models.ProductStatus `json:"status"`
	ShopifyProductID string               `json:"shopifyProductId,omitempty"`
	SellerID         string               `json:"sellerId"`
	CategoryID       string               `json:"categoryId,omitempty"`
	TagIDs           []string             `json:"tagIds,omitempty"`
	Category         string               `json:"category,omitempty"`
	Tags             []string             `json:"tags,omitempty"`
	CreatedAt        *time.Time           `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time           `json:"updatedAt,omitempty"`
}

// productNames holds resolved display names for a set of products.
type productNames struct {
	categories map[uuid.UUID]string
	tags       map[uuid.UUID]string
}

func toProductResponse(p *models.Product, names *productNames) ProductResponse {
	createdAt, updatedAt := p.CreatedAt, p.UpdatedAt
	resp := ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		ImageURL:    p.ImageURL,
		Status:      p.Status,
		SellerID:    p.SellerID.String(),
		TagIDs:      make([]string, 0, len(p.TagIDs)),
		CreatedAt:   &createdAt,
		UpdatedAt:   &updatedAt,
	}
	if p.ShopifyProductID != nil {
		resp.ShopifyProductID = *p.ShopifyProductID
	}
	if p.CategoryID != nil {
		resp.CategoryID = p.CategoryID.String()
	}
	for _, id := range p.TagIDs {
		resp.TagIDs = append(resp.TagIDs, id.String())
	}

	if names != nil {
		if p.CategoryID != nil {
			resp.Category = names.categories[*p.CategoryID]
		}
		resp.Tags = names.tagNames(p.TagIDs)
	}
	return resp
}

// tagNames keeps the product's tag order and drops ids that no longer resolve.
func (n *productNames) tagNames(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := n.tags[id]; ok {
			out = append(out, name)
		}
	}
	return out
}

// toRecord builds the mirror projection of a product.
func toRecord(p *models.Product, names *productNames) search.Record {
	resp := toProductResponse(p, names)
	record := search.Record{
		ObjectID:         resp.ID,
		Name:             resp.Name,
		Description:      resp.Description,
		Price:            resp.Price,
		ImageURL:         resp.ImageURL,
		Category:         resp.Category,
		CreatedBy:        resp.SellerID,
		ShopifyProductID: resp.ShopifyProductID,
		Status:           string(resp.Status),
	}
	if len(resp.Tags) > 0 {
		record.Tags = resp.Tags
	}
	return record
}

// hitToProductResponse maps a mirror hit. The mirror is only queried for
// active records, so status is always active.
func hitToProductResponse(hit search.Hit) ProductResponse {
	resp := ProductResponse{
		ID:       hit.ObjectID,
		Name:     hit.Name,
		Price:    hit.Price,
		SellerID: hit.CreatedBy,
		Status:   models.ProductStatusActive,
		Tags:     hit.Tags,
	}
	if hit.Description != nil {
		resp.Description = *hit.Description
	}
	if hit.ImageURL != nil {
		resp.ImageURL = *hit.ImageURL
	}
	if hit.Category != nil {
		resp.Category = *hit.Category
	}
	return resp
}

func categoryItems(categories []models.Category) []CatalogItem {
	items := make([]CatalogItem, 0, len(categories))
	for _, c := range categories {
		items = append(items, CatalogItem{ID: c.ID.String(), Name: c.Name})
	}
	return items
}

func tagItems(tags []models.Tag) []CatalogItem {
	items := make([]CatalogItem, 0, len(tags))
	for _, t := range tags {
		items = append(items, CatalogItem{ID: t.ID.String(), Name: t.Name})
	}
	return items
}

// ParseIDs parses each entry as a UUID.
func ParseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
