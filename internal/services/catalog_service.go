// internal/services/catalog_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/bazarco/backend/internal/cache"
	"github.com/bazarco/backend/internal/models"
	"github.com/bazarco/backend/internal/repositories"
)

var (
	ErrInvalidCategoryName = errors.New("name is required (max 80 characters)")
	ErrInvalidTagName      = errors.New("name is required (max 60 characters)")
)

// CatalogService manages categories and tags. Both lists are read through
// the facet cache and invalidated on every create or delete.
type CatalogService struct {
	categories *repositories.CategoryRepository
	tags       *repositories.TagRepository
	cache      cache.FacetCache
}

func NewCatalogService(categories *repositories.CategoryRepository, tags *repositories.TagRepository, facetCache cache.FacetCache) *CatalogService {
	if facetCache == nil {
		facetCache = cache.NoopCache{}
	}
	return &CatalogService{
		categories: categories,
		tags:       tags,
		cache:      facetCache,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]CatalogItem, error) {
	var items []CatalogItem
	if s.cache.Get(ctx, cache.KeyCategories, &items) {
		return items, nil
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	items = categoryItems(categories)
	s.cache.Set(ctx, cache.KeyCategories, items)
	return items, nil
}

func (s *CatalogService) ListTags(ctx context.Context) ([]CatalogItem, error) {
	var items []CatalogItem
	if s.cache.Get(ctx, cache.KeyTags, &items) {
		return items, nil
	}

	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}
	items = tagItems(tags)
	s.cache.Set(ctx, cache.KeyTags, items)
	return items, nil
}

// Facets returns every category and every tag.
func (s *CatalogService) Facets(ctx context.Context) (categories, tags []CatalogItem, err error) {
	if categories, err = s.ListCategories(ctx); err != nil {
		return nil, nil, err
	}
	if tags, err = s.ListTags(ctx); err != nil {
		return nil, nil, err
	}
	return categories, tags, nil
}

// CreateCategory returns the existing category when the name matches one
// case-insensitively.
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*CatalogItem, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > models.MaxCategoryNameLength {
		return nil, invalid(ErrInvalidCategoryName)
	}

	category, created, err := s.categories.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	if created {
		s.cache.Delete(ctx, cache.KeyCategories)
	}
	return &CatalogItem{ID: category.ID.String(), Name: category.Name}, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, cache.KeyCategories)
	return nil
}

func (s *CatalogService) CreateTag(ctx context.Context, name string) (*CatalogItem, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > models.MaxTagNameLength {
		return nil, invalid(ErrInvalidTagName)
	}

	tag, created, err := s.tags.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	if created {
		s.cache.Delete(ctx, cache.KeyTags)
	}
	return &CatalogItem{ID: tag.ID.String(), Name: tag.Name}, nil
}

func (s *CatalogService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	if err := s.tags.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, cache.KeyTags)
	return nil
}
