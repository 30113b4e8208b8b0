// internal/services/browse_service.go
package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bazarco/backend/internal/models"
	"github.com/bazarco/backend/internal/repositories"
	"github.com/bazarco/backend/internal/search"
	"github.com/bazarco/backend/internal/utils"
)

// SourceSelection is where a browse request is served from.
type SourceSelection int

const (
	// SourceStore reads the catalog store directly.
	SourceStore SourceSelection = iota
	// SourceSearch runs a keyword query against the search mirror.
	SourceSearch
)

func (s SourceSelection) String() string {
	if s == SourceSearch {
		return "search"
	}
	return "store"
}

// SelectSource uses the mirror only for a keyword query with a configured
// mirror. Plain listings always come from the store.
func SelectSource(query string, mirrorConfigured bool) SourceSelection {
	if strings.TrimSpace(query) != "" && mirrorConfigured {
		return SourceSearch
	}
	return SourceStore
}

type BrowseRequest struct {
	Query      string
	CategoryID *uuid.UUID
	TagIDs     []uuid.UUID
	Pagination utils.PaginationParams
}

type BrowseResult struct {
	Products   []ProductResponse `json:"products"`
	Categories []CatalogItem     `json:"categories"`
	Tags       []CatalogItem     `json:"tags"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	NbPages    int               `json:"nbPages"`
	Source     SourceSelection   `json:"-"`
}

type BrowseService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
	tags       *repositories.TagRepository
	catalog    *CatalogService
	mirror     search.Mirror
}

func NewBrowseService(
	products *repositories.ProductRepository,
	categories *repositories.CategoryRepository,
	tags *repositories.TagRepository,
	catalog *CatalogService,
	mirror search.Mirror,
) *BrowseService {
	return &BrowseService{
		products:   products,
		categories: categories,
		tags:       tags,
		catalog:    catalog,
		mirror:     mirror,
	}
}

// Browse lists active products for any signed-in caller.
//
// Mirror failures degrade to an empty page. Store failures, including the
// facet lists and name lookups, are returned to the caller.
func (s *BrowseService) Browse(ctx context.Context, req BrowseRequest) (*BrowseResult, error) {
	req.Query = strings.TrimSpace(req.Query)
	req.Pagination = utils.NormalizeParams(req.Pagination)

	categories, tags, err := s.catalog.Facets(ctx)
	if err != nil {
		return nil, err
	}

	source := SelectSource(req.Query, s.mirror.Configured())

	var result *BrowseResult
	if source == SourceSearch {
		result, err = s.searchPath(ctx, req)
	} else {
		result, err = s.storePath(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	result.Categories = categories
	result.Tags = tags
	result.Source = source
	return result, nil
}

func (s *BrowseService) searchPath(ctx context.Context, req BrowseRequest) (*BrowseResult, error) {
	query := search.Query{
		Text:        req.Query,
		Page:        req.Pagination.Page,
		HitsPerPage: req.Pagination.Limit,
	}

	if req.CategoryID != nil {
		names, err := s.categories.NamesByIDs(ctx, []uuid.UUID{*req.CategoryID})
		if err != nil {
			return nil, err
		}
		// unknown category: no category clause
		query.Category = names[*req.CategoryID]
	}
	if len(req.TagIDs) > 0 {
		names, err := s.tags.NamesByIDs(ctx, req.TagIDs)
		if err != nil {
			return nil, err
		}
		for _, id := range req.TagIDs {
			if name, ok := names[id]; ok {
				query.Tags = append(query.Tags, name)
			}
		}
	}

	res, err := s.mirror.Search(ctx, query)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"query": req.Query,
			"page":  req.Pagination.Page,
		}).WithError(err).Warn("Search mirror query failed, returning no results")
		return emptyResult(req.Pagination.Page), nil
	}

	products := make([]ProductResponse, 0, len(res.Hits))
	for _, hit := range res.Hits {
		products = append(products, hitToProductResponse(hit))
	}

	total := int64(res.NbHits)
	return &BrowseResult{
		Products: products,
		Total:    total,
		Page:     res.Page,
		NbPages:  utils.TotalPages(total, req.Pagination.Limit),
	}, nil
}

func (s *BrowseService) storePath(ctx context.Context, req BrowseRequest) (*BrowseResult, error) {
	docs, total, err := s.products.FindActiveForBrowse(ctx, repositories.BrowseFilter{
		Query:      req.Query,
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
		Pagination: req.Pagination,
	})
	if err != nil {
		return nil, err
	}

	names, err := resolveNames(ctx, s.categories, s.tags, docs...)
	if err != nil {
		return nil, err
	}

	products := make([]ProductResponse, 0, len(docs))
	for i := range docs {
		resp := toProductResponse(&docs[i], names)
		products = append(products, resp)
	}

	return &BrowseResult{
		Products: products,
		Total:    total,
		Page:     req.Pagination.Page,
		NbPages:  utils.TotalPages(total, req.Pagination.Limit),
	}, nil
}

func emptyResult(page int) *BrowseResult {
	return &BrowseResult{
		Products: []ProductResponse{},
		Page:     page,
	}
}

// resolveNames looks up every category and tag referenced by the products
// with one query per table. Dangling ids are simply missing from the maps.
func resolveNames(ctx context.Context, categories *repositories.CategoryRepository, tags *repositories.TagRepository, products ...models.Product) (*productNames, error) {
	var categoryIDs, tagIDs []uuid.UUID
	for _, p := range products {
		if p.CategoryID != nil {
			categoryIDs = append(categoryIDs, *p.CategoryID)
		}
		tagIDs = append(tagIDs, p.TagIDs...)
	}

	categoryNames, err := categories.NamesByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}
	tagNames, err := tags.NamesByIDs(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	return &productNames{categories: categoryNames, tags: tagNames}, nil
}
