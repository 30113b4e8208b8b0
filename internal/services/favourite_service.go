// internal/services/favourite_service.go
package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/bazarco/backend/internal/repositories"
)

type FavouriteService struct {
	favourites *repositories.FavouriteRepository
	products   *repositories.ProductRepository
}

func NewFavouriteService(favourites *repositories.FavouriteRepository, products *repositories.ProductRepository) *FavouriteService {
	return &FavouriteService{
		favourites: favourites,
		products:   products,
	}
}

// Add favourites an existing product of any status.
func (s *FavouriteService) Add(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.favourites.Add(ctx, userID, productID)
}

func (s *FavouriteService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return s.favourites.Remove(ctx, userID, productID)
}

func (s *FavouriteService) Check(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	return s.favourites.Exists(ctx, userID, productID)
}

// List returns favourited products newest first. Favourites whose product
// has since been deleted are skipped.
func (s *FavouriteService) List(ctx context.Context, userID uuid.UUID) ([]ProductResponse, error) {
	ids, err := s.favourites.ListProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	result := make([]ProductResponse, 0, len(products))
	for _, id := range ids {
		if i, ok := byID[id]; ok {
			result = append(result, toProductResponse(&products[i], nil))
		}
	}
	return result, nil
}
