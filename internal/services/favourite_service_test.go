// internal/services/favourite_service_test.go
package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/bazarco/backend/internal/models"
)

func (s *ServiceTestSuite) TestFavouriteLifecycle() {
	userID := uuid.New()
	lamp := s.seedProduct("Lamp", time.Hour, nil)
	rug := s.seedProduct("Rug", 2*time.Hour, func(p *models.Product) { p.Status = models.ProductStatusArchived })

	s.Require().NoError(s.favourites.Add(s.ctx, userID, lamp.ID))
	s.Require().NoError(s.favourites.Add(s.ctx, userID, rug.ID))
	s.ErrorIs(s.favourites.Add(s.ctx, userID, lamp.ID), models.ErrFavouriteExists)
	s.ErrorIs(s.favourites.Add(s.ctx, userID, uuid.New()), models.ErrProductNotFound)

	ok, err := s.favourites.Check(s.ctx, userID, lamp.ID)
	s.Require().NoError(err)
	s.True(ok)

	s.Require().NoError(s.favourites.Remove(s.ctx, userID, lamp.ID))
	s.ErrorIs(s.favourites.Remove(s.ctx, userID, lamp.ID), models.ErrFavouriteNotFound)

	ok, err = s.favourites.Check(s.ctx, userID, lamp.ID)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ServiceTestSuite) TestFavouriteListSkipsDeletedProducts() {
	userID := uuid.New()
	lamp := s.seedProduct("Lamp", time.Hour, nil)
	rug := s.seedProduct("Rug", time.Hour, nil)
	vase := s.seedProduct("Vase", time.Hour, nil)

	for _, p := range []*models.Product{lamp, rug, vase} {
		s.Require().NoError(s.favouriteRepo.Add(s.ctx, userID, p.ID))
	}
	// give each favourite a distinct timestamp
	for i, p := range []*models.Product{lamp, rug, vase} {
		s.Require().NoError(s.db.Model(&models.Favourite{}).
			Where("user_id = ? AND product_id = ?", userID, p.ID).
			Update("created_at", s.base.Add(time.Duration(i)*time.Minute)).Error)
	}
	s.Require().NoError(s.db.Delete(&models.Product{}, "id = ?", rug.ID).Error)

	products, err := s.favourites.List(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal([]string{"Vase", "Lamp"}, productNamesOf(products))
}
