// internal/services/product_service_test.go
package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bazarco/backend/internal/models"
)

func price(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func strPtr(s string) *string { return &s }

func (s *ServiceTestSuite) TestCreateProductIndexesFullRecord() {
	s.mirror.configured = true
	s.shopify.ok, s.shopify.id = true, "gid://shopify/Product/1"
	lamps := s.seedCategory("Lamps")
	brass := s.seedTag("Brass")

	resp, err := s.products.Create(s.ctx, s.sellerID, &CreateProductRequest{
		Name:        "  Brass lamp ",
		Description: "Warm light",
		Price:       price("49.90"),
		CategoryID:  &lamps.ID,
		TagIDs:      []uuid.UUID{brass.ID, uuid.New()},
	})
	s.Require().NoError(err)

	s.Equal("Brass lamp", resp.Name)
	s.Equal(49.9, resp.Price)
	s.Equal(models.ProductStatusActive, resp.Status)
	s.Equal("Lamps", resp.Category)
	s.Equal([]string{"Brass"}, resp.Tags)
	s.Equal("gid://shopify/Product/1", resp.ShopifyProductID)
	s.Equal(s.sellerID.String(), resp.SellerID)

	s.Require().Len(s.mirror.upserts, 1)
	record := s.mirror.upserts[0]
	s.Equal(resp.ID, record.ObjectID)
	s.Equal("Lamps", record.Category)
	s.Equal([]string{"Brass"}, record.Tags)
	s.Equal("active", record.Status)
	s.Equal(s.sellerID.String(), record.CreatedBy)

	stored, err := s.productRepo.FindByID(s.ctx, uuid.MustParse(resp.ID))
	s.Require().NoError(err)
	s.Len(stored.TagIDs, 2)
}

func (s *ServiceTestSuite) TestCreateProductValidation() {
	tests := []struct {
		name string
		req  CreateProductRequest
	}{
		{"missing price", CreateProductRequest{Name: "Lamp"}},
		{"blank name", CreateProductRequest{Name: "   ", Price: price("1")}},
		{"long name", CreateProductRequest{Name: strings.Repeat("x", 201), Price: price("1")}},
		{"negative price", CreateProductRequest{Name: "Lamp", Price: price("-0.01")}},
		{"long description", CreateProductRequest{Name: "Lamp", Price: price("1"), Description: strings.Repeat("d", 5001)}},
	}

	for _, tt := range tests {
		req := tt.req
		_, err := s.products.Create(s.ctx, s.sellerID, &req)
		var validationErr *ValidationError
		s.True(errors.As(err, &validationErr), tt.name)
	}
	s.Empty(s.mirror.upserts)
}

func (s *ServiceTestSuite) TestCreateProductSurvivesMirrorAndImageFailures() {
	s.mirror.configured = true
	s.mirror.writeErr = errors.New("mirror down")
	s.images.configured = true
	s.images.err = errors.New("s3 down")

	resp, err := s.products.Create(s.ctx, s.sellerID, &CreateProductRequest{
		Name:  "Lamp",
		Price: price("0"),
		Image: []byte("png"),
	})
	s.Require().NoError(err)
	s.Empty(resp.ImageURL)
	s.Equal(1, s.images.uploads)

	_, err = s.productRepo.FindByID(s.ctx, uuid.MustParse(resp.ID))
	s.NoError(err)
}

func (s *ServiceTestSuite) TestCreateProductStoresImageURL() {
	s.images.configured = true

	resp, err := s.products.Create(s.ctx, s.sellerID, &CreateProductRequest{
		Name:  "Lamp",
		Price: price("10"),
		Image: []byte("png"),
	})
	s.Require().NoError(err)
	s.Equal("https://cdn.example.com/products/image.png", resp.ImageURL)
}

func (s *ServiceTestSuite) TestUpdateSendsOnlyChangedFields() {
	s.mirror.configured = true
	lamps := s.seedCategory("Lamps")
	p := s.seedProduct("Lamp", 0, func(p *models.Product) { p.CategoryID = &lamps.ID })

	resp, err := s.products.Update(s.ctx, p.ID, s.sellerID, &UpdateProductRequest{
		Name:  strPtr("Brass lamp"),
		Price: price("25"),
	})
	s.Require().NoError(err)
	s.Equal("Brass lamp", resp.Name)
	s.Equal("Lamps", resp.Category)

	fields := s.mirror.updates[p.ID.String()]
	s.Equal(map[string]interface{}{"name": "Brass lamp"}, map[string]interface{}(fields))
}

func (s *ServiceTestSuite) TestUpdateClearsCategory() {
	s.mirror.configured = true
	lamps := s.seedCategory("Lamps")
	p := s.seedProduct("Lamp", 0, func(p *models.Product) { p.CategoryID = &lamps.ID })

	resp, err := s.products.Update(s.ctx, p.ID, s.sellerID, &UpdateProductRequest{ClearCategory: true})
	s.Require().NoError(err)
	s.Empty(resp.CategoryID)

	fields := s.mirror.updates[p.ID.String()]
	s.Contains(fields, "category")
	s.Nil(fields["category"])
}

func (s *ServiceTestSuite) TestUpdateSurvivesNameLookupFailure() {
	s.mirror.configured = true
	p := s.seedProduct("Lamp", 0, nil)
	categoryID := uuid.New()
	s.Require().NoError(s.db.Migrator().DropTable(&models.Category{}))

	resp, err := s.products.Update(s.ctx, p.ID, s.sellerID, &UpdateProductRequest{
		Name:       strPtr("Brass lamp"),
		CategoryID: &categoryID,
	})
	s.Require().NoError(err)
	s.Equal("Brass lamp", resp.Name)
	s.Equal(categoryID.String(), resp.CategoryID)
	s.Empty(resp.Category)

	fields := s.mirror.updates[p.ID.String()]
	s.Equal(map[string]interface{}{"name": "Brass lamp"}, map[string]interface{}(fields))

	stored, err := s.productRepo.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Brass lamp", stored.Name)
	s.Require().NotNil(stored.CategoryID)
	s.Equal(categoryID, *stored.CategoryID)
}

func (s *ServiceTestSuite) TestUpdateRejectsOtherSeller() {
	p := s.seedProduct("Lamp", 0, nil)

	_, err := s.products.Update(s.ctx, p.ID, uuid.New(), &UpdateProductRequest{Name: strPtr("Mine now")})
	s.ErrorIs(err, models.ErrProductNotFound)

	_, err = s.products.Update(s.ctx, p.ID, s.sellerID, &UpdateProductRequest{Name: strPtr("")})
	var validationErr *ValidationError
	s.True(errors.As(err, &validationErr))
}

func (s *ServiceTestSuite) TestUpdateWithoutChangesSkipsMirror() {
	s.mirror.configured = true
	p := s.seedProduct("Lamp", 0, nil)

	_, err := s.products.Update(s.ctx, p.ID, s.sellerID, &UpdateProductRequest{Name: strPtr("Lamp")})
	s.Require().NoError(err)
	s.Empty(s.mirror.updates)
}

func (s *ServiceTestSuite) TestDeleteRemovesFromMirror() {
	s.mirror.configured = true
	p := s.seedProduct("Lamp", 0, nil)

	s.ErrorIs(s.products.Delete(s.ctx, p.ID, uuid.New()), models.ErrProductNotFound)
	s.Empty(s.mirror.deletes)

	s.Require().NoError(s.products.Delete(s.ctx, p.ID, s.sellerID))
	s.Equal([]string{p.ID.String()}, s.mirror.deletes)

	_, err := s.productRepo.FindByID(s.ctx, p.ID)
	s.ErrorIs(err, models.ErrProductNotFound)
}

func (s *ServiceTestSuite) TestArchiveAndUnarchive() {
	s.mirror.configured = true
	p := s.seedProduct("Lamp", 0, nil)

	resp, err := s.products.Archive(s.ctx, p.ID, s.sellerID)
	s.Require().NoError(err)
	s.Equal(models.ProductStatusArchived, resp.Status)
	s.Equal("archived", s.mirror.updates[p.ID.String()]["status"])

	delete(s.mirror.updates, p.ID.String())
	_, err = s.products.Archive(s.ctx, p.ID, s.sellerID)
	s.Require().NoError(err)
	s.Empty(s.mirror.updates, "archiving twice does not touch the mirror")

	resp, err = s.products.Unarchive(s.ctx, p.ID, s.sellerID)
	s.Require().NoError(err)
	s.Equal(models.ProductStatusActive, resp.Status)
	s.Equal("active", s.mirror.updates[p.ID.String()]["status"])

	_, err = s.products.Archive(s.ctx, p.ID, uuid.New())
	s.ErrorIs(err, models.ErrProductNotFound)
}

func (s *ServiceTestSuite) TestListMine() {
	s.seedProduct("Lamp", time.Hour, nil)
	s.seedProduct("Rug", 2*time.Hour, func(p *models.Product) { p.Status = models.ProductStatusArchived })
	s.seedProduct("Not mine", 0, func(p *models.Product) { p.SellerID = uuid.New() })

	all, err := s.products.ListMine(s.ctx, s.sellerID, nil)
	s.Require().NoError(err)
	s.Equal([]string{"Lamp", "Rug"}, productNamesOf(all))

	archived := models.ProductStatusArchived
	only, err := s.products.ListMine(s.ctx, s.sellerID, &archived)
	s.Require().NoError(err)
	s.Equal([]string{"Rug"}, productNamesOf(only))
}
