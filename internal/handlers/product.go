// internal/handlers/product.go
package handlers

import (
	"context"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bazarco/backend/internal/i18n"
	"github.com/bazarco/backend/internal/models"
	"github.com/bazarco/backend/internal/services"
	"github.com/bazarco/backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	browseService  *services.BrowseService
}

func NewProductHandler(productService *services.ProductService, browseService *services.BrowseService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		browseService:  browseService,
	}
}

// productForm is the raw create/update body. Pointers distinguish absent
// fields from empty ones.
type productForm struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *string          `json:"categoryId"`
	TagIDs      *[]string        `json:"tagIds"`

	image []byte
}

// GET /products/browse
func (h *ProductHandler) Browse(c *gin.Context) {
	req := services.BrowseRequest{
		Query:      c.Query("q"),
		Pagination: utils.GetBrowsePaginationParams(c),
	}

	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			utils.BadRequestResponse(c, utils.T(c, i18n.KeyInvalidID, "category"))
			return
		}
		req.CategoryID = &categoryID
	}

	tagIDs, ok := parseIDList(c, utils.SplitCSV(c.Query("tags")), "tag")
	if !ok {
		return
	}
	req.TagIDs = tagIDs

	result, err := h.browseService.Browse(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SetPaginationHeaders(c, result.Total, utils.PaginationParams{Page: result.Page, Limit: req.Pagination.Limit})
	utils.OKResponse(c, utils.T(c, i18n.KeyProductsFound), gin.H{
		"products":   result.Products,
		"categories": result.Categories,
		"tags":       result.Tags,
		"total":      result.Total,
		"page":       result.Page,
		"nbPages":    result.NbPages,
	})
}

// GET /products
func (h *ProductHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var status *models.ProductStatus
	switch raw := models.ProductStatus(c.Query("status")); raw {
	case models.ProductStatusActive, models.ProductStatusArchived:
		status = &raw
	}

	products, err := h.productService.ListMine(c.Request.Context(), userID, status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OKResponse(c, utils.T(c, i18n.KeyProductListed), gin.H{"products": products})
}

// POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	form, ok := bindProductForm(c)
	if !ok {
		return
	}

	req := &services.CreateProductRequest{
		Price: form.Price,
		Image: form.image,
	}
	if form.Name != nil {
		req.Name = *form.Name
	}
	if form.Description != nil {
		req.Description = *form.Description
	}
	if form.CategoryID != nil && strings.TrimSpace(*form.CategoryID) != "" {
		categoryID, ok := parseID(c, *form.CategoryID, "category")
		if !ok {
			return
		}
		req.CategoryID = &categoryID
	}
	if form.TagIDs != nil {
		if req.TagIDs, ok = parseIDList(c, *form.TagIDs, "tag"); !ok {
			return
		}
	}

	product, err := h.productService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, utils.T(c, i18n.KeyProductCreated), gin.H{"product": product})
}

// PATCH /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "id", "product")
	if !ok {
		return
	}

	form, ok := bindProductForm(c)
	if !ok {
		return
	}

	req := &services.UpdateProductRequest{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Image:       form.image,
	}
	if form.CategoryID != nil {
		if strings.TrimSpace(*form.CategoryID) == "" {
			req.ClearCategory = true
		} else {
			categoryID, ok := parseID(c, *form.CategoryID, "category")
			if !ok {
				return
			}
			req.CategoryID = &categoryID
		}
	}
	if form.TagIDs != nil {
		tagIDs, ok := parseIDList(c, *form.TagIDs, "tag")
		if !ok {
			return
		}
		req.TagIDs = &tagIDs
	}

	product, err := h.productService.Update(c.Request.Context(), productID, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OKResponse(c, utils.T(c, i18n.KeyProductUpdated), gin.H{"product": product})
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "id", "product")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), productID, userID); err != nil {
		respondError(c, err)
		return
	}
	utils.OKResponse(c, utils.T(c, i18n.KeyProductDeleted), nil)
}

// PATCH /products/:id/archive
func (h *ProductHandler) Archive(c *gin.Context) {
	h.changeStatus(c, h.productService.Archive, i18n.KeyProductArchived)
}

// PATCH /products/:id/unarchive
func (h *ProductHandler) Unarchive(c *gin.Context) {
	h.changeStatus(c, h.productService.Unarchive, i18n.KeyProductUnarchived)
}

type statusChange func(ctx context.Context, id, sellerID uuid.UUID) (*services.ProductResponse, error)

func (h *ProductHandler) changeStatus(c *gin.Context, change statusChange, messageKey string) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "id", "product")
	if !ok {
		return
	}

	product, err := change(c.Request.Context(), productID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OKResponse(c, utils.T(c, messageKey), gin.H{"product": product})
}

// bindProductForm accepts either a JSON body or a multipart form with an
// optional "image" file.
func bindProductForm(c *gin.Context) (*productForm, bool) {
	form := &productForm{}

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindJSON(form); err != nil {
			utils.BadRequestResponse(c, utils.T(c, i18n.KeyValidationInvalid, "input"))
			return nil, false
		}
		return form, true
	}

	if value, ok := c.GetPostForm("name"); ok {
		form.Name = &value
	}
	if value, ok := c.GetPostForm("description"); ok {
		form.Description = &value
	}
	if value, ok := c.GetPostForm("price"); ok && strings.TrimSpace(value) != "" {
		price, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			utils.BadRequestResponse(c, utils.T(c, i18n.KeyValidationInvalid, "price"))
			return nil, false
		}
		form.Price = &price
	}
	if value, ok := c.GetPostForm("categoryId"); ok {
		form.CategoryID = &value
	}
	if values, ok := c.GetPostFormArray("tagIds"); ok {
		var tagIDs []string
		for _, value := range values {
			tagIDs = append(tagIDs, utils.SplitCSV(value)...)
		}
		form.TagIDs = &tagIDs
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			utils.BadRequestResponse(c, utils.T(c, i18n.KeyProductBadImage))
			return nil, false
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, services.MaxImageSize+1))
		if err != nil {
			utils.BadRequestResponse(c, utils.T(c, i18n.KeyProductBadImage))
			return nil, false
		}
		if _, err := services.DetectImageType(data); err != nil {
			utils.BadRequestResponse(c, utils.T(c, i18n.KeyProductBadImage))
			return nil, false
		}
		form.image = data
	}

	return form, true
}

func parseID(c *gin.Context, raw, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		utils.BadRequestResponse(c, utils.T(c, i18n.KeyInvalidID, resource))
		return uuid.Nil, false
	}
	return id, true
}

func parseIDList(c *gin.Context, raw []string, resource string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		if strings.TrimSpace(value) == "" {
			continue
		}
		id, ok := parseID(c, value, resource)
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
