// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bazarco/backend/internal/i18n"
	"github.com/bazarco/backend/internal/services"
	"github.com/bazarco/backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type nameRequest struct {
	Name string `json:"name"`
}

// GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OKResponse(c, utils.T(c, i18n.KeyCategoryListed), gin.H{"categories": categories})
}

// POST /categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, utils.T(c, i18n.KeyCategoryInvalid))
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, utils.T(c, i18n.KeyCategoryCreated), gin.H{"category": category})
}

// DELETE /categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "category")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.OKResponse(c, utils.T(c, i18n.KeyCategoryDeleted), nil)
}

// GET /tags
func (h *CatalogHandler) ListTags(c *gin.Context) {
	tags, err := h.catalogService.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OKResponse(c, utils.T(c, i18n.KeyTagListed), gin.H{"tags": tags})
}

// POST /tags
func (h *CatalogHandler) CreateTag(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, utils.T(c, i18n.KeyTagInvalid))
		return
	}

	tag, err := h.catalogService.CreateTag(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, utils.T(c, i18n.KeyTagCreated), gin.H{"tag": tag})
}

// DELETE /tags/:id
func (h *CatalogHandler) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "tag")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteTag(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.OKResponse(c, utils.T(c, i18n.KeyTagDeleted), nil)
}
