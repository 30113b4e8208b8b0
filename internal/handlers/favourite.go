// internal/handlers/favourite.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bazarco/backend/internal/i18n"
	"github.com/bazarco/backend/internal/services"
	"github.com/bazarco/backend/internal/utils"
)

type FavouriteHandler struct {
	favouriteService *services.FavouriteService
}

func NewFavouriteHandler(favouriteService *services.FavouriteService) *FavouriteHandler {
	return &FavouriteHandler{favouriteService: favouriteService}
}

// GET /favourites
func (h *FavouriteHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	products, err := h.favouriteService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OKResponse(c, utils.T(c, i18n.KeyFavouriteListed), gin.H{"products": products})
}

// GET /favourites/check/:productId
func (h *FavouriteHandler) Check(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId", "product")
	if !ok {
		return
	}

	favourited, err := h.favouriteService.Check(c.Request.Context(), userID, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OKResponse(c, utils.T(c, i18n.KeyFavouriteStatus), gin.H{"favourited": favourited})
}

// POST /favourites/:productId
func (h *FavouriteHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId", "product")
	if !ok {
		return
	}

	if err := h.favouriteService.Add(c.Request.Context(), userID, productID); err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, utils.T(c, i18n.KeyFavouriteAdded), nil)
}

// DELETE /favourites/:productId
func (h *FavouriteHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId", "product")
	if !ok {
		return
	}

	if err := h.favouriteService.Remove(c.Request.Context(), userID, productID); err != nil {
		respondError(c, err)
		return
	}
	utils.OKResponse(c, utils.T(c, i18n.KeyFavouriteRemoved), nil)
}
