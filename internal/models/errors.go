// internal/models/errors.go
package models

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTagNotFound         = errors.New("tag not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrFavouriteExists     = errors.New("already in favourites")
	ErrFavouriteNotFound   = errors.New("favourite not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidStatusChange = errors.New("invalid status transition")
)
