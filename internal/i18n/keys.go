// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyInternalError     = "error.internal"
	KeyForbidden         = "error.forbidden"
	KeyRateLimited       = "error.rate_limited"
	KeyRouteNotFound     = "error.route_not_found"
	KeyValidationInvalid = "validation.invalid"
	KeyInvalidID         = "validation.invalid_id"
	KeyAPIRunning        = "api.running"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthSignupSuccess      = "auth.signup_success"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthDevLoginDisabled   = "auth.dev_login_disabled"
	KeyAuthDevUserMissing     = "auth.dev_user_missing"
	KeyAuthResetRequested     = "auth.reset_requested"
	KeyAuthResetSuccess       = "auth.reset_success"
	KeyAuthResetInvalid       = "auth.reset_invalid"
	KeyAuthProfile            = "auth.profile"
	KeyAuthProfileUpdated     = "auth.profile_updated"

	// Products
	KeyProductListed     = "product.listed"
	KeyProductCreated    = "product.created"
	KeyProductUpdated    = "product.updated"
	KeyProductDeleted    = "product.deleted"
	KeyProductArchived   = "product.archived"
	KeyProductUnarchived = "product.unarchived"
	KeyProductNotFound   = "product.not_found"
	KeyProductsFound     = "product.found"
	KeyProductBadImage   = "product.bad_image"

	// Categories and tags
	KeyCategoryListed   = "category.listed"
	KeyCategoryCreated  = "category.created"
	KeyCategoryDeleted  = "category.deleted"
	KeyCategoryNotFound = "category.not_found"
	KeyCategoryInvalid  = "category.invalid"
	KeyTagListed        = "tag.listed"
	KeyTagCreated       = "tag.created"
	KeyTagDeleted       = "tag.deleted"
	KeyTagNotFound      = "tag.not_found"
	KeyTagInvalid       = "tag.invalid"

	// Favourites
	KeyFavouriteListed  = "favourite.listed"
	KeyFavouriteAdded   = "favourite.added"
	KeyFavouriteRemoved = "favourite.removed"
	KeyFavouriteStatus  = "favourite.status"
	KeyFavouriteExists  = "favourite.exists"
	KeyFavouriteMissing = "favourite.not_found"

	// Notify
	KeyNotifySuccess = "notify.success"
	KeyNotifyAlready = "notify.already"
)
