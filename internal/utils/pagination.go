// internal/utils/pagination.go
package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultBrowseLimit = 24
	MinBrowseLimit     = 12
	MaxBrowseLimit     = 48

	// MaxBrowsePage keeps Page*Limit inside int. Any page at or past it is
	// beyond the end of every catalog.
	MaxBrowsePage = math.MaxInt / MaxBrowseLimit
)

// PaginationParams uses a zero-based page index.
type PaginationParams struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// GetBrowsePaginationParams reads page and limit from the query string.
// Unparseable values fall back to the defaults, page is clamped to
// [0, MaxBrowsePage] and limit to [MinBrowseLimit, MaxBrowseLimit].
func GetBrowsePaginationParams(c *gin.Context) PaginationParams {
	return NormalizePagination(c.Query("page"), c.Query("limit"))
}

func NormalizePagination(rawPage, rawLimit string) PaginationParams {
	page, err := strconv.Atoi(strings.TrimSpace(rawPage))
	switch {
	case errors.Is(err, strconv.ErrRange) && page > 0:
		page = MaxBrowsePage
	case err != nil || page < 0:
		page = 0
	case page > MaxBrowsePage:
		page = MaxBrowsePage
	}

	limit, err := strconv.Atoi(strings.TrimSpace(rawLimit))
	if err != nil || limit == 0 {
		limit = DefaultBrowseLimit
	}

	return PaginationParams{
		Page:  page,
		Limit: ClampLimit(limit),
	}
}

func ClampLimit(limit int) int {
	if limit < MinBrowseLimit {
		return MinBrowseLimit
	}
	if limit > MaxBrowseLimit {
		return MaxBrowseLimit
	}
	return limit
}

func (p PaginationParams) Offset() int {
	return p.Page * p.Limit
}

func ApplyPagination(db *gorm.DB, params PaginationParams) *gorm.DB {
	return db.Offset(params.Offset()).Limit(params.Limit)
}

// TotalPages is ceil(total / limit), and 0 when either is 0.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// SplitCSV splits a comma separated list, trimming entries and dropping
// empty ones.
func SplitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func SetPaginationHeaders(c *gin.Context, total int64, params PaginationParams) {
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.Header("X-Page", strconv.Itoa(params.Page))
	c.Header("X-Per-Page", strconv.Itoa(params.Limit))
	c.Header("X-Total-Pages", strconv.Itoa(TotalPages(total, params.Limit)))
}

// NormalizeParams applies the same clamps to already parsed values.
func NormalizeParams(p PaginationParams) PaginationParams {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Page > MaxBrowsePage {
		p.Page = MaxBrowsePage
	}
	if p.Limit == 0 {
		p.Limit = DefaultBrowseLimit
	}
	p.Limit = ClampLimit(p.Limit)
	return p
}
