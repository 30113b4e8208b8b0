// internal/search/mirror.go
package search

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("search mirror not configured")

// Record is the flattened projection of a product held by the mirror.
// Category and tags are stored by name, keyed by the product id.
type Record struct {
	ObjectID         string   `json:"objectID"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Price            float64  `json:"price"`
	ImageURL         string   `json:"imageUrl,omitempty"`
	Category         string   `json:"category,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	CreatedBy        string   `json:"createdBy"`
	ShopifyProductID string   `json:"shopifyProductId,omitempty"`
	Status           string   `json:"status"`
}

// Hit is a search result as returned by the mirror.
type Hit struct {
	ObjectID    string   `json:"objectID"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       float64  `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	Category    *string  `json:"category"`
	Tags        []string `json:"tags"`
	CreatedBy   string   `json:"createdBy"`
}

type Query struct {
	Text        string
	Category    string
	Tags        []string
	Page        int
	HitsPerPage int
}

type Result struct {
	Hits    []Hit
	NbHits  int
	Page    int
	NbPages int
}

// Fields is a partial record update. A nil value clears the attribute.
type Fields map[string]interface{}

type Mirror interface {
	Configured() bool
	Search(ctx context.Context, query Query) (Result, error)
	Upsert(ctx context.Context, record Record) error
	PartialUpdate(ctx context.Context, objectID string, fields Fields) error
	Delete(ctx context.Context, objectID string) error
}
