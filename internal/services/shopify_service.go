// internal/services/shopify_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/bazarco/backend/internal/config"
)

const shopifyProductCreate = `mutation productCreate($product: ProductCreateInput!) {
  productCreate(product: $product) {
    userErrors { field message }
    product { id }
  }
}`

// ExternalCatalog mirrors new listings into an external storefront.
type ExternalCatalog interface {
	Configured() bool
	CreateProduct(ctx context.Context, title, description string) (string, bool)
}

type ShopifyService struct {
	client      *http.Client
	endpoint    string
	accessToken string
}

type shopifyResponse struct {
	Data *struct {
		ProductCreate *struct {
			Product *struct {
				ID string `json:"id"`
			} `json:"product"`
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
		} `json:"productCreate"`
	} `json:"data"`
	Errors []json.RawMessage `json:"errors"`
}

func NewShopifyService(cfg config.ShopifyConfig) *ShopifyService {
	if !cfg.Configured() {
		return &ShopifyService{}
	}

	return &ShopifyService{
		client:      &http.Client{Timeout: cfg.Timeout},
		endpoint:    cfg.GraphQLEndpoint(),
		accessToken: cfg.AccessToken,
	}
}

func (s *ShopifyService) Configured() bool {
	return s.endpoint != "" && s.accessToken != ""
}

// CreateProduct returns the Shopify product GID. Any failure is logged and
// reported as ok == false.
func (s *ShopifyService) CreateProduct(ctx context.Context, title, description string) (string, bool) {
	if !s.Configured() {
		return "", false
	}

	id, err := s.createProduct(ctx, title, description)
	if err != nil {
		logrus.WithError(err).WithField("title", title).Warn("Shopify product creation failed")
		return "", false
	}
	return id, true
}

func (s *ShopifyService) createProduct(ctx context.Context, title, description string) (string, error) {
	descriptionHTML := ""
	if description != "" {
		descriptionHTML = "<p>" + html.EscapeString(description) + "</p>"
	}

	payload, err := json.Marshal(map[string]interface{}{
		"query": shopifyProductCreate,
		"variables": map[string]interface{}{
			"product": map[string]string{
				"title":           title,
				"descriptionHtml": descriptionHTML,
			},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", s.accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("shopify returned status %d", resp.StatusCode)
	}

	var body shopifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode shopify response: %w", err)
	}
	if len(body.Errors) > 0 {
		return "", fmt.Errorf("shopify graphql errors: %s", body.Errors[0])
	}
	if body.Data == nil || body.Data.ProductCreate == nil {
		return "", fmt.Errorf("shopify response missing productCreate")
	}

	result := body.Data.ProductCreate
	if len(result.UserErrors) > 0 {
		return "", fmt.Errorf("shopify user error: %s", result.UserErrors[0].Message)
	}
	if result.Product == nil || result.Product.ID == "" {
		return "", fmt.Errorf("shopify response missing product id")
	}
	return result.Product.ID, nil
}
