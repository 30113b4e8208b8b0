// internal/config/services.go
package config

import (
	"fmt"
	"strings"
)

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

func (r *RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// Configured reports whether both search credentials are present.
func (a *AlgoliaConfig) Configured() bool {
	return a.AppID != "" && a.WriteKey != ""
}

func (s *ShopifyConfig) Configured() bool {
	return s.StoreDomain != "" && s.AccessToken != ""
}

// StoreHost accepts "shop", "shop.myshopify.com" or a full URL.
func (s *ShopifyConfig) StoreHost() string {
	host := strings.ToLower(strings.TrimSpace(s.StoreDomain))
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimSuffix(host, "/")
	if !strings.Contains(host, ".myshopify.com") {
		host += ".myshopify.com"
	}
	return host
}

func (s *ShopifyConfig) GraphQLEndpoint() string {
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", s.StoreHost(), s.APIVersion)
}

func (a *AWSConfig) S3Configured() bool {
	return a.S3Bucket != "" && a.AccessKeyID != "" && a.SecretAccessKey != ""
}

func (e *EmailConfig) Configured() bool {
	return e.SMTPHost != ""
}
