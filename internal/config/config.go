// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	Environment string
	LogLevel    string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Redis       RedisConfig
	Algolia     AlgoliaConfig
	AWS         AWSConfig
	Shopify     ShopifyConfig
	Email       EmailConfig
	Frontend    FrontendConfig
	CORS        CORSConfig
	Reminder    ReminderConfig
	DevLogin    DevLoginConfig
	RateLimit   RateLimitConfig
}

type FrontendConfig struct {
	BaseURL string
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	FacetTTL time.Duration
}

type AlgoliaConfig struct {
	AppID     string
	WriteKey  string
	IndexName string
	Timeout   time.Duration
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	CloudFrontURL   string
	ImagePrefix     string
}

type ShopifyConfig struct {
	StoreDomain string
	AccessToken string
	APIVersion  string
	Timeout     time.Duration
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type ReminderConfig struct {
	Enabled  bool
	Schedule string
}

type DevLoginConfig struct {
	Enabled bool
	Secret  string
	Email   string
}

type RateLimitConfig struct {
	RequestsPerMinute     int
	AuthRequestsPerMinute int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "bazarco"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenTTL: getEnvAsDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			FacetTTL: getEnvAsDuration("REDIS_FACET_TTL", 5*time.Minute),
		},
		Algolia: AlgoliaConfig{
			AppID:     getEnv("ALGOLIA_APP_ID", ""),
			WriteKey:  getEnv("ALGOLIA_WRITE_API_KEY", ""),
			IndexName: getEnv("ALGOLIA_INDEX_NAME", "products"),
			Timeout:   getEnvAsDuration("ALGOLIA_TIMEOUT", 15*time.Second),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", ""),
			CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
			ImagePrefix:     getEnv("AWS_IMAGE_PREFIX", "bazarco/products"),
		},
		Shopify: ShopifyConfig{
			StoreDomain: getEnv("SHOPIFY_STORE_DOMAIN", ""),
			AccessToken: getEnv("SHOPIFY_ADMIN_ACCESS_TOKEN", ""),
			APIVersion:  getEnv("SHOPIFY_API_VERSION", "2024-01"),
			Timeout:     getEnvAsDuration("SHOPIFY_TIMEOUT", 15*time.Second),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("FROM_EMAIL", "noreply@bazarco.com"),
			FromName:     getEnv("FROM_NAME", "BazarCo"),
		},
		Frontend: FrontendConfig{
			BaseURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		Reminder: ReminderConfig{
			Enabled:  getEnvAsBool("REMINDER_CRON_ENABLED", false),
			Schedule: getEnv("REMINDER_CRON_SCHEDULE", "0 9 * * *"),
		},
		DevLogin: DevLoginConfig{
			Enabled: getEnvAsBool("ALLOW_DEV_LOGIN", false),
			Secret:  getEnv("DEV_LOGIN_SECRET", ""),
			Email:   getEnv("DEV_LOGIN_EMAIL", "dev@bazarco.local"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute:     getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
			AuthRequestsPerMinute: getEnvAsInt("AUTH_RATE_LIMIT_PER_MINUTE", 20),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == defaultJWTSecret && c.IsProduction() {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Database.Password == "" && c.IsProduction() {
		return fmt.Errorf("database password is required in production")
	}

	if c.DevLogin.Enabled && c.DevLogin.Secret == "" {
		return fmt.Errorf("DEV_LOGIN_SECRET is required when ALLOW_DEV_LOGIN is set")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
