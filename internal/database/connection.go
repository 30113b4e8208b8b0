// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bazarco/backend/internal/config"
	"github.com/bazarco/backend/internal/models"
)

// GormConfig is shared by every dialect. Foreign keys are left out of the
// schema because category and tag references may dangle.
func GormConfig(logLevel string) *gorm.Config {
	level := logger.Warn
	switch logLevel {
	case "silent":
		level = logger.Silent
	case "error":
		level = logger.Error
	case "info":
		level = logger.Info
	}

	return &gorm.Config{
		Logger:                                   logger.Default.LogMode(level),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), GormConfig(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"host":     cfg.Host,
		"database": cfg.Database,
	}).Info("Database connection established")
	return db, nil
}

// OpenSQLite opens a single-connection sqlite store. Tests use ":memory:".
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), GormConfig("silent"))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// every connection to ":memory:" is a separate database
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed")
	}
}

// Ping reports whether the store answers.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.UserInvitation{},
		&models.Category{},
		&models.Tag{},
		&models.Product{},
		&models.ProductTag{},
		&models.Favourite{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		createIndexes(db)
	}

	logrus.Info("Database migrations completed")
	return nil
}

func createIndexes(db *gorm.DB) {
	indexes := []string{
		// Browse listing: active products, newest first
		"CREATE INDEX IF NOT EXISTS idx_products_status_created ON products(status, created_at DESC, id DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_seller_created ON products(seller_id, created_at DESC)",

		// Substring search on name/description
		"CREATE EXTENSION IF NOT EXISTS pg_trgm",
		"CREATE INDEX IF NOT EXISTS idx_products_name_trgm ON products USING GIN(LOWER(name) gin_trgm_ops)",
		"CREATE INDEX IF NOT EXISTS idx_products_description_trgm ON products USING GIN(LOWER(description) gin_trgm_ops)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			// Continue with other indexes instead of failing completely
			logrus.WithError(err).WithField("statement", index).Warn("Failed to create index")
		}
	}
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
