// internal/services/health_service.go
package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/bazarco/backend/internal/database"
)

type HealthStatus struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Uptime      float64   `json:"uptime"`
	Environment string    `json:"environment"`
	DB          string    `json:"db"`
}

type HealthService struct {
	db          *gorm.DB
	environment string
	startedAt   time.Time
}

func NewHealthService(db *gorm.DB, environment string) *HealthService {
	return &HealthService{
		db:          db,
		environment: environment,
		startedAt:   time.Now(),
	}
}

// Check never fails. A store that does not answer is reported as disconnected.
func (s *HealthService) Check() HealthStatus {
	dbState := "connected"
	if err := database.Ping(s.db); err != nil {
		dbState = "disconnected"
	}

	return HealthStatus{
		Status:      "ok",
		Timestamp:   time.Now().UTC(),
		Uptime:      time.Since(s.startedAt).Seconds(),
		Environment: s.environment,
		DB:          dbState,
	}
}
