package services

import (
	"fmt"
	"log"
	"strconv"

	"github.com/tagboard/tagboard/internal/config"
	"github.com/tagboard/tagboard/internal/models"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a health check of the service: database
// connectivity plus the current store sizes.
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
		return result
	}

	if err := sqlDB.Ping(); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		log.Printf("Health check failed - database ping: %v", err)
		return result
	}

	result.Database = "ok"
	result.Details["database_type"] = cfg.DBType
	result.Details["database_name"] = cfg.DBDatabase

	counts := map[string]interface{}{
		"users":      &models.User{},
		"tags":       &models.Tag{},
		"activities": &models.Activity{},
	}
	for name, model := range counts {
		var n int64
		if err := db.Model(model).Count(&n).Error; err != nil {
			result.Status = "unhealthy"
			result.Details[name+"_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Store count failed: %v", err)
			log.Printf("Health check failed - %s count: %v", name, err)
			return result
		}
		result.Details[name] = strconv.FormatInt(n, 10)
	}

	return result
}
