package services

import (
	"fmt"
	"log"
	"os"

	"github.com/healthwallet/api/internal/config"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Storage      string            `json:"storage"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check upload directory
	if info, err := os.Stat(cfg.UploadDir); err != nil || !info.IsDir() {
		result.Status = "unhealthy"
		result.Storage = "unavailable"
		if err != nil {
			result.Details["storage_error"] = err.Error()
		} else {
			result.Details["storage_error"] = "upload path is not a directory"
		}
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Upload directory unavailable: %s", cfg.UploadDir)
		} else {
			result.ErrorMessage += fmt.Sprintf("; upload directory unavailable: %s", cfg.UploadDir)
		}
		log.Printf("Health check failed - upload directory: %s", cfg.UploadDir)
	} else {
		result.Storage = "ok"
		result.Details["upload_dir"] = cfg.UploadDir
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
