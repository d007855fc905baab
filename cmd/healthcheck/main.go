// main.go
//
// Standalone readiness probe for the health wallet service, used as the
// container HEALTHCHECK command. Verifies the database and upload storage
// directly, plus that the HTTP port is accepting connections.

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/healthwallet/api/internal/config"
	"github.com/healthwallet/api/internal/database"
	"github.com/healthwallet/api/internal/services"
	"github.com/healthwallet/api/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Perform health check
	result := services.HealthCheck(cfg, db)

	// The API itself must be listening too
	if err := utils.PingServer(cfg.Port); err != nil {
		result.Status = "unhealthy"
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Server ping failed: %v", err)
		} else {
			result.ErrorMessage += fmt.Sprintf("; server ping failed: %v", err)
		}
	}

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
