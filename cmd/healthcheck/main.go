// main.go
//
// An administrative data service for tags, users and activity tracking
// Copyright (c) 2026 Tagboard Authors
//
// This file is part of tagboard.
// tagboard is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// tagboard is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with tagboard.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Tagboard Authors"
//    in this material, copies, or source code of derived works.
//
// Standalone health probe. Pings the server port, then checks the
// configured database when it is a server database (an in-memory sqlite
// store is private to the server process and cannot be probed from
// outside).

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/tagboard/tagboard/internal/config"
	"github.com/tagboard/tagboard/internal/database"
	"github.com/tagboard/tagboard/internal/services"
	"github.com/tagboard/tagboard/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Probe the server port first
	if err := utils.PingServer(cfg.Port); err != nil {
		log.Printf("Server ping failed: %v", err)
		os.Exit(1)
	}

	result := services.HealthCheckResult{Status: "healthy"}

	if cfg.DBType != "sqlite" {
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close(db)

		result = services.HealthCheck(cfg, db)
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
