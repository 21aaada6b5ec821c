package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-pm-api/internal/config"
	"github.com/yukikurage/studio-pm-api/internal/database"
	"github.com/yukikurage/studio-pm-api/internal/router"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store, err := router.NewSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}

	r, err := router.New(cfg, db, store)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
