package database

import (
	"fmt"
	"log"

	"github.com/yukikurage/studio-pm-api/internal/models"
	"gorm.io/gorm"
)

// AllModels lists every table owned by the application, parents first.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Client{},
		&models.Building{},
		&models.Project{},
		&models.ProjectAssignment{},
		&models.Event{},
		&models.Activity{},
		&models.Notification{},
		&models.TimeEntry{},
	}
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

// Drop removes every table, children first.
func Drop(db *gorm.DB) error {
	all := AllModels()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	log.Println("Dropped all tables")
	return nil
}

// Reset drops and recreates every table.
func Reset(db *gorm.DB) error {
	if err := Drop(db); err != nil {
		return err
	}
	return Migrate(db)
}
