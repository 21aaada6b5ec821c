package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/studio-pm-api/internal/models"
)

const (
	DemoEmail    = "demo@pms.local"
	DemoPassword = "demo123"
)

// SeedDemo inserts the demo employee and a small sample portfolio.
// It does nothing when the demo user already exists.
func SeedDemo(db *gorm.DB) error {
	var existing models.User
	err := db.Where("email = ?", DemoEmail).First(&existing).Error
	if err == nil {
		log.Println("Demo data already present, skipping")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check demo user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user := models.User{Email: DemoEmail, Name: "Demo User", PasswordHash: string(hash), Role: models.RoleEmployee}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		clients := []models.Client{
			{Name: "Bruce Wayne", Contact: "bwayne.enterprises@gmail.com", Phone: "555-01234",
				Street: "Wayne Enterprises, 1 Wayne Tower", City: "Gotham", State: "NJ", Zip: "08402"},
			{Name: "Tony Stark", Contact: "tstark@starkindustries.com", Phone: "555-99999",
				Street: "10880 Malibu Point", City: "Malibu", State: "CA", Zip: "90265"},
			{Name: "Peter Parker", Contact: "pparker@dailybugle.com", Phone: "555-77777",
				Street: "178 Bleecker Street", City: "New York", State: "NY", Zip: "10012"},
		}
		if err := tx.Create(&clients).Error; err != nil {
			return err
		}

		buildings := []models.Building{
			{Name: "Wayne Manor", Street: "1007 Mountain Drive", City: "Gotham", State: "NJ", Zip: "08401"},
			{Name: "Stark Tower", Street: "200 Park Avenue", City: "New York", State: "NY", Zip: "10166"},
			{Name: "Parker Residence", Street: "20 Ingram Street", City: "Queens", State: "NY", Zip: "11375"},
		}
		if err := tx.Create(&buildings).Error; err != nil {
			return err
		}

		projects := []models.Project{
			{Name: "Wayne Residential Complex", ClientID: &clients[0].ID, BuildingID: &buildings[0].ID,
				Description: "Luxury residential development", Status: models.ProjectStatusInProgress,
				DueDate: models.NewDate(time.Date(2025, 12, 23, 0, 0, 0, 0, time.Local))},
			{Name: "Stark Industries HQ Renovation", ClientID: &clients[1].ID, BuildingID: &buildings[1].ID,
				Description: "Modern office renovation", Status: models.ProjectStatusPlanned,
				DueDate: models.NewDate(time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local))},
			{Name: "Parker Family Home Remodel", ClientID: &clients[2].ID, BuildingID: &buildings[2].ID,
				Description: "Small home renovation project", Status: models.ProjectStatusInProgress,
				DueDate: models.NewDate(time.Date(2025, 11, 30, 0, 0, 0, 0, time.Local))},
		}
		if err := tx.Create(&projects).Error; err != nil {
			return err
		}

		siteEnd := time.Date(2025, 11, 20, 11, 0, 0, 0, time.Local)
		events := []models.Event{
			{Title: "Pre-Construction Planning", EventType: "Client Meeting", ProjectID: &projects[0].ID,
				Start: time.Date(2025, 11, 13, 12, 31, 0, 0, time.Local), Status: models.EventStatusUpcoming},
			{Title: "Site Inspection", EventType: "Survey", ProjectID: &projects[0].ID,
				Start: time.Date(2025, 11, 20, 9, 0, 0, 0, time.Local), End: &siteEnd, Status: models.EventStatusUpcoming},
			{Title: "Blueprint Review", EventType: "Design", ProjectID: &projects[1].ID,
				Start: time.Date(2025, 11, 25, 14, 0, 0, 0, time.Local), Status: models.EventStatusUpcoming},
		}
		if err := tx.Create(&events).Error; err != nil {
			return err
		}

		log.Printf("Seeded demo content (user: %s / %s)", DemoEmail, DemoPassword)
		return nil
	})
}
