package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/yukikurage/studio-pm-api/internal/config"
	"github.com/yukikurage/studio-pm-api/internal/database"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "pmsctl",
	Short: "Database maintenance for the project management API",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withDB connects using the server configuration and closes the handle afterwards.
func withDB(fn func(db *gorm.DB) error) error {
	cfg := config.Load()
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()
	return fn(db)
}

func init() {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(database.Migrate)
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed-demo",
		Short: "Insert the demo employee and sample projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				if err := database.Migrate(db); err != nil {
					return err
				}
				return database.SeedDemo(db)
			})
		},
	}

	var force bool
	resetCmd := &cobra.Command{
		Use:   "reset-db",
		Short: "Drop and recreate every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("reset-db deletes all data; pass --force to continue")
			}
			return withDB(database.Reset)
		},
	}
	resetCmd.Flags().BoolVar(&force, "force", false, "confirm that all data may be deleted")

	dropCmd := &cobra.Command{
		Use:   "drop-db",
		Short: "Drop every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("drop-db deletes all data; pass --force to continue")
			}
			return withDB(database.Drop)
		},
	}
	dropCmd.Flags().BoolVar(&force, "force", false, "confirm that all data may be deleted")

	rootCmd.AddCommand(migrateCmd, seedCmd, resetCmd, dropCmd)
}
