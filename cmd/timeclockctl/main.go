package main

import (
	"context"
	"fmt"
	"os"

	"go-timeclock/internal/auth"
	"go-timeclock/internal/config"
	"go-timeclock/internal/credential"
	"go-timeclock/internal/database"
	"go-timeclock/internal/shared/connection"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:           "timeclockctl",
	Short:         "Administration tool for the timeclock API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(cfg config.Config, db *gorm.DB) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err := database.Up(sqlDB, cfg.Database.Driver); err != nil {
				return err
			}
			fmt.Println("Migrations applied.")
			return nil
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		return withStore(func(cfg config.Config, db *gorm.DB) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err := database.Down(sqlDB, cfg.Database.Driver, steps); err != nil {
				return err
			}
			fmt.Printf("Rolled back %d migration(s).\n", steps)
			return nil
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(cfg config.Config, db *gorm.DB) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			status, err := database.Status(sqlDB, cfg.Database.Driver)
			if err != nil {
				return err
			}
			fmt.Printf("Current version: %d\n", status.CurrentVersion)
			fmt.Printf("Latest version:  %d\n", status.LatestVersion)
			if status.Dirty {
				fmt.Println("Schema is dirty; fix the failed migration before continuing.")
			}
			if status.Pending {
				fmt.Println("Pending migrations: run 'timeclockctl migrate up'.")
			}
			return nil
		})
	},
}

var ownerCmd = &cobra.Command{
	Use:   "owner",
	Short: "Manage platform owners",
}

var ownerCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an owner account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		return withStore(func(cfg config.Config, db *gorm.DB) error {
			svc := auth.NewService(auth.NewRepository(db), nil, nil,
				credential.NewPasswordHasher(bcrypt.DefaultCost), cfg.Auth.TokenTTL)

			created, err := svc.EnsureOwner(context.Background(), username, email, password)
			if err != nil {
				return err
			}
			if !created {
				fmt.Printf("Owner %q already exists.\n", username)
				return nil
			}
			fmt.Printf("Owner %q created.\n", username)
			return nil
		})
	},
}

func withStore(fn func(cfg config.Config, db *gorm.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := connection.ConnectDatabase(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return fn(cfg, db)
}

func init() {
	migrateDownCmd.Flags().Int("steps", 1, "Number of migrations to roll back")

	ownerCreateCmd.Flags().String("username", "", "Owner username")
	ownerCreateCmd.Flags().String("email", "", "Owner email")
	ownerCreateCmd.Flags().String("password", "", "Owner password")
	_ = ownerCreateCmd.MarkFlagRequired("username")
	_ = ownerCreateCmd.MarkFlagRequired("password")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
	ownerCmd.AddCommand(ownerCreateCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(ownerCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
