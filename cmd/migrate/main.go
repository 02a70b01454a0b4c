package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"quiz-catalog/internal/config"
	"quiz-catalog/internal/database"
	"quiz-catalog/internal/logger"

	"github.com/golang-migrate/migrate/v4"
)

// migrationsPath resolves the migrations directory, whether the command runs
// from the repository root or from a test two directories below it.
func migrationsPath() string {
	for _, path := range []string{"database/migrations", "../../database/migrations"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return "database/migrations"
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Logger)
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	m, err := database.NewMigrate(db, migrationsPath())
	if err != nil {
		log.Fatalf("Failed to create migrate instance: %v", err)
	}

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully!")

	case "down":
		if len(os.Args) > 2 && os.Args[2] == "--all" {
			if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				log.Fatalf("Failed to roll back migrations: %v", err)
			}
			fmt.Println("Successfully rolled back all migrations")
		} else {
			if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				log.Fatalf("Failed to roll back migration: %v", err)
			}
			fmt.Println("Successfully rolled back 1 migration(s)")
		}

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("No migrations applied")
			return
		}
		if err != nil {
			log.Fatalf("Failed to read migration version: %v", err)
		}
		fmt.Printf("Current version: %d (dirty: %t)\n", version, dirty)

	default:
		log.Fatalf("Unknown command %q: expected up, down, down --all or version", command)
	}
}
