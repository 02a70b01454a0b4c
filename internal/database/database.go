package database

import (
	"fmt"

	"quiz-catalog/internal/config"

	_ "github.com/godror/godror"   // Oracle driver (ODPI-C)
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver (pure Go), registered as "oracle"
)

// NewSQLXOracleDB opens an Oracle connection pool with the configured driver
// and verifies it with a ping.
func NewSQLXOracleDB(cfg *config.Config) (*sqlx.DB, error) {
	driver := cfg.DB.Driver
	if driver == "" {
		driver = "oracle"
	}

	db, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Oracle database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Oracle database: %w", err)
	}

	return db, nil
}
