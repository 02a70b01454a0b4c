package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file:// migration source
	"github.com/jmoiron/sqlx"
	"go.uber.org/atomic"
)

const migrationsTable = "schema_migrations"

// OracleDriver implements golang-migrate's database.Driver over an Oracle
// connection. The library ships no Oracle driver, so the project carries its
// own, shaped like the bundled ones: a version table, an in-process lock,
// and one SQL statement per migration file.
type OracleDriver struct {
	db       *sql.DB
	isLocked atomic.Bool
}

// WithInstance wraps an open Oracle connection in a migrate driver and
// ensures the version table exists.
func WithInstance(db *sql.DB) (migratedb.Driver, error) {
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &OracleDriver{db: db}
	if err := d.ensureVersionTable(); err != nil {
		return nil, err
	}
	return d, nil
}

// Open implements database.Driver. The url is a go-ora connection URL.
func (d *OracleDriver) Open(url string) (migratedb.Driver, error) {
	db, err := sql.Open("oracle", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return WithInstance(db)
}

// Close implements database.Driver.
func (d *OracleDriver) Close() error {
	return d.db.Close()
}

// Lock implements database.Driver. Oracle exposes no lightweight advisory
// locks without extra grants, so the lock is in-process only; concurrent
// migration runs from separate processes are not guarded.
func (d *OracleDriver) Lock() error {
	if !d.isLocked.CAS(false, true) {
		return migratedb.ErrLocked
	}
	return nil
}

// Unlock implements database.Driver.
func (d *OracleDriver) Unlock() error {
	if !d.isLocked.CAS(true, false) {
		return migratedb.ErrNotLocked
	}
	return nil
}

// Run implements database.Driver. Each migration file holds a single
// statement; the trailing semicolon is stripped because Oracle rejects it
// outside PL/SQL blocks.
func (d *OracleDriver) Run(migration io.Reader) error {
	raw, err := io.ReadAll(migration)
	if err != nil {
		return err
	}

	query := strings.TrimSuffix(strings.TrimSpace(string(raw)), ";")
	if query == "" {
		return nil
	}

	if _, err := d.db.Exec(query); err != nil {
		return migratedb.Error{OrigErr: err, Query: raw}
	}
	return nil
}

// SetVersion implements database.Driver. The version table holds at most one
// row; NilVersion leaves it empty.
func (d *OracleDriver) SetVersion(version int, dirty bool) error {
	tx, err := d.db.Begin()
	if err != nil {
		return migratedb.Error{OrigErr: err, Err: "failed to begin transaction"}
	}

	deleteQuery := `DELETE FROM ` + migrationsTable
	if _, err := tx.Exec(deleteQuery); err != nil {
		tx.Rollback()
		return migratedb.Error{OrigErr: err, Query: []byte(deleteQuery)}
	}

	if version >= 0 || (version == migratedb.NilVersion && dirty) {
		dirtyBit := 0
		if dirty {
			dirtyBit = 1
		}
		insertQuery := `INSERT INTO ` + migrationsTable + ` (version, dirty) VALUES (:1, :2)`
		if _, err := tx.Exec(insertQuery, version, dirtyBit); err != nil {
			tx.Rollback()
			return migratedb.Error{OrigErr: err, Query: []byte(insertQuery)}
		}
	}

	if err := tx.Commit(); err != nil {
		return migratedb.Error{OrigErr: err, Err: "failed to commit transaction"}
	}
	return nil
}

// Version implements database.Driver. Oracle NUMBER(1) does not scan into a
// bool with database/sql, so dirty is read as an int.
func (d *OracleDriver) Version() (int, bool, error) {
	var (
		version int64
		dirty   int64
	)

	query := `SELECT version, dirty FROM ` + migrationsTable + ` FETCH FIRST 1 ROWS ONLY`
	err := d.db.QueryRow(query).Scan(&version, &dirty)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return migratedb.NilVersion, false, nil
	case err != nil:
		return 0, false, migratedb.Error{OrigErr: err, Query: []byte(query)}
	}
	return int(version), dirty == 1, nil
}

// Drop implements database.Driver: every table in the current schema goes,
// version table included. Recycle-bin artifacts (BIN$...) are skipped.
func (d *OracleDriver) Drop() error {
	query := `SELECT table_name FROM user_tables WHERE table_name NOT LIKE 'BIN$%'`
	rows, err := d.db.Query(query)
	if err != nil {
		return migratedb.Error{OrigErr: err, Query: []byte(query)}
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, table := range tables {
		dropQuery := fmt.Sprintf(`DROP TABLE "%s" CASCADE CONSTRAINTS`, table)
		if _, err := d.db.Exec(dropQuery); err != nil {
			return migratedb.Error{OrigErr: err, Query: []byte(dropQuery)}
		}
	}
	return nil
}

func (d *OracleDriver) ensureVersionTable() error {
	var count int
	existsQuery := `SELECT COUNT(*) FROM user_tables WHERE table_name = :1`
	if err := d.db.QueryRow(existsQuery, strings.ToUpper(migrationsTable)).Scan(&count); err != nil {
		return migratedb.Error{OrigErr: err, Query: []byte(existsQuery)}
	}
	if count > 0 {
		return nil
	}

	createQuery := `CREATE TABLE ` + migrationsTable + ` (version NUMBER(19) NOT NULL, dirty NUMBER(1) NOT NULL)`
	if _, err := d.db.Exec(createQuery); err != nil {
		return migratedb.Error{OrigErr: err, Query: []byte(createQuery)}
	}
	return nil
}

// NewMigrate builds a migrate instance reading .up.sql/.down.sql files from
// migrationsPath and applying them through the Oracle driver.
func NewMigrate(db *sqlx.DB, migrationsPath string) (*migrate.Migrate, error) {
	driver, err := WithInstance(db.DB)
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "oracle", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// RunMigrations applies every pending migration. An already up-to-date
// schema is not an error.
func RunMigrations(db *sqlx.DB, migrationsPath string) error {
	m, err := NewMigrate(db, migrationsPath)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// ResetDatabaseForTests drops the whole schema and reapplies all migrations.
// The integration suite uses it to start from a known state.
func ResetDatabaseForTests(db *sqlx.DB, migrationsPath string) error {
	m, err := NewMigrate(db, migrationsPath)
	if err != nil {
		return err
	}
	if err := m.Drop(); err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	// Drop removed the version table; a fresh driver recreates it.
	return RunMigrations(db, migrationsPath)
}
