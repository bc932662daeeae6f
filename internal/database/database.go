// Package database initializes sqlite database and exposes least privilege methods
package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log"
	"time"

	"database/sql"

	_ "github.com/mattn/go-sqlite3" // Package sqlite3 provides interface to SQLite3 databases.
)

//go:embed schema.sql
var schemaFS embed.FS

const queryTimeout = 5 * time.Second

// DBClient exposes restricted methods
type DBClient struct {
	db *sql.DB
}

// InitDB opens the sqlite database at path and loads the schema
func InitDB(path string) (*DBClient, error) {

	var db *sql.DB
	var err error

	log.Printf("[INFO] opening database at %s", path)

	// Open database connection pool
	db, err = sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// a single connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(15 * time.Minute)

	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err = db.PingContext(ctxWithTimeout); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database, %w", err)
	}

	dbClient := &DBClient{db: db}
	if err = dbClient.LoadDataToDatabase(); err != nil {
		db.Close()
		return nil, err
	}

	return dbClient, nil

}

// HealthCheck performs health check on database by ping
func (dbC *DBClient) HealthCheck(ctx context.Context) error {

	ctxWithTimeout, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := dbC.db.PingContext(ctxWithTimeout); err != nil {
		return fmt.Errorf("error connecting to database, %w", err)
	}

	return nil

}

// Close closes the database connection pool
func (dbC *DBClient) Close() error {

	if err := dbC.db.Close(); err != nil {
		return fmt.Errorf("error closing database connection, %w", err)
	}
	return nil
}

// LoadDataToDatabase loads data to database via schema file
func (dbC *DBClient) LoadDataToDatabase() error {

	// Read file content
	sqlFile, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("error reading schema file, %w", err)
	}

	tx, err := dbC.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction to load schema file, %w", err)
	}

	if _, err := tx.Exec(string(sqlFile)); err != nil {
		tx.Rollback()
		return fmt.Errorf("error executing schema file, %w", err)
	}

	return tx.Commit()
}

// GetPreference reads the value stored under key; found is false when no row exists
func (dbC *DBClient) GetPreference(ctx context.Context, key string) (value string, found bool, err error) {

	ctxWithTimeout, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err = dbC.db.QueryRowContext(ctxWithTimeout, "SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("error reading preference %q, %w", key, err)
	}

	return value, true, nil
}

// SetPreference stores value under key, replacing any previous value
func (dbC *DBClient) SetPreference(ctx context.Context, key string, value string) error {

	ctxWithTimeout, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := dbC.db.ExecContext(ctxWithTimeout, query, key, value, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("error storing preference %q, %w", key, err)
	}

	return nil
}

// DeletePreference removes key; deleting a missing key is not an error
func (dbC *DBClient) DeletePreference(ctx context.Context, key string) error {

	ctxWithTimeout, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := dbC.db.ExecContext(ctxWithTimeout, "DELETE FROM preferences WHERE key = ?", key); err != nil {
		return fmt.Errorf("error deleting preference %q, %w", key, err)
	}

	return nil
}
