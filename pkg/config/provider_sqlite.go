package config

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/chrissnell/astrotime/pkg/migrate"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider opens (or creates) a SQLite configuration database and
// brings its schema up to date.
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if err := NewMigrator(db).MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// NewMigrator returns a migrator for the configuration schema
func NewMigrator(db *sql.DB) *migrate.Migrator {
	return migrate.NewMigrator(db, migrate.NewFSProvider(migrationFS, "migrations", ""))
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	loc, err := s.GetDefaultLocation()
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to load location: %w", err)
	}
	if loc != nil {
		config.Location = *loc
	}

	if err := s.loadRESTConfig(config); err != nil {
		return nil, fmt.Errorf("failed to load rest config: %w", err)
	}

	return finalize(config)
}

// GetLocations returns every stored location, default first
func (s *SQLiteProvider) GetLocations() ([]LocationData, error) {
	rows, err := s.db.Query(`
		SELECT name, latitude, longitude, timezone
		FROM locations
		ORDER BY is_default DESC, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []LocationData
	for rows.Next() {
		var loc LocationData
		if err := rows.Scan(&loc.Name, &loc.Latitude, &loc.Longitude, &loc.Timezone); err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

// GetDefaultLocation returns the location flagged as default. It returns
// sql.ErrNoRows when none is stored.
func (s *SQLiteProvider) GetDefaultLocation() (*LocationData, error) {
	var loc LocationData
	err := s.db.QueryRow(`
		SELECT name, latitude, longitude, timezone
		FROM locations
		WHERE is_default = 1
		LIMIT 1
	`).Scan(&loc.Name, &loc.Latitude, &loc.Longitude, &loc.Timezone)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// GetLocation returns a stored location by name. It returns sql.ErrNoRows
// when there is none.
func (s *SQLiteProvider) GetLocation(name string) (*LocationData, error) {
	var loc LocationData
	err := s.db.QueryRow(`
		SELECT name, latitude, longitude, timezone
		FROM locations
		WHERE name = ?
	`, name).Scan(&loc.Name, &loc.Latitude, &loc.Longitude, &loc.Timezone)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// AddLocation stores or updates a location. When makeDefault is set it
// replaces the current default; otherwise an existing default keeps its flag.
func (s *SQLiteProvider) AddLocation(loc LocationData, makeDefault bool) error {
	if loc.Name == "" {
		return fmt.Errorf("location name is required")
	}
	if loc.Timezone == "" {
		loc.Timezone = DefaultTimezone
	}
	if err := loc.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertLocation(tx, loc, makeDefault); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteLocation removes a location by name
func (s *SQLiteProvider) DeleteLocation(name string) error {
	result, err := s.db.Exec("DELETE FROM locations WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("location %q not found", name)
	}
	return nil
}

// SaveConfig writes configData as the stored default location and REST
// settings, replacing what was there.
func (s *SQLiteProvider) SaveConfig(configData *ConfigData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertLocation(tx, configData.Location, true); err != nil {
		return err
	}

	r := configData.RESTServer
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO rest_config
			(id, listen_addr, http_port, tls_cert_path, tls_key_path, stream_interval, cache_resolution)
		VALUES (1, ?, ?, ?, ?, ?, ?)
	`, nullString(r.ListenAddr), nullInt(r.HTTPPort), nullString(r.TLSCertPath), nullString(r.TLSKeyPath),
		nullDuration(r.StreamInterval), nullDuration(configData.CacheResolution))
	if err != nil {
		return fmt.Errorf("failed to save rest config: %w", err)
	}

	return tx.Commit()
}

// IsReadOnly returns false as SQLite supports writes
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteProvider) loadRESTConfig(config *ConfigData) error {
	var listenAddr, certPath, keyPath, streamInterval, cacheResolution sql.NullString
	var port sql.NullInt64

	err := s.db.QueryRow(`
		SELECT listen_addr, http_port, tls_cert_path, tls_key_path, stream_interval, cache_resolution
		FROM rest_config
		WHERE id = 1
	`).Scan(&listenAddr, &port, &certPath, &keyPath, &streamInterval, &cacheResolution)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	config.RESTServer.ListenAddr = listenAddr.String
	config.RESTServer.HTTPPort = int(port.Int64)
	config.RESTServer.TLSCertPath = certPath.String
	config.RESTServer.TLSKeyPath = keyPath.String

	if config.RESTServer.StreamInterval, err = parseDuration(streamInterval.String); err != nil {
		return fmt.Errorf("stream_interval: %w", err)
	}
	if config.CacheResolution, err = parseDuration(cacheResolution.String); err != nil {
		return fmt.Errorf("cache_resolution: %w", err)
	}
	return nil
}

func insertLocation(tx *sql.Tx, loc LocationData, makeDefault bool) error {
	if loc.Name == "" {
		loc.Name = DefaultLocationName
	}
	if makeDefault {
		if _, err := tx.Exec("UPDATE locations SET is_default = 0"); err != nil {
			return fmt.Errorf("failed to clear default location: %w", err)
		}
	}

	_, err := tx.Exec(`
		INSERT INTO locations (name, latitude, longitude, timezone, is_default)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			timezone = excluded.timezone,
			is_default = MAX(locations.is_default, excluded.is_default)
	`, loc.Name, loc.Latitude, loc.Longitude, loc.Timezone, makeDefault)
	if err != nil {
		return fmt.Errorf("failed to insert location %q: %w", loc.Name, err)
	}
	return nil
}

// Helper functions for handling NULL values
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(i int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(i), Valid: i != 0}
}

func nullDuration(d time.Duration) sql.NullString {
	if d == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}
