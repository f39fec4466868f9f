// Package store is the backend collaborator: owner-scoped persistence for
// sessions, categories, users and uploaded exports on top of gorm + sqlite.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/clockr/internal/models"
)

// StoreError is a sentinel error returned by the store
type StoreError string

// Error implements the error interface
func (e StoreError) Error() string {
	return string(e)
}

const (
	ErrNotFound           StoreError = "record not found"
	ErrAuthRequired       StoreError = "authentication required"
	ErrInvalidCredentials StoreError = "invalid email or password"
	ErrEmailTaken         StoreError = "email already registered"
)

// Store owns the database connection
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database at path and runs migrations
func Open(path string) (*Store, error) {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return open(path)
}

// OpenMemory opens a private in-memory database, mostly for tests
func OpenMemory(name string) (*Store, error) {
	return open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
}

func open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows one writer; concurrent callers queue on the pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.runMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// DefaultPath returns the path to the SQLite database file
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".clockr", "clockr.db"), nil
}

// runMigrations creates/updates the database schema
func (s *Store) runMigrations() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Session{},
		&models.Category{},
		&models.Export{},
	)
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
