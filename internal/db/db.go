package db

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/timeboxd/timeboxd/internal/clock"
	"github.com/timeboxd/timeboxd/internal/models"
)

// Store is the single handle to the durable sqlite database. One mutex
// serializes every command, read or write; there is no finer-grained locking.
type Store struct {
	mu    sync.Mutex
	db    *gorm.DB
	clock clock.Clock
}

// Open connects to the sqlite database at path, creating the parent
// directory and running migrations as needed.
func Open(path string, clk clock.Clock) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return open(path, clk)
}

// OpenMemory opens a throwaway in-memory database, used by tests.
func OpenMemory(clk clock.Clock) (*Store, error) {
	return open(":memory:", clk)
}

func open(dsn string, clk clock.Clock) (*Store, error) {
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Single writer: one connection, serialized by Store.mu.
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	s := &Store{db: gdb, clock: clk}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// DefaultPath returns the standard location of the timeboxd database.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".timeboxd", "timeboxd.db"), nil
}

func (s *Store) migrate() error {
	return s.db.AutoMigrate(
		&models.Timebox{},
		&models.Session{},
		&models.ChangeLogEntry{},
		&models.Setting{},
		&models.LinearProject{},
		&models.Integration{},
	)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// getTimebox loads a live (not soft-deleted) timebox inside tx.
func getTimebox(tx *gorm.DB, id uint) (*models.Timebox, error) {
	var tb models.Timebox
	if err := tx.Where("deleted_at IS NULL").First(&tb, id).Error; err != nil {
		return nil, wrapLookup(err, "timebox", id)
	}
	return &tb, nil
}
