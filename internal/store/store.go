// Package store keeps the development backend's users and restaurants in
// a SQL database through gorm.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrEmailTaken = errors.New("email already in use")
)

// Store wraps a migrated gorm database.
type Store struct {
	db *gorm.DB
}

type Option func(*gorm.Config)

// WithClock replaces the clock used for created-at timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *gorm.Config) { c.NowFunc = now }
}

// Open connects to a "sqlite" or "postgres" database and migrates it.
func Open(driver, dsn string, opts ...Option) (*Store, error) {
	var dialector gorm.Dialector
	single := false
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		dialector = sqlite.Open(dsn)
		single = true
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}
	if single {
		// sqlite allows one writer; serialize access instead of failing
		// with "database is locked".
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&UserRecord{}, &RestaurantRecord{}, &RevokedToken{}); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Counts is the summary shown on the admin page.
type Counts struct {
	Users       int64
	Restaurants int64
}

func (s *Store) Counts() (Counts, error) {
	var c Counts
	if err := s.db.Model(&UserRecord{}).Count(&c.Users).Error; err != nil {
		return c, err
	}
	if err := s.db.Model(&RestaurantRecord{}).Count(&c.Restaurants).Error; err != nil {
		return c, err
	}
	return c, nil
}
