package persistence

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SQLite is the embedded record store used for local development and tests.
type SQLite struct {
	DB *gorm.DB
}

// NewSQLite opens the database at dsn. Foreign keys must be enabled in the
// DSN (_foreign_keys=on) for referential integrity to hold at the store level.
func NewSQLite(dsn string, logger *zap.Logger) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// A single connection keeps in-memory databases shared across queries.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("opened sqlite store")
	}
	return &SQLite{DB: db}, nil
}

// Close releases the underlying connection.
func (s *SQLite) Close() {
	if s == nil || s.DB == nil {
		return
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Ping verifies the database is reachable.
func (s *SQLite) Ping(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("sqlite store not configured")
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
