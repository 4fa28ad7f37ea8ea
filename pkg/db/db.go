package db

import (
	"fmt"
	"sync/atomic"

	"piggybank/internal/model"
	"piggybank/pkg/config"
	"piggybank/pkg/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Membership{},
		&model.PiggyBank{},
		&model.Goal{},
		&model.Transaction{},
	)
}

func InitDB() error {
	var err error
	DB, err = gorm.Open(postgres.Open(config.GlobalConfig.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.L.Info("Database connected and migrated successfully")
	return nil
}

var testDBCounter atomic.Int64

// InitTestDB opens a fresh in-memory sqlite database. Each call yields a
// clean state, so tests start from an empty schema.
func InitTestDB() error {
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter.Add(1))
	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to open test database: %w", err)
	}

	// a single connection keeps the shared in-memory database alive
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)

	return migrate(DB)
}
