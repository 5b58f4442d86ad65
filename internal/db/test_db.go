package db

import (
	"fmt"
	"log"

	"github.com/jwhan/playgrid-backend/internal/app/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB() (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	err = gdb.AutoMigrate(
		&model.User{},
		&model.Game{},
		&model.Tag{},
		&model.Dev{},
		&model.Achievement{},
		&model.GameTag{},
		&model.GameDev{},
		&model.UserAchievement{},
		&model.LibraryEntry{},
		&model.Friendship{},
		&model.Review{},
		&model.GameSave{},
		&model.Event{},
		&model.GameNews{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return gdb, nil
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(gdb *gorm.DB) {
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Printf("Failed to get DB instance: %v", err)
		return
	}
	sqlDB.Close()
}
