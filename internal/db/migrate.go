package db

import (
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/pkg/logger"
	"gorm.io/gorm"
)

// Migrate runs database migrations. Parents are migrated before the rows
// that reference them so cascade constraints resolve.
func Migrate(gdb *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := []interface{}{
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
	}

	if err := gdb.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedTags(gdb); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// seedTags creates the initial tag taxonomy used for catalog filters.
func seedTags(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&model.Tag{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Tags already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding tag data...")

	tags := []model.Tag{
		{Name: "Action", Category: "genre"},
		{Name: "Adventure", Category: "genre"},
		{Name: "RPG", Category: "genre"},
		{Name: "Strategy", Category: "genre"},
		{Name: "Simulation", Category: "genre"},
		{Name: "Sports", Category: "genre"},
		{Name: "Puzzle", Category: "genre"},
		{Name: "Indie", Category: "genre"},

		{Name: "Singleplayer", Category: "feature"},
		{Name: "Multiplayer", Category: "feature"},
		{Name: "Co-op", Category: "feature"},
		{Name: "Controller Support", Category: "feature"},
		{Name: "Cloud Saves", Category: "feature"},
		{Name: "Achievements", Category: "feature"},
	}

	for _, tag := range tags {
		if err := gdb.Create(&tag).Error; err != nil {
			logger.Error("Failed to create tag", err, map[string]interface{}{
				"tag": tag.Name,
			})
			return err
		}
	}

	logger.Info("Tags seeded successfully", map[string]interface{}{
		"total_tags": len(tags),
	})
	return nil
}
