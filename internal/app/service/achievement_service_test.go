package service

import (
	"testing"
	"time"

	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/repository"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAchievementServiceTest(t *testing.T) (*AchievementService, *gorm.DB, model.User, model.Game) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	user := model.User{Username: "arin", Email: "arin@playgrid.dev", PasswordHash: "x"}
	require.NoError(t, testDB.Create(&user).Error)
	game := model.Game{Title: "Aurora", Price: 59.99}
	require.NoError(t, testDB.Create(&game).Error)

	achievementRepo := repository.NewAchievementRepository(testDB)
	return NewAchievementService(achievementRepo, testDB), testDB, user, game
}

func TestAchievementService_CreateAchievement_UnknownGame(t *testing.T) {
	achievementService, _, _, _ := setupAchievementServiceTest(t)

	_, err := achievementService.CreateAchievement(9999, "First Steps", "boot.png")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.Equal(t, errors.GameNotFound, errors.CodeOf(err))
}

func TestAchievementService_Unlock(t *testing.T) {
	achievementService, _, user, game := setupAchievementServiceTest(t)

	achievement, err := achievementService.CreateAchievement(game.ID, "First Steps", "boot.png")
	require.NoError(t, err)

	unlock, err := achievementService.Unlock(user.ID, achievement.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, unlock.UserID)
	assert.Equal(t, achievement.ID, unlock.AchievementID)
	assert.False(t, unlock.UnlockedAt.IsZero())
}

func TestAchievementService_Unlock_TwicePreservesFirstTimestamp(t *testing.T) {
	achievementService, testDB, user, game := setupAchievementServiceTest(t)

	achievement, err := achievementService.CreateAchievement(game.ID, "First Steps", "boot.png")
	require.NoError(t, err)

	first, err := achievementService.Unlock(user.ID, achievement.ID)
	require.NoError(t, err)

	_, err = achievementService.Unlock(user.ID, achievement.ID)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConflict))
	assert.Equal(t, errors.AchievementUnlocked, errors.CodeOf(err))

	var stored model.UserAchievement
	require.NoError(t, testDB.Where("user_id = ? AND achievement_id = ?", user.ID, achievement.ID).First(&stored).Error)
	assert.WithinDuration(t, first.UnlockedAt, stored.UnlockedAt, time.Second)
}

func TestAchievementService_Unlock_UnknownAchievement(t *testing.T) {
	achievementService, _, user, _ := setupAchievementServiceTest(t)

	_, err := achievementService.Unlock(user.ID, 9999)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.Equal(t, errors.AchievementNotFound, errors.CodeOf(err))
}

func TestAchievementService_RemoveUnlock(t *testing.T) {
	achievementService, testDB, user, game := setupAchievementServiceTest(t)

	achievement, err := achievementService.CreateAchievement(game.ID, "First Steps", "boot.png")
	require.NoError(t, err)
	_, err = achievementService.Unlock(user.ID, achievement.ID)
	require.NoError(t, err)

	require.NoError(t, achievementService.RemoveUnlock(user.ID, achievement.ID))

	var total int64
	testDB.Model(&model.UserAchievement{}).Count(&total)
	assert.Zero(t, total)

	err = achievementService.RemoveUnlock(user.ID, achievement.ID)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}

func TestAchievementService_ListUserUnlocks(t *testing.T) {
	achievementService, _, user, game := setupAchievementServiceTest(t)

	a, err := achievementService.CreateAchievement(game.ID, "First Steps", "boot.png")
	require.NoError(t, err)
	b, err := achievementService.CreateAchievement(game.ID, "Completionist", "crown.png")
	require.NoError(t, err)

	_, err = achievementService.Unlock(user.ID, a.ID)
	require.NoError(t, err)
	_, err = achievementService.Unlock(user.ID, b.ID)
	require.NoError(t, err)

	unlocks, err := achievementService.ListUserUnlocks(user.ID)
	require.NoError(t, err)
	assert.Len(t, unlocks, 2)
}
