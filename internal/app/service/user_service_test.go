package service

import (
	"testing"

	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/repository"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserServiceTest(t *testing.T) (UserService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	return NewUserService(userRepo, testDB), testDB
}

func seedUserFixtures(t *testing.T, testDB *gorm.DB) (gameIDs []uint, friendID uint, achievementID uint) {
	games := []model.Game{
		{Title: "Aurora", Price: 59.99},
		{Title: "Borealis", Price: 29.99},
	}
	for i := range games {
		require.NoError(t, testDB.Create(&games[i]).Error)
		gameIDs = append(gameIDs, games[i].ID)
	}

	friend := model.User{Username: "mika", Email: "mika@playgrid.dev", PasswordHash: "x"}
	require.NoError(t, testDB.Create(&friend).Error)

	achievement := model.Achievement{GameID: games[0].ID, Title: "First Steps"}
	require.NoError(t, testDB.Create(&achievement).Error)

	return gameIDs, friend.ID, achievement.ID
}

func setupInput(gameIDs []uint, friendID, achievementID uint) InitialSetupInput {
	return InitialSetupInput{
		User: UserInput{
			Username: "arin",
			Email:    "arin@playgrid.dev",
			Password: "correct horse battery",
			Age:      27,
			Region:   "EU",
		},
		WishlistGameIDs: gameIDs,
		FriendIDs:       []uint{friendID},
		AchievementIDs:  []uint{achievementID},
	}
}

func TestUserService_CreateUserWithInitialSetup_Success(t *testing.T) {
	userService, testDB := setupUserServiceTest(t)
	gameIDs, friendID, achievementID := seedUserFixtures(t, testDB)

	user, err := userService.CreateUserWithInitialSetup(setupInput(gameIDs, friendID, achievementID))
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "arin", user.Username)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	assert.Len(t, user.Library, 2)
	assert.Len(t, user.Friendships, 1)
	assert.Len(t, user.Achievements, 1)

	assert.Equal(t, model.OwnershipWishlist, user.Library[0].Ownership)
	assert.Equal(t, model.FriendshipPending, user.Friendships[0].Status)
	assert.False(t, user.Achievements[0].UnlockedAt.IsZero())
}

func TestUserService_CreateUserWithInitialSetup_MissingGamePersistsNothing(t *testing.T) {
	userService, testDB := setupUserServiceTest(t)
	gameIDs, friendID, achievementID := seedUserFixtures(t, testDB)

	input := setupInput(append(gameIDs, 777), friendID, achievementID)
	user, err := userService.CreateUserWithInitialSetup(input)
	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.Contains(t, err.Error(), "777")

	var users int64
	testDB.Model(&model.User{}).Where("username = ?", "arin").Count(&users)
	assert.Zero(t, users)

	var entries, friendships, unlocks int64
	testDB.Model(&model.LibraryEntry{}).Count(&entries)
	testDB.Model(&model.Friendship{}).Count(&friendships)
	testDB.Model(&model.UserAchievement{}).Count(&unlocks)
	assert.Zero(t, entries)
	assert.Zero(t, friendships)
	assert.Zero(t, unlocks)
}

func TestUserService_CreateUserWithInitialSetup_DuplicateUsername(t *testing.T) {
	userService, testDB := setupUserServiceTest(t)
	gameIDs, friendID, achievementID := seedUserFixtures(t, testDB)

	_, err := userService.CreateUserWithInitialSetup(setupInput(gameIDs, friendID, achievementID))
	require.NoError(t, err)

	second := setupInput(nil, friendID, achievementID)
	second.User.Email = "other@playgrid.dev"
	_, err = userService.CreateUserWithInitialSetup(second)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConflict))
	assert.Equal(t, errors.AuthUsernameExists, errors.CodeOf(err))
}

func TestUserService_CreateUserWithInitialSetup_EmptySetupLists(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	user, err := userService.CreateUserWithInitialSetup(InitialSetupInput{
		User: UserInput{
			Username: "solo",
			Email:    "solo@playgrid.dev",
			Password: "secret-enough",
		},
	})
	require.NoError(t, err)
	assert.Empty(t, user.Library)
	assert.Empty(t, user.Friendships)
	assert.Empty(t, user.Achievements)
}

func TestUserService_UpdateUser_KeepOwnEmail(t *testing.T) {
	userService, testDB := setupUserServiceTest(t)

	user := model.User{Username: "arin", Email: "arin@playgrid.dev", PasswordHash: "x"}
	require.NoError(t, testDB.Create(&user).Error)

	email := "arin@playgrid.dev"
	updated, err := userService.UpdateUser(user.ID, UserUpdate{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "arin@playgrid.dev", updated.Email)
}

func TestUserService_UpdateUser_EmailTaken(t *testing.T) {
	userService, testDB := setupUserServiceTest(t)

	first := model.User{Username: "arin", Email: "arin@playgrid.dev", PasswordHash: "x"}
	second := model.User{Username: "mika", Email: "mika@playgrid.dev", PasswordHash: "x"}
	require.NoError(t, testDB.Create(&first).Error)
	require.NoError(t, testDB.Create(&second).Error)

	taken := "arin@playgrid.dev"
	_, err := userService.UpdateUser(second.ID, UserUpdate{Email: &taken})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConflict))
	assert.Equal(t, errors.AuthEmailExists, errors.CodeOf(err))
}

func TestUserService_GetUserByID_NotFound(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	_, err := userService.GetUserByID(12345)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}
