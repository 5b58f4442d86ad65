package service

import (
	"testing"
	"time"

	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupValidatorTest(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB
}

func TestRecordExists(t *testing.T) {
	testDB := setupValidatorTest(t)

	game := model.Game{Title: "Aurora", Price: 10}
	require.NoError(t, testDB.Create(&game).Error)

	exists, err := recordExists(testDB, &model.Game{}, game.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = recordExists(testDB, &model.Game{}, game.ID+1)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestKeyFree_ExcludesOwnRow(t *testing.T) {
	testDB := setupValidatorTest(t)

	tag := model.Tag{Name: "Roguelike", Category: "genre"}
	require.NoError(t, testDB.Create(&tag).Error)

	free, err := keyFree(testDB, &model.Tag{}, "tag_name", "Roguelike", 0)
	require.NoError(t, err)
	assert.False(t, free)

	// The row being updated does not count against itself.
	free, err = keyFree(testDB, &model.Tag{}, "tag_name", "Roguelike", tag.ID)
	require.NoError(t, err)
	assert.True(t, free)

	free, err = keyFree(testDB, &model.Tag{}, "tag_name", "Deckbuilder", 0)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestPairFree(t *testing.T) {
	testDB := setupValidatorTest(t)

	user := model.User{Username: "arin", Email: "arin@playgrid.dev", PasswordHash: "x"}
	require.NoError(t, testDB.Create(&user).Error)
	game := model.Game{Title: "Aurora", Price: 10}
	require.NoError(t, testDB.Create(&game).Error)
	entry := model.LibraryEntry{UserID: user.ID, GameID: game.ID, Ownership: model.OwnershipPurchased, DownloadStatus: model.DownloadNone}
	require.NoError(t, testDB.Create(&entry).Error)

	free, err := pairFree(testDB, &model.LibraryEntry{}, "user_id", user.ID, "game_id", game.ID)
	require.NoError(t, err)
	assert.False(t, free)

	free, err = pairFree(testDB, &model.LibraryEntry{}, "user_id", user.ID, "game_id", game.ID+1)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestMissingIDs(t *testing.T) {
	got := map[uint]bool{1: true, 3: true}
	assert.Equal(t, []uint{2, 4}, missingIDs([]uint{1, 2, 3, 4}, got))
	assert.Nil(t, missingIDs([]uint{1, 3}, got))
	assert.Nil(t, missingIDs(nil, got))
}

func TestDateRangeValid(t *testing.T) {
	now := time.Now()
	assert.True(t, dateRangeValid(now, now.Add(time.Second)))
	assert.False(t, dateRangeValid(now, now))
	assert.False(t, dateRangeValid(now, now.Add(-time.Second)))
}

func TestNotSelfReference(t *testing.T) {
	assert.True(t, notSelfReference(1, 2))
	assert.False(t, notSelfReference(7, 7))
}
