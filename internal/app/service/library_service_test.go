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

func setupLibraryServiceTest(t *testing.T) (LibraryService, *gorm.DB, model.User, model.Game) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	user := model.User{Username: "arin", Email: "arin@playgrid.dev", PasswordHash: "x"}
	require.NoError(t, testDB.Create(&user).Error)
	game := model.Game{Title: "Aurora", Price: 59.99}
	require.NoError(t, testDB.Create(&game).Error)

	libraryRepo := repository.NewLibraryRepository(testDB)
	return NewLibraryService(libraryRepo, testDB), testDB, user, game
}

func TestLibraryService_AddToLibrary(t *testing.T) {
	libraryService, _, user, game := setupLibraryServiceTest(t)

	entry, err := libraryService.AddToLibrary(user.ID, game.ID, model.OwnershipPurchased)
	require.NoError(t, err)
	assert.Equal(t, model.OwnershipPurchased, entry.Ownership)
	assert.Equal(t, model.DownloadNone, entry.DownloadStatus)
	assert.Zero(t, entry.HoursPlayed)
}

func TestLibraryService_AddToLibrary_DuplicatePair(t *testing.T) {
	libraryService, testDB, user, game := setupLibraryServiceTest(t)

	first, err := libraryService.AddToLibrary(user.ID, game.ID, model.OwnershipPurchased)
	require.NoError(t, err)

	_, err = libraryService.AddToLibrary(user.ID, game.ID, model.OwnershipWishlist)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConflict))
	assert.Equal(t, errors.LibraryEntryExists, errors.CodeOf(err))

	// The stored entry keeps its original ownership.
	var stored model.LibraryEntry
	require.NoError(t, testDB.First(&stored, first.ID).Error)
	assert.Equal(t, model.OwnershipPurchased, stored.Ownership)
}

func TestLibraryService_AddToLibrary_UnknownGame(t *testing.T) {
	libraryService, _, user, _ := setupLibraryServiceTest(t)

	_, err := libraryService.AddToLibrary(user.ID, 9999, model.OwnershipPurchased)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.Equal(t, errors.GameNotFound, errors.CodeOf(err))
}

func TestLibraryService_UpdateEntry_PartialFields(t *testing.T) {
	libraryService, _, user, game := setupLibraryServiceTest(t)

	_, err := libraryService.AddToLibrary(user.ID, game.ID, model.OwnershipPurchased)
	require.NoError(t, err)

	hours := 12.5
	updated, err := libraryService.UpdateEntry(user.ID, game.ID, LibraryUpdate{HoursPlayed: &hours})
	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.HoursPlayed)
	assert.Equal(t, model.OwnershipPurchased, updated.Ownership)
	assert.Equal(t, model.DownloadNone, updated.DownloadStatus)
}

func TestLibraryService_UpdateEntry_NotFound(t *testing.T) {
	libraryService, _, user, game := setupLibraryServiceTest(t)

	hours := 1.0
	_, err := libraryService.UpdateEntry(user.ID, game.ID, LibraryUpdate{HoursPlayed: &hours})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.Equal(t, errors.LibraryEntryNotFound, errors.CodeOf(err))
}

func TestLibraryService_RemoveFromLibrary_ThenReAdd(t *testing.T) {
	libraryService, _, user, game := setupLibraryServiceTest(t)

	_, err := libraryService.AddToLibrary(user.ID, game.ID, model.OwnershipWishlist)
	require.NoError(t, err)
	require.NoError(t, libraryService.RemoveFromLibrary(user.ID, game.ID))

	// Removal is a hard delete, so the pair can be re-added.
	entry, err := libraryService.AddToLibrary(user.ID, game.ID, model.OwnershipPurchased)
	require.NoError(t, err)
	assert.Equal(t, model.OwnershipPurchased, entry.Ownership)
}
