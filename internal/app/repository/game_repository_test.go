package repository

import (
	"testing"
	"time"

	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupGameRepositoryTest(t *testing.T) (GameRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return NewGameRepository(testDB), testDB
}

func seedFilterGames(t *testing.T, testDB *gorm.DB) (model.Tag, model.Dev) {
	tag := model.Tag{Name: "Roguelike", Category: "genre"}
	require.NoError(t, testDB.Create(&tag).Error)
	dev := model.Dev{Name: "Nebula Works", Type: model.DevTypeDeveloper}
	require.NoError(t, testDB.Create(&dev).Error)

	games := []model.Game{
		{Title: "Aurora", Description: "dungeon crawler", Price: 59.99, ReleaseDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "Borealis", Description: "space sim", Price: 29.99, ReleaseDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "Cascade", Description: "dungeon puzzler", Price: 9.99, ReleaseDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for i := range games {
		require.NoError(t, testDB.Create(&games[i]).Error)
	}

	require.NoError(t, testDB.Create(&model.GameTag{GameID: games[0].ID, TagID: tag.ID}).Error)
	require.NoError(t, testDB.Create(&model.GameDev{GameID: games[1].ID, DevID: dev.ID}).Error)
	return tag, dev
}

func TestGameRepository_FindWithFilter_ByTag(t *testing.T) {
	gameRepo, testDB := setupGameRepositoryTest(t)
	tag, _ := seedFilterGames(t, testDB)

	games, err := gameRepo.FindWithFilter(GameFilter{TagID: &tag.ID})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Aurora", games[0].Title)
}

func TestGameRepository_FindWithFilter_ByDev(t *testing.T) {
	gameRepo, testDB := setupGameRepositoryTest(t)
	_, dev := seedFilterGames(t, testDB)

	games, err := gameRepo.FindWithFilter(GameFilter{DevID: &dev.ID})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Borealis", games[0].Title)
}

func TestGameRepository_FindWithFilter_SearchMatchesDescription(t *testing.T) {
	gameRepo, testDB := setupGameRepositoryTest(t)
	seedFilterGames(t, testDB)

	games, err := gameRepo.FindWithFilter(GameFilter{Search: "dungeon"})
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

func TestGameRepository_FindWithFilter_MaxPriceAndSort(t *testing.T) {
	gameRepo, testDB := setupGameRepositoryTest(t)
	seedFilterGames(t, testDB)

	max := 30.0
	games, err := gameRepo.FindWithFilter(GameFilter{
		MaxPrice:      &max,
		SortBy:        GameSortPrice,
		SortAscending: true,
	})
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "Cascade", games[0].Title)
	assert.Equal(t, "Borealis", games[1].Title)
}

func TestGameRepository_FindWithFilter_Pagination(t *testing.T) {
	gameRepo, testDB := setupGameRepositoryTest(t)
	seedFilterGames(t, testDB)

	page, err := gameRepo.FindWithFilter(GameFilter{
		SortBy:        GameSortPrice,
		SortAscending: true,
		Limit:         2,
		Offset:        2,
	})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Aurora", page[0].Title)
}

func TestGameRepository_FindByIDComposed(t *testing.T) {
	gameRepo, testDB := setupGameRepositoryTest(t)
	tag, _ := seedFilterGames(t, testDB)

	var game model.Game
	require.NoError(t, testDB.Where("title = ?", "Aurora").First(&game).Error)
	require.NoError(t, testDB.Create(&model.Achievement{GameID: game.ID, Title: "First Steps"}).Error)

	composed, err := gameRepo.FindByIDComposed(game.ID)
	require.NoError(t, err)
	require.Len(t, composed.TagLinks, 1)
	assert.Equal(t, tag.Name, composed.TagLinks[0].Tag.Name)
	assert.Len(t, composed.Achievements, 1)
}

func TestGameRepository_Delete_IsSoft(t *testing.T) {
	gameRepo, testDB := setupGameRepositoryTest(t)

	game := model.Game{Title: "Aurora", Price: 10}
	require.NoError(t, testDB.Create(&game).Error)
	require.NoError(t, gameRepo.Delete(game.ID))

	_, err := gameRepo.FindByID(game.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The row survives under its deleted_at marker.
	var count int64
	testDB.Unscoped().Model(&model.Game{}).Where("id = ?", game.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
