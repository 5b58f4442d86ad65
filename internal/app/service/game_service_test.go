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

func setupGameServiceTest(t *testing.T) (GameService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	gameRepo := repository.NewGameRepository(testDB)
	return NewGameService(gameRepo, testDB), testDB
}

func seedCatalog(t *testing.T, testDB *gorm.DB) (tagIDs, devIDs []uint) {
	tags := []model.Tag{
		{Name: "Action", Category: "genre"},
		{Name: "Co-op", Category: "feature"},
	}
	for i := range tags {
		require.NoError(t, testDB.Create(&tags[i]).Error)
		tagIDs = append(tagIDs, tags[i].ID)
	}

	devs := []model.Dev{
		{Name: "Nebula Works", Type: model.DevTypeDeveloper},
		{Name: "Polar Publishing", Type: model.DevTypePublisher},
	}
	for i := range devs {
		require.NoError(t, testDB.Create(&devs[i]).Error)
		devIDs = append(devIDs, devs[i].ID)
	}
	return tagIDs, devIDs
}

func completeInput(title string, tagIDs, devIDs []uint) CompleteGameInput {
	return CompleteGameInput{
		Game: GameInput{
			Title:       title,
			Description: "A sprawling open world",
			Price:       59.99,
			ReleaseDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		TagIDs: tagIDs,
		DevIDs: devIDs,
		Achievements: []AchievementInput{
			{Title: "First Steps", Icon: "boot.png"},
			{Title: "Completionist", Icon: "crown.png"},
		},
		InitialNews: NewsInput{
			Title:       "Launch announcement",
			Content:     "Out now",
			PublishedAt: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestGameService_CreateCompleteGame_Success(t *testing.T) {
	gameService, testDB := setupGameServiceTest(t)
	tagIDs, devIDs := seedCatalog(t, testDB)

	game, err := gameService.CreateCompleteGame(completeInput("Aurora", tagIDs, devIDs))
	require.NoError(t, err)
	require.NotNil(t, game)

	assert.NotZero(t, game.ID)
	assert.Equal(t, "Aurora", game.Title)
	assert.Len(t, game.Achievements, 2)
	assert.Len(t, game.TagLinks, 2)
	assert.Len(t, game.DevLinks, 2)
	assert.Len(t, game.News, 1)
	assert.Equal(t, "Launch announcement", game.News[0].Title)
}

func TestGameService_CreateCompleteGame_MissingTagPersistsNothing(t *testing.T) {
	gameService, testDB := setupGameServiceTest(t)
	tagIDs, devIDs := seedCatalog(t, testDB)

	input := completeInput("Aurora", append(tagIDs, 999), devIDs)
	game, err := gameService.CreateCompleteGame(input)
	require.Error(t, err)
	assert.Nil(t, game)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.Contains(t, err.Error(), "999")

	// Nothing from the aggregate may survive the failed transaction.
	var games, achievements, links, news int64
	testDB.Model(&model.Game{}).Count(&games)
	testDB.Model(&model.Achievement{}).Count(&achievements)
	testDB.Model(&model.GameTag{}).Count(&links)
	testDB.Model(&model.GameNews{}).Count(&news)
	assert.Zero(t, games)
	assert.Zero(t, achievements)
	assert.Zero(t, links)
	assert.Zero(t, news)
}

func TestGameService_CreateCompleteGame_DuplicateTitle(t *testing.T) {
	gameService, testDB := setupGameServiceTest(t)
	tagIDs, devIDs := seedCatalog(t, testDB)

	_, err := gameService.CreateCompleteGame(completeInput("Aurora", tagIDs, devIDs))
	require.NoError(t, err)

	game, err := gameService.CreateCompleteGame(completeInput("Aurora", tagIDs, devIDs))
	require.Error(t, err)
	assert.Nil(t, game)
	assert.True(t, errors.IsKind(err, errors.KindConflict))
	assert.Equal(t, errors.GameTitleExists, errors.CodeOf(err))

	var games int64
	testDB.Model(&model.Game{}).Count(&games)
	assert.Equal(t, int64(1), games)
}

func TestGameService_CreateCompleteGame_MissingBaseGame(t *testing.T) {
	gameService, testDB := setupGameServiceTest(t)
	tagIDs, devIDs := seedCatalog(t, testDB)

	input := completeInput("Aurora DLC", tagIDs, devIDs)
	missing := uint(42)
	input.Game.BaseGameID = &missing

	_, err := gameService.CreateCompleteGame(input)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.Equal(t, errors.GameBaseNotFound, errors.CodeOf(err))
}

func TestGameService_UpdateGame_SelfBaseGame(t *testing.T) {
	gameService, _ := setupGameServiceTest(t)

	game, err := gameService.CreateGame(GameInput{Title: "Aurora", Price: 10})
	require.NoError(t, err)

	_, err = gameService.UpdateGame(game.ID, GameUpdate{BaseGameID: &game.ID})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindBadRequest))
	assert.Equal(t, errors.GameSelfBaseGame, errors.CodeOf(err))
}

func TestGameService_UpdateGame_RenameToOwnTitle(t *testing.T) {
	gameService, _ := setupGameServiceTest(t)

	game, err := gameService.CreateGame(GameInput{Title: "Aurora", Price: 10})
	require.NoError(t, err)

	title := "Aurora"
	updated, err := gameService.UpdateGame(game.ID, GameUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Aurora", updated.Title)
}

func TestGameService_UpdateGame_TitleTaken(t *testing.T) {
	gameService, _ := setupGameServiceTest(t)

	_, err := gameService.CreateGame(GameInput{Title: "Aurora", Price: 10})
	require.NoError(t, err)
	other, err := gameService.CreateGame(GameInput{Title: "Borealis", Price: 20})
	require.NoError(t, err)

	taken := "Aurora"
	_, err = gameService.UpdateGame(other.ID, GameUpdate{Title: &taken})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConflict))
}

func TestGameService_UpdateGame_UntouchedFieldsKeepValues(t *testing.T) {
	gameService, _ := setupGameServiceTest(t)

	game, err := gameService.CreateGame(GameInput{
		Title:       "Aurora",
		Description: "original",
		Price:       10,
	})
	require.NoError(t, err)

	price := 4.99
	updated, err := gameService.UpdateGame(game.ID, GameUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 4.99, updated.Price)
	assert.Equal(t, "Aurora", updated.Title)
	assert.Equal(t, "original", updated.Description)
}

func TestGameService_AddTag_DuplicateLink(t *testing.T) {
	gameService, testDB := setupGameServiceTest(t)
	tagIDs, _ := seedCatalog(t, testDB)

	game, err := gameService.CreateGame(GameInput{Title: "Aurora", Price: 10})
	require.NoError(t, err)

	require.NoError(t, gameService.AddTag(game.ID, tagIDs[0]))

	err = gameService.AddTag(game.ID, tagIDs[0])
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConflict))
}

func TestGameService_RemoveTag_NotLinked(t *testing.T) {
	gameService, testDB := setupGameServiceTest(t)
	tagIDs, _ := seedCatalog(t, testDB)

	game, err := gameService.CreateGame(GameInput{Title: "Aurora", Price: 10})
	require.NoError(t, err)

	err = gameService.RemoveTag(game.ID, tagIDs[0])
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}
