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

func setupEventServiceTest(t *testing.T) (*EventService, *gorm.DB, model.Game) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	game := model.Game{Title: "Aurora", Price: 59.99}
	require.NoError(t, testDB.Create(&game).Error)

	eventRepo := repository.NewEventRepository(testDB)
	return NewEventService(eventRepo, testDB), testDB, game
}

func TestEventService_CreateEvent(t *testing.T) {
	eventService, _, game := setupEventServiceTest(t)

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(24 * time.Hour)
	event, err := eventService.CreateEvent(game.ID, model.EventSale, start, end)
	require.NoError(t, err)
	assert.Equal(t, game.ID, event.GameID)
	assert.True(t, event.Active)
}

func TestEventService_CreateEvent_InvalidDatesPersistsNothing(t *testing.T) {
	eventService, testDB, game := setupEventServiceTest(t)

	start := time.Now()
	cases := map[string]time.Time{
		"end before start": start.Add(-time.Hour),
		"end equals start": start,
	}
	for name, end := range cases {
		event, err := eventService.CreateEvent(game.ID, model.EventSale, start, end)
		require.Error(t, err, name)
		assert.Nil(t, event, name)
		assert.True(t, errors.IsKind(err, errors.KindBadRequest), name)
		assert.Equal(t, errors.EventInvalidDates, errors.CodeOf(err), name)
	}

	var total int64
	testDB.Model(&model.Event{}).Count(&total)
	assert.Zero(t, total)
}

func TestEventService_CreateEvent_UnknownGame(t *testing.T) {
	eventService, _, _ := setupEventServiceTest(t)

	_, err := eventService.CreateEvent(9999, model.EventSale, time.Now(), time.Now().Add(time.Hour))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.Equal(t, errors.GameNotFound, errors.CodeOf(err))
}

func TestEventService_UpdateEvent_MergedDateValidation(t *testing.T) {
	eventService, _, game := setupEventServiceTest(t)

	start := time.Now()
	event, err := eventService.CreateEvent(game.ID, model.EventSale, start, start.Add(48*time.Hour))
	require.NoError(t, err)

	// Moving only the end below the stored start must fail against the
	// merged pair.
	badEnd := start.Add(-time.Hour)
	_, err = eventService.UpdateEvent(event.ID, EventUpdate{EndDate: &badEnd})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindBadRequest))
	assert.Equal(t, errors.EventInvalidDates, errors.CodeOf(err))

	goodEnd := start.Add(72 * time.Hour)
	updated, err := eventService.UpdateEvent(event.ID, EventUpdate{EndDate: &goodEnd})
	require.NoError(t, err)
	assert.WithinDuration(t, goodEnd, updated.EndDate, time.Second)
	assert.WithinDuration(t, start, updated.StartDate, time.Second)
}

func TestEventService_UpdateEvent_UntouchedDatesNotRevalidated(t *testing.T) {
	eventService, testDB, game := setupEventServiceTest(t)

	// A row whose range is already invalid can still have unrelated fields
	// updated; only touched dates trigger the range check.
	stale := model.Event{
		GameID:    game.ID,
		Type:      model.EventSale,
		StartDate: time.Now(),
		EndDate:   time.Now().Add(-time.Hour),
		Active:    true,
	}
	require.NoError(t, testDB.Create(&stale).Error)

	inactive := false
	updated, err := eventService.UpdateEvent(stale.ID, EventUpdate{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.Active)
}

func TestEventService_DeactivateEnded(t *testing.T) {
	eventService, testDB, game := setupEventServiceTest(t)

	ended := model.Event{
		GameID:    game.ID,
		Type:      model.EventSale,
		StartDate: time.Now().Add(-48 * time.Hour),
		EndDate:   time.Now().Add(-time.Hour),
		Active:    true,
	}
	running := model.Event{
		GameID:    game.ID,
		Type:      model.EventFreeWeekend,
		StartDate: time.Now().Add(-time.Hour),
		EndDate:   time.Now().Add(24 * time.Hour),
		Active:    true,
	}
	require.NoError(t, testDB.Create(&ended).Error)
	require.NoError(t, testDB.Create(&running).Error)

	count, err := eventService.DeactivateEnded()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var stored model.Event
	require.NoError(t, testDB.First(&stored, ended.ID).Error)
	assert.False(t, stored.Active)
	stored = model.Event{}
	require.NoError(t, testDB.First(&stored, running.ID).Error)
	assert.True(t, stored.Active)
}
