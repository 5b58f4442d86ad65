package service

import (
	"time"

	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/repository"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/jwhan/playgrid-backend/pkg/logger"
	"gorm.io/gorm"
)

// EventUpdate is a field update set: nil means untouched. A touched date is
// validated against the other date's stored value when that one is
// untouched.
type EventUpdate struct {
	Type      *model.EventType
	StartDate *time.Time
	EndDate   *time.Time
	Active    *bool
}

type EventService struct {
	eventRepo *repository.EventRepository
	db        *gorm.DB
}

func NewEventService(eventRepo *repository.EventRepository, gdb *gorm.DB) *EventService {
	return &EventService{eventRepo: eventRepo, db: gdb}
}

// CreateEvent schedules a promotion for a game. EndDate must be strictly
// after StartDate; an equal pair is rejected.
func (s *EventService) CreateEvent(gameID uint, eventType model.EventType, startDate, endDate time.Time) (*model.Event, error) {
	if !dateRangeValid(startDate, endDate) {
		return nil, errors.BadRequest(errors.EventInvalidDates, "end date must be strictly after start date")
	}

	var event *model.Event
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		exists, err := recordExists(tx, &model.Game{}, gameID)
		if err != nil {
			return errors.Classify(err, "game")
		}
		if !exists {
			return errors.NotFound(errors.GameNotFound, "game %d not found", gameID)
		}

		created := &model.Event{
			GameID:    gameID,
			Type:      eventType,
			StartDate: startDate,
			EndDate:   endDate,
			Active:    true,
		}
		if err := tx.Create(created).Error; err != nil {
			return errors.Classify(err, "event")
		}
		event = created
		return nil
	})
	if err != nil {
		logger.Warn("Event creation failed", map[string]interface{}{
			"game_id": gameID,
			"type":    eventType,
			"error":   err.Error(),
		})
		return nil, err
	}

	logger.Info("Event created", map[string]interface{}{
		"event_id": event.ID,
		"game_id":  gameID,
		"type":     eventType,
	})
	return event, nil
}

func (s *EventService) GetEventByID(id uint) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		return nil, errors.Classify(err, "event")
	}
	return event, nil
}

func (s *EventService) ListGameEvents(gameID uint) ([]model.Event, error) {
	events, err := s.eventRepo.FindByGameID(gameID)
	if err != nil {
		return nil, errors.Classify(err, "event")
	}
	return events, nil
}

func (s *EventService) ListActiveEvents() ([]model.Event, error) {
	events, err := s.eventRepo.FindActive(time.Now())
	if err != nil {
		return nil, errors.Classify(err, "event")
	}
	return events, nil
}

// UpdateEvent applies a partial update. Touching either date re-validates
// the range against the merged pair, so shrinking an event below its start
// is caught even when only the end moves.
func (s *EventService) UpdateEvent(id uint, update EventUpdate) (*model.Event, error) {
	var updated *model.Event
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		var event model.Event
		if err := tx.First(&event, id).Error; err != nil {
			return errors.Classify(err, "event")
		}

		if update.StartDate != nil || update.EndDate != nil {
			start := event.StartDate
			end := event.EndDate
			if update.StartDate != nil {
				start = *update.StartDate
			}
			if update.EndDate != nil {
				end = *update.EndDate
			}
			if !dateRangeValid(start, end) {
				return errors.BadRequest(errors.EventInvalidDates, "end date must be strictly after start date")
			}
			event.StartDate = start
			event.EndDate = end
		}

		if update.Type != nil {
			event.Type = *update.Type
		}
		if update.Active != nil {
			event.Active = *update.Active
		}

		if err := tx.Save(&event).Error; err != nil {
			return errors.Classify(err, "event")
		}
		updated = &event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeactivateEnded clears the active flag on events whose end date has
// passed. Returns the number of events deactivated.
func (s *EventService) DeactivateEnded() (int64, error) {
	count, err := s.eventRepo.DeactivateEnded(time.Now())
	if err != nil {
		return 0, errors.Classify(err, "event")
	}
	return count, nil
}

func (s *EventService) DeleteEvent(id uint) error {
	if _, err := s.eventRepo.FindByID(id); err != nil {
		return errors.Classify(err, "event")
	}
	if err := s.eventRepo.Delete(id); err != nil {
		return errors.Classify(err, "event")
	}
	return nil
}
