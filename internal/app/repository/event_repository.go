package repository

import (
	"time"

	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/pkg/logger"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(event *model.Event) error {
	return r.db.Create(event).Error
}

func (r *EventRepository) FindByID(id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) FindByGameID(gameID uint) ([]model.Event, error) {
	var events []model.Event
	err := r.db.Where("game_id = ?", gameID).
		Order("start_date DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// FindActive lists events running at the given instant.
func (r *EventRepository) FindActive(now time.Time) ([]model.Event, error) {
	var events []model.Event
	err := r.db.Where("active = ? AND start_date <= ? AND end_date > ?", true, now, now).
		Order("end_date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// DeactivateEnded clears the active flag on every event whose end date has
// passed. Used by the scheduler; returns the number of rows touched.
func (r *EventRepository) DeactivateEnded(now time.Time) (int64, error) {
	result := r.db.Model(&model.Event{}).
		Where("active = ? AND end_date <= ?", true, now).
		Update("active", false)
	if result.Error != nil {
		logger.Error("Failed to deactivate ended events", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *EventRepository) Update(event *model.Event) error {
	return r.db.Save(event).Error
}

func (r *EventRepository) Delete(id uint) error {
	return r.db.Delete(&model.Event{}, id).Error
}
