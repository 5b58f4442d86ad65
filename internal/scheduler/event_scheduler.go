package scheduler

import (
	"github.com/jwhan/playgrid-backend/internal/app/service"
	"github.com/jwhan/playgrid-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// EventScheduler periodically deactivates promotions whose end date has
// passed.
type EventScheduler struct {
	cron         *cron.Cron
	eventService *service.EventService
}

func NewEventScheduler(eventService *service.EventService) *EventScheduler {
	return &EventScheduler{
		cron:         cron.New(),
		eventService: eventService,
	}
}

// Start schedules the sweep at the top of every hour.
func (s *EventScheduler) Start() error {
	_, err := s.cron.AddFunc("0 * * * *", func() {
		logger.Info("Starting scheduled event deactivation sweep", nil)

		count, err := s.eventService.DeactivateEnded()
		if err != nil {
			logger.Error("Failed to deactivate ended events", err)
			return
		}

		logger.Info("Event deactivation sweep finished", map[string]interface{}{
			"deactivated": count,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for event deactivation", err)
		return err
	}

	s.cron.Start()
	logger.Info("Event scheduler started (hourly)", nil)
	return nil
}

// Stop stops the scheduler.
func (s *EventScheduler) Stop() {
	logger.Info("Stopping event scheduler", nil)
	s.cron.Stop()
}
