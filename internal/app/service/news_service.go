package service

import (
	"time"

	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/repository"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/jwhan/playgrid-backend/internal/realtime"
	"gorm.io/gorm"
)

// NewsUpdate is a field update set: nil means untouched.
type NewsUpdate struct {
	Title       *string
	Content     *string
	PublishedAt *time.Time
}

type NewsService struct {
	newsRepo *repository.NewsRepository
	db       *gorm.DB
	hub      *realtime.Hub
}

func NewNewsService(newsRepo *repository.NewsRepository, gdb *gorm.DB, hub *realtime.Hub) *NewsService {
	return &NewsService{newsRepo: newsRepo, db: gdb, hub: hub}
}

// PublishNews attaches an announcement to an existing game and pushes it to
// connected clients.
func (s *NewsService) PublishNews(gameID uint, title, content string, publishedAt time.Time) (*model.GameNews, error) {
	if publishedAt.IsZero() {
		publishedAt = time.Now()
	}

	var news *model.GameNews
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		exists, err := recordExists(tx, &model.Game{}, gameID)
		if err != nil {
			return errors.Classify(err, "game")
		}
		if !exists {
			return errors.NotFound(errors.GameNotFound, "game %d not found", gameID)
		}

		created := &model.GameNews{
			GameID:      gameID,
			Title:       title,
			Content:     content,
			PublishedAt: publishedAt,
		}
		if err := tx.Create(created).Error; err != nil {
			return errors.Classify(err, "game news")
		}
		news = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Broadcast(realtime.Notification{
			Type:   realtime.NotifGameNews,
			GameID: news.GameID,
			NewsID: news.ID,
			Title:  news.Title,
		})
	}
	return news, nil
}

func (s *NewsService) GetNewsByID(id uint) (*model.GameNews, error) {
	news, err := s.newsRepo.FindByID(id)
	if err != nil {
		return nil, errors.Classify(err, "game news")
	}
	return news, nil
}

func (s *NewsService) ListGameNews(gameID uint, offset, limit int) ([]model.GameNews, int64, error) {
	news, total, err := s.newsRepo.FindByGameID(gameID, offset, limit)
	if err != nil {
		return nil, 0, errors.Classify(err, "game news")
	}
	return news, total, nil
}

func (s *NewsService) UpdateNews(id uint, update NewsUpdate) (*model.GameNews, error) {
	var updated *model.GameNews
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		var news model.GameNews
		if err := tx.First(&news, id).Error; err != nil {
			return errors.Classify(err, "game news")
		}

		if update.Title != nil {
			news.Title = *update.Title
		}
		if update.Content != nil {
			news.Content = *update.Content
		}
		if update.PublishedAt != nil {
			news.PublishedAt = *update.PublishedAt
		}

		if err := tx.Save(&news).Error; err != nil {
			return errors.Classify(err, "game news")
		}
		updated = &news
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *NewsService) DeleteNews(id uint) error {
	if _, err := s.newsRepo.FindByID(id); err != nil {
		return errors.Classify(err, "game news")
	}
	if err := s.newsRepo.Delete(id); err != nil {
		return errors.Classify(err, "game news")
	}
	return nil
}
