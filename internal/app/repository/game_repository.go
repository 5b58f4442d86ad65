package repository

import (
	"fmt"

	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/pkg/logger"
	"gorm.io/gorm"
)

type GameSort string

const (
	GameSortPrice       GameSort = "price"
	GameSortReleaseDate GameSort = "release_date"
	GameSortCreatedAt   GameSort = "created_at"
)

type GameFilter struct {
	TagID         *uint
	DevID         *uint
	Search        string
	MaxPrice      *float64
	SortBy        GameSort
	SortAscending bool
	Limit         int
	Offset        int
}

type GameRepository interface {
	Create(game *model.Game) error
	FindByID(id uint) (*model.Game, error)
	FindByIDComposed(id uint) (*model.Game, error)
	FindByTitle(title string) (*model.Game, error)
	FindWithFilter(filter GameFilter) ([]model.Game, error)
	Update(game *model.Game) error
	Delete(id uint) error
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(game *model.Game) error {
	logger.Debug("Creating game in database", map[string]interface{}{
		"title": game.Title,
		"price": game.Price,
	})

	if err := r.db.Create(game).Error; err != nil {
		logger.Error("Failed to create game in database", err, map[string]interface{}{
			"title": game.Title,
		})
		return err
	}

	logger.Debug("Game created in database", map[string]interface{}{
		"game_id": game.ID,
		"title":   game.Title,
	})
	return nil
}

func (r *gameRepository) FindByID(id uint) (*model.Game, error) {
	var game model.Game
	if err := r.db.First(&game, id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// FindByIDComposed loads the game with every attached aggregate part:
// achievements, tag links, dev links and news.
func (r *gameRepository) FindByIDComposed(id uint) (*model.Game, error) {
	var game model.Game
	err := r.db.
		Preload("Achievements").
		Preload("TagLinks.Tag").
		Preload("DevLinks.Dev").
		Preload("News").
		Preload("BaseGame").
		First(&game, id).Error
	if err != nil {
		logger.Debug("Failed to find composed game in database", map[string]interface{}{
			"game_id": id,
			"error":   err.Error(),
		})
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) FindByTitle(title string) (*model.Game, error) {
	var game model.Game
	if err := r.db.Where("title = ?", title).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) FindWithFilter(filter GameFilter) ([]model.Game, error) {
	logger.Debug("Finding games with filter", map[string]interface{}{
		"tag_id":    filter.TagID,
		"dev_id":    filter.DevID,
		"search":    filter.Search,
		"max_price": filter.MaxPrice,
		"sort_by":   filter.SortBy,
		"limit":     filter.Limit,
		"offset":    filter.Offset,
	})

	query := r.db.Model(&model.Game{})

	if filter.TagID != nil {
		query = query.Joins("JOIN game_tags ON game_tags.game_id = games.id").
			Where("game_tags.tag_id = ?", *filter.TagID)
	}

	if filter.DevID != nil {
		query = query.Joins("JOIN game_devs ON game_devs.game_id = games.id").
			Where("game_devs.dev_id = ?", *filter.DevID)
	}

	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("games.title LIKE ? OR games.description LIKE ?", like, like)
	}

	if filter.MaxPrice != nil {
		query = query.Where("games.price <= ?", *filter.MaxPrice)
	}

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}
	switch filter.SortBy {
	case GameSortPrice:
		query = query.Order("games.price " + direction)
	case GameSortReleaseDate:
		query = query.Order("games.release_date " + direction)
	default:
		query = query.Order("games.created_at " + direction)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var games []model.Game
	if err := query.Find(&games).Error; err != nil {
		logger.Error("Failed to find games with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, err
	}

	logger.Debug("Games found with filter", map[string]interface{}{
		"count": len(games),
	})
	return games, nil
}

func (r *gameRepository) Update(game *model.Game) error {
	logger.Debug("Updating game in database", map[string]interface{}{
		"game_id": game.ID,
		"title":   game.Title,
	})

	if err := r.db.Save(game).Error; err != nil {
		logger.Error("Failed to update game in database", err, map[string]interface{}{
			"game_id": game.ID,
		})
		return err
	}
	return nil
}

func (r *gameRepository) Delete(id uint) error {
	logger.Debug("Deleting game from database", map[string]interface{}{
		"game_id": id,
	})

	if err := r.db.Delete(&model.Game{}, id).Error; err != nil {
		logger.Error("Failed to delete game from database", err, map[string]interface{}{
			"game_id": id,
		})
		return err
	}
	return nil
}
