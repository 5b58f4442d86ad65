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

// GameInput carries the already-shape-validated fields for a new game.
type GameInput struct {
	Title       string
	Description string
	Price       float64
	ReleaseDate time.Time
	CoverURL    string
	BaseGameID  *uint
}

// GameUpdate is a field update set: nil means untouched, and an untouched
// field is never re-validated.
type GameUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	ReleaseDate *time.Time
	CoverURL    *string
	BaseGameID  *uint
}

// AchievementInput is one achievement created alongside a complete game.
type AchievementInput struct {
	Title string
	Icon  string
}

// NewsInput is the initial announcement created alongside a complete game.
type NewsInput struct {
	Title       string
	Content     string
	PublishedAt time.Time
}

// CompleteGameInput is the full aggregate for CreateCompleteGame.
type CompleteGameInput struct {
	Game         GameInput
	TagIDs       []uint
	DevIDs       []uint
	Achievements []AchievementInput
	InitialNews  NewsInput
}

type GameService interface {
	CreateGame(input GameInput) (*model.Game, error)
	CreateCompleteGame(input CompleteGameInput) (*model.Game, error)
	GetGameByID(id uint) (*model.Game, error)
	ListGames(filter repository.GameFilter) ([]model.Game, error)
	UpdateGame(id uint, update GameUpdate) (*model.Game, error)
	DeleteGame(id uint) error
	AddTag(gameID, tagID uint) error
	RemoveTag(gameID, tagID uint) error
	AddDev(gameID, devID uint) error
	RemoveDev(gameID, devID uint) error
}

type gameService struct {
	gameRepo repository.GameRepository
	db       *gorm.DB
}

func NewGameService(gameRepo repository.GameRepository, gdb *gorm.DB) GameService {
	return &gameService{
		gameRepo: gameRepo,
		db:       gdb,
	}
}

// CreateGame creates a single game after checking its title is free and its
// base game, when referenced, exists. Validation and write share one
// transaction.
func (s *gameService) CreateGame(input GameInput) (*model.Game, error) {
	logger.Info("Creating game", map[string]interface{}{
		"title": input.Title,
		"price": input.Price,
	})

	var game *model.Game
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		created, err := insertGame(tx, input)
		if err != nil {
			return err
		}
		game = created
		return nil
	})
	if err != nil {
		logger.Warn("Game creation failed", map[string]interface{}{
			"title": input.Title,
			"error": err.Error(),
		})
		return nil, err
	}

	logger.Info("Game created successfully", map[string]interface{}{
		"game_id": game.ID,
		"title":   game.Title,
	})
	return game, nil
}

// insertGame validates the title and base-game reference on tx, then writes
// the row. Shared by CreateGame and CreateCompleteGame.
func insertGame(tx *gorm.DB, input GameInput) (*model.Game, error) {
	free, err := keyFree(tx, &model.Game{}, "title", input.Title, 0)
	if err != nil {
		return nil, errors.Classify(err, "game")
	}
	if !free {
		return nil, errors.Conflict(errors.GameTitleExists, "game title %q is already taken", input.Title)
	}

	if input.BaseGameID != nil {
		exists, err := recordExists(tx, &model.Game{}, *input.BaseGameID)
		if err != nil {
			return nil, errors.Classify(err, "game")
		}
		if !exists {
			return nil, errors.NotFound(errors.GameBaseNotFound, "base game %d not found", *input.BaseGameID)
		}
	}

	game := &model.Game{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		ReleaseDate: input.ReleaseDate,
		CoverURL:    input.CoverURL,
		BaseGameID:  input.BaseGameID,
	}
	if err := tx.Create(game).Error; err != nil {
		// A concurrent writer may have taken the title after the pre-check;
		// the unique index is the source of truth.
		return nil, errors.Classify(err, "game")
	}
	return game, nil
}

// CreateCompleteGame creates a game together with its achievements, tag and
// dev links, and initial news as one all-or-nothing unit of work.
func (s *gameService) CreateCompleteGame(input CompleteGameInput) (*model.Game, error) {
	logger.Info("Creating complete game", map[string]interface{}{
		"title":             input.Game.Title,
		"tag_count":         len(input.TagIDs),
		"dev_count":         len(input.DevIDs),
		"achievement_count": len(input.Achievements),
	})

	var composed *model.Game
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		free, err := keyFree(tx, &model.Game{}, "title", input.Game.Title, 0)
		if err != nil {
			return errors.Classify(err, "game")
		}
		if !free {
			return errors.Conflict(errors.GameTitleExists, "game title %q is already taken", input.Game.Title)
		}

		var tags []model.Tag
		if err := tx.Where("id IN ?", input.TagIDs).Find(&tags).Error; err != nil {
			return errors.Classify(err, "tag")
		}
		if len(tags) != len(input.TagIDs) {
			found := make(map[uint]bool, len(tags))
			for _, t := range tags {
				found[t.ID] = true
			}
			return errors.NotFound(errors.TagNotFound, "tags %v not found", missingIDs(input.TagIDs, found))
		}

		var devs []model.Dev
		if err := tx.Where("id IN ?", input.DevIDs).Find(&devs).Error; err != nil {
			return errors.Classify(err, "dev")
		}
		if len(devs) != len(input.DevIDs) {
			found := make(map[uint]bool, len(devs))
			for _, d := range devs {
				found[d.ID] = true
			}
			return errors.NotFound(errors.DevNotFound, "devs %v not found", missingIDs(input.DevIDs, found))
		}

		if input.Game.BaseGameID != nil {
			exists, err := recordExists(tx, &model.Game{}, *input.Game.BaseGameID)
			if err != nil {
				return errors.Classify(err, "game")
			}
			if !exists {
				return errors.NotFound(errors.GameBaseNotFound, "base game %d not found", *input.Game.BaseGameID)
			}
		}

		game := &model.Game{
			Title:       input.Game.Title,
			Description: input.Game.Description,
			Price:       input.Game.Price,
			ReleaseDate: input.Game.ReleaseDate,
			CoverURL:    input.Game.CoverURL,
			BaseGameID:  input.Game.BaseGameID,
		}
		if err := tx.Create(game).Error; err != nil {
			return errors.Classify(err, "game")
		}

		for _, a := range input.Achievements {
			achievement := model.Achievement{
				GameID: game.ID,
				Title:  a.Title,
				Icon:   a.Icon,
			}
			if err := tx.Create(&achievement).Error; err != nil {
				return errors.Classify(err, "achievement")
			}
		}

		for _, tagID := range input.TagIDs {
			if err := tx.Create(&model.GameTag{GameID: game.ID, TagID: tagID}).Error; err != nil {
				return errors.Classify(err, "game tag")
			}
		}

		for _, devID := range input.DevIDs {
			if err := tx.Create(&model.GameDev{GameID: game.ID, DevID: devID}).Error; err != nil {
				return errors.Classify(err, "game dev")
			}
		}

		publishedAt := input.InitialNews.PublishedAt
		if publishedAt.IsZero() {
			publishedAt = time.Now()
		}
		news := model.GameNews{
			GameID:      game.ID,
			Title:       input.InitialNews.Title,
			Content:     input.InitialNews.Content,
			PublishedAt: publishedAt,
		}
		if err := tx.Create(&news).Error; err != nil {
			return errors.Classify(err, "game news")
		}

		// Re-read the composed aggregate through the same snapshot so the
		// caller gets exactly what this transaction wrote.
		var loaded model.Game
		err = tx.
			Preload("Achievements").
			Preload("TagLinks.Tag").
			Preload("DevLinks.Dev").
			Preload("News").
			First(&loaded, game.ID).Error
		if err != nil {
			return errors.Classify(err, "game")
		}
		composed = &loaded
		return nil
	})
	if err != nil {
		logger.Warn("Complete game creation failed, nothing persisted", map[string]interface{}{
			"title": input.Game.Title,
			"error": err.Error(),
		})
		return nil, err
	}

	logger.Info("Complete game created successfully", map[string]interface{}{
		"game_id":           composed.ID,
		"title":             composed.Title,
		"achievement_count": len(composed.Achievements),
		"tag_count":         len(composed.TagLinks),
		"dev_count":         len(composed.DevLinks),
	})
	return composed, nil
}

func (s *gameService) GetGameByID(id uint) (*model.Game, error) {
	game, err := s.gameRepo.FindByIDComposed(id)
	if err != nil {
		return nil, errors.Classify(err, "game")
	}
	return game, nil
}

func (s *gameService) ListGames(filter repository.GameFilter) ([]model.Game, error) {
	games, err := s.gameRepo.FindWithFilter(filter)
	if err != nil {
		return nil, errors.Classify(err, "game")
	}
	return games, nil
}

// UpdateGame re-validates only the fields the update touches: a new title is
// checked for uniqueness excluding this game's own row, and a new base game
// is rejected as a self-reference before its existence is checked.
func (s *gameService) UpdateGame(id uint, update GameUpdate) (*model.Game, error) {
	logger.Info("Updating game", map[string]interface{}{
		"game_id": id,
	})

	var updated *model.Game
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		var game model.Game
		if err := tx.First(&game, id).Error; err != nil {
			return errors.Classify(err, "game")
		}

		if update.Title != nil {
			free, err := keyFree(tx, &model.Game{}, "title", *update.Title, game.ID)
			if err != nil {
				return errors.Classify(err, "game")
			}
			if !free {
				return errors.Conflict(errors.GameTitleExists, "game title %q is already taken", *update.Title)
			}
			game.Title = *update.Title
		}

		if update.BaseGameID != nil {
			if !notSelfReference(*update.BaseGameID, game.ID) {
				return errors.BadRequest(errors.GameSelfBaseGame, "game %d cannot be its own base game", game.ID)
			}
			exists, err := recordExists(tx, &model.Game{}, *update.BaseGameID)
			if err != nil {
				return errors.Classify(err, "game")
			}
			if !exists {
				return errors.NotFound(errors.GameBaseNotFound, "base game %d not found", *update.BaseGameID)
			}
			game.BaseGameID = update.BaseGameID
		}

		if update.Description != nil {
			game.Description = *update.Description
		}
		if update.Price != nil {
			game.Price = *update.Price
		}
		if update.ReleaseDate != nil {
			game.ReleaseDate = *update.ReleaseDate
		}
		if update.CoverURL != nil {
			game.CoverURL = *update.CoverURL
		}

		if err := tx.Save(&game).Error; err != nil {
			return errors.Classify(err, "game")
		}
		updated = &game
		return nil
	})
	if err != nil {
		logger.Warn("Game update failed", map[string]interface{}{
			"game_id": id,
			"error":   err.Error(),
		})
		return nil, err
	}

	logger.Info("Game updated successfully", map[string]interface{}{
		"game_id": updated.ID,
		"title":   updated.Title,
	})
	return updated, nil
}

func (s *gameService) DeleteGame(id uint) error {
	logger.Info("Deleting game", map[string]interface{}{
		"game_id": id,
	})

	if _, err := s.gameRepo.FindByID(id); err != nil {
		return errors.Classify(err, "game")
	}
	if err := s.gameRepo.Delete(id); err != nil {
		return errors.Classify(err, "game")
	}
	return nil
}

// AddTag links a tag to a game. The junction must be free and both sides
// must exist.
func (s *gameService) AddTag(gameID, tagID uint) error {
	return db.RunAtomically(s.db, func(tx *gorm.DB) error {
		free, err := pairFree(tx, &model.GameTag{}, "game_id", gameID, "tag_id", tagID)
		if err != nil {
			return errors.Classify(err, "game tag")
		}
		if !free {
			return errors.Conflict(errors.ResourceAlreadyExists, "game %d already has tag %d", gameID, tagID)
		}

		exists, err := recordExists(tx, &model.Game{}, gameID)
		if err != nil {
			return errors.Classify(err, "game")
		}
		if !exists {
			return errors.NotFound(errors.GameNotFound, "game %d not found", gameID)
		}

		exists, err = recordExists(tx, &model.Tag{}, tagID)
		if err != nil {
			return errors.Classify(err, "tag")
		}
		if !exists {
			return errors.NotFound(errors.TagNotFound, "tag %d not found", tagID)
		}

		if err := tx.Create(&model.GameTag{GameID: gameID, TagID: tagID}).Error; err != nil {
			return errors.Classify(err, "game tag")
		}
		return nil
	})
}

func (s *gameService) RemoveTag(gameID, tagID uint) error {
	return db.RunAtomically(s.db, func(tx *gorm.DB) error {
		result := tx.Where("game_id = ? AND tag_id = ?", gameID, tagID).Delete(&model.GameTag{})
		if result.Error != nil {
			return errors.Classify(result.Error, "game tag")
		}
		if result.RowsAffected == 0 {
			return errors.NotFound(errors.ResourceNotFound, "game %d has no tag %d", gameID, tagID)
		}
		return nil
	})
}

// AddDev links a dev to a game, mirroring AddTag.
func (s *gameService) AddDev(gameID, devID uint) error {
	return db.RunAtomically(s.db, func(tx *gorm.DB) error {
		free, err := pairFree(tx, &model.GameDev{}, "game_id", gameID, "dev_id", devID)
		if err != nil {
			return errors.Classify(err, "game dev")
		}
		if !free {
			return errors.Conflict(errors.ResourceAlreadyExists, "game %d already has dev %d", gameID, devID)
		}

		exists, err := recordExists(tx, &model.Game{}, gameID)
		if err != nil {
			return errors.Classify(err, "game")
		}
		if !exists {
			return errors.NotFound(errors.GameNotFound, "game %d not found", gameID)
		}

		exists, err = recordExists(tx, &model.Dev{}, devID)
		if err != nil {
			return errors.Classify(err, "dev")
		}
		if !exists {
			return errors.NotFound(errors.DevNotFound, "dev %d not found", devID)
		}

		if err := tx.Create(&model.GameDev{GameID: gameID, DevID: devID}).Error; err != nil {
			return errors.Classify(err, "game dev")
		}
		return nil
	})
}

func (s *gameService) RemoveDev(gameID, devID uint) error {
	return db.RunAtomically(s.db, func(tx *gorm.DB) error {
		result := tx.Where("game_id = ? AND dev_id = ?", gameID, devID).Delete(&model.GameDev{})
		if result.Error != nil {
			return errors.Classify(result.Error, "game dev")
		}
		if result.RowsAffected == 0 {
			return errors.NotFound(errors.ResourceNotFound, "game %d has no dev %d", gameID, devID)
		}
		return nil
	})
}
