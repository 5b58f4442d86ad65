package service

import (
	"context"
	"time"

	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/repository"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/jwhan/playgrid-backend/pkg/logger"
	"github.com/jwhan/playgrid-backend/pkg/redis"
	"github.com/jwhan/playgrid-backend/pkg/util"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(input UserInput) (*model.User, *util.TokenPair, error)
	Login(username, password string) (*model.User, *util.TokenPair, error)
	RefreshToken(refreshToken string) (*util.TokenPair, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo      repository.UserRepository
	db            *gorm.DB
	cache         *redis.Client
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	gdb *gorm.DB,
	cache *redis.Client,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		db:            gdb,
		cache:         cache,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// Register creates an account and issues a token pair. Username and email
// uniqueness are checked in the same transaction as the insert.
func (s *authService) Register(input UserInput) (*model.User, *util.TokenPair, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"username": input.Username,
		"email":    input.Email,
	})

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"username": input.Username,
		})
		return nil, nil, errors.Internal(err, "failed to hash password")
	}

	var user *model.User
	err = db.RunAtomically(s.db, func(tx *gorm.DB) error {
		free, err := keyFree(tx, &model.User{}, "username", input.Username, 0)
		if err != nil {
			return errors.Classify(err, "user")
		}
		if !free {
			return errors.Conflict(errors.AuthUsernameExists, "username %q is already taken", input.Username)
		}

		free, err = keyFree(tx, &model.User{}, "email", input.Email, 0)
		if err != nil {
			return errors.Classify(err, "user")
		}
		if !free {
			return errors.Conflict(errors.AuthEmailExists, "email %q is already registered", input.Email)
		}

		created := &model.User{
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: hash,
			Age:          input.Age,
			Region:       input.Region,
			Role:         model.RoleUser,
		}
		if err := tx.Create(created).Error; err != nil {
			return errors.Classify(err, "user")
		}
		user = created
		return nil
	})
	if err != nil {
		logger.Warn("Registration failed", map[string]interface{}{
			"username": input.Username,
			"error":    err.Error(),
		})
		return nil, nil, err
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, errors.Internal(err, "failed to generate tokens")
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, tokens, nil
}

// Login verifies credentials and issues a token pair. An unknown username
// and a wrong password report the same error.
func (s *authService) Login(username, password string) (*model.User, *util.TokenPair, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"username": username,
	})

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"username": username,
			})
			return nil, nil, errors.BadRequest(errors.AuthInvalidCredentials, "invalid username or password")
		}
		return nil, nil, errors.Classify(err, "user")
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: wrong password", map[string]interface{}{
			"username": username,
		})
		return nil, nil, errors.BadRequest(errors.AuthInvalidCredentials, "invalid username or password")
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		return nil, nil, errors.Internal(err, "failed to generate tokens")
	}

	logger.Info("Login successful", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, tokens, nil
}

// RefreshToken exchanges a valid refresh token for a new pair.
func (s *authService) RefreshToken(refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, util.ErrExpiredToken) {
			return nil, errors.BadRequest(errors.AuthTokenExpired, "refresh token has expired")
		}
		return nil, errors.BadRequest(errors.AuthTokenInvalid, "invalid refresh token")
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, errors.Classify(err, "user")
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		return nil, errors.Internal(err, "failed to generate tokens")
	}
	return tokens, nil
}

// Logout blacklists the presented token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := util.ValidateToken(token, s.jwtSecret)
	if err != nil {
		// Already invalid or expired, nothing to revoke.
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	if s.cache == nil {
		return nil
	}
	if err := s.cache.BlacklistToken(ctx, token, remaining); err != nil {
		return errors.Internal(err, "failed to revoke token")
	}

	logger.Info("User logged out", map[string]interface{}{
		"user_id": claims.UserID,
	})
	return nil
}
