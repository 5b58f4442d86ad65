package service

import (
	"context"
	"testing"
	"time"

	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/repository"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/jwhan/playgrid-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const authTestSecret = "playgrid-test-signing-secret"

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	authService := NewAuthService(userRepo, testDB, nil, authTestSecret, 15*time.Minute, 7*24*time.Hour)
	return authService, testDB
}

func registerInput() UserInput {
	return UserInput{
		Username: "arin",
		Email:    "arin@playgrid.dev",
		Password: "correct horse battery",
		Age:      27,
		Region:   "EU",
	}
}

func TestAuthService_Register(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, tokens, err := authService.Register(registerInput())
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, tokens)

	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register(registerInput())
	require.NoError(t, err)

	second := registerInput()
	second.Email = "other@playgrid.dev"
	_, _, err = authService.Register(second)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConflict))
	assert.Equal(t, errors.AuthUsernameExists, errors.CodeOf(err))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register(registerInput())
	require.NoError(t, err)

	second := registerInput()
	second.Username = "other"
	_, _, err = authService.Register(second)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConflict))
	assert.Equal(t, errors.AuthEmailExists, errors.CodeOf(err))
}

func TestAuthService_Login(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register(registerInput())
	require.NoError(t, err)

	user, tokens, err := authService.Login("arin", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, "arin", user.Username)
	assert.NotEmpty(t, tokens.AccessToken)

	claims, err := util.ValidateToken(tokens.AccessToken, authTestSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register(registerInput())
	require.NoError(t, err)

	// Unknown user and wrong password produce the same error.
	_, _, unknownErr := authService.Login("nobody", "whatever")
	_, _, wrongErr := authService.Login("arin", "wrong password")

	for _, err := range []error{unknownErr, wrongErr} {
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.KindBadRequest))
		assert.Equal(t, errors.AuthInvalidCredentials, errors.CodeOf(err))
	}
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthService_RefreshToken(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, tokens, err := authService.Register(registerInput())
	require.NoError(t, err)

	fresh, err := authService.RefreshToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
	assert.NotEmpty(t, fresh.RefreshToken)
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.RefreshToken("not-a-token")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindBadRequest))
	assert.Equal(t, errors.AuthTokenInvalid, errors.CodeOf(err))
}

func TestAuthService_Logout_NoCacheIsNoop(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, tokens, err := authService.Register(registerInput())
	require.NoError(t, err)

	// Without a cache there is nothing to revoke; logout still succeeds.
	require.NoError(t, authService.Logout(context.Background(), tokens.AccessToken))
	require.NoError(t, authService.Logout(context.Background(), "garbage"))
}
