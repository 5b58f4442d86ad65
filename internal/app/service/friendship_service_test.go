package service

import (
	"testing"

	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/repository"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupFriendshipServiceTest(t *testing.T) (FriendshipService, *gorm.DB, model.User, model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	arin := model.User{Username: "arin", Email: "arin@playgrid.dev", PasswordHash: "x"}
	mika := model.User{Username: "mika", Email: "mika@playgrid.dev", PasswordHash: "x"}
	require.NoError(t, testDB.Create(&arin).Error)
	require.NoError(t, testDB.Create(&mika).Error)

	friendshipRepo := repository.NewFriendshipRepository(testDB)
	return NewFriendshipService(friendshipRepo, testDB, nil), testDB, arin, mika
}

func TestFriendshipService_SendRequest(t *testing.T) {
	friendshipService, _, arin, mika := setupFriendshipServiceTest(t)

	friendship, err := friendshipService.SendRequest(arin.ID, mika.ID)
	require.NoError(t, err)
	assert.Equal(t, arin.ID, friendship.UserID)
	assert.Equal(t, mika.ID, friendship.FriendID)
	assert.Equal(t, model.FriendshipPending, friendship.Status)
}

func TestFriendshipService_SendRequest_Self(t *testing.T) {
	friendshipService, _, _, _ := setupFriendshipServiceTest(t)

	// The self check fires before anything else, even for an ID with no
	// user behind it.
	friendship, err := friendshipService.SendRequest(7, 7)
	require.Error(t, err)
	assert.Nil(t, friendship)
	assert.True(t, errors.IsKind(err, errors.KindBadRequest))
	assert.Equal(t, errors.FriendshipSelf, errors.CodeOf(err))
}

func TestFriendshipService_SendRequest_DuplicateLeavesFirstUntouched(t *testing.T) {
	friendshipService, testDB, arin, mika := setupFriendshipServiceTest(t)

	first, err := friendshipService.SendRequest(arin.ID, mika.ID)
	require.NoError(t, err)

	_, err = friendshipService.SendRequest(arin.ID, mika.ID)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConflict))
	assert.Equal(t, errors.FriendshipExists, errors.CodeOf(err))

	var stored model.Friendship
	require.NoError(t, testDB.First(&stored, first.ID).Error)
	assert.Equal(t, model.FriendshipPending, stored.Status)

	var total int64
	testDB.Model(&model.Friendship{}).Count(&total)
	assert.Equal(t, int64(1), total)
}

func TestFriendshipService_SendRequest_UnknownFriend(t *testing.T) {
	friendshipService, _, arin, _ := setupFriendshipServiceTest(t)

	_, err := friendshipService.SendRequest(arin.ID, 9999)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}

func TestFriendshipService_AcceptRequest(t *testing.T) {
	friendshipService, _, arin, mika := setupFriendshipServiceTest(t)

	_, err := friendshipService.SendRequest(arin.ID, mika.ID)
	require.NoError(t, err)

	accepted, err := friendshipService.AcceptRequest(mika.ID, arin.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FriendshipAccepted, accepted.Status)
}

func TestFriendshipService_AcceptRequest_AlreadyAccepted(t *testing.T) {
	friendshipService, _, arin, mika := setupFriendshipServiceTest(t)

	_, err := friendshipService.SendRequest(arin.ID, mika.ID)
	require.NoError(t, err)
	_, err = friendshipService.AcceptRequest(mika.ID, arin.ID)
	require.NoError(t, err)

	_, err = friendshipService.AcceptRequest(mika.ID, arin.ID)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConflict))
}

func TestFriendshipService_AcceptRequest_NoRequest(t *testing.T) {
	friendshipService, _, arin, mika := setupFriendshipServiceTest(t)

	_, err := friendshipService.AcceptRequest(mika.ID, arin.ID)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.Equal(t, errors.FriendshipNotFound, errors.CodeOf(err))
}

func TestFriendshipService_BlockUser_UpgradesExistingRelation(t *testing.T) {
	friendshipService, testDB, arin, mika := setupFriendshipServiceTest(t)

	_, err := friendshipService.SendRequest(arin.ID, mika.ID)
	require.NoError(t, err)

	blocked, err := friendshipService.BlockUser(arin.ID, mika.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FriendshipBlocked, blocked.Status)

	var total int64
	testDB.Model(&model.Friendship{}).Count(&total)
	assert.Equal(t, int64(1), total)
}

func TestFriendshipService_RemoveFriendship(t *testing.T) {
	friendshipService, testDB, arin, mika := setupFriendshipServiceTest(t)

	_, err := friendshipService.SendRequest(arin.ID, mika.ID)
	require.NoError(t, err)

	require.NoError(t, friendshipService.RemoveFriendship(arin.ID, mika.ID))

	var total int64
	testDB.Model(&model.Friendship{}).Count(&total)
	assert.Zero(t, total)

	err = friendshipService.RemoveFriendship(arin.ID, mika.ID)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}
