package db

import (
	"testing"

	"github.com/jwhan/playgrid-backend/internal/app/model"
	apperrors "github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTxnTest(t *testing.T) *gorm.DB {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		CleanupTestDB(testDB)
	})
	return testDB
}

func TestRunAtomically_Commit(t *testing.T) {
	testDB := setupTxnTest(t)

	err := RunAtomically(testDB, func(tx *gorm.DB) error {
		return tx.Create(&model.Tag{Name: "Roguelike", Category: "genre"}).Error
	})
	require.NoError(t, err)

	var count int64
	testDB.Model(&model.Tag{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRunAtomically_ErrorRollsBackEverything(t *testing.T) {
	testDB := setupTxnTest(t)

	returned := apperrors.NotFound(apperrors.TagNotFound, "tag 9 not found")
	err := RunAtomically(testDB, func(tx *gorm.DB) error {
		if err := tx.Create(&model.Tag{Name: "Roguelike", Category: "genre"}).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.Tag{Name: "Deckbuilder", Category: "genre"}).Error; err != nil {
			return err
		}
		return returned
	})
	require.Error(t, err)

	// The error propagates unchanged and no write survives.
	assert.Same(t, returned, err.(*apperrors.Error))

	var count int64
	testDB.Model(&model.Tag{}).Count(&count)
	assert.Zero(t, count)
}

func TestRunAtomically_PanicRollsBack(t *testing.T) {
	testDB := setupTxnTest(t)

	err := RunAtomically(testDB, func(tx *gorm.DB) error {
		if err := tx.Create(&model.Tag{Name: "Roguelike", Category: "genre"}).Error; err != nil {
			return err
		}
		panic("boom")
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))

	var count int64
	testDB.Model(&model.Tag{}).Count(&count)
	assert.Zero(t, count)
}

func TestRunAtomically_SnapshotVisibleInsideTxn(t *testing.T) {
	testDB := setupTxnTest(t)

	err := RunAtomically(testDB, func(tx *gorm.DB) error {
		if err := tx.Create(&model.Tag{Name: "Roguelike", Category: "genre"}).Error; err != nil {
			return err
		}
		// A read through the same handle sees the uncommitted write.
		var count int64
		if err := tx.Model(&model.Tag{}).Count(&count).Error; err != nil {
			return err
		}
		assert.Equal(t, int64(1), count)
		return nil
	})
	require.NoError(t, err)
}

func TestConfigureTxnBounds_IgnoresNonPositive(t *testing.T) {
	t.Cleanup(func() {
		ConfigureTxnBounds(DefaultLockWait, DefaultTxnTimeout)
	})

	ConfigureTxnBounds(0, 0)
	assert.Equal(t, DefaultLockWait, lockWait)
	assert.Equal(t, DefaultTxnTimeout, txnTimeout)
}
