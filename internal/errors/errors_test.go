package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "bad_request", KindBadRequest.String())
	assert.Equal(t, "internal", KindInternal.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestConstructors(t *testing.T) {
	err := NotFound(GameNotFound, "game %d not found", 42)
	assert.Equal(t, KindNotFound, err.Kind)
	assert.Equal(t, GameNotFound, err.Code)
	assert.Equal(t, "game 42 not found", err.Error())

	cause := stderrors.New("boom")
	internal := Internal(cause, "migration failed")
	assert.Equal(t, KindInternal, internal.Kind)
	assert.True(t, stderrors.Is(internal, cause))
	assert.Contains(t, internal.Error(), "boom")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(Conflict(TagNameExists, "taken")))
	assert.Equal(t, KindInternal, KindOf(stderrors.New("raw")))

	// A tagged error stays recognizable through fmt wrapping.
	wrapped := fmt.Errorf("adding tag: %w", Conflict(TagNameExists, "taken"))
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, TagNameExists, CodeOf(wrapped))
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(BadRequest(ReviewInvalidRating, "bad"), KindBadRequest))
	assert.False(t, IsKind(BadRequest(ReviewInvalidRating, "bad"), KindConflict))
	assert.False(t, IsKind(nil, KindBadRequest))
}

func TestClassify_TaggedPassesThroughUnchanged(t *testing.T) {
	tagged := Conflict(ReviewExists, "user 1 already reviewed game 2")
	out := Classify(tagged, "review")
	assert.Same(t, tagged, out.(*Error))
}

func TestClassify_RecordNotFound(t *testing.T) {
	out := Classify(gorm.ErrRecordNotFound, "game")
	require.Error(t, out)
	assert.True(t, IsKind(out, KindNotFound))
	assert.Contains(t, out.Error(), "game not found")
}

func TestClassify_UniqueViolation(t *testing.T) {
	// Both the postgres and the sqlite phrasing must land on Conflict; the
	// storage constraint is the authoritative duplicate signal.
	cases := []error{
		stderrors.New(`ERROR: duplicate key value violates unique constraint "idx_users_username" (SQLSTATE 23505)`),
		stderrors.New("UNIQUE constraint failed: users.username"),
	}
	for _, cause := range cases {
		out := Classify(cause, "user")
		assert.True(t, IsKind(out, KindConflict), cause.Error())
		assert.Equal(t, ResourceAlreadyExists, CodeOf(out))
	}
}

func TestClassify_ForeignKeyViolation(t *testing.T) {
	cases := []error{
		stderrors.New(`ERROR: insert or update on table "reviews" violates foreign key constraint "fk_games_reviews" (SQLSTATE 23503)`),
		stderrors.New("FOREIGN KEY constraint failed"),
	}
	for _, cause := range cases {
		out := Classify(cause, "review")
		assert.True(t, IsKind(out, KindNotFound), cause.Error())
	}
}

func TestClassify_CheckViolation(t *testing.T) {
	cause := stderrors.New(`ERROR: new row for relation "reviews" violates check constraint "chk_reviews_rating" (SQLSTATE 23514)`)
	out := Classify(cause, "review")
	assert.True(t, IsKind(out, KindBadRequest))
	assert.Equal(t, ValidationInvalidRange, CodeOf(out))
}

func TestClassify_TimeBounds(t *testing.T) {
	cases := []error{
		context.DeadlineExceeded,
		stderrors.New("ERROR: canceling statement due to lock timeout (SQLSTATE 55P03)"),
		stderrors.New("ERROR: canceling statement due to statement timeout (SQLSTATE 57014)"),
		stderrors.New("ERROR: deadlock detected (SQLSTATE 40P01)"),
	}
	for _, cause := range cases {
		out := Classify(cause, "game")
		assert.True(t, IsKind(out, KindInternal), cause.Error())
		assert.Equal(t, InternalTxnTimeout, CodeOf(out))
	}
}

func TestClassify_UnknownFallsBackToInternal(t *testing.T) {
	out := Classify(stderrors.New("connection reset by peer"), "game")
	assert.True(t, IsKind(out, KindInternal))
	assert.Equal(t, InternalDatabaseError, CodeOf(out))
}

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, Classify(nil, "game"))
}
