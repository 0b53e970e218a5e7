package kvstore

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, "getfit:")
	ctx := context.Background()

	mock.ExpectGet("getfit:userProfile").SetVal(`{"id":"user123"}`)
	mock.ExpectGet("getfit:quizAnswers").RedisNil()
	mock.ExpectGet("getfit:workoutLog").SetErr(errors.New("connection refused"))

	got, err := store.Get(ctx, "userProfile")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"user123"}`), got)

	_, err = store.Get(ctx, "quizAnswers")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, "workoutLog")
	assert.ErrorContains(t, err, "connection refused")
	assert.NotErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_SetExistsDelete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, "getfit:")
	ctx := context.Background()

	mock.ExpectSet("getfit:quizAnswers", `{"1":"get_fit"}`, 0).SetVal("OK")
	mock.ExpectExists("getfit:quizAnswers").SetVal(1)
	mock.ExpectDel("getfit:quizAnswers").SetVal(1)
	mock.ExpectExists("getfit:quizAnswers").SetVal(0)

	require.NoError(t, store.Set(ctx, "quizAnswers", []byte(`{"1":"get_fit"}`)))

	exists, err := store.Exists(ctx, "quizAnswers")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, "quizAnswers"))

	exists, err = store.Exists(ctx, "quizAnswers")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_ExistsError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, "")

	mock.ExpectExists("quizAnswers").SetErr(errors.New("timeout"))

	_, err := store.Exists(context.Background(), "quizAnswers")
	assert.ErrorContains(t, err, "redis exists [quizAnswers]: timeout")
}
