package adapter

import (
	"context"
	"testing"
	"time"

	"quizforge/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheAdapter_Get(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectGet("quizforge:generation:quiz:abc").SetVal(`{"title":"T"}`)

	val, err := cache.Get(context.Background(), "quizforge:generation:quiz:abc")

	require.NoError(t, err)
	assert.Equal(t, `{"title":"T"}`, val)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Get_Miss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectGet("missing").RedisNil()

	_, err := cache.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Set(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectSet("key", "value", 10*time.Minute).SetVal("OK")

	err := cache.Set(context.Background(), "key", "value", 10*time.Minute)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Delete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectDel("key").SetVal(1)

	err := cache.Delete(context.Background(), "key")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
