package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedQuestion struct {
	ID      uint   `json:"id"`
	Subject string `json:"subject"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var missed cachedQuestion
	found, err := GetJSON(ctx, QuestionKey(1), &missed)
	require.NoError(t, err)
	assert.False(t, found)

	want := cachedQuestion{ID: 1, Subject: "sbb가 무엇인가요?"}
	require.NoError(t, SetJSON(ctx, QuestionKey(1), want, QuestionTTL))

	var got cachedQuestion
	found, err = GetJSON(ctx, QuestionKey(1), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestAside_FetchesOnceThenServesFromCache(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedQuestion) func() error {
		return func() error {
			fetches++
			*dest = cachedQuestion{ID: 7, Subject: "cached"}
			return nil
		}
	}

	var first cachedQuestion
	require.NoError(t, Aside(ctx, QuestionKey(7), &first, QuestionTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)

	var second cachedQuestion
	require.NoError(t, Aside(ctx, QuestionKey(7), &second, QuestionTTL, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, first, second)
}

func TestAside_CorruptEntryTreatedAsMiss(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(QuestionKey(7), "not json"))

	fetches := 0
	var got cachedQuestion
	err := Aside(ctx, QuestionKey(7), &got, QuestionTTL, func() error {
		fetches++
		got = cachedQuestion{ID: 7, Subject: "fresh"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "fresh", got.Subject)
}

func TestInvalidate(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, QuestionKey(1), cachedQuestion{ID: 1}, time.Minute))
	require.NoError(t, SetJSON(ctx, UserKey(2), cachedQuestion{ID: 2}, time.Minute))

	InvalidateQuestion(ctx, 1)
	InvalidateUser(ctx, 2)

	assert.False(t, mr.Exists(QuestionKey(1)))
	assert.False(t, mr.Exists(UserKey(2)))
}

func TestCacheDisabled_NilClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	// Every helper is a no-op without a client.
	var got cachedQuestion
	found, err := GetJSON(ctx, QuestionKey(1), &got)
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, SetJSON(ctx, QuestionKey(1), got, time.Minute))
	Invalidate(ctx, QuestionKey(1))

	fetches := 0
	require.NoError(t, Aside(ctx, QuestionKey(1), &got, time.Minute, func() error {
		fetches++
		return nil
	}))
	assert.Equal(t, 1, fetches)
}
