package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
)

func setupMiniredis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	t.Cleanup(func() { client = nil })
}

func TestAsideFetchesOnMissAndServesFromCache(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	var got string
	fetch := func() error {
		fetches++
		got = "from-db"
		return nil
	}

	assert.NoError(t, Aside(ctx, "k", &got, UserTTL, fetch))
	assert.Equal(t, "from-db", got)
	assert.Equal(t, 1, fetches)

	var again string
	assert.NoError(t, Aside(ctx, "k", &again, UserTTL, fetch))
	assert.Equal(t, "from-db", again)
	assert.Equal(t, 1, fetches, "second read should hit the cache")
}

func TestVerificationTokenRoundTrip(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	assert.NoError(t, StoreVerificationToken(ctx, "tok-1", 42))

	id, err := ConsumeVerificationToken(ctx, "tok-1")
	assert.NoError(t, err)
	assert.Equal(t, uint(42), id)

	// Single use: a second consume misses.
	id, err = ConsumeVerificationToken(ctx, "tok-1")
	assert.NoError(t, err)
	assert.Zero(t, id)
}

func TestAsideWithoutRedisDegradesToFetch(t *testing.T) {
	client = nil
	fetches := 0
	var got string
	fetch := func() error {
		fetches++
		got = "direct"
		return nil
	}

	assert.NoError(t, Aside(context.Background(), "k", &got, UserTTL, fetch))
	assert.NoError(t, Aside(context.Background(), "k", &got, UserTTL, fetch))
	assert.Equal(t, 2, fetches)
}
