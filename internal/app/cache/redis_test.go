package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedReply struct {
	Text  string   `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
}

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, srv
}

func TestRedisGetPut(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestRedis(t)
	c := NewRedis[cachedReply](client)

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	want := cachedReply{Text: "CS101 is worth 6 credits.", Items: []string{"a", "b"}}
	require.NoError(t, c.Put(ctx, "GetCourseCredits|courseCode|cs101", want))

	got, ok := c.Get(ctx, "GetCourseCredits|courseCode|cs101")
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, c.Len(ctx))
}

func TestRedisPurgeRespectsPrefix(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestRedis(t)
	c := NewRedis[cachedReply](client)

	require.NoError(t, c.Put(ctx, "k1", cachedReply{Text: "one"}))
	require.NoError(t, c.Put(ctx, "k2", cachedReply{Text: "two"}))
	// A foreign key outside the cache prefix must survive the purge.
	require.NoError(t, client.Set(ctx, "other:app:key", "keep", 0).Err())

	require.NoError(t, c.Purge(ctx))
	assert.Equal(t, 0, c.Len(ctx))
	assert.True(t, srv.Exists("other:app:key"))
}

func TestRedisCustomPrefixIsolatesCaches(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestRedis(t)

	a := NewRedis[cachedReply](client, WithKeyPrefix[cachedReply]("a:"))
	b := NewRedis[cachedReply](client, WithKeyPrefix[cachedReply]("b:"))

	require.NoError(t, a.Put(ctx, "k", cachedReply{Text: "from a"}))
	require.NoError(t, b.Put(ctx, "k", cachedReply{Text: "from b"}))

	got, ok := a.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "from a", got.Text)

	require.NoError(t, a.Purge(ctx))
	_, ok = a.Get(ctx, "k")
	assert.False(t, ok)
	_, ok = b.Get(ctx, "k")
	assert.True(t, ok)
}

func TestRedisDegradesToMissOnBadPayload(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestRedis(t)
	c := NewRedis[cachedReply](client)

	require.NoError(t, srv.Set("syllabot:answers:corrupt", "{not json"))
	_, ok := c.Get(ctx, "corrupt")
	assert.False(t, ok)
}
