package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedView struct {
	ID   string `json:"_id"`
	Text string `json:"text"`
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	var miss []cachedView
	assert.False(t, c.GetJSON(ctx, "board:b:threads", &miss))

	c.SetJSON(ctx, "board:b:threads", []cachedView{{ID: "1", Text: "hello"}}, 0)

	var got []cachedView
	require.True(t, c.GetJSON(ctx, "board:b:threads", &got))
	assert.Equal(t, []cachedView{{ID: "1", Text: "hello"}}, got)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.SetJSON(ctx, "k", "v", time.Second)
	var v string
	require.True(t, c.GetJSON(ctx, "k", &v))

	now = now.Add(2 * time.Second)
	assert.False(t, c.GetJSON(ctx, "k", &v))
	assert.Empty(t, c.entries)
}

func TestMemoryCacheDeletePattern(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	c.SetJSON(ctx, "board:a:threads", 1, 0)
	c.SetJSON(ctx, "board:a:thread:x", 1, 0)
	c.SetJSON(ctx, "board:ab:threads", 1, 0)
	c.SetJSON(ctx, `board:a*:threads`, 1, 0)

	assert.Equal(t, 2, c.DeletePattern(ctx, "board:a:*"))
	assert.Len(t, c.entries, 2)

	assert.Equal(t, 1, c.DeletePattern(ctx, `board:a\*:*`))
	assert.Len(t, c.entries, 1)
}

func TestMemoryCacheZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.SetJSON(ctx, "k", "v", 0)
	now = now.Add(24 * time.Hour)

	var v string
	require.True(t, c.GetJSON(ctx, "k", &v))
	assert.Equal(t, "v", v)
}

func TestMemoryCacheGenerations(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	gen, ok := c.Generation(ctx, "gen:a")
	require.True(t, ok)
	assert.Zero(t, gen)

	c.BumpGeneration(ctx, "gen:a")
	c.BumpGeneration(ctx, "gen:a")
	gen, _ = c.Generation(ctx, "gen:a")
	assert.EqualValues(t, 2, gen)

	gen, _ = c.Generation(ctx, "gen:b")
	assert.Zero(t, gen)

	// pattern deletes leave counters alone
	c.DeletePattern(ctx, "*")
	gen, _ = c.Generation(ctx, "gen:a")
	assert.EqualValues(t, 2, gen)
}
