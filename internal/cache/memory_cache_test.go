package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGetDel(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	type faq struct {
		Title string `json:"title"`
	}

	var out faq
	hit, err := c.GetJSON(ctx, Key("faq", "lang", "en"), &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetJSON(ctx, Key("faq", "lang", "en"), faq{Title: "Visa timeline"}, time.Minute))

	hit, err = c.GetJSON(ctx, Key("faq", "lang", "en"), &out)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "Visa timeline", out.Title)

	require.NoError(t, c.Del(ctx, Key("faq", "lang", "en")))
	hit, err = c.GetJSON(ctx, Key("faq", "lang", "en"), &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", "v", 5*time.Millisecond))

	var s string
	hit, err := c.GetJSON(ctx, "k", &s)
	require.NoError(t, err)
	require.True(t, hit)

	time.Sleep(20 * time.Millisecond)

	hit, err = c.GetJSON(ctx, "k", &s)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCache_ZeroTTLNeverExpires(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", 42, 0))

	time.Sleep(10 * time.Millisecond)

	var n int
	hit, err := c.GetJSON(ctx, "k", &n)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, 42, n)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "faq:lang:vi", Key("faq", "lang", "vi"))
}
