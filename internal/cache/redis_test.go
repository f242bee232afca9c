package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tastehub/pkg/config"
)

func TestNewDisabledReturnsNil(t *testing.T) {
	c, err := New(config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNilCacheIsAlwaysMiss(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var dest map[string]string
	hit, err := c.GetJSON(ctx, "any", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	// Writes and invalidations on a nil cache are no-ops.
	c.SetJSON(ctx, "any", map[string]string{"k": "v"})
	c.Invalidate(ctx, "any")
	assert.NoError(t, c.Close())
}
