package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("fresh entry is a hit", func(t *testing.T) {
		c := newTTLCache(5 * time.Minute)
		c.put("k", "v", now)

		got, ok := c.get("k", now.Add(4*time.Minute+59*time.Second))
		require.True(t, ok)
		assert.Equal(t, "v", got)
	})

	t.Run("entry at exactly the ttl is a miss", func(t *testing.T) {
		c := newTTLCache(5 * time.Minute)
		c.put("k", "v", now)

		_, ok := c.get("k", now.Add(5*time.Minute))
		assert.False(t, ok)
	})

	t.Run("unknown key is a miss", func(t *testing.T) {
		c := newTTLCache(5 * time.Minute)
		_, ok := c.get("missing", now)
		assert.False(t, ok)
	})

	t.Run("put overwrites and refreshes", func(t *testing.T) {
		c := newTTLCache(5 * time.Minute)
		c.put("k", "old", now)
		c.put("k", "new", now.Add(10*time.Minute))

		got, ok := c.get("k", now.Add(11*time.Minute))
		require.True(t, ok)
		assert.Equal(t, "new", got)
	})

	t.Run("clear drops everything", func(t *testing.T) {
		c := newTTLCache(5 * time.Minute)
		c.put("a", 1, now)
		c.put("b", 2, now)
		c.clear()

		_, ok := c.get("a", now)
		assert.False(t, ok)
		assert.Zero(t, c.status(now).Size)
	})
}

func TestCacheStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c := newTTLCache(5 * time.Minute)
	c.put("social", 1, now.Add(-90*time.Second))
	c.put("reports:7d::", 2, now.Add(-30*time.Second))

	st := c.status(now)

	assert.Equal(t, 2, st.Size)
	assert.Equal(t, []string{"reports:7d::", "social"}, st.Keys)
	require.Len(t, st.Entries, 2)
	assert.Equal(t, "reports:7d::", st.Entries[0].Key)
	assert.Equal(t, 30.0, st.Entries[0].AgeSeconds)
	assert.Equal(t, 90.0, st.Entries[1].AgeSeconds)
}
