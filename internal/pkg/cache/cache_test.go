package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSetDelete(t *testing.T) {
	c := NewMemory(0)

	_, ok, err := c.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set("a", []byte("one")))
	value, ok, err := c.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("one"), value)

	require.NoError(t, c.Set("a", []byte("two")))
	value, _, _ = c.Get("a")
	assert.Equal(t, []byte("two"), value)

	require.NoError(t, c.Delete("a"))
	_, ok, _ = c.Get("a")
	assert.False(t, ok)

	// Deleting an absent key is a no-op.
	require.NoError(t, c.Delete("a"))
}

func TestMemoryCapacity(t *testing.T) {
	c := NewMemory(10)

	require.NoError(t, c.Set("a", []byte("12345")))
	err := c.Set("b", []byte("123456789"))
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// Replacing an existing key only counts the new value.
	require.NoError(t, c.Set("a", []byte("1234567890")))
}

func TestSQLiteRoundTrip(t *testing.T) {
	c, err := NewSQLite(":memory:", 0)
	require.NoError(t, err)
	defer c.Close()

	_, ok, err := c.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set("snapshot", []byte(`{"v":1}`)))
	value, ok, err := c.Get("snapshot")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"v":1}`), value)

	require.NoError(t, c.Set("snapshot", []byte(`{"v":2}`)))
	value, _, _ = c.Get("snapshot")
	assert.Equal(t, []byte(`{"v":2}`), value)

	require.NoError(t, c.Delete("snapshot"))
	_, ok, _ = c.Get("snapshot")
	assert.False(t, ok)
}

func TestSQLiteCapacity(t *testing.T) {
	c, err := NewSQLite(":memory:", 8)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set("a", []byte("1234")))
	err = c.Set("b", []byte("123456"))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}
