package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("key1", "value1"))

	val, ok := store.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "value1", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("str", "hello")
	_ = store.Set("int", 42)
	_ = store.Set("int64", int64(7))
	_ = store.Set("float", 0.25)
	_ = store.Set("bool", true)
	_ = store.Set("slice", []string{"a", "b"})
	_ = store.Set("anyslice", []any{"x", "y"})

	assert.Equal(t, "hello", store.GetString("str"))
	assert.Equal(t, 42, store.GetInt("int"))
	assert.Equal(t, 7, store.GetInt("int64"))
	assert.Equal(t, 0.25, store.GetFloat("float"))
	assert.Equal(t, 42.0, store.GetFloat("int"))
	assert.True(t, store.GetBool("bool"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("slice"))
	assert.Equal(t, []string{"x", "y"}, store.GetStringSlice("anyslice"))
}

func TestConfigStore_TypedGetters_WrongTypeReturnsZero(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("int", 42)

	assert.Empty(t, store.GetString("int"))
	assert.Zero(t, store.GetInt("missing"))
	assert.Zero(t, store.GetFloat("missing"))
	assert.False(t, store.GetBool("int"))
	assert.Nil(t, store.GetStringSlice("int"))
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("key", "value")
		}()
		go func() {
			defer wg.Done()
			_ = store.GetString("key")
		}()
	}
	wg.Wait()
}

func TestConfigStore_NoOpPersistence(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}
