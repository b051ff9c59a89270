// Package utility - Test cache TTL trong bộ nhớ.
package utility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetGet(t *testing.T) {
	cache := NewCache(time.Minute, time.Minute)
	defer cache.Stop()

	cache.Set("k", "v")
	got, ok := cache.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)

	_, ok = cache.Get("missing")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	cache := NewCache(20*time.Millisecond, time.Minute)
	defer cache.Stop()

	cache.Set("k", "v")
	time.Sleep(40 * time.Millisecond)

	_, ok := cache.Get("k")
	assert.False(t, ok, "entry quá TTL phải bị loại khi đọc, không chờ cleanup")
}

func TestCache_Delete(t *testing.T) {
	cache := NewCache(time.Minute, time.Minute)
	defer cache.Stop()

	cache.Set("k", 42)
	cache.Delete("k")

	_, ok := cache.Get("k")
	assert.False(t, ok)
}
