package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := New[string]()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", "v", time.Minute)
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestCacheExpiry(t *testing.T) {
	c := New[int]()

	c.Set("k", 42, -time.Second)

	_, ok := c.Get("k")
	assert.False(t, ok)

	// A fresh entry under the same key works after an expired read.
	c.Set("k", 7, time.Minute)
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 7, got)
}

func TestCacheOverwrite(t *testing.T) {
	c := New[string]()

	c.Set("k", "old", time.Minute)
	c.Set("k", "new", time.Minute)

	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "new", got)
}
