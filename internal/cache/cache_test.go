package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestCache(ttl time.Duration) (*memoryCache, *time.Time) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := &memoryCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     func() time.Time { return now },
	}
	return c, &now
}

func TestCachePutGet(t *testing.T) {
	c, _ := newTestCache(30 * time.Minute)

	_, ok := c.Get("what are your skills")
	assert.False(t, ok)

	c.Put("what are your skills", "cached context")
	got, ok := c.Get("what are your skills")
	assert.True(t, ok)
	assert.Equal(t, "cached context", got)
}

func TestCacheKeyNormalization(t *testing.T) {
	c, _ := newTestCache(30 * time.Minute)
	c.Put("  What Are Your Skills  ", "context")

	// 大小写与首尾空白不影响命中
	got, ok := c.Get("what are your skills")
	assert.True(t, ok)
	assert.Equal(t, "context", got)

	// 前 50 个字符相同的问题命中同一条缓存
	long := strings.Repeat("a", 50)
	c.Put(long+" tail one", "shared")
	got, ok = c.Get(long + " tail two")
	assert.True(t, ok)
	assert.Equal(t, "shared", got)
}

func TestCacheExpiry(t *testing.T) {
	ttl := 30 * time.Minute
	c, now := newTestCache(ttl)
	start := *now

	c.Put("question", "context")

	// 到期前仍可命中
	*now = start.Add(ttl - time.Millisecond)
	_, ok := c.Get("question")
	assert.True(t, ok)

	// 到期后惰性删除
	*now = start.Add(ttl + time.Millisecond)
	_, ok = c.Get("question")
	assert.False(t, ok)

	// 删除后再查仍然未命中
	_, ok = c.Get("question")
	assert.False(t, ok)
}
