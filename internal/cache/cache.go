// Package cache 提供按问题前缀去重的检索上下文缓存，减少重复问题的向量检索。
package cache

import (
	"strings"
	"sync"
	"time"
)

// Cache 定义了检索上下文缓存的接口。
type Cache interface {
	Get(query string) (string, bool)
	Put(query, contextText string)
}

// keyPrefixLen 取归一化问题的前 50 个字符作为缓存键。
// 前缀相同的不同问题会命中同一条缓存，这是有意的近似去重。
const keyPrefixLen = 50

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

type entry struct {
	value     string
	createdAt time.Time
}

// NewMemoryCache 创建一个进程内检索上下文缓存。
func NewMemoryCache(ttl time.Duration) Cache {
	return &memoryCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// key 对问题做归一化：去首尾空白、转小写、截取前缀。
func key(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	runes := []rune(normalized)
	if len(runes) > keyPrefixLen {
		runes = runes[:keyPrefixLen]
	}
	return string(runes)
}

// Get 返回未过期的缓存回答。过期条目在读取时顺手删除。
func (c *memoryCache) Get(query string) (string, bool) {
	k := key(query)
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	if !ok {
		return "", false
	}
	if c.now().Sub(e.createdAt) > c.ttl {
		delete(c.entries, k)
		return "", false
	}
	return e.value, true
}

// Put 写入缓存并安排到期后的后台清理。
func (c *memoryCache) Put(query, contextText string) {
	k := key(query)
	c.mu.Lock()
	c.entries[k] = entry{value: contextText, createdAt: c.now()}
	c.mu.Unlock()

	time.AfterFunc(c.ttl, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		e, ok := c.entries[k]
		if ok && c.now().Sub(e.createdAt) > c.ttl {
			delete(c.entries, k)
		}
	})
}
