package utility

import (
	"sync"
	"time"
)

// cacheItem là một giá trị trong cache kèm thời điểm hết hạn
type cacheItem struct {
	value     interface{}
	expiresAt time.Time
}

// Cache là struct để quản lý cache với thời gian sống và thời gian dọn dẹp
type Cache struct {
	items    map[string]cacheItem
	mu       sync.RWMutex
	ttl      time.Duration
	cleanup  time.Duration
	stopChan chan struct{}
}

// NewCache tạo một instance mới của Cache
func NewCache(ttl, cleanup time.Duration) *Cache {
	cache := &Cache{
		items:    make(map[string]cacheItem),
		ttl:      ttl,
		cleanup:  cleanup,
		stopChan: make(chan struct{}),
	}
	go cache.cleanupLoop()
	return cache
}

// Set lưu giá trị vào cache
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheItem{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// Get lấy giá trị từ cache, trả về false nếu không có hoặc đã hết hạn
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiresAt) {
		return nil, false
	}
	return item.value, true
}

// Delete xóa một key khỏi cache
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Stop dừng vòng lặp dọn dẹp của cache
func (c *Cache) Stop() {
	close(c.stopChan)
}

// cleanupLoop dọn dẹp các entry hết hạn định kỳ
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for k, item := range c.items {
				if now.After(item.expiresAt) {
					delete(c.items, k)
				}
			}
			c.mu.Unlock()
		case <-c.stopChan:
			return
		}
	}
}
