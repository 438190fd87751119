package cache

import (
	"sync"
	"time"

	"github.com/storefront-next/internal/pricing"
)

// ScheduleCache 规格定价配置的进程内缓存。
// 显式对象 + 注入时钟 + 显式失效，不依赖任何包级可变状态；
// 管理员改价后必须调用 Invalidate，结账前的漂移检查才会读到新配置。
type ScheduleCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   func() time.Time
	entries map[uint]scheduleEntry
}

type scheduleEntry struct {
	config    pricing.LiveConfig
	expiresAt time.Time
}

// NewScheduleCache 创建缓存；clock 为空时使用 time.Now
func NewScheduleCache(ttl time.Duration, clock func() time.Time) *ScheduleCache {
	if clock == nil {
		clock = time.Now
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ScheduleCache{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[uint]scheduleEntry),
	}
}

// Get 读取规格的定价配置；过期或不存在返回 false
func (c *ScheduleCache) Get(variantID uint) (pricing.LiveConfig, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[variantID]
	if !ok {
		return pricing.LiveConfig{}, false
	}
	if c.clock().After(entry.expiresAt) {
		delete(c.entries, variantID)
		return pricing.LiveConfig{}, false
	}
	return entry.config, true
}

// Set 写入规格的定价配置
func (c *ScheduleCache) Set(variantID uint, config pricing.LiveConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[variantID] = scheduleEntry{
		config:    config,
		expiresAt: c.clock().Add(c.ttl),
	}
}

// Invalidate 显式失效单个规格（管理员改价/改档后调用）
func (c *ScheduleCache) Invalidate(variantID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, variantID)
}

// InvalidateAll 清空全部缓存
func (c *ScheduleCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint]scheduleEntry)
}
