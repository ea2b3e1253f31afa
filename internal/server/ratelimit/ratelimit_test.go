package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testConfig(limit, burst int) *Config {
	return &Config{
		Enabled:         true,
		Limit:           limit,
		Window:          time.Minute,
		Burst:           burst,
		CleanupInterval: time.Minute,
	}
}

func TestLimiterAllowsUpToBurst(t *testing.T) {
	l := NewLimiter(testConfig(10, 3))
	defer l.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("client-a"), "request %d should be allowed", i)
	}
	assert.False(t, l.Allow("client-a"))
}

func TestLimiterIsolatesClients(t *testing.T) {
	l := NewLimiter(testConfig(10, 1))
	defer l.Stop()

	assert.True(t, l.Allow("client-a"))
	assert.False(t, l.Allow("client-a"))
	assert.True(t, l.Allow("client-b"))
}

func TestLimiterRefills(t *testing.T) {
	// 600 per minute refills 10 tokens per second.
	l := NewLimiter(testConfig(600, 1))
	defer l.Stop()

	assert.True(t, l.Allow("client-a"))
	assert.False(t, l.Allow("client-a"))

	time.Sleep(150 * time.Millisecond)
	assert.True(t, l.Allow("client-a"))
}

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("client-a"))
	}
}

func TestCleanupDropsIdleBuckets(t *testing.T) {
	cfg := testConfig(10, 1)
	cfg.CleanupInterval = 10 * time.Millisecond
	l := NewLimiter(cfg)
	defer l.Stop()

	l.Allow("client-a")
	l.mu.Lock()
	assert.Len(t, l.buckets, 1)
	l.mu.Unlock()

	time.Sleep(50 * time.Millisecond)
	l.mu.Lock()
	assert.Empty(t, l.buckets)
	l.mu.Unlock()
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_LIMIT", "50")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_BURST", "")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 50, cfg.Limit)
	assert.Equal(t, 30*time.Second, cfg.Window)
	assert.Equal(t, 50, cfg.Burst, "burst defaults to limit")

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
