package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(rps float64, burst int) *Config {
	cfg := DefaultConfig(rps, burst)
	cfg.CleanupInterval = 0
	return cfg
}

func frozenLimiter(cfg *Config, at time.Time) *Limiter {
	l := NewLimiter(cfg)
	l.now = func() time.Time { return at }
	return l
}

func TestLimiter_Allow(t *testing.T) {
	l := frozenLimiter(testConfig(1, 5), time.Now())
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("127.0.0.1", "/candidates", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 5, info.Limit)
		assert.Equal(t, 4-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/candidates", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.InDelta(t, time.Second, info.RetryAfter, float64(10*time.Millisecond))
}

func TestLimiter_Refill(t *testing.T) {
	now := time.Now()
	l := frozenLimiter(testConfig(1, 2), now)
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("c", "/jobs", "GET")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("c", "/jobs", "GET")
	require.False(t, allowed)

	l.now = func() time.Time { return now.Add(1100 * time.Millisecond) }
	allowed, _ = l.Allow("c", "/jobs", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("c", "/jobs", "GET")
	assert.False(t, allowed)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := frozenLimiter(testConfig(1, 1), time.Now())
	defer l.Stop()

	allowed, _ := l.Allow("a", "/jobs", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("a", "/jobs", "GET")
	assert.False(t, allowed)
	allowed, _ = l.Allow("b", "/jobs", "GET")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistBlacklist(t *testing.T) {
	cfg := testConfig(1, 1)
	cfg.Whitelist = ParseIPList("10.0.0.1, 10.0.0.2")
	cfg.Blacklist = ParseIPList("10.0.0.9")
	l := frozenLimiter(cfg, time.Now())
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/jobs", "GET")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.9", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("c", "/jobs", "GET")
		assert.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
	assert.Equal(t, 0, l.Len())
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	l := frozenLimiter(testConfig(100, 100), time.Now())
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("c", "/candidates/upload", "POST")
		require.True(t, allowed)
	}
	allowed, info := l.Allow("c", "/candidates/upload", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 5, info.Limit)

	allowed, _ = l.Allow("c", "/candidates", "GET")
	assert.True(t, allowed)
}

func TestLimiter_UnlimitedEndpoints(t *testing.T) {
	l := frozenLimiter(testConfig(1, 1), time.Now())
	defer l.Stop()

	for i := 0; i < 20; i++ {
		allowed, _ := l.Allow("c", "/health", "GET")
		assert.True(t, allowed)
		allowed, _ = l.Allow("c", "/metrics", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l := frozenLimiter(testConfig(1, 50), time.Now())
	defer l.Stop()

	var granted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := l.Allow("c", "/jobs", "GET"); allowed {
				granted.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(50), granted.Load())
}

func TestLimiter_CleanupBuckets(t *testing.T) {
	now := time.Now()
	l := frozenLimiter(testConfig(1, 1), now)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		l.Allow(fmt.Sprintf("client-%d", i), "/jobs", "GET")
	}
	require.Equal(t, 3, l.Len())

	l.now = func() time.Time { return now.Add(2 * time.Hour) }
	l.Allow("fresh", "/jobs", "GET")
	l.cleanupBuckets()
	assert.Equal(t, 1, l.Len())
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()
	l.Stop()

	allowed, _ := l.Allow("c", "/jobs", "GET")
	assert.True(t, allowed)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()
	tests := []struct {
		path, method string
		wantLimit    int
		wantNil      bool
	}{
		{"/candidates/upload", "POST", 30, false},
		{"/jobs/job-1/rank", "POST", 60, false},
		{"/dictionary/skills/go", "DELETE", 100, false},
		{"/health", "GET", 0, false},
		{"/jobs/job-1", "GET", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}
