package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"M3U_EXTENDED", "M3U_IPTV", "M3U_STRICT", "SYNC_CRON", "SYNC_ON_BOOT", "SCAN_CACHE_TTL", "LINE_BUFFER_BYTES"} {
		t.Setenv(key, "")
	}

	cfg := LoadFromEnv()

	assert.True(t, cfg.Extended)
	assert.False(t, cfg.IPTV)
	assert.False(t, cfg.Strict)
	assert.Empty(t, cfg.SyncCron)
	assert.True(t, cfg.SyncOnBoot)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 64*1024, cfg.LineBufferBytes)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("M3U_EXTENDED", "false")
	t.Setenv("M3U_IPTV", "true")
	t.Setenv("M3U_STRICT", "1")
	t.Setenv("SYNC_CRON", " */5 * * * * ")
	t.Setenv("SYNC_ON_BOOT", "false")
	t.Setenv("SCAN_CACHE_TTL", "30s")
	t.Setenv("LINE_BUFFER_BYTES", "4096")

	cfg := LoadFromEnv()

	assert.False(t, cfg.Extended)
	assert.True(t, cfg.IPTV)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "*/5 * * * *", cfg.SyncCron)
	assert.False(t, cfg.SyncOnBoot)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 4096, cfg.LineBufferBytes)
}

func TestLoadFromEnv_InvalidFallsBack(t *testing.T) {
	t.Setenv("M3U_STRICT", "maybe")
	t.Setenv("SCAN_CACHE_TTL", "soon")
	t.Setenv("LINE_BUFFER_BYTES", "-1")

	cfg := LoadFromEnv()

	assert.False(t, cfg.Strict)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 64*1024, cfg.LineBufferBytes)
}

func TestLoadFromEnv_MatchesDefaults(t *testing.T) {
	for _, key := range []string{"M3U_EXTENDED", "M3U_IPTV", "M3U_STRICT", "SYNC_CRON", "SYNC_ON_BOOT", "SCAN_CACHE_TTL", "LINE_BUFFER_BYTES"} {
		t.Setenv(key, "")
	}

	assert.Equal(t, Defaults(), LoadFromEnv())
}

func TestSetConfig(t *testing.T) {
	original := GetConfig()
	t.Cleanup(func() { SetConfig(original) })

	custom := &Config{Strict: true}
	SetConfig(custom)
	assert.Same(t, custom, GetConfig())
}
