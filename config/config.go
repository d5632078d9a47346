package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"m3u-reader/logger"
)

type Config struct {
	// Extended requires the "#EXTM3U" header and pairs entries with their
	// "#EXTINF:" tags.
	Extended bool
	// IPTV parses key="value" attributes on "#EXTINF:" tags. Implies Extended.
	IPTV bool
	// Strict makes an untagged entry fail the whole playlist instead of being
	// reported as a plain entry.
	Strict bool

	SyncCron   string
	SyncOnBoot bool
	CacheTTL   time.Duration

	// LineBufferBytes sizes the buffered reader under each playlist. Longer
	// lines are still read whole.
	LineBufferBytes int
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Extended:        true,
		SyncOnBoot:      true,
		CacheTTL:        5 * time.Minute,
		LineBufferBytes: 64 * 1024,
	}
}

var globalConfig = Defaults()

func GetConfig() *Config {
	return globalConfig
}

func SetConfig(c *Config) {
	globalConfig = c
}

// LoadFromEnv builds a Config from environment variables, falling back to
// Defaults for anything unset or malformed.
func LoadFromEnv() *Config {
	def := Defaults()
	return &Config{
		Extended:        envBool("M3U_EXTENDED", def.Extended),
		IPTV:            envBool("M3U_IPTV", def.IPTV),
		Strict:          envBool("M3U_STRICT", def.Strict),
		SyncCron:        strings.TrimSpace(os.Getenv("SYNC_CRON")),
		SyncOnBoot:      envBool("SYNC_ON_BOOT", def.SyncOnBoot),
		CacheTTL:        envDuration("SCAN_CACHE_TTL", def.CacheTTL),
		LineBufferBytes: envInt("LINE_BUFFER_BYTES", def.LineBufferBytes),
	}
}

func envBool(key string, def bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if len(value) == 0 {
		return def
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		logger.Default.Warnf("Invalid %s value %q, defaulting to %t", key, value, def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if len(value) == 0 {
		return def
	}
	i, err := strconv.Atoi(value)
	if err != nil || i <= 0 {
		logger.Default.Warnf("Invalid %s value %q, defaulting to %d", key, value, def)
		return def
	}
	return i
}

func envDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if len(value) == 0 {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logger.Default.Warnf("Invalid %s value %q, defaulting to %s", key, value, def)
		return def
	}
	return d
}
