package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "http://localhost:5000/api", cfg.BookingAPIBase)
	assert.Equal(t, time.Duration(0), cfg.HTTPClientTimeout)
	assert.Equal(t, 10*time.Minute, cfg.ConfigCacheTTL)
	assert.Equal(t, 3*time.Minute, cfg.AvailabilityCacheTTL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 24*time.Hour, cfg.CacheRetention)
	assert.Equal(t, 6, cfg.PrefetchDays)
	assert.Equal(t, "inline", cfg.PrefetchMode)
	assert.Equal(t, "memory", cfg.CacheBackend)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("PREFETCH_MODE", "queue")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.Equal(t, 45*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "queue", cfg.PrefetchMode)
}

func TestAllowedOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, Config{}.AllowedOrigins())
	assert.Equal(t,
		[]string{"https://gym.example", "https://www.gym.example"},
		Config{CORSAllowedOrigins: " https://gym.example, https://www.gym.example ,"}.AllowedOrigins())
}
