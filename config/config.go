package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Public booking backend.
	BookingAPIBase    string        `mapstructure:"BOOKING_API_BASE"`
	HTTPClientTimeout time.Duration `mapstructure:"HTTP_CLIENT_TIMEOUT"`

	// Cache backend: memory, redis or mongo.
	CacheBackend   string        `mapstructure:"CACHE_BACKEND"`
	CacheRetention time.Duration `mapstructure:"CACHE_RETENTION"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// MongoDB configuration.
	DatabaseURL          string `mapstructure:"DATABASE_URL"`
	MongoDatabase        string `mapstructure:"MONGO_DATABASE"`
	MongoCacheCollection string `mapstructure:"MONGO_CACHE_COLLECTION"`

	// Cache lifetimes.
	ConfigCacheTTL       time.Duration `mapstructure:"CONFIG_CACHE_TTL"`
	AvailabilityCacheTTL time.Duration `mapstructure:"AVAILABILITY_CACHE_TTL"`
	SessionTTL           time.Duration `mapstructure:"SESSION_TTL"`

	// Availability pre-fetch: inline or queue.
	PrefetchDays int    `mapstructure:"PREFETCH_DAYS"`
	PrefetchMode string `mapstructure:"PREFETCH_MODE"`

	// Comma-separated origins allowed to embed the widget.
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var AppConfig Config

func LoadConfig() {
	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("BOOKING_API_BASE", "http://localhost:5000/api")
	v.SetDefault("HTTP_CLIENT_TIMEOUT", "0s")
	v.SetDefault("CACHE_BACKEND", "memory")
	v.SetDefault("CACHE_RETENTION", "24h")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "booking_widget")
	v.SetDefault("MONGO_CACHE_COLLECTION", "cache_entries")
	v.SetDefault("CONFIG_CACHE_TTL", "10m")
	v.SetDefault("AVAILABILITY_CACHE_TTL", "3m")
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("PREFETCH_DAYS", 6)
	v.SetDefault("PREFETCH_MODE", "inline")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS into its entries.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
