package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

const DefaultUpstreamURL = "https://srijandubey.github.io/campus-api-mock/SRM-C1-25.json"

type Config struct {
	App      AppConfig
	Log      LogConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Port string `validate:"required"`
	Env  string
	// RenderWait bounds how long a page render waits for the doctor list
	// before showing the loading state.
	RenderWait time.Duration `validate:"gte=0"`
	CORSOrigin string
}

type LogConfig struct {
	Level string `validate:"required"`
}

type UpstreamConfig struct {
	URL         string        `validate:"required,url"`
	Timeout     time.Duration `validate:"gt=0"`
	MaxAttempts int           `validate:"gte=1"`
	RetryDelay  time.Duration `validate:"gte=0"`
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration `validate:"gte=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_RENDER_WAIT", "2s")
	v.SetDefault("APP_CORS_ORIGIN", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("UPSTREAM_URL", DefaultUpstreamURL)
	v.SetDefault("UPSTREAM_TIMEOUT", "10s")
	v.SetDefault("UPSTREAM_MAX_ATTEMPTS", 1)
	v.SetDefault("UPSTREAM_RETRY_DELAY", "500ms")
	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TTL", "10m")
}

// LoadConfigFile reads the env file at path when present, then the
// environment, which wins. Every key has a default.
func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:       v.GetString("APP_PORT"),
			Env:        v.GetString("APP_ENV"),
			RenderWait: v.GetDuration("APP_RENDER_WAIT"),
			CORSOrigin: v.GetString("APP_CORS_ORIGIN"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Upstream: UpstreamConfig{
			URL:         v.GetString("UPSTREAM_URL"),
			Timeout:     v.GetDuration("UPSTREAM_TIMEOUT"),
			MaxAttempts: v.GetInt("UPSTREAM_MAX_ATTEMPTS"),
			RetryDelay:  v.GetDuration("UPSTREAM_RETRY_DELAY"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("REDIS_TTL"),
		},
	}

	return config, nil
}
