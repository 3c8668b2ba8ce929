// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token    string `yaml:"token"`
	Username string `yaml:"username"`
	// ContentChannelIDs are the private channels holding the media; part
	// delivery copies messages out of them in order.
	ContentChannelIDs []int64 `yaml:"content_channel_ids"`
	// Static defaults; the live lists are editable from the admin panel.
	AdminIDs           []int64          `yaml:"admin_ids"`
	ForcedChannels     []int64          `yaml:"forced_channels"`
	ForcedChannelLinks map[int64]string `yaml:"forced_channel_links"`
}

type EngineConfig struct {
	PollTimeoutSeconds int           `yaml:"poll_timeout_seconds"`
	BatchSize          int           `yaml:"batch_size"`
	RetryDelay         time.Duration `yaml:"retry_delay"`
	RateLimitInterval  time.Duration `yaml:"rate_limit_interval"`
	SubCacheOkTTL      time.Duration `yaml:"sub_cache_ok_ttl"`
	SubCacheFailTTL    time.Duration `yaml:"sub_cache_fail_ttl"`
	SubCacheMaxEntries int           `yaml:"sub_cache_max_entries"`
	BroadcastWorkers   int           `yaml:"broadcast_workers"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int32  `yaml:"max_conns"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	StateTTL time.Duration `yaml:"state_ttl"`
}

type WebConfig struct {
	Port          int    `yaml:"port"`
	JWTSecret     string `yaml:"jwt_secret"`
	AdminPassword string `yaml:"admin_password"`
}

type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Engine   EngineConfig   `yaml:"engine"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Web      WebConfig      `yaml:"web"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Engine.PollTimeoutSeconds <= 0 {
		cfg.Engine.PollTimeoutSeconds = 25
	}
	if cfg.Engine.BatchSize <= 0 {
		cfg.Engine.BatchSize = 100
	}
	if cfg.Engine.RetryDelay <= 0 {
		cfg.Engine.RetryDelay = 500 * time.Millisecond
	}
	if cfg.Engine.RateLimitInterval <= 0 {
		cfg.Engine.RateLimitInterval = 500 * time.Millisecond
	}
	if cfg.Engine.SubCacheOkTTL <= 0 {
		cfg.Engine.SubCacheOkTTL = 20 * time.Second
	}
	if cfg.Engine.SubCacheFailTTL <= 0 {
		cfg.Engine.SubCacheFailTTL = 2 * time.Second
	}
	if cfg.Engine.SubCacheMaxEntries <= 0 {
		cfg.Engine.SubCacheMaxEntries = 10000
	}
	if cfg.Engine.BroadcastWorkers <= 0 {
		cfg.Engine.BroadcastWorkers = 8
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 5
	}
	if cfg.Redis.StateTTL <= 0 {
		cfg.Redis.StateTTL = 15 * time.Minute
	}
	if cfg.Web.Port <= 0 {
		cfg.Web.Port = 8080
	}

	// Minimal validation
	if cfg.Bot.Token == "" {
		return nil, errors.New("bot.token is required")
	}
	if len(cfg.Bot.ContentChannelIDs) == 0 {
		return nil, errors.New("bot.content_channel_ids is required")
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
