package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config 服务配置，全部来自环境变量
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8000"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	CatalogDriver string `env:"CATALOG_DRIVER" envDefault:"sqlite"`
	CatalogDSN    string `env:"CATALOG_DSN" envDefault:"radlands.db"`
	CatalogSeed   bool   `env:"CATALOG_SEED" envDefault:"true"`

	// 为空时不校验
	APIToken string `env:"API_TOKEN"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`

	ManualReplenish      bool `env:"MANUAL_REPLENISH" envDefault:"false"`
	AdvanceOnEventsEntry bool `env:"ADVANCE_ON_EVENTS_ENTRY" envDefault:"false"`
}

// Load 读取环境变量
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.CatalogDriver != "sqlite" && cfg.CatalogDriver != "mysql" {
		return Config{}, fmt.Errorf("CATALOG_DRIVER 只支持 sqlite 或 mysql，当前为 %q", cfg.CatalogDriver)
	}
	return cfg, nil
}
