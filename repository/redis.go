// redis.go
package repository

import (
	"context"
	"fmt"

	"radlands/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	Rdb *redis.Client
	Ctx = context.Background()
)

// InitRedis 按配置连接 Redis 并赋值给全局 Rdb
func InitRedis(cfg config.Config, log *zap.Logger) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(Ctx).Result(); err != nil {
		return fmt.Errorf("Redis 连接失败: %w", err)
	}
	Rdb = rdb
	log.Info("✅ Redis 连接成功", zap.String("addr", cfg.RedisAddr), zap.Int("db", cfg.RedisDB))
	return nil
}
