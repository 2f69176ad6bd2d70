package config

import (
	"fmt"

	"github.com/go-redis/redis"
	"go.uber.org/zap"

	"portfolio/global"
)

func initRedis() error {
	addr := AppConfig.Redis.Addr
	if addr == "" {
		global.Logger.Info("redis addr empty, skipping redis init")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		DB:       AppConfig.Redis.DB,
		Password: AppConfig.Redis.Password,
	})
	if _, err := client.Ping().Result(); err != nil {
		client.Close()
		return fmt.Errorf("connect redis %s: %w", addr, err)
	}

	global.RedisDB = client
	global.Logger.Info("redis initialized", zap.String("addr", addr))
	return nil
}

func closeRedis() {
	if global.RedisDB == nil {
		return
	}
	if err := global.RedisDB.Close(); err != nil {
		global.Logger.Warn("close redis", zap.Error(err))
	}
	global.RedisDB = nil
}
