// redis.go
package repository

import (
	"context"
	"os"

	"github.com/go-redis/redis/v8"

	"go-auction/logger"
)

var (
	Rdb *redis.Client
	Ctx = context.Background()
)

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "redis:6379" // Docker 里用服务名
	}

	Rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if _, err := Rdb.Ping(Ctx).Result(); err != nil {
		logger.L.Fatalf("Redis 连接失败: %v", err)
	}
	logger.L.Info("✅ Redis 连接成功")
}
