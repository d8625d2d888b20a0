package config

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pgabrielsw/gridline-v4/global"
)

func initRedis() {
	client := NewRedisClient(AppConfig.Redis)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Printf("Connected to Redis at %s", AppConfig.Redis.Addr)

	global.RedisDB = client
}

// NewRedisClient builds a client without touching the network.
func NewRedisClient(redisConf RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     redisConf.Addr,
		Password: redisConf.Password,
		DB:       redisConf.DB,
	})
}
