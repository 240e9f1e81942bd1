package config

import (
	"log"

	"github.com/redis/rueidis"
)

func NewRedisClient(cfg Config) rueidis.Client {
	redisClient, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress: []string{cfg.RedisAddr},
			ClientName:  "todo-service",
		},
	)
	if err != nil {
		log.Fatalf("failed to create redis client for %s: %v", cfg.RedisAddr, err)
	}

	return redisClient
}
