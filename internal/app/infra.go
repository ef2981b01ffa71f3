package app

import (
	"github.com/jhojin7/my-cloudflare-oauth-app/internal/config"
	"github.com/jhojin7/my-cloudflare-oauth-app/internal/logger"
	"github.com/jhojin7/my-cloudflare-oauth-app/internal/redis"
)

type Infra struct {
	Redis *redis.Client
}

func setupInfra(cfg config.Config) (*Infra, error) {
	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready", nil)

	return &Infra{
		Redis: redisClient,
	}, nil
}
