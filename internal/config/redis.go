package config

import (
	"os"
	"strconv"
)

const (
	redisAddrEnv     = "REDIS_ADDR"
	redisPasswordEnv = "REDIS_PASSWORD"
	redisDBEnv       = "REDIS_DB"
	redisTLSEnv      = "REDIS_TLS"

	defaultRedisAddr = "localhost:6379"
)

// RedisConfig configures the pub/sub connection backing the block change
// feed.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
}

func LoadRedisConfig() (*RedisConfig, error) {
	cfg := &RedisConfig{
		Addr:     os.Getenv(redisAddrEnv),
		Password: os.Getenv(redisPasswordEnv),
		TLS:      os.Getenv(redisTLSEnv) == "true",
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultRedisAddr
	}

	if raw := os.Getenv(redisDBEnv); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return nil, ErrInvalidRedisDB
		}
		cfg.DB = db
	}

	return cfg, nil
}

func (c *RedisConfig) Validate() error {
	if c == nil || c.Addr == "" {
		return ErrRedisAddrMissing
	}
	return nil
}
