package redis

import (
	"context"
	"time"

	goRedis "github.com/redis/go-redis/v9"

	"github.com/taskloop/backend/internal/config"
)

// NewClient connects to Redis from the configured URL, with password and
// DB overrides layered on top, and pings before handing the client out.
func NewClient(cfg config.RedisConfig) (*goRedis.Client, error) {
	opts, err := goRedis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.ClientName = "taskloop"
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := goRedis.NewClient(opts)
	if err := ping(client); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func ping(client *goRedis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Ping(ctx).Err()
}
