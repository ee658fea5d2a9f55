package throttle

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"smarthr/config"
	"smarthr/internal/domain/lifecycle"
	"smarthr/internal/domain/service"
	"smarthr/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	backendMemory = "memory"
	backendRedis  = "redis"
)

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

// New picks the backend configured under throttle.backend. A nil Throttle
// means throttling is disabled.
func New(params Params) (service.Throttle, error) {
	cfg := params.Config.Throttle
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	switch strings.ToLower(cfg.Backend) {
	case "", backendMemory:
		t := NewMemoryThrottle(cfg.LoginPerMinute, cfg.LoginBurst)
		ctx, cancel := context.WithCancel(context.Background())
		params.Lifecycle.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go t.RunSweeper(ctx)

				return nil
			},
			OnStop: func(context.Context) error {
				cancel()

				return nil
			},
		})

		return t, nil
	case backendRedis:
		if params.Config.Redis == nil || params.Config.Redis.Addr == "" {
			return nil, errors.New("throttle backend redis requires redis.addr")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     params.Config.Redis.Addr,
			Password: params.Config.Redis.Password,
			DB:       params.Config.Redis.DB,
		})
		params.Lifecycle.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				pingCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
				defer cancel()
				if err := client.Ping(pingCtx).Err(); err != nil {
					// Throttling fails open; the service still starts.
					params.Logger.Warn("redis throttle unreachable at startup", slog.Any("error", err))
				}

				return nil
			},
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})

		return NewRedisThrottle(client, cfg.LoginPerMinute, time.Minute), nil
	default:
		return nil, errors.Errorf("unknown throttle backend %q", cfg.Backend)
	}
}
