package service

import "context"

// Throttle answers whether another attempt is allowed for key.
type Throttle interface {
	Allow(ctx context.Context, key string) (bool, error)
}
