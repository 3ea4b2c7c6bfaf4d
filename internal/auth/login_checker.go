package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

// IsLogged reports whether the token belongs to a live session.
// An unknown token is not an error.
func (c *LoginChecker) IsLogged(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	cmd := c.redisClient.Get(ctx, sessionKeyPrefix+token)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	createdAtUnix, err := strconv.ParseInt(cmd.Val(), 10, 64)
	if err != nil {
		return false, err
	}

	return time.Since(time.Unix(createdAtUnix, 0)) <= c.ttl, nil
}
