package cache

import (
	"context"
	"errors"
	"time"
)

const blacklistPrefix = "blacklist:"

// ErrNoStore is returned when a token must be revoked but Redis is not configured.
var ErrNoStore = errors.New("token blacklist unavailable: redis not configured")

// BlacklistToken revokes the token id until its natural expiry.
func BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	rdb := GetClient()
	if rdb == nil {
		return ErrNoStore
	}
	if ttl <= 0 {
		return nil
	}
	return rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsTokenBlacklisted reports whether the token id has been revoked.
// Without Redis no token can have been revoked.
func IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	rdb := GetClient()
	if rdb == nil {
		return false, nil
	}
	n, err := rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
