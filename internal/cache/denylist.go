package cache

import (
	"context"
	"fmt"
	"time"
)

const revokedPrefix = "revoked:"

// RevokeToken помечает токен jti отозванным до момента until.
// После истечения токена запись не нужна, поэтому ключ живет ровно до until.
func (c *Cache) RevokeToken(ctx context.Context, jti string, until time.Time) error {
	const op = "cache.RevokeToken"

	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := c.Db.Set(ctx, revokedPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsRevoked сообщает, отозван ли токен jti.
func (c *Cache) IsRevoked(ctx context.Context, jti string) (bool, error) {
	const op = "cache.IsRevoked"

	n, err := c.Db.Exists(ctx, revokedPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}
