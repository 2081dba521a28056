package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "session:revoked:"

// SessionRepository keeps a Redis denylist of signed-out token ids.
// Without a Redis client every call is a no-op and no token is ever revoked.
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository constructs a SessionRepository.
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Revoke marks the token id as signed out until ttl elapses.
func (r *SessionRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if r.client == nil || tokenID == "" || ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedTokenPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke session %s: %w", tokenID, err)
	}
	return nil
}

// IsRevoked reports whether the token id was signed out.
func (r *SessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if r.client == nil || tokenID == "" {
		return false, nil
	}
	n, err := r.client.Exists(ctx, revokedTokenPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("check session %s: %w", tokenID, err)
	}
	return n > 0, nil
}
