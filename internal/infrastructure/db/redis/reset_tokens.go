package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/timeclock/timeclock-api/internal/core/domain"
)

const defaultResetTTL = time.Hour

// ResetTokenStore keeps password reset tokens in Redis.
// Key format: reset:<token> -> user id, reset:user:<user id> -> latest token.
type ResetTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResetTokenStore creates a store whose tokens expire after ttl.
// If ttl <= 0, defaultResetTTL is used.
func NewResetTokenStore(client *redis.Client, ttl time.Duration) *ResetTokenStore {
	if ttl <= 0 {
		ttl = defaultResetTTL
	}
	return &ResetTokenStore{client: client, ttl: ttl}
}

// Save stores token for userID and revokes the token issued before it.
func (s *ResetTokenStore) Save(ctx context.Context, userID, token string) error {
	userKey := s.userKey(userID)

	prev, err := s.client.GetSet(ctx, userKey, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("reset token swap: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Expire(ctx, userKey, s.ttl)
		p.Set(ctx, s.tokenKey(token), userID, s.ttl)
		if prev != "" && prev != token {
			p.Del(ctx, s.tokenKey(prev))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset token save: %w", err)
	}
	return nil
}

// Consume returns the owner of token and deletes it in the same command.
func (s *ResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, s.tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrInvalidResetToken
		}
		return "", fmt.Errorf("reset token consume: %w", err)
	}
	return userID, nil
}

func (s *ResetTokenStore) tokenKey(token string) string {
	return "reset:" + token
}

func (s *ResetTokenStore) userKey(userID string) string {
	return "reset:user:" + userID
}
