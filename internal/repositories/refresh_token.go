package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nurbergenoovv/go-auth-template/internal/logger"
	"github.com/redis/go-redis/v9"
)

// RefreshTokenRepository stores opaque refresh tokens in Redis with a TTL
type RefreshTokenRepository struct {
	client *redis.Client
	exp    time.Duration // refresh token lifetime
}

// NewRefreshTokenRepository creates a new repository instance with a token TTL
func NewRefreshTokenRepository(client *redis.Client, expiration time.Duration) *RefreshTokenRepository {
	return &RefreshTokenRepository{
		client: client,
		exp:    expiration,
	}
}

// Save stores a refresh token for a user with the configured expiration
func (r *RefreshTokenRepository) Save(ctx context.Context, token string, userID uuid.UUID) error {
	key := fmt.Sprintf("refresh_token:%s", token)
	err := r.client.Set(ctx, key, userID.String(), r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"user_id", userID,
		"error", err,
	)

	return err
}

// Get returns the user ID a refresh token was issued for
func (r *RefreshTokenRepository) Get(ctx context.Context, token string) (uuid.UUID, error) {
	key := fmt.Sprintf("refresh_token:%s", token)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return uuid.Nil, ErrTokenNotFound
		}
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		logger.Log.Errorw("malformed user id in refresh token store", "key", key, "value", val, "error", err)
		return uuid.Nil, err
	}

	return userID, nil
}

// Delete revokes a refresh token
func (r *RefreshTokenRepository) Delete(ctx context.Context, token string) error {
	key := fmt.Sprintf("refresh_token:%s", token)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"error", err,
	)

	return err
}
