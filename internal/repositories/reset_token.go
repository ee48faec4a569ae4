package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nurbergenoovv/go-auth-template/internal/logger"
	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound is returned when a token is missing from the store
// or has already expired.
var ErrTokenNotFound = errors.New("token not found")

// ResetTokenRepository stores single-use password reset tokens in Redis
type ResetTokenRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for reset tokens
}

// NewResetTokenRepository creates a new repository instance with a token TTL
func NewResetTokenRepository(client *redis.Client, expiration time.Duration) *ResetTokenRepository {
	return &ResetTokenRepository{
		client: client,
		exp:    expiration,
	}
}

// Save stores a reset token for a user with the configured expiration
func (r *ResetTokenRepository) Save(ctx context.Context, token string, userID uuid.UUID) error {
	key := fmt.Sprintf("reset_token:%s", token)
	err := r.client.Set(ctx, key, userID.String(), r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"user_id", userID,
		"error", err,
	)

	return err
}

// Get returns the user ID a reset token was issued for
func (r *ResetTokenRepository) Get(ctx context.Context, token string) (uuid.UUID, error) {
	key := fmt.Sprintf("reset_token:%s", token)

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
		logger.Log.Errorw("malformed user id in reset token store", "key", key, "value", val, "error", err)
		return uuid.Nil, err
	}

	return userID, nil
}

// Delete removes a reset token so it cannot be used again
func (r *ResetTokenRepository) Delete(ctx context.Context, token string) error {
	key := fmt.Sprintf("reset_token:%s", token)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"error", err,
	)

	return err
}
