package services

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/google/uuid"
	"github.com/nurbergenoovv/go-auth-template/internal/logger"
	"github.com/nurbergenoovv/go-auth-template/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrResetTokenNotFound is returned when a reset token is unknown or expired.
var ErrResetTokenNotFound = errors.New("reset token not found")

// ResetTokenStore persists single-use password reset tokens.
type ResetTokenStore interface {
	Save(ctx context.Context, token string, userID uuid.UUID) error
	Get(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

// Mailer sends password reset mail.
type Mailer interface {
	SendPasswordReset(email, token string) error
}

const resetTokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newResetToken generates a random 32-character alphanumeric token.
func newResetToken() (string, error) {
	buf := make([]byte, 32)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(resetTokenAlphabet))))
		if err != nil {
			return "", err
		}
		buf[i] = resetTokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// PasswordService handles the forgot/reset password flow.
type PasswordService struct {
	reader      UserReader
	writer      UserWriter
	resetTokens ResetTokenStore
	mailer      Mailer
	kafkaWriter KafkaWriter
}

// NewPasswordService creates a new PasswordService instance.
func NewPasswordService(
	reader UserReader,
	writer UserWriter,
	resetTokens ResetTokenStore,
	mailer Mailer,
	kafkaWriter KafkaWriter,
) *PasswordService {
	return &PasswordService{
		reader:      reader,
		writer:      writer,
		resetTokens: resetTokens,
		mailer:      mailer,
		kafkaWriter: kafkaWriter,
	}
}

// Forgot creates a reset token for the user with the given email and mails
// a reset link.
func (svc *PasswordService) Forgot(ctx context.Context, email string) error {
	user, err := svc.reader.GetByEmailOrUsername(ctx, &email, nil)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "email", email)
		return ErrUserDoesNotExist
	}

	token, err := newResetToken()
	if err != nil {
		logger.Log.Errorw("failed to generate reset token", "err", err)
		return err
	}

	if err := svc.resetTokens.Save(ctx, token, user.UserID); err != nil {
		logger.Log.Errorw("failed to save reset token", "err", err)
		return err
	}

	if err := svc.mailer.SendPasswordReset(user.Email, token); err != nil {
		logger.Log.Errorw("failed to send reset mail", "email", user.Email, "err", err)
		return err
	}

	publishEvent(ctx, svc.kafkaWriter, user.UserID, user.Email, models.ActionPasswordResetRequested)

	return nil
}

// Reset consumes a reset token and sets a new password hash for its user.
func (svc *PasswordService) Reset(ctx context.Context, token, newPassword string) error {
	userID, err := svc.resetTokens.Get(ctx, token)
	if err != nil {
		logger.Log.Errorw("reset token rejected", "err", err)
		return ErrResetTokenNotFound
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return err
	}
	if user == nil {
		logger.Log.Errorw("user for reset token does not exist", "user_id", userID)
		return ErrUserDoesNotExist
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.writer.UpdatePassword(ctx, user.UserID, string(hashedPassword)); err != nil {
		logger.Log.Errorw("failed to update password", "user_id", user.UserID, "err", err)
		return err
	}

	if err := svc.resetTokens.Delete(ctx, token); err != nil {
		logger.Log.Errorw("failed to delete reset token", "err", err)
		return err
	}

	publishEvent(ctx, svc.kafkaWriter, user.UserID, user.Email, models.ActionPasswordReset)

	return nil
}
