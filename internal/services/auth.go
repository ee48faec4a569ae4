package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nurbergenoovv/go-auth-template/internal/logger"
	"github.com/nurbergenoovv/go-auth-template/internal/models"
	"github.com/segmentio/kafka-go"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrUserAlreadyExists   = errors.New("username or email already exists")
	ErrUserDoesNotExist    = errors.New("user does not exist")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmailOrUsername(ctx context.Context, email *string, username *string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	GetAll(ctx context.Context) ([]models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, firstName, lastName, email, passwordHash string) (uuid.UUID, error)
	Update(ctx context.Context, userID uuid.UUID, firstName, lastName, email string) (*models.UserDB, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// JWTGenerator defines an interface for generating JWT access tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, email, role string) (string, error)
}

// RefreshTokenStore persists opaque refresh tokens.
type RefreshTokenStore interface {
	Save(ctx context.Context, token string, userID uuid.UUID) error
	Get(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// AuthService handles registration, login and the refresh token lifecycle.
type AuthService struct {
	reader        UserReader
	writer        UserWriter
	jwt           JWTGenerator
	refreshTokens RefreshTokenStore
	kafkaWriter   KafkaWriter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	jwt JWTGenerator,
	refreshTokens RefreshTokenStore,
	kafkaWriter KafkaWriter,
) *AuthService {
	return &AuthService{
		reader:        reader,
		writer:        writer,
		jwt:           jwt,
		refreshTokens: refreshTokens,
		kafkaWriter:   kafkaWriter,
	}
}

// publishEvent publishes a user audit event to Kafka.
func publishEvent(ctx context.Context, w KafkaWriter, userID uuid.UUID, email, action string) {
	if w == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "action", action)
		return
	}

	event := models.UserEvent{
		EventID:   uuid.NewString(),
		UserID:    userID.String(),
		Email:     email,
		Action:    action,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish event to Kafka", "event_id", event.EventID, "action", action, "error", err)
	} else {
		logger.Log.Infow("Event published to Kafka", "event_id", event.EventID, "action", action)
	}
}

// newRefreshToken generates an opaque random refresh token.
func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// IssuePair generates a new access/refresh token pair for a user and stores
// the refresh token.
func (svc *AuthService) IssuePair(ctx context.Context, user *models.UserDB) (*models.TokenPair, error) {
	accessToken, err := svc.jwt.Generate(ctx, user.UserID, user.Email, user.Role)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return nil, err
	}

	refreshToken, err := newRefreshToken()
	if err != nil {
		logger.Log.Errorw("failed to generate refresh token", "err", err)
		return nil, err
	}

	if err := svc.refreshTokens.Save(ctx, refreshToken, user.UserID); err != nil {
		logger.Log.Errorw("failed to save refresh token", "err", err)
		return nil, err
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Register registers a new user and issues a token pair.
func (svc *AuthService) Register(ctx context.Context, username, firstName, lastName, email, password string) (uuid.UUID, *models.TokenPair, error) {
	user, err := svc.reader.GetByEmailOrUsername(ctx, &email, &username)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return uuid.Nil, nil, err
	}
	if user != nil {
		logger.Log.Errorw("user already exists", "username", username, "email", email)
		return uuid.Nil, nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return uuid.Nil, nil, err
	}

	userID, err := svc.writer.Save(ctx, username, firstName, lastName, email, string(hashedPassword))
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return uuid.Nil, nil, err
	}

	pair, err := svc.IssuePair(ctx, &models.UserDB{
		UserID: userID,
		Email:  email,
		Role:   models.RoleUser,
	})
	if err != nil {
		return uuid.Nil, nil, err
	}

	publishEvent(ctx, svc.kafkaWriter, userID, email, models.ActionUserRegistered)

	return userID, pair, nil
}

// Login authenticates a user by email and returns a token pair.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	user, err := svc.reader.GetByEmailOrUsername(ctx, &email, nil)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "email", email)
		return nil, ErrUserDoesNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "email", email)
		return nil, ErrInvalidCredentials
	}

	return svc.IssuePair(ctx, user)
}

// Refresh exchanges a valid refresh token for a new rotated token pair.
// The presented token is deleted so it cannot be replayed.
func (svc *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	userID, err := svc.refreshTokens.Get(ctx, refreshToken)
	if err != nil {
		logger.Log.Errorw("refresh token rejected", "err", err)
		return nil, ErrInvalidRefreshToken
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Errorw("user for refresh token does not exist", "user_id", userID)
		return nil, ErrUserDoesNotExist
	}

	if err := svc.refreshTokens.Delete(ctx, refreshToken); err != nil {
		logger.Log.Errorw("failed to delete refresh token", "err", err)
		return nil, err
	}

	return svc.IssuePair(ctx, user)
}

// Logout revokes a refresh token.
func (svc *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if _, err := svc.refreshTokens.Get(ctx, refreshToken); err != nil {
		logger.Log.Errorw("logout with unknown refresh token", "err", err)
		return ErrInvalidRefreshToken
	}

	if err := svc.refreshTokens.Delete(ctx, refreshToken); err != nil {
		logger.Log.Errorw("failed to delete refresh token", "err", err)
		return err
	}

	return nil
}
