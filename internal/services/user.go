package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/nurbergenoovv/go-auth-template/internal/logger"
	"github.com/nurbergenoovv/go-auth-template/internal/models"
)

// PairIssuer issues access/refresh token pairs for a user.
type PairIssuer interface {
	IssuePair(ctx context.Context, user *models.UserDB) (*models.TokenPair, error)
}

// UserService handles profile reads and updates.
type UserService struct {
	reader UserReader
	writer UserWriter
	issuer PairIssuer
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer UserWriter, issuer PairIssuer) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
		issuer: issuer,
	}
}

// GetCurrent returns the user identified by the access token claims.
func (svc *UserService) GetCurrent(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "user_id", userID)
		return nil, ErrUserDoesNotExist
	}

	return user, nil
}

// List returns all registered users.
func (svc *UserService) List(ctx context.Context) ([]models.UserDB, error) {
	users, err := svc.reader.GetAll(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}

	return users, nil
}

// Update changes a user's profile fields and re-issues the token pair,
// since the access token claims embed the email.
func (svc *UserService) Update(ctx context.Context, userID uuid.UUID, firstName, lastName, email string) (*models.UserDB, *models.TokenPair, error) {
	user, err := svc.writer.Update(ctx, userID, firstName, lastName, email)
	if err != nil {
		logger.Log.Errorw("failed to update user", "user_id", userID, "err", err)
		return nil, nil, err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "user_id", userID)
		return nil, nil, ErrUserDoesNotExist
	}

	pair, err := svc.issuer.IssuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}
