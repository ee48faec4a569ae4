package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/nurbergenoovv/go-auth-template/internal/models"
	"github.com/nurbergenoovv/go-auth-template/internal/services"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService_Forgot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockTokens := services.NewMockResetTokenStore(ctrl)
	mockMailer := services.NewMockMailer(ctrl)

	svc := services.NewPasswordService(mockReader, mockWriter, mockTokens, mockMailer, nil)

	userID := uuid.New()
	email := "alice@example.com"
	user := &models.UserDB{UserID: userID, Email: email}

	t.Run("successful forgot sends mail", func(t *testing.T) {
		var savedToken string
		mockReader.EXPECT().
			GetByEmailOrUsername(gomock.Any(), &email, gomock.Nil()).
			Return(user, nil)
		mockTokens.EXPECT().
			Save(gomock.Any(), gomock.Any(), userID).
			DoAndReturn(func(_ context.Context, token string, _ uuid.UUID) error {
				savedToken = token
				assert.Len(t, token, 32)
				return nil
			})
		mockMailer.EXPECT().
			SendPasswordReset(email, gomock.Any()).
			DoAndReturn(func(_ string, token string) error {
				assert.Equal(t, savedToken, token)
				return nil
			})

		err := svc.Forgot(context.Background(), email)
		assert.NoError(t, err)
	})

	t.Run("user does not exist", func(t *testing.T) {
		ghost := "ghost@example.com"
		mockReader.EXPECT().
			GetByEmailOrUsername(gomock.Any(), &ghost, gomock.Nil()).
			Return(nil, nil)

		err := svc.Forgot(context.Background(), ghost)
		assert.ErrorIs(t, err, services.ErrUserDoesNotExist)
	})

	t.Run("reader error", func(t *testing.T) {
		mockReader.EXPECT().
			GetByEmailOrUsername(gomock.Any(), &email, gomock.Nil()).
			Return(nil, errors.New("db error"))

		err := svc.Forgot(context.Background(), email)
		assert.EqualError(t, err, "db error")
	})

	t.Run("save error", func(t *testing.T) {
		mockReader.EXPECT().
			GetByEmailOrUsername(gomock.Any(), &email, gomock.Nil()).
			Return(user, nil)
		mockTokens.EXPECT().
			Save(gomock.Any(), gomock.Any(), userID).
			Return(errors.New("redis error"))

		err := svc.Forgot(context.Background(), email)
		assert.EqualError(t, err, "redis error")
	})

	t.Run("mailer error", func(t *testing.T) {
		mockReader.EXPECT().
			GetByEmailOrUsername(gomock.Any(), &email, gomock.Nil()).
			Return(user, nil)
		mockTokens.EXPECT().
			Save(gomock.Any(), gomock.Any(), userID).
			Return(nil)
		mockMailer.EXPECT().
			SendPasswordReset(email, gomock.Any()).
			Return(errors.New("smtp error"))

		err := svc.Forgot(context.Background(), email)
		assert.EqualError(t, err, "smtp error")
	})
}

func TestPasswordService_Reset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockTokens := services.NewMockResetTokenStore(ctrl)
	mockMailer := services.NewMockMailer(ctrl)

	svc := services.NewPasswordService(mockReader, mockWriter, mockTokens, mockMailer, nil)

	userID := uuid.New()
	user := &models.UserDB{UserID: userID, Email: "alice@example.com"}

	t.Run("successful reset consumes the token", func(t *testing.T) {
		newPassword := "newpass123"
		mockTokens.EXPECT().Get(gomock.Any(), "token").Return(userID, nil)
		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
		mockWriter.EXPECT().
			UpdatePassword(gomock.Any(), userID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, hash string) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(newPassword)))
				return nil
			})
		mockTokens.EXPECT().Delete(gomock.Any(), "token").Return(nil)

		err := svc.Reset(context.Background(), "token", newPassword)
		assert.NoError(t, err)
	})

	t.Run("unknown token", func(t *testing.T) {
		mockTokens.EXPECT().Get(gomock.Any(), "bad-token").Return(uuid.Nil, errors.New("token not found"))

		err := svc.Reset(context.Background(), "bad-token", "newpass123")
		assert.ErrorIs(t, err, services.ErrResetTokenNotFound)
	})

	t.Run("user no longer exists", func(t *testing.T) {
		mockTokens.EXPECT().Get(gomock.Any(), "token").Return(userID, nil)
		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)

		err := svc.Reset(context.Background(), "token", "newpass123")
		assert.ErrorIs(t, err, services.ErrUserDoesNotExist)
	})

	t.Run("update password error", func(t *testing.T) {
		mockTokens.EXPECT().Get(gomock.Any(), "token").Return(userID, nil)
		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
		mockWriter.EXPECT().
			UpdatePassword(gomock.Any(), userID, gomock.Any()).
			Return(errors.New("db error"))

		err := svc.Reset(context.Background(), "token", "newpass123")
		assert.EqualError(t, err, "db error")
	})

	t.Run("delete token error", func(t *testing.T) {
		mockTokens.EXPECT().Get(gomock.Any(), "token").Return(userID, nil)
		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
		mockWriter.EXPECT().
			UpdatePassword(gomock.Any(), userID, gomock.Any()).
			Return(nil)
		mockTokens.EXPECT().Delete(gomock.Any(), "token").Return(errors.New("redis error"))

		err := svc.Reset(context.Background(), "token", "newpass123")
		assert.EqualError(t, err, "redis error")
	})
}
