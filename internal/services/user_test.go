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
)

func TestUserService_GetCurrent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockIssuer := services.NewMockPairIssuer(ctrl)

	svc := services.NewUserService(mockReader, mockWriter, mockIssuer)

	userID := uuid.New()
	user := &models.UserDB{UserID: userID, Username: "alice", Email: "alice@example.com"}

	tests := []struct {
		name      string
		user      *models.UserDB
		readerErr error
		wantErr   error
	}{
		{
			name: "user found",
			user: user,
		},
		{
			name:    "user does not exist",
			wantErr: services.ErrUserDoesNotExist,
		},
		{
			name:      "reader error",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				GetByID(gomock.Any(), userID).
				Return(tt.user, tt.readerErr)

			got, err := svc.GetCurrent(context.Background(), userID)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.user, got)
			}
		})
	}
}

func TestUserService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockIssuer := services.NewMockPairIssuer(ctrl)

	svc := services.NewUserService(mockReader, mockWriter, mockIssuer)

	t.Run("returns all users", func(t *testing.T) {
		users := []models.UserDB{
			{UserID: uuid.New(), Username: "alice"},
			{UserID: uuid.New(), Username: "bob"},
		}
		mockReader.EXPECT().GetAll(gomock.Any()).Return(users, nil)

		got, err := svc.List(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, users, got)
	})

	t.Run("reader error", func(t *testing.T) {
		mockReader.EXPECT().GetAll(gomock.Any()).Return(nil, errors.New("db error"))

		got, err := svc.List(context.Background())
		assert.EqualError(t, err, "db error")
		assert.Nil(t, got)
	})
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockIssuer := services.NewMockPairIssuer(ctrl)

	svc := services.NewUserService(mockReader, mockWriter, mockIssuer)

	userID := uuid.New()
	updated := &models.UserDB{
		UserID:    userID,
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice.smith@example.com",
		Role:      models.RoleUser,
	}
	pair := &models.TokenPair{AccessToken: "access", RefreshToken: "refresh"}

	t.Run("successful update re-issues the pair", func(t *testing.T) {
		mockWriter.EXPECT().
			Update(gomock.Any(), userID, "Alice", "Smith", "alice.smith@example.com").
			Return(updated, nil)
		mockIssuer.EXPECT().IssuePair(gomock.Any(), updated).Return(pair, nil)

		gotUser, gotPair, err := svc.Update(context.Background(), userID, "Alice", "Smith", "alice.smith@example.com")
		assert.NoError(t, err)
		assert.Equal(t, updated, gotUser)
		assert.Equal(t, pair, gotPair)
	})

	t.Run("user does not exist", func(t *testing.T) {
		mockWriter.EXPECT().
			Update(gomock.Any(), userID, "Alice", "Smith", "alice.smith@example.com").
			Return(nil, nil)

		gotUser, gotPair, err := svc.Update(context.Background(), userID, "Alice", "Smith", "alice.smith@example.com")
		assert.ErrorIs(t, err, services.ErrUserDoesNotExist)
		assert.Nil(t, gotUser)
		assert.Nil(t, gotPair)
	})

	t.Run("writer error", func(t *testing.T) {
		mockWriter.EXPECT().
			Update(gomock.Any(), userID, "Alice", "Smith", "alice.smith@example.com").
			Return(nil, errors.New("db error"))

		gotUser, gotPair, err := svc.Update(context.Background(), userID, "Alice", "Smith", "alice.smith@example.com")
		assert.EqualError(t, err, "db error")
		assert.Nil(t, gotUser)
		assert.Nil(t, gotPair)
	})

	t.Run("issuer error", func(t *testing.T) {
		mockWriter.EXPECT().
			Update(gomock.Any(), userID, "Alice", "Smith", "alice.smith@example.com").
			Return(updated, nil)
		mockIssuer.EXPECT().IssuePair(gomock.Any(), updated).Return(nil, errors.New("sign error"))

		gotUser, gotPair, err := svc.Update(context.Background(), userID, "Alice", "Smith", "alice.smith@example.com")
		assert.EqualError(t, err, "sign error")
		assert.Nil(t, gotUser)
		assert.Nil(t, gotPair)
	})
}
