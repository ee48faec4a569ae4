package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/nurbergenoovv/go-auth-template/internal/jwt"
	"github.com/nurbergenoovv/go-auth-template/internal/middlewares"
	"github.com/nurbergenoovv/go-auth-template/internal/models"
	"github.com/nurbergenoovv/go-auth-template/internal/services"
	"github.com/stretchr/testify/assert"
)

// authenticated wraps a handler with the auth middleware backed by a mock
// tokener that always resolves to the given user ID.
func authenticated(ctrl *gomock.Controller, userID uuid.UUID, next http.HandlerFunc) http.Handler {
	mockTokener := middlewares.NewMockTokener(ctrl)
	mockTokener.EXPECT().
		GetTokenFromRequest(gomock.Any(), gomock.Any()).
		Return("token", nil)
	mockTokener.EXPECT().
		GetClaims(gomock.Any(), "token").
		Return(&jwt.Claims{UserID: userID}, nil)
	return middlewares.AuthMiddleware(mockTokener)(next)
}

func TestMeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	createdAt := time.Now().UTC().Truncate(time.Second)
	user := &models.UserDB{
		UserID:    userID,
		Username:  "john_doe",
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Role:      models.RoleUser,
		CreatedAt: createdAt,
	}

	t.Run("success", func(t *testing.T) {
		mockSvc := NewMockCurrentUserGetter(ctrl)
		mockSvc.EXPECT().
			GetCurrent(gomock.Any(), userID).
			Return(user, nil)

		handler := authenticated(ctrl, userID, NewMeHandler(mockSvc))

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got UserResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, userID.String(), got.UserID)
		assert.Equal(t, "john_doe", got.Username)
		assert.Equal(t, "john@example.com", got.Email)
		assert.Equal(t, models.RoleUser, got.Role)
	})

	t.Run("no user id in context", func(t *testing.T) {
		mockSvc := NewMockCurrentUserGetter(ctrl)

		handler := NewMeHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("user does not exist", func(t *testing.T) {
		mockSvc := NewMockCurrentUserGetter(ctrl)
		mockSvc.EXPECT().
			GetCurrent(gomock.Any(), userID).
			Return(nil, services.ErrUserDoesNotExist)

		handler := authenticated(ctrl, userID, NewMeHandler(mockSvc))

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("internal server error", func(t *testing.T) {
		mockSvc := NewMockCurrentUserGetter(ctrl)
		mockSvc.EXPECT().
			GetCurrent(gomock.Any(), userID).
			Return(nil, errors.New("db error"))

		handler := authenticated(ctrl, userID, NewMeHandler(mockSvc))

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
