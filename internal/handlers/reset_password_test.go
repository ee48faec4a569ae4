package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/nurbergenoovv/go-auth-template/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestResetPasswordHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	validBody := ResetPasswordRequest{
		Token:       "reset-token",
		NewPassword: "newpass123",
	}

	tests := []struct {
		name         string
		reqBody      *ResetPasswordRequest
		rawBody      string
		mockSetup    func(m *MockPasswordResetter)
		expectedCode int
		expectedBody map[string]string
	}{
		{
			name:    "success",
			reqBody: &validBody,
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().
					Reset(gomock.Any(), "reset-token", "newpass123").
					Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: map[string]string{"message": "Password changed successfully"},
		},
		{
			name:    "token not found",
			reqBody: &validBody,
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().
					Reset(gomock.Any(), "reset-token", "newpass123").
					Return(services.ErrResetTokenNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: map[string]string{"error": "Token not found"},
		},
		{
			name:    "user for token does not exist",
			reqBody: &validBody,
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().
					Reset(gomock.Any(), "reset-token", "newpass123").
					Return(services.ErrUserDoesNotExist)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: map[string]string{"error": "Token not found"},
		},
		{
			name:    "internal server error",
			reqBody: &validBody,
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().
					Reset(gomock.Any(), "reset-token", "newpass123").
					Return(errors.New("db failure"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: map[string]string{"error": "Internal server error"},
		},
		{
			name:         "invalid json",
			rawBody:      "{invalid json}",
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"error": "invalid request body"},
		},
		{
			name:         "short password fails validation",
			reqBody:      &ResetPasswordRequest{Token: "reset-token", NewPassword: "short"},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockPasswordResetter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewResetPasswordHandler(mockSvc)

			var req *http.Request
			if tt.rawBody != "" {
				req = httptest.NewRequest(http.MethodPost, "/reset_password", bytes.NewBufferString(tt.rawBody))
			} else {
				bodyBytes, _ := json.Marshal(tt.reqBody)
				req = httptest.NewRequest(http.MethodPost, "/reset_password", bytes.NewBuffer(bodyBytes))
			}
			rec := httptest.NewRecorder()

			handler(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedBody != nil {
				var got map[string]string
				err := json.Unmarshal(rec.Body.Bytes(), &got)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBody, got)
			}
		})
	}
}
