package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nurbergenoovv/go-auth-template/internal/logger"
	"github.com/nurbergenoovv/go-auth-template/internal/services"
)

// PasswordForgetter defines the interface for the forgot-password flow.
type PasswordForgetter interface {
	Forgot(ctx context.Context, email string) error
}

// ForgotPasswordRequest represents the JSON body for a reset request
// swagger:model ForgotPasswordRequest
type ForgotPasswordRequest struct {
	// Email of the account to reset
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordResponse represents a successful reset request response
// swagger:model ForgotPasswordResponse
type ForgotPasswordResponse struct {
	// Success message
	// default: Reset link sent to email
	Message string `json:"message"`
}

// NewForgotPasswordHandler returns an HTTP handler for requesting a reset link.
// @Summary Request password reset
// @Description Creates a single-use reset token and mails a reset link to the user
// @Tags auth
// @Accept json
// @Produce json
// @Param forgotPasswordRequest body handlers.ForgotPasswordRequest true "Forgot Password Request"
// @Success 200 {object} handlers.ForgotPasswordResponse "Reset link sent"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /forgot_password [post]
func NewForgotPasswordHandler(svc PasswordForgetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ForgotPasswordRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		if err := validate.Struct(req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		if err := svc.Forgot(r.Context(), req.Email); err != nil {
			switch {
			case errors.Is(err, services.ErrUserDoesNotExist):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "User not found",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ForgotPasswordResponse{
			Message: "Reset link sent to email",
		})
	}
}
