package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nurbergenoovv/go-auth-template/internal/logger"
	"github.com/nurbergenoovv/go-auth-template/internal/services"
)

// PasswordResetter defines the interface for the reset-password flow.
type PasswordResetter interface {
	Reset(ctx context.Context, token, newPassword string) error
}

// ResetPasswordRequest represents the JSON body for a password reset
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// Reset token from the mailed link
	// required: true
	Token string `json:"token" validate:"required"`

	// New password
	// required: true
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ResetPasswordResponse represents a successful password reset response
// swagger:model ResetPasswordResponse
type ResetPasswordResponse struct {
	// Success message
	// default: Password changed successfully
	Message string `json:"message"`
}

// NewResetPasswordHandler returns an HTTP handler for completing a password reset.
// @Summary Reset password
// @Description Consumes a reset token and stores a new password hash
// @Tags auth
// @Accept json
// @Produce json
// @Param resetPasswordRequest body handlers.ResetPasswordRequest true "Reset Password Request"
// @Success 200 {object} handlers.ResetPasswordResponse "Password changed"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 404 {object} handlers.ErrorResponse "Token not found or expired"
// @Router /reset_password [post]
func NewResetPasswordHandler(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest

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

		if err := svc.Reset(r.Context(), req.Token, req.NewPassword); err != nil {
			switch {
			case errors.Is(err, services.ErrResetTokenNotFound),
				errors.Is(err, services.ErrUserDoesNotExist):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Token not found",
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
		json.NewEncoder(w).Encode(ResetPasswordResponse{
			Message: "Password changed successfully",
		})
	}
}
