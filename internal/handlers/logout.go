package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nurbergenoovv/go-auth-template/internal/logger"
	"github.com/nurbergenoovv/go-auth-template/internal/services"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, refreshToken string) error
}

// LogoutRequest represents the JSON body for logout
// swagger:model LogoutRequest
type LogoutRequest struct {
	// Refresh token to revoke
	// required: true
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutResponse represents a successful logout response
// swagger:model LogoutResponse
type LogoutResponse struct {
	// Success message
	// default: Logged out successfully
	Message string `json:"message"`
}

// NewLogoutHandler returns an HTTP handler for logout.
// @Summary User logout
// @Description Revoke the presented refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param logoutRequest body handlers.LogoutRequest true "Logout Request"
// @Success 200 {object} handlers.LogoutResponse "Logged out"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.ErrorResponse "Unknown refresh token"
// @Router /logout [post]
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LogoutRequest

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

		if err := svc.Logout(r.Context(), req.RefreshToken); err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidRefreshToken):
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Unknown refresh token",
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
		json.NewEncoder(w).Encode(LogoutResponse{
			Message: "Logged out successfully",
		})
	}
}
