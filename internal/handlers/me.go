package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nurbergenoovv/go-auth-template/internal/logger"
	"github.com/nurbergenoovv/go-auth-template/internal/middlewares"
	"github.com/nurbergenoovv/go-auth-template/internal/models"
	"github.com/nurbergenoovv/go-auth-template/internal/services"
)

// CurrentUserGetter defines the interface for fetching the authenticated user.
type CurrentUserGetter interface {
	GetCurrent(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserResponse represents a user in API responses, without credentials
// swagger:model UserResponse
type UserResponse struct {
	// User ID
	UserID string `json:"user_id"`

	// Username
	Username string `json:"username"`

	// First name
	FirstName string `json:"first_name"`

	// Last name
	LastName string `json:"last_name"`

	// Email
	Email string `json:"email"`

	// Role flag
	Role string `json:"role"`

	// Creation timestamp
	CreatedAt time.Time `json:"created_at"`
}

// newUserResponse maps a database record to its API representation.
func newUserResponse(user *models.UserDB) UserResponse {
	return UserResponse{
		UserID:    user.UserID.String(),
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// NewMeHandler returns an HTTP handler for the current-user endpoint.
// @Summary Current user
// @Description Returns the user identified by the access token
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.UserResponse "Current user"
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Router /users/me [get]
func NewMeHandler(svc CurrentUserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())
		if userID == uuid.Nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "No token provided",
			})
			return
		}

		user, err := svc.GetCurrent(r.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserDoesNotExist):
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "User does not exist",
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
		json.NewEncoder(w).Encode(newUserResponse(user))
	}
}
