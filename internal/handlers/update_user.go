package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nurbergenoovv/go-auth-template/internal/logger"
	"github.com/nurbergenoovv/go-auth-template/internal/models"
	"github.com/nurbergenoovv/go-auth-template/internal/services"
)

// UserUpdater defines the interface for updating a user profile.
type UserUpdater interface {
	Update(ctx context.Context, userID uuid.UUID, firstName, lastName, email string) (*models.UserDB, *models.TokenPair, error)
}

// UpdateUserRequest represents the JSON body for a profile update
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	// First name
	// required: true
	FirstName string `json:"first_name" validate:"required"`

	// Last name
	// required: true
	LastName string `json:"last_name" validate:"required"`

	// Email
	// required: true
	Email string `json:"email" validate:"required,email"`
}

// UpdateUserResponse represents a successful profile update response
// swagger:model UpdateUserResponse
type UpdateUserResponse struct {
	// Success message
	// default: User updated successfully
	Message string `json:"message"`

	// Updated user
	User UserResponse `json:"user"`

	// Re-issued access JWT (claims embed profile data)
	AccessToken string `json:"access_token"`

	// Re-issued refresh token
	RefreshToken string `json:"refresh_token"`
}

// NewUpdateUserHandler returns an HTTP handler for profile updates.
// @Summary Update user
// @Description Updates name and email of a user and re-issues the token pair
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Param updateUserRequest body handlers.UpdateUserRequest true "Update Request"
// @Success 200 {object} handlers.UpdateUserResponse "User updated"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/{userID} [put]
func NewUpdateUserHandler(svc UserUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid user id",
			})
			return
		}

		var req UpdateUserRequest
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

		user, pair, err := svc.Update(r.Context(), userID, req.FirstName, req.LastName, req.Email)
		if err != nil {
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
		json.NewEncoder(w).Encode(UpdateUserResponse{
			Message:      "User updated successfully",
			User:         newUserResponse(user),
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		})
	}
}
