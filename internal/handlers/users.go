package handlers

import (
	"net/http"

	"github.com/xuantrong94/chat-backend/internal/repository"
)

type UserHandler struct {
	users repository.UserRepo
}

func NewUserHandler(users repository.UserRepo) *UserHandler {
	return &UserHandler{users: users}
}

// Profile godoc
//
//	@Summary		Get the authenticated user's profile
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Failure		401	{object}	map[string]any
//	@Router			/users/me [get]
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := GetIdentity(r.Context())
	if claims == nil {
		RespondErrorJSON(w, r, http.StatusUnauthorized, ErrInvalidToken.Error(), "identity not found in request context", nil)
		return
	}

	user, err := h.users.FindByID(r.Context(), claims.UserID)
	if err != nil {
		RespondErrorJSON(w, r, http.StatusNotFound, ErrUserNotFound.Error(), "user profile could not be retrieved", nil)
		return
	}

	RespondSuccessJSON(w, r, http.StatusOK, "profile fetched successfully", user)
}
