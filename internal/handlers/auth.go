package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/xuantrong94/chat-backend/internal/model"
	"github.com/xuantrong94/chat-backend/internal/repository"
	"github.com/xuantrong94/chat-backend/internal/service"
	"github.com/xuantrong94/chat-backend/pkg/cookie"
	valid "github.com/xuantrong94/chat-backend/pkg/validator"
)

var validate = valid.GetValidator()

type AuthHandler struct {
	authService service.AuthServicer
	users       repository.UserRepo
	cookies     *cookie.Policy
}

func NewAuthHandler(authSvc service.AuthServicer, users repository.UserRepo, cookies *cookie.Policy) *AuthHandler {
	return &AuthHandler{
		authService: authSvc,
		users:       users,
		cookies:     cookies,
	}
}

// Signup godoc
//
//	@Summary		Register a new user
//	@Description	Create an account with email, full name and password
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	map[string]any
//	@Failure		400	{object}	map[string]any
//	@Router			/auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondErrorJSON(w, r, http.StatusBadRequest, ErrInvalidJson.Error(), "Invalid JSON format", nil)
		return
	}

	if err := validate.Struct(req); err != nil {
		RespondErrorJSON(w, r, http.StatusBadRequest, ErrInvalidRequest.Error(), "Input validation failed", validationDetails(err))
		return
	}

	// mismatched confirmation fails fast, before any store call
	if req.Password != req.ConfirmPassword {
		RespondErrorJSON(w, r, http.StatusBadRequest, ErrPasswordMismatch.Error(), "Passwords do not match", nil)
		return
	}

	user, pair, err := h.authService.Signup(r.Context(), service.SignupParams{
		Email:     req.Email,
		FullName:  req.FullName,
		Password:  req.Password,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			RespondErrorJSON(w, r, http.StatusBadRequest, ErrUserExists.Error(), "An account with this email already exists", nil)
			return
		}
		zap.S().Errorw("signup failed", "error", err)
		RespondErrorJSON(w, r, http.StatusInternalServerError, ErrInternalServer.Error(), "Something went wrong", nil)
		return
	}

	h.cookies.SetPair(w, pair.AccessToken, pair.RefreshToken)
	RespondSuccessJSON(w, r, http.StatusCreated, "user registered successfully", user)
}

// Signin godoc
//
//	@Summary		Sign in a user
//	@Description	Authenticate with email and password
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Failure		401	{object}	map[string]any
//	@Router			/auth/signin [post]
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req model.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondErrorJSON(w, r, http.StatusBadRequest, ErrInvalidJson.Error(), "Invalid JSON format", nil)
		return
	}

	if err := validate.Struct(req); err != nil {
		RespondErrorJSON(w, r, http.StatusBadRequest, ErrInvalidRequest.Error(), "Input validation failed", validationDetails(err))
		return
	}

	user, pair, err := h.authService.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			RespondErrorJSON(w, r, http.StatusUnauthorized, ErrInvalidCredentials.Error(), "Invalid email or password", nil)
			return
		}
		zap.S().Errorw("signin failed", "error", err)
		RespondErrorJSON(w, r, http.StatusInternalServerError, ErrInternalServer.Error(), "Something went wrong", nil)
		return
	}

	h.cookies.SetPair(w, pair.AccessToken, pair.RefreshToken)
	RespondSuccessJSON(w, r, http.StatusOK, "signed in successfully", user)
}

// Logout godoc
//
//	@Summary		Log out the current user
//	@Description	Clear both token cookies; succeeds whether or not a valid token was presented
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// Tokens stay cryptographically valid until expiry; logout only tells
	// the client to stop presenting them.
	h.cookies.ClearPair(w)
	RespondSuccessJSON(w, r, http.StatusOK, "logged out successfully", struct{}{})
}

// Refresh godoc
//
//	@Summary		Rotate the token pair
//	@Description	Verify the refresh cookie and issue a brand-new access/refresh pair
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Failure		401	{object}	map[string]any
//	@Router			/auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(cookie.RefreshTokenName)
	if err != nil {
		h.cookies.ClearPair(w)
		RespondErrorJSON(w, r, http.StatusUnauthorized, ErrMissingCookie.Error(), "Refresh token cookie missing", nil)
		return
	}

	pair, err := h.authService.Refresh(r.Context(), c.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			h.cookies.ClearPair(w)
			RespondErrorJSON(w, r, http.StatusUnauthorized, ErrUserNotFound.Error(), "User account not found", nil)
		case errors.Is(err, service.ErrInvalidRefreshToken):
			h.cookies.ClearPair(w)
			RespondErrorJSON(w, r, http.StatusUnauthorized, ErrInvalidRefreshToken.Error(), "Invalid or expired refresh token", nil)
		default:
			zap.S().Errorw("refresh failed", "error", err)
			RespondErrorJSON(w, r, http.StatusInternalServerError, ErrTokenGenFailed.Error(), "failed to generate tokens", nil)
		}
		return
	}

	h.cookies.SetPair(w, pair.AccessToken, pair.RefreshToken)
	RespondSuccessJSON(w, r, http.StatusOK, "token refreshed successfully", struct{}{})
}
