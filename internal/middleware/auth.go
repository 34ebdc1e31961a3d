package middleware

import (
	"errors"
	"net/http"

	"github.com/xuantrong94/chat-backend/internal/handlers"
	"github.com/xuantrong94/chat-backend/internal/service"
	"github.com/xuantrong94/chat-backend/pkg/cookie"
	"github.com/xuantrong94/chat-backend/pkg/token"
)

// RequireAuth gates protected routes on a valid access-token cookie. The
// signed claim is trusted as-is; no database lookup happens here.
func RequireAuth(s service.AuthServicer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookie.AccessTokenName)
			if err != nil {
				handlers.RespondErrorJSON(w, r, http.StatusUnauthorized, handlers.ErrMissingCookie.Error(), "Access token cookie missing", nil)
				return
			}

			claims, err := s.VerifyAccessToken(c.Value)
			if err != nil {
				code := handlers.ErrInvalidToken
				if errors.Is(err, token.ErrTokenExpired) {
					code = handlers.ErrTokenExpired
				}
				handlers.RespondErrorJSON(w, r, http.StatusUnauthorized, code.Error(), err.Error(), nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(handlers.WithIdentity(r.Context(), claims)))
		})
	}
}
