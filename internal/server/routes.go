package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xuantrong94/chat-backend/internal/handlers"
	"github.com/xuantrong94/chat-backend/internal/middleware"
	"github.com/xuantrong94/chat-backend/internal/service"
)

func registerRoutes(mux *chi.Mux, auth *handlers.AuthHandler, users *handlers.UserHandler, messages *handlers.MessageHandler, authService service.AuthServicer) {
	mux.Get("/healthz", healthCheck)

	mux.Route("/auth", func(r chi.Router) {
		r.Post("/signup", auth.Signup)
		r.Post("/signin", auth.Signin)
		r.Post("/logout", auth.Logout)
		r.Post("/refresh", auth.Refresh)
	})

	mux.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(authService))
		r.Get("/users/me", users.Profile)
		r.Post("/messages", messages.Send)
		r.Get("/messages", messages.List)
	})
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"message": "ok",
		"time":    time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(resp)
}
