package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/xuantrong94/chat-backend/internal/cache"
	"github.com/xuantrong94/chat-backend/internal/handlers"
	"github.com/xuantrong94/chat-backend/internal/middleware"
	"github.com/xuantrong94/chat-backend/internal/repository"
	"github.com/xuantrong94/chat-backend/internal/service"
	"github.com/xuantrong94/chat-backend/pkg/config"
	"github.com/xuantrong94/chat-backend/pkg/cookie"
	"github.com/xuantrong94/chat-backend/pkg/logger"
	"github.com/xuantrong94/chat-backend/pkg/token"
)

type Server struct {
	httpServer *http.Server
	log        *logger.Logger
	users      *repository.PostgresUserRepo
	cache      cache.Cacher
}

// New connects the collaborators and wires the router. Everything is
// constructed here and injected; there are no package-level singletons.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Server, error) {
	users, err := repository.NewPostgresUserRepo(ctx, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}
	log.Info("[DB] connection established")

	var store cache.Cacher
	if cfg.Redis.Addr != "" {
		store, err = cache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			users.Close()
			return nil, err
		}
		log.Info("[CACHE] redis connected")
	} else {
		store = cache.NewMemoryCache()
		log.Warn("[CACHE] REDIS_ADDR not set, using in-process rate limit counters")
	}

	tokens, err := token.NewManager(
		cfg.Auth.AccessTokenSecret,
		cfg.Auth.RefreshTokenSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)
	if err != nil {
		users.Close()
		_ = store.Close()
		return nil, err
	}

	cookies := cookie.NewPolicy(cfg.Cookie, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	authService := service.NewAuthService(users, tokens)

	mux := chi.NewMux()
	mux.Use(chimiddleware.RealIP)
	mux.Use(middleware.RequestLogger(log))
	mux.Use(chimiddleware.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	mux.Use(middleware.RateLimit(store, cfg.RateLimit.Requests, cfg.RateLimit.Window))

	registerRoutes(mux,
		handlers.NewAuthHandler(authService, users, cookies),
		handlers.NewUserHandler(users),
		handlers.NewMessageHandler(),
		authService,
	)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		log:   log,
		users: users,
		cache: store,
	}, nil
}

func (s *Server) Run() error {
	s.log.Infof("[SERVER] running at -> %s", s.httpServer.Addr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Fatalf("[SERVER] failed to serve -> %s", err.Error())
		}
	}()

	<-ctx.Done()

	shutCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutCtx); err != nil {
		s.log.Errorf("[SERVER] shutdown failed -> %s", err.Error())
		return err
	}

	s.users.Close()
	if err := s.cache.Close(); err != nil {
		s.log.Errorf("[CACHE] failed to close -> %s", err.Error())
	}

	return nil
}
