package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/xuantrong94/chat-backend/internal/server"
	"github.com/xuantrong94/chat-backend/pkg/config"
	"github.com/xuantrong94/chat-backend/pkg/logger"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found, relying on process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	defer log.Sync()
	zap.ReplaceGlobals(log.Desugar())

	log.Infow("initializing chat backend", "env", cfg.Env)

	srv, err := server.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatalf("failed to initialize server -> %s", err.Error())
	}

	if err := srv.Run(); err != nil {
		log.Fatalf("server failed to run -> %s", err.Error())
	}
}
