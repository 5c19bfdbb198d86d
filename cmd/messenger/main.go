package main

import (
	"context"
	"fmt"
	"os"

	"github.com/AlibekovAA/messenger/backend/internal/common/bootstrap"
	"github.com/AlibekovAA/messenger/backend/internal/common/config"
	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
	srv "github.com/AlibekovAA/messenger/backend/internal/common/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogDir, "messenger", cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	server := srv.New(srv.OptionsFrom(cfg), app.Handler())

	err = srv.Run(ctx, server, log, func(context.Context) error {
		cancel()
		app.Close()
		return nil
	})
	if err != nil {
		log.Fatalf("server error: %v", err)
	}
}
