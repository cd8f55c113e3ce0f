package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/buzzline/consumer/config"
	"github.com/buzzline/consumer/internal/app"
)

// Exit codes an operator can branch on:
//
//	2  configuration unreadable or invalid
//	3  store/schema setup failed
//	11 source unreachable (broker probe exhausted)
const (
	exitConfig = 2
	exitSchema = 3
	exitSource = 11
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(exitConfig)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := app.Bootstrap(ctx, &cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		switch {
		case errors.Is(err, app.ErrSchemaSetup):
			os.Exit(exitSchema)
		case errors.Is(err, app.ErrSourceUnavailable):
			os.Exit(exitSource)
		default:
			os.Exit(1)
		}
	}
	defer cleanup()

	if err := a.Run(ctx); err != nil {
		a.Logger.Errorf(ctx, "run: %v", err)
	}
}
