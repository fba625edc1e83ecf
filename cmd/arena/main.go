package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/arena-bot/internal/config"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, config.LoadCLI); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var rejected *rejectedError
		if errors.As(err, &rejected) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
