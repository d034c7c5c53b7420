package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/and161185/ventas/internal/config"
	"github.com/and161185/ventas/internal/deps"
	"github.com/and161185/ventas/internal/remote"
	"github.com/and161185/ventas/internal/server"
	"github.com/and161185/ventas/internal/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := config.NewConfig()
	deps := deps.NewDependencies(config)
	defer deps.Logger.Sync()

	sessions := session.NewStore()
	api := remote.NewClient(config.APIBaseURL, config.RequestTimeout, config.Location, sessions, deps.Logger)

	srv := server.NewServer(api, sessions, config, deps)
	if err := srv.Run(ctx); err != nil {
		deps.Logger.Fatal(err)
	}
}
