package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"des-go/pkg/api"
	"des-go/pkg/log"

	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "serves encrypt/decrypt/trace over HTTP",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "listen",
			Aliases: []string{"l"},
			Usage:   "Listen `ADDRESS` (default from config)",
		},
	},
	Action: serveCmd,
}

func serveCmd(c *cli.Context) error {
	addr := cfg.APIListenAddr
	if c.IsSet("listen") {
		addr = c.String("listen")
	}
	srv := api.NewServer(cfg.TraceGroup)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal %s, shutting down gracefully...", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Api.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	if err := srv.Run(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Printf("api stopped")
	return nil
}
