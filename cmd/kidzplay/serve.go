package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"kidzplay/internal/config"
	"kidzplay/internal/http/handlers"
	"kidzplay/internal/http/server"
	"kidzplay/internal/repos"
	"kidzplay/internal/services"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the kidzplay HTTP API.

Examples:
  kidzplay serve --port 5000
  kidzplay serve --store sqlite`,
		RunE: runServe,
	}
	addServeFlags(cmd)
	return cmd
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("port", "", "listen port (overrides PORT)")
	cmd.Flags().String("store", "", "document store: mongo or sqlite (overrides STORE)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if v, _ := cmd.Flags().GetString("port"); v != "" {
		cfg.Port = v
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Store = v
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			log.Printf("[warn] closing store: %v", err)
		}
	}()

	if cfg.PaymentKey == "" {
		log.Printf("[warn] PAYMENT_SECRET_KEY is empty; payment intents will fail")
	}
	tokens := services.NewTokenService(cfg.TokenSecret, cfg.TokenTTL)
	deps := handlers.NewDeps(store, cfg, tokens, services.NewStripeGateway(cfg.PaymentKey))
	app := server.New(deps)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("kidzplay server is running on port %s", cfg.Port)
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		return app.ShutdownWithTimeout(10 * time.Second)
	})
	return g.Wait()
}

func openStore(ctx context.Context, cfg config.Config) (repos.Store, error) {
	if cfg.Store == config.StoreSQLite {
		s, err := repos.OpenSQLite(cfg.SQLiteDSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return s, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	s, err := repos.OpenMongo(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		return nil, err
	}
	return s, nil
}
