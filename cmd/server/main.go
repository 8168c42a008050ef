package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pvlabs/yampi2bling/internal/adapters/frenet"
	"github.com/pvlabs/yampi2bling/internal/api"
	"github.com/pvlabs/yampi2bling/internal/application/quote"
	"github.com/pvlabs/yampi2bling/internal/application/service"
	"github.com/pvlabs/yampi2bling/internal/infrastructure/config"
	"github.com/pvlabs/yampi2bling/internal/infrastructure/logging"
)

func loadConfig(path string) *config.Config {
	if path != "" {
		return config.LoadOrEnvWithPath(path)
	}
	return config.LoadOrEnv()
}

func main() {
	configFile := flag.String("config", "", "Configuration file path")
	flag.Parse()

	cfg := loadConfig(*configFile)
	logger := logging.NewLogger(cfg.Observability.Logging)

	client, err := frenet.NewClient(frenet.Config{
		Token:     cfg.Frenet.Token,
		SellerCEP: cfg.Frenet.SellerCEP,
		BaseURL:   cfg.Frenet.BaseURL,
		Timeout:   time.Duration(cfg.Frenet.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		logger.Error("Failed to create Frenet client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	engine := quote.NewEngine(
		client,
		time.Duration(cfg.Quote.IntervalMS)*time.Millisecond,
		logger.With("system", "quote"),
	)
	converter := service.NewConverter(engine, logger.With("system", "service"))

	server := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, converter, logger.With("system", "api"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("Received shutdown signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}
