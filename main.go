package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/almondkiruthu/flashtans-app/handlers"
	"github.com/almondkiruthu/flashtans-app/internal/customers"
	"github.com/almondkiruthu/flashtans-app/internal/orders"
	"github.com/almondkiruthu/flashtans-app/internal/products"
	"github.com/almondkiruthu/flashtans-app/internal/stores/kafka"
	"github.com/almondkiruthu/flashtans-app/internal/stores/postgres"
	"github.com/almondkiruthu/flashtans-app/pkg/logkey"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application stopped", slog.String(logkey.ERROR, err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := postgres.OpenDB()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		return err
	}
	slog.Info("database initialized successfully")

	p, err := products.NewConf(db)
	if err != nil {
		return fmt.Errorf("failed to create products conf: %w", err)
	}
	cust, err := customers.NewConf(db)
	if err != nil {
		return fmt.Errorf("failed to create customers conf: %w", err)
	}
	o, err := orders.NewConf(db, p)
	if err != nil {
		return fmt.Errorf("failed to create orders conf: %w", err)
	}
	svc := orders.NewService(p, cust, o)

	// Order events are best effort; the storefront runs fine without a broker.
	var k *kafka.Conf
	if host := os.Getenv("KAFKA_HOST"); host != "" {
		port := os.Getenv("KAFKA_PORT")
		if port == "" {
			port = "9092"
		}
		k, err = kafka.NewConf(host, port)
		if err != nil {
			slog.Error("kafka unavailable, order events disabled", slog.String(logkey.ERROR, err.Error()))
			k = nil
		} else {
			defer k.Close()
		}
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	api := http.Server{
		Addr:         ":" + port,
		Handler:      handlers.API(p, o, svc, k),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("server started", slog.String("port", port))
		serverErrors <- api.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		slog.Info("shutdown started", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
