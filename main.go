package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socialmedia/internal/api"
	"socialmedia/internal/config"
	"socialmedia/internal/kafka"
	"socialmedia/internal/logger"
	"socialmedia/internal/models"
	"socialmedia/internal/service"
	"socialmedia/internal/store"
)

func main() {
	logger.Info("starting application")

	// Root context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(config.DBDriver, config.DBDSN)
	if err != nil {
		logger.Error("open store failed", err)
		os.Exit(1)
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		logger.Error("migrate failed", err)
		os.Exit(1)
	}

	accounts := service.NewAccounts(st)
	messages := service.NewMessages(st)

	// Optional Kafka event stream: producer publishes created messages, the
	// reader feeds them back into the websocket broadcast loop.
	var producer api.Producer
	var broadcast chan models.Message
	if config.KafkaEnabled {
		p := kafka.NewProducer(config.KafkaBroker, config.Topic)
		defer p.Close()
		producer = p
		broadcast = make(chan models.Message)
		go kafka.Reader(ctx, config.KafkaBroker, config.Topic, broadcast)
	}

	srv := &http.Server{
		Addr:    ":" + config.ApiPort,
		Handler: api.NewServer(accounts, messages, producer, st, broadcast),
	}

	// Capture OS signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("http server listening", logger.FieldKV("port", config.ApiPort))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("http server error", err)
		os.Exit(1)
	}
}
