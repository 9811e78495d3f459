package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/phishguard/internal/config"
	"github.com/ignite/phishguard/internal/pkg/logger"
	"github.com/ignite/phishguard/internal/worker"
)

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Redis.Addr == "" {
		log.Fatal("REDIS_ADDR is required for the event worker")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("worker-%s-%d", hostname, os.Getpid())
	consumer := worker.NewEventConsumer(client, cfg.Redis.Stream, "phishguard-workers", consumerName, worker.AuditLogger(client))

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		sig := <-stop
		logger.Info("worker shutting down", "signal", sig.String())
		cancel()
	}()

	if err := consumer.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("consumer: %v", err)
	}
	logger.Info("worker stopped")
}
