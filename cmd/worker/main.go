package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/srihari7072/golfzon-dashboard/internal/config"
	kafkax "github.com/srihari7072/golfzon-dashboard/internal/kafka"
	"github.com/srihari7072/golfzon-dashboard/internal/logger"
	redisx "github.com/srihari7072/golfzon-dashboard/internal/redis"
	"github.com/srihari7072/golfzon-dashboard/internal/worker"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg.Env)
	log.Info("invalidation worker starting")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cache := redisx.NewCache(cfg.RedisAddr, time.Duration(cfg.CacheTTLSeconds)*time.Second, log)
	defer cache.Close()

	consumer := kafkax.NewConsumer([]string{cfg.KafkaBrokers}, "golfzon-invalidator", "upstream-changes")
	defer consumer.Close()
	dlq := kafkax.NewProducer([]string{cfg.KafkaBrokers}, "upstream-changes-dlq")
	defer dlq.Close()

	inv := worker.NewInvalidator(log, cache, consumer, dlq, cfg.MaxWorkerRoutineCount)
	_ = inv.Run(ctx)

	log.Info("worker stopped")
}
