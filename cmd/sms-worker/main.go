package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang-sms-dispatch/internal/adapters/db/postgres"
	"golang-sms-dispatch/internal/adapters/provider/clicksend"
	"golang-sms-dispatch/internal/adapters/queue/rabbitmq"
	"golang-sms-dispatch/internal/app"
	"golang-sms-dispatch/internal/config"
	"golang-sms-dispatch/internal/domain"
	"golang-sms-dispatch/internal/metrics"
	"golang-sms-dispatch/internal/ports"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	conf, err := config.Load()
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}
	if conf.DefaultSender == "" {
		log.Error("SMS_DEFAULT_SENDER is required")
		os.Exit(1)
	}
	policy, err := app.ParseDirectoryPolicy(conf.DirectoryPolicy)
	if err != nil {
		log.Error("parse directory policy", "err", err)
		os.Exit(1)
	}

	// ── Adapters ─────────────────────────────────────────────────────────────
	provider, err := clicksend.New(clicksend.Config{
		APIKey:   conf.Provider.APIKey,
		Username: conf.Provider.Username,
		BaseURL:  conf.Provider.BaseURL,
		Version:  conf.Provider.Version,
		Timeout:  conf.Provider.Timeout,
	}, log)
	if err != nil {
		log.Error("create provider client", "err", err)
		os.Exit(1)
	}

	var repo ports.DeliveryRepository
	if conf.DatabaseURL != "" {
		pg, err := postgres.New(conf.DatabaseURL)
		if err != nil {
			log.Error("connect postgres", "err", err)
			os.Exit(1)
		}
		defer pg.Close()
		repo = pg
	} else {
		log.Info("DATABASE_URL not set; deliveries will not be recorded")
	}

	consumer, err := rabbitmq.NewConsumer(conf.AMQPURL, conf.Queue, log)
	if err != nil {
		log.Error("connect rabbitmq consumer", "err", err)
		os.Exit(1)
	}
	defer consumer.Close()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	// ── Application service ──────────────────────────────────────────────────
	authorizer := app.NewSenderAuthorizer(provider, policy, log)
	sender := app.NewDirectSender(authorizer, provider, log)
	svc := app.NewDispatchService(sender, repo, conf.DefaultSender, m, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := authorizer.Authorize(ctx, conf.DefaultSender); err != nil {
		log.Warn("default sender is not authorized right now; deliveries will fail until it is",
			"sender", conf.DefaultSender, "err", err)
	}

	metricsApp := fiber.New(fiber.Config{AppName: "sms-worker-metrics", DisableStartupMessage: true})
	metricsApp.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	go func() {
		if err := metricsApp.Listen(conf.MetricsAddr); err != nil {
			log.Error("metrics listener", "err", err)
		}
	}()
	defer metricsApp.Shutdown() //nolint:errcheck

	log.Info("sms-worker started", "queue", conf.Queue, "sender", conf.DefaultSender, "policy", policy)

	if err := consumer.Consume(ctx, func(ctx context.Context, env domain.Envelope) error {
		return svc.HandleEnvelope(ctx, env)
	}); err != nil && ctx.Err() == nil {
		log.Error("consumer error", "err", err)
		os.Exit(1)
	}

	log.Info("shutting down sms-worker")
}
