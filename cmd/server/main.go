package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"examreg/internal/audit"
	"examreg/internal/notification"
	"examreg/internal/notification/smtp"
	"examreg/internal/payment/razorpay"
	"examreg/internal/payment/signature"
	"examreg/internal/platform/config"
	"examreg/internal/platform/health"
	"examreg/internal/platform/kafka"
	"examreg/internal/platform/kafka/producer"
	"examreg/internal/platform/logger"
	"examreg/internal/platform/metrics"
	"examreg/internal/platform/tracer"
	regHandler "examreg/internal/registration/handler"
	regMetrics "examreg/internal/registration/metrics"
	"examreg/internal/registration/service"
	httptransport "examreg/internal/transport/http"
	"examreg/pkg/platform/middleware/metadata"
	"examreg/pkg/platform/middleware/request"
)

const poolStatsInterval = 15 * time.Second

// main wires dependencies once and owns the process lifecycle. Business
// logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("initializing examreg",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"store_driver", cfg.StoreDriver,
		"smtp_enabled", cfg.SMTP.Enabled(),
		"kafka_enabled", cfg.Kafka.Brokers != "",
	)
	if cfg.Razorpay.KeySecret == "" {
		log.Warn("RAZORPAY_KEY_SECRET is empty; every payment signature will be rejected")
	}

	reg := metrics.NewRegistry()
	healthHandler := health.New(cfg.Environment)

	backend, err := openStore(ctx, cfg, reg, healthHandler, log)
	if err != nil {
		return err
	}

	mailer, err := newMailer(cfg, log)
	if err != nil {
		backend.close(context.Background())
		return err
	}
	dispatcher := notification.NewDispatcher(mailer, cfg.SMTP.From,
		notification.WithLogger(log),
		notification.WithMetrics(notification.NewMetrics(reg)),
		notification.WithTimeout(cfg.NotifyTimeout),
	)

	publishers := audit.Multi{audit.NewLogPublisher(log)}
	var kafkaProducer *producer.Producer
	if cfg.Kafka.Brokers != "" {
		kafkaProducer, err = producer.New(kafka.DefaultProducerConfig(cfg.Kafka.Brokers), log)
		if err != nil {
			backend.close(context.Background())
			return err
		}
		checker := kafka.NewHealthChecker(kafkaProducer.Client(), cfg.Kafka.AuditTopic)
		healthHandler.RegisterCheck(checker.Name(), checker.Check)
		publishers = append(publishers, audit.NewKafkaPublisher(kafkaProducer, cfg.Kafka.AuditTopic, log))
	}
	emitter := audit.NewEmitter(publishers, audit.WithEmitterLogger(log))

	trc := tracer.NewOTel()
	svc := service.New(backend.store, dispatcher, signature.NewVerifier(cfg.Razorpay.KeySecret),
		service.WithLogger(log),
		service.WithMetrics(regMetrics.New(reg)),
		service.WithTracer(trc),
		service.WithAuditor(emitter),
		service.WithStoreTimeout(cfg.StoreTimeout),
	)
	orders := razorpay.New(cfg.Razorpay, cfg.ProviderTimeout,
		razorpay.WithLogger(log),
		razorpay.WithTracer(trc),
	)

	trusted, err := metadata.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		backend.close(context.Background())
		return err
	}

	router := httptransport.NewRouter(httptransport.Config{
		Logger:         log,
		Registry:       reg,
		RequestMetrics: request.NewMetrics(reg),
		Health:         healthHandler,
		Metadata:       metadata.NewMiddleware(trusted),
		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		RequestTimeout: cfg.RequestTimeout,
	},
		razorpay.NewHandler(orders, log),
		regHandler.New(svc, log),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if backend.redis != nil {
		g.Go(func() error {
			return backend.redis.RunPoolStats(gctx, poolStatsInterval)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		if err := dispatcher.Close(shutdownCtx); err != nil {
			log.Warn("confirmation emails still in flight at shutdown", "error", err)
		}
		if err := emitter.Close(shutdownCtx); err != nil {
			log.Warn("audit events not drained", "error", err)
		}
		if kafkaProducer != nil {
			if err := kafkaProducer.Close(5 * time.Second); err != nil {
				log.Warn("kafka producer close", "error", err)
			}
		}
		backend.close(shutdownCtx)
		return errors.Join(errs...)
	})

	return g.Wait()
}

func newMailer(cfg config.Server, log *slog.Logger) (notification.Mailer, error) {
	if !cfg.SMTP.Enabled() {
		log.Warn("SMTP credentials not set; confirmation emails will be logged, not sent")
		return notification.NewLogMailer(log), nil
	}
	return smtp.New(cfg.SMTP)
}
