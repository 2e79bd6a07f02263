package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"courtpub/internal/access"
	artefactHandler "courtpub/internal/artefact/handler"
	artefactService "courtpub/internal/artefact/service"
	"courtpub/internal/events"
	ingestionHandler "courtpub/internal/ingestion/handler"
	ingestionMetrics "courtpub/internal/ingestion/metrics"
	ingestionService "courtpub/internal/ingestion/service"
	"courtpub/internal/ingestion/validator"
	jwttoken "courtpub/internal/jwt_token"
	"courtpub/internal/notification/dispatch"
	notificationHandler "courtpub/internal/notification/handler"
	notificationMetrics "courtpub/internal/notification/metrics"
	notificationService "courtpub/internal/notification/service"
	"courtpub/internal/notification/worker"
	"courtpub/internal/platform/config"
	"courtpub/internal/platform/httpserver"
	"courtpub/internal/platform/logger"
	"courtpub/internal/platform/metrics"
	"courtpub/internal/platform/redis"
	"courtpub/internal/reference"
	subscriptionHandler "courtpub/internal/subscription/handler"
	subscriptionMetrics "courtpub/internal/subscription/metrics"
	subscriptionService "courtpub/internal/subscription/service"
	httptransport "courtpub/internal/transport/http"
	"courtpub/pkg/domain"
)

const eventBuffer = 256

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// run wires the process and blocks until ctx ends and everything it started
// has shut down.
func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			log.Error("failed to close stores", "error", err)
		}
	}()

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			_ = redisClient.Close()
		}()
	}

	refProvider, refSource, err := loadReference(ctx, cfg, redisClient, log)
	if err != nil {
		return err
	}

	policy, err := access.ParsePolicy(cfg.Access.InternalAdminData, cfg.Access.VerifiedData, cfg.Access.GateClassifiedByProvenance)
	if err != nil {
		return fmt.Errorf("access policy: %w", err)
	}

	publisher, source, closeEvents, err := openEvents(ctx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer closeEvents()

	artefactSvc := artefactService.New(st.artefacts, refProvider, access.New(policy),
		artefactService.WithLogger(log),
	)
	ingestionSvc := ingestionService.New(
		validator.New(cfg.Ingestion.MaxBodyBytes, payloadValidators()),
		refProvider,
		st.artefacts,
		st.ingestionLogs,
		ingestionService.WithLogger(log),
		ingestionService.WithMetrics(ingestionMetrics.New()),
		ingestionService.WithPublisher(publisher),
	)

	subscriptionOpts := []subscriptionService.Option{
		subscriptionService.WithLogger(log),
		subscriptionService.WithMetrics(subscriptionMetrics.New()),
		subscriptionService.WithMaxSubscriptions(cfg.Subscription.MaxPerUser),
		subscriptionService.WithNotificationLogPurger(st.notifications),
	}
	if st.tx != nil {
		subscriptionOpts = append(subscriptionOpts, subscriptionService.WithTx(st.tx))
	}
	subscriptionSvc := subscriptionService.New(st.subscriptions, refProvider, subscriptionOpts...)

	notifyMetrics := notificationMetrics.New()
	dispatcher, err := newDispatcher(cfg.Notify, log, notifyMetrics)
	if err != nil {
		return err
	}
	notifier := notificationService.New(subscriptionSvc, st.notifications, dispatcher, refProvider,
		dispatch.TemplatePair{PDF: cfg.Notify.PDFTemplateID, Summary: cfg.Notify.SummaryTemplateID},
		notificationService.WithLogger(log),
		notificationService.WithMetrics(notifyMetrics),
		notificationService.WithConcurrency(cfg.Notify.Concurrency),
		notificationService.WithPDFSizeLimit(cfg.Notify.PDFSizeLimitBytes),
		notificationService.WithServiceURL(cfg.Notify.ServiceURL),
	)
	notificationWorker := worker.New(source, st.artefacts, notifier, worker.WithLogger(log))

	subscriptions := subscriptionHandler.New(subscriptionSvc, log)

	checks := map[string]httptransport.HealthCheck{}
	if st.ping != nil {
		checks["database"] = st.ping
	}
	if redisClient != nil {
		checks["reference_cache"] = redisClient.Check
	}

	router := httptransport.NewRouter(httptransport.Routes{
		Health: checks,
		Public: []httptransport.Registrar{
			ingestionHandler.New(ingestionSvc, log, cfg.Ingestion.MaxBodyBytes),
			artefactHandler.New(artefactSvc, log),
		},
		Authenticated: []httptransport.Registrar{
			subscriptions,
		},
		Admin: []httptransport.AdminRegistrar{
			subscriptions,
			notificationHandler.New(st.notifications, log),
		},
	}, jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer), log, metrics.NewHTTP())

	srv := httpserver.New(cfg.Server.Addr, router)

	var wg sync.WaitGroup
	if refSource != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			refProvider.Run(ctx, cfg.Reference.RefreshInterval)
		}()
	}

	workerErr := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := notificationWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			workerErr <- err
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting courtpub", "addr", cfg.Server.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		runErr = fmt.Errorf("http server: %w", err)
	case err := <-workerErr:
		runErr = fmt.Errorf("notification worker: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if runErr == nil {
		wg.Wait()
	}
	return runErr
}

// payloadValidators registers the structural checks for JSON lists of the
// seeded list types. List types without an entry accept any JSON payload.
func payloadValidators() *validator.Registry {
	r := validator.NewRegistry()
	r.Register(domain.ListTypeID(1), validator.RequiredKeys("document", "venue", "courtLists"))
	r.Register(domain.ListTypeID(2), validator.RequiredKeys("document", "courtLists"))
	r.Register(domain.ListTypeID(3), validator.RequiredKeys("document", "courtLists"))
	r.Register(domain.ListTypeID(4), validator.RequiredKeys("document", "venue", "courtLists"))
	return r
}

// loadReference seeds the provider from the YAML file. With Redis configured
// the seed is published when the cache is empty and the provider follows the
// cache from then on; the returned source is nil otherwise.
func loadReference(ctx context.Context, cfg config.Config, client *redis.Client, log *slog.Logger) (*reference.Provider, reference.Source, error) {
	seed, err := reference.LoadYAMLFile(cfg.Reference.Path)
	if err != nil {
		return nil, nil, err
	}

	if client == nil {
		log.Info("reference data loaded", "version", seed.Version(), "source", cfg.Reference.Path)
		return reference.NewProvider(seed, nil, log), nil, nil
	}

	cache := reference.NewRedisStore(client.Client, reference.WithKey(cfg.Reference.RedisKey))
	published, err := cache.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	if published == nil {
		if err := cache.Publish(ctx, seed); err != nil {
			return nil, nil, err
		}
		published = seed
		log.Info("reference data published", "version", seed.Version(), "key", cfg.Reference.RedisKey)
	}
	return reference.NewProvider(published, cache, log), cache, nil
}

// openEvents selects Kafka when brokers are configured and the in-process
// channel otherwise.
func openEvents(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) (events.Publisher, events.Source, func(), error) {
	if len(cfg.Brokers) == 0 {
		publisher, source := events.NewChannel(eventBuffer, log)
		return publisher, source, publisher.Close, nil
	}

	kafkaCfg := events.KafkaConfig{
		Brokers:       cfg.Brokers,
		Topic:         cfg.Topic,
		ConsumerGroup: cfg.ConsumerGroup,
		Partitions:    cfg.Partitions,
		Replication:   cfg.Replication,
	}
	publisher, err := events.NewKafkaPublisher(ctx, kafkaCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	source, err := events.NewKafkaSource(kafkaCfg, log)
	if err != nil {
		publisher.Close()
		return nil, nil, nil, err
	}
	log.Info("kafka event bus configured", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return publisher, source, func() {
		source.Close()
		publisher.Close()
	}, nil
}
