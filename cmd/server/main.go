package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"autonomo/internal/app"
	"autonomo/internal/broker"
	"autonomo/internal/config"
	"autonomo/internal/handler"
	"autonomo/internal/logger"
	"autonomo/internal/repository/postgres"
	"autonomo/internal/service"
	"autonomo/internal/store"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	zlog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			zlog.Warn("failed to initialize New Relic", "error", err)
		} else {
			zlog.Info("New Relic enabled", "app", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		zlog.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()
	zlog.Info("connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		zlog.Fatal("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()
	zlog.Info("connected to Redis")

	// Connect to RabbitMQ and declare the event exchanges.
	conn, err := broker.Connect(cfg.Broker.URL)
	if err != nil {
		zlog.Fatal("failed to connect to RabbitMQ", "error", err)
	}
	defer conn.Close()
	zlog.Info("connected to RabbitMQ")

	// Wire dependencies.
	server, consumers, err := wireServer(db, redisClient, conn, nrApp, cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to wire server", "error", err)
	}

	// Start consumers. Each runs until the consumer context is cancelled.
	consumerCtx, stopConsumers := context.WithCancel(context.Background())
	defer stopConsumers()
	for _, c := range consumers {
		go func(c consumerRun) {
			if err := c.consumer.Run(consumerCtx, c.handle); err != nil && !errors.Is(err, context.Canceled) {
				zlog.Error("consumer stopped", "queue", c.queue, "error", err)
			}
		}(c)
	}

	// Start server in goroutine.
	go func() {
		zlog.Info("starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server error", "error", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("server forced to shutdown", "error", err)
	}

	stopConsumers()
	for _, c := range consumers {
		c.consumer.Close()
	}

	zlog.Info("server exited")
}

// consumerRun pairs a consumer with its handler for startup.
type consumerRun struct {
	queue    string
	consumer *broker.Consumer
	handle   broker.Handler
}

// wireServer wires all dependencies and returns the HTTP server plus the
// event consumers to run alongside it.
func wireServer(
	db *sql.DB,
	redisClient *redis.Client,
	conn *amqp091.Connection,
	nrApp *newrelic.Application,
	cfg *config.Config,
	zlog *logger.Logger,
) (*http.Server, []consumerRun, error) {
	// Initialize Redis stores.
	rideStates := store.NewRideStateStore(redisClient)
	vehicleStates := store.NewVehicleStateStore(redisClient)
	lockStore := store.NewLockStore(redisClient)

	// Initialize event journals.
	rideJournal := postgres.NewRideEventJournal(db)
	vehicleJournal := postgres.NewVehicleEventJournal(db)

	// Initialize publisher.
	publisher, err := broker.NewPublisher(conn)
	if err != nil {
		return nil, nil, err
	}

	// Initialize services.
	rideService := service.NewRideService(rideStates, lockStore, rideJournal, publisher, zlog)
	vehicleService := service.NewVehicleService(vehicleStates, lockStore, vehicleJournal, publisher, zlog)
	sagaService := service.NewSagaService(vehicleService, zlog)
	projectionService := service.NewProjectionService(rideStates, vehicleStates, zlog)

	// Initialize handlers.
	rideHandler := handler.NewRideHandler(rideService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)

	// Initialize consumers. The saga reacts to ride events with vehicle
	// commands; the projections fold both streams into the read models.
	sagaConsumer, err := broker.NewConsumer(conn, broker.RideEventsExchange, cfg.Broker.SagaQueue, zlog)
	if err != nil {
		return nil, nil, err
	}
	rideProjConsumer, err := broker.NewConsumer(conn, broker.RideEventsExchange, cfg.Broker.RideProjQueue, zlog)
	if err != nil {
		return nil, nil, err
	}
	fleetProjConsumer, err := broker.NewConsumer(conn, broker.VehicleEventsExchange, cfg.Broker.FleetQueue, zlog)
	if err != nil {
		return nil, nil, err
	}

	consumers := []consumerRun{
		{queue: cfg.Broker.SagaQueue, consumer: sagaConsumer, handle: sagaService.HandleRideEvent},
		{queue: cfg.Broker.RideProjQueue, consumer: rideProjConsumer, handle: projectionService.HandleRideEvent},
		{queue: cfg.Broker.FleetQueue, consumer: fleetProjConsumer, handle: projectionService.HandleVehicleEvent},
	}

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		RideHandler:    rideHandler,
		VehicleHandler: vehicleHandler,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, consumers, nil
}
