package main

import (
	"context"

	"quickcourt/internal/bookings/cache"
	"quickcourt/internal/bookings/handler"
	"quickcourt/internal/bookings/repository"
	"quickcourt/internal/bookings/service"
	"quickcourt/internal/bookings/validator"
	"quickcourt/pkg/app"
	"quickcourt/pkg/config"
	"quickcourt/pkg/kafka"
	kafka_config "quickcourt/pkg/kafka/config"
	kafka_middleware "quickcourt/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	producer := initProducer(cfg)
	if producer != nil {
		defer func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka producer", "error", err)
			}
		}()
	}

	router := initServices(cfg, producer)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, router)
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, service.TopicBookingEvents, service.TopicBookingEvents+"-dlq")
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware())
		producer.Use(kafka_middleware.MetricsProducerMiddleware())
	}

	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) *handler.Router {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewSlotLockRepository(cfg)
	catalog := repository.NewCourtCatalog(cfg)
	availabilityCache := cache.NewAvailabilityCache(cfg.Client.Redis, cfg.AvailabilityCacheTTL, cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()
	if err := bookingRepo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to ensure booking indexes", "error", err)
	}
	if err := lockRepo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to ensure slot lock indexes", "error", err)
	}

	var publisher service.EventPublisher
	if producer != nil {
		publisher = producer
	}

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		catalog,
		bookingValidator,
		availabilityCache,
		publisher,
		cfg,
	)
	availabilityService := service.NewAvailabilityService(
		bookingRepo,
		catalog,
		availabilityCache,
		cfg,
	)

	cfg.Log.Info("Booking services initialized", "database", cfg.MongoDatabaseName)
	return handler.NewRouter(
		handler.NewBookingHandler(bookingService, cfg.Log),
		handler.NewAvailabilityHandler(availabilityService, cfg.Log),
	)
}
