package main

import (
	"context"

	"quickcourt/internal/courts/handler"
	"quickcourt/internal/courts/repository"
	"quickcourt/internal/courts/service"
	"quickcourt/internal/courts/validator"
	"quickcourt/pkg/app"
	"quickcourt/pkg/config"
)

const ServiceName = "courts"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Courts service")
	router := initServices(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, router)
	serverApp.Run()
}

func initServices(cfg *config.Config) *handler.Router {
	courtValidator := validator.NewCourtValidator(cfg.Log)
	courtRepo := repository.NewMongoCourtRepository(cfg)
	venueRepo := repository.NewMongoVenueRepository(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()
	if err := courtRepo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to ensure court indexes", "error", err)
	}

	venueService := service.NewVenueService(venueRepo, courtValidator, cfg)
	courtService := service.NewCourtService(courtRepo, venueRepo, courtValidator, cfg)

	cfg.Log.Info("Court services initialized", "database", cfg.MongoDatabaseName)
	return handler.NewRouter(
		handler.NewVenueHandler(venueService, cfg.Log),
		handler.NewCourtHandler(courtService, cfg.Log),
	)
}
