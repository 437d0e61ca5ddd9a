package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mvdwal/festival-companion/config"
	"github.com/mvdwal/festival-companion/controller"
	"github.com/mvdwal/festival-companion/migrations"
	"github.com/mvdwal/festival-companion/repository"
	"github.com/mvdwal/festival-companion/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	if cfg.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Capability probe: favorites survive restarts only if mongo answers.
	// Otherwise the session runs on the in-memory store and the condition
	// is surfaced on the status endpoint.
	var favoriteStore service.FavoriteStore
	degradedPersistence := false

	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = mongoClient.Ping(ctx, readpref.Primary())
		cancel()
	}
	if err != nil {
		log.Error().Err(err).Msg("Storage unavailable, favorites will not persist")
		favoriteStore = repository.NewMemoryFavoriteRepository()
		degradedPersistence = true
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = mongoClient.Disconnect(ctx)
		}()

		if err := migrations.MigrateLegacyFavorites(mongoClient, cfg.MongoDatabase); err != nil {
			log.Error().Err(err).Msg("Failed to migrate legacy favorites")
		}

		favoriteStore = repository.NewFavoriteRepository(mongoClient, cfg.MongoDatabase)
	}

	scheduleService := service.NewScheduleService(repository.NewScheduleRepository(cfg.ScheduleSource))
	vendorService := service.NewVendorService(repository.NewVendorRepository(cfg.VendorsSource))

	loadCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	errwg, loadCtx := errgroup.WithContext(loadCtx)
	errwg.Go(func() error {
		return scheduleService.Load(loadCtx)
	})
	errwg.Go(func() error {
		return vendorService.Load(loadCtx)
	})
	if err := errwg.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load fixtures")
	}

	webAppController := &controller.WebAppController{
		ScheduleService:     scheduleService,
		FavoriteService:     service.NewFavoriteService(favoriteStore),
		ConflictService:     service.NewConflictService(),
		ShareService:        service.NewShareService(),
		VendorService:       vendorService,
		DegradedPersistence: degradedPersistence,
		Locale:              cfg.Locale,
	}

	r := gin.Default()

	api := r.Group("/api")
	{
		api.POST("/device", webAppController.RegisterDevice)

		api.GET("/schedule", webAppController.Schedule)
		api.GET("/schedule/stages", webAppController.Stages)

		api.GET("/favorites", webAppController.Favorites)
		api.POST("/favorites/toggle", webAppController.ToggleFavorite)
		api.POST("/favorites/legacy", webAppController.ImportLegacyFavorites)
		api.GET("/favorites/people", webAppController.People)

		api.GET("/conflicts", webAppController.Conflicts)
		api.GET("/conflicts/performance", webAppController.PerformanceConflicts)

		api.POST("/share", webAppController.Share)
		api.POST("/share/import", webAppController.ImportShared)

		api.GET("/vendors", webAppController.Vendors)

		api.GET("/status", webAppController.Status)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
