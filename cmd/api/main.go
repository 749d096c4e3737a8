package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/srgjo27/carpool_booking/internal/adapter/cache"
	"github.com/srgjo27/carpool_booking/internal/adapter/handler"
	"github.com/srgjo27/carpool_booking/internal/adapter/publisher"
	"github.com/srgjo27/carpool_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/carpool_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/carpool_booking/internal/core/ports"
	"github.com/srgjo27/carpool_booking/internal/core/services"
	"github.com/srgjo27/carpool_booking/internal/platform/config"
	"github.com/srgjo27/carpool_booking/internal/platform/database"
	"github.com/srgjo27/carpool_booking/internal/platform/logger"
)

type repositories struct {
	rides    ports.RideRepository
	bookings ports.BookingRepository
	drivers  ports.DriverRepository
	db       *sql.DB
}

func openRepositories(ctx context.Context, cfg config.Config, log *logrus.Logger) (repositories, error) {
	if cfg.Store == config.StoreMemory {
		log.Warn("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		if err := seedDrivers(store.Drivers(), cfg.DriverProfilesFile, log); err != nil {
			return repositories{}, err
		}
		return repositories{rides: store.Rides(), bookings: store.Bookings(), drivers: store.Drivers()}, nil
	}

	db, err := database.NewPostgresDB(ctx, cfg.Database, log)
	if err != nil {
		return repositories{}, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return repositories{}, err
	}

	return repositories{
		rides:    postgres.NewRideRepository(db),
		bookings: postgres.NewBookingRepository(db),
		drivers:  postgres.NewDriverRepository(db),
		db:       db,
	}, nil
}

func seedDrivers(drivers *memory.DriverRepository, path string, log *logrus.Logger) error {
	if path == "" {
		log.Warn("DRIVER_PROFILES not set, no driver can publish rides")
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open driver profiles: %w", err)
	}
	defer f.Close()

	n, err := drivers.Seed(f)
	if err != nil {
		return fmt.Errorf("seed %s: %w", path, err)
	}
	log.WithFields(logrus.Fields{"file": path, "drivers": n}).Info("driver profiles loaded")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open store")
	}
	if repos.db != nil {
		defer repos.db.Close()
	}

	var rideCache ports.RideCache
	var events ports.EventPublisher = publisher.Nop{}

	if cfg.RedisEnabled {
		log.WithField("addr", cfg.RedisAddr).Info("connecting to redis")

		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.WithError(err).Fatal("failed to connect to redis")
		}
		log.Info("redis connected")

		rideCache = cache.NewRideCache(redisClient, cfg.RideCacheTTL)
		events = publisher.NewRedisPublisher(redisClient, cfg.EventsChannel)
	} else {
		log.Info("redis disabled, ride cache and booking events are off")
	}

	bookingService := services.NewBookingService(repos.rides, repos.bookings, repos.drivers, rideCache, log)
	rideService := services.NewRideService(repos.rides, rideCache, log)

	router := handler.NewRouter(handler.RouterConfig{
		Rides:     handler.NewRideHandler(rideService, bookingService),
		Bookings:  handler.NewBookingHandler(bookingService, events, log),
		JWTSecret: []byte(cfg.JWTSecret),
		Log:       log,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.AppAddr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server startup failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
		os.Exit(1)
	}

	log.Info("server exiting")
}
