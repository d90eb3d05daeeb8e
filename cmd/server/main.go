package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Mahmoud-ctrl/GymMang/internal/auth"
	"github.com/Mahmoud-ctrl/GymMang/internal/cache"
	"github.com/Mahmoud-ctrl/GymMang/internal/config"
	"github.com/Mahmoud-ctrl/GymMang/internal/httpapi"
	"github.com/Mahmoud-ctrl/GymMang/internal/outbox"
	"github.com/Mahmoud-ctrl/GymMang/internal/payment"
	"github.com/Mahmoud-ctrl/GymMang/internal/repository"
	"github.com/Mahmoud-ctrl/GymMang/internal/service"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// MongoDB holds the carts
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(ctx)
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	cartRepo := repository.NewMongoCartRepository(mongoDB)
	if indexer, ok := cartRepo.(interface{ CreateIndexes(context.Context) error }); ok {
		if err := indexer.CreateIndexes(ctx); err != nil {
			log.Fatalf("Failed to create cart indexes: %v", err)
		}
	}

	// Postgres holds everything else
	db, err := repository.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer db.Close()

	if err := repository.RunMigrations(db, cfg.MigrationsDirPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations applied")

	catalogRepo := repository.NewCatalogPostgres(db)
	sessionRepo := repository.NewSessionPostgres(db)
	userRepo := repository.NewUserPostgres(db)
	orderRepo := repository.NewOrderPostgres(db)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	cartCache := cache.NewRedisCache(redisClient)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, 24*time.Hour)
	payments := payment.NewStripeProvider(cfg.StripeSecretKey)

	cartService := service.NewCartService(cartRepo, catalogRepo, cartCache)
	sessionCartService := service.NewSessionCartService(cartRepo, sessionRepo, cartCache)
	checkoutService := service.NewCheckoutService(cartRepo, sessionRepo, orderRepo, payments)
	authService := service.NewAuthService(userRepo, tokens)

	// Outbox poller publishes checkout events; the consumer clears carts.
	runCtx, stop := context.WithCancel(ctx)
	poller := outbox.NewPoller(orderRepo, cfg.KafkaBrokers...)
	go poller.Run(runCtx)

	consumer := outbox.NewConsumer(cartRepo, cartCache, cfg.KafkaBrokers...)
	go consumer.Run(runCtx)

	handlers := httpapi.Handlers{
		Cart:        httpapi.NewCartHandler(cartService, cfg.RequestTimeout),
		SessionCart: httpapi.NewSessionCartHandler(sessionCartService, sessionRepo, cfg.RequestTimeout),
		Catalog:     httpapi.NewCatalogHandler(catalogRepo, cfg.RequestTimeout),
		Sessions:    httpapi.NewSessionsHandler(sessionRepo, cfg.RequestTimeout),
		Auth:        httpapi.NewAuthHandler(authService, cfg.RequestTimeout),
		Checkout:    httpapi.NewCheckoutHandler(checkoutService, cfg.RequestTimeout),
	}

	router := httpapi.NewRouter(handlers, tokens, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      http.MaxBytesHandler(router, cfg.MaxRequestBodySize),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Gym API starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stop()
	poller.Close()
	consumer.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
