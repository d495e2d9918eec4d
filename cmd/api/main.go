package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopfront/internal/cache"
	"shopfront/internal/cart"
	"shopfront/internal/config"
	"shopfront/internal/database"
	"shopfront/internal/events"
	"shopfront/internal/handlers"
	"shopfront/internal/images"
	"shopfront/internal/repository"
	"shopfront/internal/routes"
)

func main() {
	cfg := config.LoadConfig()

	logger := newLogger(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.MongoDB)

	store := cache.New(cfg.CacheTTL)
	defer store.Stop()

	resolver, err := images.NewResolver(cfg.ImageBaseURL, cfg.ImagePlaceholder)
	if err != nil {
		logger.Fatal("invalid IMAGE_BASE_URL", zap.Error(err))
	}

	publisher := newPublisher(cfg, logger)
	defer publisher.Close()

	repo := repository.NewProductRepository(db)
	cartService := cart.NewService(cart.NewMemoryStore(), repo, publisher, logger)

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	routes.RegisterRoutes(router,
		handlers.NewProductHandler(repo, store, resolver, logger),
		handlers.NewCartHandler(cartService, logger),
	)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("🚀 Server running", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

func newLogger(appEnv string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if appEnv == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProductionConfig().Build()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

// newPublisher arma el publicador de eventos del carrito; sin broker
// configurado los eventos se descartan.
func newPublisher(cfg *config.Config, logger *zap.Logger) events.Publisher {
	if cfg.RabbitURI == "" {
		logger.Info("cart events disabled (no RABBITMQ_URI)")
		return events.NoopPublisher{}
	}
	publisher, err := events.NewAMQPPublisher(cfg.RabbitURI, cfg.CartEventsQueue)
	if err != nil {
		logger.Fatal("failed to connect to rabbitmq", zap.Error(err))
	}
	logger.Info("cart events enabled", zap.String("queue", cfg.CartEventsQueue))
	return publisher
}
