// File: tallerchat/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tallerchat/config"
	"tallerchat/cron"
	"tallerchat/database"
	analyticsRepo "tallerchat/database/repository/analytics"
	catalogRepo "tallerchat/database/repository/catalog"
	conversationRepo "tallerchat/database/repository/conversation"
	registryRepo "tallerchat/database/repository/registry"
	shopRepoPkg "tallerchat/database/repository/shop"
	"tallerchat/handlers"
	"tallerchat/middleware"
	"tallerchat/routes"
	"tallerchat/services/chat"
	"tallerchat/services/shop"
	"tallerchat/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	shopRepo := shopRepoPkg.NewMongoShopRepo()
	catalog := catalogRepo.NewMongoCatalogRepo()
	registry := registryRepo.NewMongoRegistryRepo()
	conversations := conversationRepo.NewMongoConversationRepo()
	events := analyticsRepo.NewMongoAnalyticsRepo()

	// Background queue client for analytics events.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAnalyticsDB,
	})
	defer asynqClient.Close()

	analyticsSink := &chat.AsynqAnalyticsSink{
		Client: asynqClient,
		Logger: logger,
	}

	// services.
	shopService := &shop.DefaultShopService{
		Repo:   shopRepo,
		Cache:  utils.GetAuthCacheClient(),
		Logger: logger,
	}

	queryService := &chat.DefaultQueryService{
		Registry: registry,
	}

	registrationService := &chat.DefaultRegistrationService{
		Catalog:   catalog,
		Registry:  registry,
		Analytics: analyticsSink,
		Logger:    logger,
	}

	processor := &chat.DefaultMessageProcessor{
		Conversations: conversations,
		Catalog:       catalog,
		Query:         queryService,
		Registrar:     registrationService,
		Logger:        logger,
	}

	catalogService := &shop.DefaultCatalogService{
		Catalog:       catalog,
		Registry:      registry,
		Conversations: conversations,
		Analytics:     analyticsSink,
		Logger:        logger,
	}

	// Background workers.
	cron.InitAnalyticsWorker(events)
	cron.InitStaleConversationSweeper(conversations, logger)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		ShopRepo: shopRepo,
		Auth:     handlers.NewAuthHandler(shopService),
		Chat:     handlers.NewChatHandler(processor, conversations, registry, catalogService),
		Services: handlers.NewServicesHandler(catalogService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
