package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aiMarketingMsg/app/echo-server/router"
	"aiMarketingMsg/business/campaign"
	"aiMarketingMsg/business/customer"
	"aiMarketingMsg/business/message"
	"aiMarketingMsg/business/product"
	"aiMarketingMsg/business/recommendation"
	"aiMarketingMsg/business/segment"
	userService "aiMarketingMsg/business/user"
	"aiMarketingMsg/internal/middleware"
	"aiMarketingMsg/internal/repository/notification"
	"aiMarketingMsg/internal/repository/openai"
	psqlRepo "aiMarketingMsg/internal/repository/postgres"
	redisRepo "aiMarketingMsg/internal/repository/redis"
	"aiMarketingMsg/internal/rest"
	"aiMarketingMsg/pkg/config"
	"aiMarketingMsg/pkg/database"
	redisdb "aiMarketingMsg/pkg/database/redis"
	"aiMarketingMsg/pkg/logger"
	"aiMarketingMsg/pkg/metrics"
	"aiMarketingMsg/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting AI Marketing Message API", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}

	// Init mail notification
	mailjetEmail := notification.NewMailjetRepository(cfg.Mailjet)

	// Init AI provider
	aiProvider := openai.NewOpenAIRepository(cfg.OpenAI)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	customerRepo := psqlRepo.NewCustomerRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	campaignRepo := psqlRepo.NewCampaignRepository(db)
	segmentRepo := psqlRepo.NewSegmentRepository(db)
	messageRepo := psqlRepo.NewMessageRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)

	// Init service
	userSvc := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo,
		cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	customerSvc := customer.NewCustomerService(customerRepo, validate)
	productSvc := product.NewProductService(productRepo, validate)
	campaignSvc := campaign.NewCampaignService(campaignRepo, validate)
	segmentSvc := segment.NewSegmentService(segmentRepo, customerRepo)
	recoSvc := recommendation.NewRecommendationService(customerRepo, productRepo, campaignRepo,
		aiProvider, cfg.OpenAI.Temperature, cfg.OpenAI.MaxTokens)
	messageSvc := message.NewMessageService(campaignRepo, productRepo, customerRepo, messageRepo,
		segmentSvc, aiProvider, cfg.OpenAI.Temperature, cfg.OpenAI.MaxTokens)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	customerHandler := rest.NewCustomerHandler(customerSvc)
	productHandler := rest.NewProductHandler(productSvc)
	campaignHandler := rest.NewCampaignHandler(campaignSvc)
	segmentHandler := rest.NewSegmentHandler(segmentSvc)
	toneHandler := rest.NewToneHandler()
	recoHandler := rest.NewRecommendationHandler(recoSvc)
	messageHandler := rest.NewMessageHandler(messageSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(tokenRepo)
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupCustomerRoutes(api, customerHandler, authRequired)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupCampaignRoutes(api, campaignHandler, authRequired, adminOnly)
	router.SetupSegmentRoutes(api, segmentHandler, authRequired)
	router.SetupToneRoutes(api, toneHandler)
	router.SetupRecommendationRoutes(api, recoHandler, authRequired)
	router.SetupMessageRoutes(api, messageHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisClient.Close(); err != nil {
		logger.Error("Redis close error", "error", err)
	}

	logger.Info("Server stopped")
}
