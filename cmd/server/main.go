package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/client"
	"github.com/yourorg/buildbid/internal/config"
	"github.com/yourorg/buildbid/internal/db"
	"github.com/yourorg/buildbid/internal/email"
	"github.com/yourorg/buildbid/internal/events"
	"github.com/yourorg/buildbid/internal/handler"
	"github.com/yourorg/buildbid/internal/middleware"
	"github.com/yourorg/buildbid/internal/repository"
	"github.com/yourorg/buildbid/internal/service"
	"github.com/yourorg/buildbid/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	database, err := connectToDB(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	// Apply schema migrations
	if err := db.Migrate(database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize Redis client (if enabled)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.URL,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logger.Warn("Failed to connect to Redis, running without cache", zap.Error(err))
			redisClient = nil
		} else {
			logger.Info("Connected to Redis", zap.String("address", cfg.Redis.URL))
		}
	}

	// Create repositories
	userRepo := repository.NewUserRepository(database, logger)
	bidRequestRepo := repository.NewBidRequestRepository(database, logger)
	bidRepo := repository.NewBidRepository(database, logger)
	vendorRepo := repository.NewVendorRepository(database, logger)
	productRepo := repository.NewProductRepository(database, logger)
	projectRepo := repository.NewProjectRepository(database, logger)
	taskRepo := repository.NewTaskRepository(database, logger)
	memberRepo := repository.NewMemberRepository(database, logger)
	preferenceRepo := repository.NewPreferenceRepository(database, logger)
	floorPlanRepo := repository.NewFloorPlanRepository(database, logger)
	statsCache := repository.NewStatsCache(redisClient, cfg.Redis.StatsTTL, logger)

	// Initialize event publisher (if enabled)
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) > 0 {
		producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.EventsTopic, "buildbid-server", logger)
		defer producer.Close()
		publisher = producer
		logger.Info("Initialized Kafka producer", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	// Create email sender
	var sender email.Sender
	switch cfg.Email.Provider {
	case "resend":
		sender = email.NewResendSender(cfg.Email.ResendKey, cfg.Email.From, cfg.Email.SendTimeout, logger)
	default:
		sender = email.NewLogSender(logger)
	}

	// Create generated-file storage
	fileStore, err := storage.NewStorage(&cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}

	// Create clients
	aiClient := client.NewAIClient(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout, cfg.AI.MaxRetries, logger)

	// Create services
	authService := service.NewAuthService(cfg.Auth.JWTSecret, 24*time.Hour, logger)
	biddingService := service.NewBiddingService(bidRequestRepo, bidRepo, vendorRepo, statsCache, projectRepo, publisher, logger)
	vendorService := service.NewVendorService(vendorRepo, productRepo, logger)
	projectService := service.NewProjectService(projectRepo, memberRepo, logger)
	taskService := service.NewTaskService(taskRepo, projectRepo, memberRepo, publisher, logger)
	memberService := service.NewMemberService(memberRepo, projectRepo, userRepo, publisher, logger)
	preferenceService := service.NewPreferenceService(preferenceRepo, logger)
	calculatorService := service.NewCalculatorService()
	floorPlanService := service.NewFloorPlanService(floorPlanRepo, aiClient, fileStore, logger)
	dispatchService := service.NewDispatchService(
		bidRequestRepo,
		vendorRepo,
		projectRepo,
		userRepo,
		preferenceRepo,
		sender,
		cfg.App.BaseURL,
		cfg.Email.SendTimeout,
		logger,
	)

	// Start the change event consumer (if Kafka is enabled)
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) > 0 {
		consumer := events.NewConsumer(
			cfg.Kafka.Brokers,
			cfg.Kafka.EventsTopic,
			cfg.Kafka.ConsumerGroup,
			func(ctx context.Context, event events.ChangeEvent) error {
				outcome := dispatchService.Dispatch(ctx, event)
				logger.Info("Dispatched change event",
					zap.String("table", event.Table),
					zap.String("status", outcome.Status),
					zap.String("reason", outcome.Reason))
				return nil
			},
			logger,
		)
		defer consumer.Close()
		go consumer.Run(consumerCtx)
		logger.Info("Started change event consumer", zap.String("group", cfg.Kafka.ConsumerGroup))
	}

	// Create HTTP server
	router := setupRouter(
		cfg,
		authService,
		biddingService,
		vendorService,
		projectService,
		taskService,
		memberService,
		preferenceService,
		calculatorService,
		floorPlanService,
		dispatchService,
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	stopConsumer()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

// registerValidations adds custom binding validations to gin's validator.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// A mix ratio is three positive numbers separated by colons, e.g. "1:2:4".
	v.RegisterValidation("mixratio", func(fl validator.FieldLevel) bool {
		parts := strings.Split(fl.Field().String(), ":")
		if len(parts) != 3 {
			return false
		}
		for _, part := range parts {
			value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil || value <= 0 {
				return false
			}
		}
		return true
	})
}

func createLogger(level string) (*zap.Logger, error) {
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

func connectToDB(dbConfig config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName,
		dbConfig.SSLMode,
	)

	database, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, err
	}

	database.SetMaxOpenConns(dbConfig.MaxOpenConns)
	database.SetMaxIdleConns(dbConfig.MaxIdleConns)
	database.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	return database, nil
}

func setupRouter(
	cfg *config.Config,
	authService *service.AuthService,
	biddingService *service.BiddingService,
	vendorService *service.VendorService,
	projectService *service.ProjectService,
	taskService *service.TaskService,
	memberService *service.MemberService,
	preferenceService *service.PreferenceService,
	calculatorService *service.CalculatorService,
	floorPlanService *service.FloorPlanService,
	dispatchService *service.DispatchService,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	registerValidations()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := router.Group("/api/v1")
	{
		auth := middleware.AuthMiddleware(authService, logger)

		// ==================== BIDDING ROUTES ====================
		biddingHandler := handler.NewBiddingHandler(biddingService, logger)
		v1.GET("/bid-requests", biddingHandler.ListOpenRequests)
		v1.GET("/bid-requests/:id/bids", biddingHandler.ListBids)

		biddingProtected := v1.Group("")
		biddingProtected.Use(auth)
		biddingProtected.GET("/bid-requests/mine", biddingHandler.ListMyRequests)
		biddingProtected.POST("/bid-requests", biddingHandler.CreateRequest)
		biddingProtected.POST("/bids", biddingHandler.SubmitBid)
		biddingProtected.POST("/bids/:id/accept", biddingHandler.AcceptBid)

		// ==================== VENDOR & MARKETPLACE ROUTES ====================
		vendorHandler := handler.NewVendorHandler(vendorService, logger)
		v1.GET("/vendors", vendorHandler.ListProfiles)
		v1.GET("/vendors/:id/products", vendorHandler.ListProducts)
		v1.GET("/products/search", vendorHandler.SearchProducts)

		vendorProtected := v1.Group("")
		vendorProtected.Use(auth)
		vendorProtected.POST("/vendors", vendorHandler.Onboard)
		vendorProtected.GET("/vendors/me", vendorHandler.GetMyProfile)
		vendorProtected.POST("/products", vendorHandler.CreateProduct)

		v1.GET("/vendors/:id", vendorHandler.GetProfile)

		// ==================== PROJECT ROUTES ====================
		projects := v1.Group("/projects")
		projects.Use(auth)
		{
			projectHandler := handler.NewProjectHandler(projectService, logger)
			taskHandler := handler.NewTaskHandler(taskService, logger)
			memberHandler := handler.NewMemberHandler(memberService, logger)

			projects.POST("", projectHandler.Create)
			projects.GET("", projectHandler.List)
			projects.GET("/:id", projectHandler.Get)
			projects.POST("/:id/costs", projectHandler.AddCost)
			projects.GET("/:id/costs", projectHandler.ListCosts)

			projects.GET("/:id/tasks", taskHandler.ListByProject)

			projects.POST("/:id/members", memberHandler.Add)
			projects.GET("/:id/members", memberHandler.List)
			projects.DELETE("/:id/members/:userId", memberHandler.Remove)
		}

		// ==================== TASK ROUTES ====================
		tasks := v1.Group("/tasks")
		tasks.Use(auth)
		{
			taskHandler := handler.NewTaskHandler(taskService, logger)
			tasks.POST("", taskHandler.Create)
			tasks.GET("/:id", taskHandler.Get)
			tasks.PATCH("/:id", taskHandler.Update)
			tasks.DELETE("/:id", taskHandler.Delete)
		}

		// ==================== PREFERENCE ROUTES ====================
		preferences := v1.Group("/preferences")
		preferences.Use(auth)
		{
			prefHandler := handler.NewPreferenceHandler(preferenceService, logger)
			preferences.GET("", prefHandler.Get)
			preferences.PATCH("", prefHandler.Update)
		}

		// ==================== CALCULATOR ROUTES ====================
		calculatorHandler := handler.NewCalculatorHandler(calculatorService, logger)
		v1.POST("/calculator/estimate", calculatorHandler.Estimate)

		// ==================== FLOOR PLAN ROUTES ====================
		floorPlans := v1.Group("/floor-plans")
		floorPlans.Use(auth)
		{
			floorPlanHandler := handler.NewFloorPlanHandler(floorPlanService, logger)
			floorPlans.POST("", floorPlanHandler.Generate)
			floorPlans.GET("", floorPlanHandler.List)
			floorPlans.GET("/:id", floorPlanHandler.Get)
		}

		// ==================== WEBHOOK ROUTES ====================
		webhooks := v1.Group("/webhooks")
		webhooks.Use(middleware.ServiceAuthMiddleware(cfg.Auth.ServiceKey))
		{
			webhookHandler := handler.NewWebhookHandler(dispatchService, logger)
			webhooks.POST("/change-events", webhookHandler.HandleChangeEvent)
		}
	}

	return router
}
