package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/billmind/go-bill-reminder/internal/composer"
	"github.com/billmind/go-bill-reminder/internal/handler"
	"github.com/billmind/go-bill-reminder/internal/middleware"
	"github.com/billmind/go-bill-reminder/internal/notifier"
	"github.com/billmind/go-bill-reminder/internal/reminder"
	"github.com/billmind/go-bill-reminder/internal/repository"
	"github.com/billmind/go-bill-reminder/internal/scheduler"
	"github.com/billmind/go-bill-reminder/internal/service"
	"github.com/billmind/go-bill-reminder/internal/shared/config"
	"github.com/billmind/go-bill-reminder/internal/shared/logger"
	"github.com/billmind/go-bill-reminder/internal/shared/mongodb"
	"github.com/billmind/go-bill-reminder/internal/shared/rabbitmq"
	"github.com/billmind/go-bill-reminder/internal/storage"
)

func main() {
	// Initialize logger
	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting Bill Reminder Service...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}

	// Initialize MongoDB
	mongoClient, err := mongodb.NewMongoClient(cfg.MongoDB.URI, cfg.MongoDB.Database)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	defer mongoClient.Disconnect(context.Background())

	// Initialize repositories
	userRepo := repository.NewUserRepository(mongoClient)
	billRepo := repository.NewBillRepository(mongoClient)
	paymentRepo := repository.NewPaymentRepository(mongoClient)
	settingsRepo := repository.NewSettingsRepository(mongoClient)

	// Initialize receipt storage
	receiptStore, err := storage.NewReceiptStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatal("Failed to initialize receipt storage", "error", err)
	}

	// Initialize outbound channels
	messageComposer := composer.NewMessageComposer(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, log)
	whatsapp := notifier.NewWhatsAppNotifier(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.WhatsAppFrom, log)
	voice := notifier.NewVoiceNotifier(cfg.BlandAI.APIKey, cfg.BlandAI.BaseURL, cfg.BlandAI.VoiceID, log)
	speech := notifier.NewSpeechSynthesizer(cfg.Eleven.APIKey, cfg.Eleven.BaseURL, cfg.Eleven.VoiceID, log)

	// The local push channel rides on RabbitMQ and is optional: without a
	// broker URL the dispatcher simply never attempts the push channel.
	var push reminder.PushPublisher
	if cfg.RabbitMQ.URL != "" {
		rabbitClient, err := rabbitmq.NewRabbitMQClient(cfg.RabbitMQ.URL)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ", "error", err)
		}
		defer rabbitClient.Close()

		pushNotifier, err := notifier.NewPushNotifier(rabbitClient, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal("Failed to declare push exchange", "error", err)
		}
		push = pushNotifier
	} else {
		log.Warn("RABBITMQ_URL not set, local push channel disabled")
	}

	// Initialize the reminder engine
	store := service.NewReminderStore(userRepo, billRepo, settingsRepo)
	dispatcher := reminder.NewDispatcher(messageComposer, whatsapp, voice, push, log)
	evaluator := reminder.NewEvaluator(store, dispatcher, log)

	reminderScheduler := scheduler.NewReminderScheduler(evaluator, log)
	if err := reminderScheduler.Start(); err != nil {
		log.Fatal("Failed to start scheduler", "error", err)
	}
	defer reminderScheduler.Stop()

	// Initialize services
	authService := service.NewAuthService(userRepo, settingsRepo, cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour, log)
	billService := service.NewBillService(billRepo, paymentRepo, receiptStore, log)
	reminderService := service.NewReminderService(userRepo, billRepo, settingsRepo,
		messageComposer, whatsapp, voice, speech, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, log)
	billHandler := handler.NewBillHandler(billService, log)
	reminderHandler := handler.NewReminderHandler(reminderService, log)
	receiptHandler := handler.NewReceiptHandler(billService, receiptStore, log)

	// Initialize rate limiter
	rateLimiter := middleware.NewUserRateLimiter(cfg.Reminder.RateLimitPerUser, cfg.Reminder.RateLimitBurst)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.MaxMultipartMemory = cfg.Storage.MaxUploadSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Bill Reminder API is running"})
	})

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	// Public auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Authenticated routes with per-user rate limiting
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(authService))
	authed.Use(middleware.RateLimitMiddleware(rateLimiter))
	{
		authed.PUT("/auth/profile", authHandler.UpdateProfile)
		authed.POST("/auth/logout", authHandler.Logout)

		bills := authed.Group("/bills")
		{
			bills.GET("", billHandler.List)
			bills.POST("", billHandler.Create)
			bills.PUT("/:id", billHandler.Update)
			bills.DELETE("/:id", billHandler.Delete)
			bills.POST("/:id/pay", billHandler.MarkPaid)
			bills.POST("/:id/receipt", receiptHandler.Upload)
		}

		reminders := authed.Group("/reminders")
		{
			reminders.GET("/settings", reminderHandler.GetSettings)
			reminders.PUT("/settings", reminderHandler.UpdateSettings)
			reminders.POST("/test", reminderHandler.Test)
			reminders.POST("/send", reminderHandler.Send)
		}

		authed.POST("/scan-receipt", receiptHandler.Scan)
		authed.GET("/receipts/view/:user_id/:filename", receiptHandler.View)
	}

	// Start HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Bill Reminder Service started", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down Bill Reminder Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Bill Reminder Service stopped")
}
