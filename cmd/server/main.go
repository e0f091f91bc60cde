package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"citizen-portal-backend/internal/api"
	"citizen-portal-backend/internal/config"
	"citizen-portal-backend/internal/core"
	"citizen-portal-backend/internal/db"
	"citizen-portal-backend/internal/middleware"
	"citizen-portal-backend/internal/worker"
	"citizen-portal-backend/pkg/cache"
	"citizen-portal-backend/pkg/mailer"
	"citizen-portal-backend/pkg/messagequeue"
)

func main() {
	// A .env file is a development convenience; in deployment the
	// environment itself carries the configuration.
	_ = godotenv.Load()

	// --- 1. Initialize Logger (Zap) ---
	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Zap logger initialized successfully.")

	// --- 2. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// --- 3. Initialize Firebase Admin SDK (Firestore and Auth clients) ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirestore(initCtx, appConfig); err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firestore and Firebase Admin SDK", zap.Error(err))
	}
	zapLogger.Info("Firebase Admin SDK (Firestore, Auth) initialized successfully.")

	firestoreClient := db.GetFirestoreClient()
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firestoreClient == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firestore client is nil after initialization. Application cannot start.")
	}
	if firebaseAuthClient == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firebase Auth client is nil after initialization. Application cannot start.")
	}

	// --- 4. Initialize Optional Infrastructure (Redis, RabbitMQ, SMTP) ---
	// Each of these is degradable: the portal serves requests without
	// them, it just loses roster caching / email fan-out.
	var rosterCache cache.Cache
	if appConfig.RedisAddr != "" {
		rosterCache, err = cache.NewRedisCache(initCtx, cache.RedisConfig{
			Address:  appConfig.RedisAddr,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		})
		if err != nil {
			zapLogger.Warn("Redis unavailable; council roster will be fetched on every request", zap.Error(err))
			rosterCache = nil
		} else {
			zapLogger.Info("Redis cache connected", zap.String("addr", appConfig.RedisAddr))
		}
	}

	var notificationQueue messagequeue.MessageQueue
	if appConfig.AMQPURL != "" {
		notificationQueue, err = messagequeue.NewRabbitMQService(messagequeue.RabbitMQConfig{URL: appConfig.AMQPURL})
		if err != nil {
			zapLogger.Warn("RabbitMQ unavailable; notification emails are disabled", zap.Error(err))
			notificationQueue = nil
		} else {
			defer notificationQueue.Close()
			zapLogger.Info("RabbitMQ connected", zap.String("queue", appConfig.NotificationQueue))
		}
	}

	var notificationMailer *mailer.Mailer
	if appConfig.SMTPHost != "" {
		notificationMailer, err = mailer.New(mailer.Config{
			Host:   appConfig.SMTPHost,
			Port:   appConfig.SMTPPort,
			User:   appConfig.SMTPUser,
			Pass:   appConfig.SMTPPass,
			Sender: appConfig.SMTPSender,
		})
		if err != nil {
			zapLogger.Warn("SMTP misconfigured; notification emails are disabled", zap.Error(err))
			notificationMailer = nil
		}
	}

	// --- 5. Initialize Repositories ---
	userRepo := db.NewFirestoreUserRepository(firestoreClient)
	submissionRepo := db.NewFirestoreSubmissionRepository(firestoreClient)
	notificationRepo := db.NewFirestoreNotificationRepository(firestoreClient)
	panicContactRepo := db.NewFirestorePanicContactRepository(firestoreClient)
	zapLogger.Info("Repositories initialized successfully.")

	// --- 6. Initialize Services ---
	userService := core.NewUserService(userRepo)
	submissionService := core.NewSubmissionService(submissionRepo, userRepo)
	notificationService := core.NewNotificationService(notificationRepo, notificationQueue, appConfig.NotificationQueue, zapLogger)
	triageService := core.NewTriageService(submissionRepo, notificationService, zapLogger)
	panicService := core.NewPanicService(panicContactRepo, appConfig.PanicHelpMessage)
	councilService := core.NewCouncilService(
		appConfig.CouncilAPIBaseURL,
		nil,
		rosterCache,
		time.Duration(appConfig.CouncilCacheTTLSeconds)*time.Second,
		zapLogger,
	)
	receiptService := core.NewReceiptService(appConfig.MunicipalityName)
	zapLogger.Info("Core services initialized successfully.")

	// --- 7. Start Notification Worker ---
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()
	if notificationQueue != nil && notificationMailer != nil {
		notificationWorker := worker.NewNotificationWorker(notificationQueue, appConfig.NotificationQueue, notificationMailer, zapLogger)
		go func() {
			if err := notificationWorker.Run(workerCtx); err != nil {
				zapLogger.Error("Notification worker stopped", zap.Error(err))
			}
		}()
		zapLogger.Info("Notification worker started.")
	} else {
		zapLogger.Info("Notification worker not started (broker or mailer missing); movements are still recorded in-app.")
	}

	// --- 8. Setup Gin HTTP Engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// --- 9. Apply Global Middleware (Order is important) ---
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured. API might not be accessible from a web frontend.")
	}

	// --- 10. Setup API Routes ---
	api.SetupRoutes(
		router,
		zapLogger,
		userService,
		submissionService,
		triageService,
		notificationService,
		panicService,
		councilService,
		receiptService,
	)

	// --- 11. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 12. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	cancelWorker()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	zapLogger.Info("Attempting graceful shutdown of HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
