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

	"github.com/RaevaDesai/CommunityFund/internal/api"
	"github.com/RaevaDesai/CommunityFund/internal/config"
	"github.com/RaevaDesai/CommunityFund/internal/core"
	"github.com/RaevaDesai/CommunityFund/internal/db"
	"github.com/RaevaDesai/CommunityFund/internal/geo"
	"github.com/RaevaDesai/CommunityFund/internal/middleware"
	"github.com/RaevaDesai/CommunityFund/internal/settings"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded")

	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirestore(initCtx, appConfig); err != nil {
		zapLogger.Fatal("Failed to initialize Firebase Admin SDK", zap.Error(err))
	}

	firestoreClient := db.GetFirestoreClient()
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firestoreClient == nil || firebaseAuthClient == nil {
		zapLogger.Fatal("Firestore or Firebase Auth client is nil after initialization")
	}

	profileRepo := db.NewFirestoreProfileRepository(firestoreClient, zapLogger)
	fundraiserRepo := db.NewFirestoreFundraiserRepository(firestoreClient, zapLogger)
	postRepo := db.NewFirestorePostRepository(firestoreClient, zapLogger)

	session := core.NewSessionStore(firebaseAuthClient, profileRepo, zapLogger)
	fundraiserService := core.NewFundraiserService(fundraiserRepo, session, zapLogger)
	donationService := core.NewDonationService(profileRepo, session, zapLogger)
	postService := core.NewPostService(postRepo, fundraiserRepo, session, zapLogger)

	// The aggregator follows the session: it watches the signed-in user's
	// profile and keeps the created and donated fundraiser lists live.
	aggregator := core.NewProfileAggregator(profileRepo, fundraiserRepo, zapLogger)
	aggregator.Bind(session)
	defer aggregator.Stop()

	mapsClient, err := geo.NewMapsClient(appConfig.MapsAPIKey)
	if err != nil {
		zapLogger.Fatal("Failed to initialize Google Maps client", zap.Error(err))
	}
	searchService := geo.NewSearchService(mapsClient, zapLogger)
	geocoder := geo.NewGeocoder(mapsClient, zapLogger)

	settingsStore, err := settings.Open(appConfig.SettingsDBPath)
	if err != nil {
		zapLogger.Fatal("Failed to open settings store", zap.String("path", appConfig.SettingsDBPath), zap.Error(err))
	}
	defer settingsStore.Close()
	zapLogger.Info("Services initialized")

	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS middleware skipped: CLIENT_URL is not configured")
	}

	api.SetupRoutes(
		router,
		zapLogger,
		session,
		fundraiserService,
		donationService,
		postService,
		aggregator,
		searchService,
		geocoder,
		settingsStore,
	)

	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully")
}
