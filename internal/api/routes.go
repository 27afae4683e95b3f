package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RaevaDesai/CommunityFund/internal/core"
	"github.com/RaevaDesai/CommunityFund/internal/db"
	"github.com/RaevaDesai/CommunityFund/internal/geo"
	"github.com/RaevaDesai/CommunityFund/internal/middleware"
	"github.com/RaevaDesai/CommunityFund/internal/settings"
)

// SetupRoutes wires all application routes. Global middleware (request ID,
// logging, recovery, CORS) is applied to the router in main.go before this
// is called.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	session core.Session,
	fundraiserService core.FundraiserService,
	donationService core.DonationService,
	postService core.PostService,
	aggregator *core.ProfileAggregator,
	searchService *geo.SearchService,
	geocoder *geo.Geocoder,
	settingsStore *settings.Store,
) {
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("Firebase Auth client is not initialized; routes cannot be secured")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient, logger)
	// Verified token UID must belong to the session this process serves.
	sameIdentity := RequireSessionIdentity(session)

	sessionHandler := NewSessionHandler(session, logger)
	fundraiserHandler := NewFundraiserHandler(fundraiserService, donationService, aggregator, logger)
	postHandler := NewPostHandler(postService, logger)
	placeHandler := NewPlaceHandler(searchService, geocoder, logger)
	settingsHandler := NewSettingsHandler(settingsStore, logger)

	apiV1 := router.Group("/api/v1")
	{
		sessionGroup := apiV1.Group("/session")
		{
			// POST /api/v1/session - exchanges a Firebase ID token for a
			// server-side session. No auth middleware: the token IS the
			// credential being presented.
			sessionGroup.POST("", sessionHandler.SignIn)
			sessionGroup.DELETE("", authMW.VerifyToken(), sameIdentity, sessionHandler.SignOut)
			sessionGroup.GET("", authMW.VerifyToken(), sessionHandler.Current)
		}

		fundraisersGroup := apiV1.Group("/fundraisers")
		{
			// Reads are public: the home feed and detail views do not
			// require sign-in.
			fundraisersGroup.GET("", fundraiserHandler.List)
			fundraisersGroup.GET("/stream", fundraiserHandler.StreamAll)
			fundraisersGroup.GET("/:id", fundraiserHandler.Get)
			fundraisersGroup.GET("/:id/posts", postHandler.List)
			fundraisersGroup.GET("/:id/posts/stream", postHandler.Stream)

			// Writes require a verified identity matching the session.
			fundraisersGroup.POST("", authMW.VerifyToken(), sameIdentity, fundraiserHandler.Create)
			fundraisersGroup.POST("/:id/posts", authMW.VerifyToken(), sameIdentity, postHandler.Create)
			fundraisersGroup.POST("/:id/donate", authMW.VerifyToken(), sameIdentity, fundraiserHandler.Donate)
			fundraisersGroup.DELETE("/:id/donate", authMW.VerifyToken(), sameIdentity, fundraiserHandler.Undonate)
		}

		profileGroup := apiV1.Group("/profile", authMW.VerifyToken(), sameIdentity)
		{
			profileGroup.GET("/fundraisers/stream", fundraiserHandler.StreamMine)
			profileGroup.GET("/donations/stream", fundraiserHandler.StreamDonations)
		}

		placesGroup := apiV1.Group("/places")
		{
			placesGroup.GET("/search", placeHandler.Search)
			placesGroup.POST("/resolve", placeHandler.Resolve)
			placesGroup.GET("/reverse", placeHandler.Reverse)
		}

		settingsGroup := apiV1.Group("/settings", authMW.VerifyToken(), sameIdentity)
		{
			settingsGroup.GET("/marked/:id", settingsHandler.GetMarked)
			settingsGroup.PUT("/marked/:id", settingsHandler.SetMarked)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "CommunityFund backend is healthy."})
	})

	logger.Info("API routes configured under /api/v1 and /health")
}
