package main

import (
	"context"
	"net/http"
	"time"

	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/app"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/config"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/constants"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/controllers"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/services"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-repositories"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	_ "time/tzdata"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()
	defer cfg.Close()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize marketplace-service:", err)
	}
	defer application.Close()

	if err := application.EnsureSchema(context.Background()); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to apply schema")
	}

	// Repositories
	userRepo := repositories.NewUserRepository(application.DB)
	flatRepo := repositories.NewFlatRepository(application.DB)
	ratingRepo := repositories.NewRatingRepository(application.DB)
	favoriteRepo := repositories.NewFavoriteRepository(application.DB)
	bookingRepo := repositories.NewBookingRepository(application.DB)
	notificationRepo := repositories.NewNotificationRepository(application.DB)
	chatRepo := repositories.NewChatRepository(application.DB)
	auditRepo := repositories.NewAdminAuditLogRepository(application.DB)

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedAllTestData(context.Background(), userRepo, flatRepo); err != nil {
			utils.Logger.Fatal("Failed to seed test data:", err)
		}
	}

	// Adapters
	payments := services.NewStripePaymentService(cfg.StripeSecretKey)
	mailer := services.NewEmailService(cfg.SendGridAPIKey, cfg.OrganizationName, cfg.SendGridFrom, cfg.LDFlag_SendgridSandboxMode)
	sms := services.NewSMSService(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromPhone)
	assistant := services.NewAssistantService(cfg.OpenAIAPIKey)
	geocoder, err := services.NewGeocodeService(cfg.GMapsAPIKey)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to init geocoder")
	}

	var cache *services.ListingCache
	if cfg.LDFlag_ListingCacheEnabled {
		cache = services.NewListingCache(cfg.RedisAddr, cfg.RedisPassword, constants.ListingCachePrefix, constants.ListingCacheTTL)
		defer cache.Close()
	}

	var images services.ImageStore
	if cfg.MinioEndpoint != "" {
		store, err := services.NewMinioImageStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			utils.Logger.WithError(err).Fatal("Failed to init image store")
		}
		images = store
	} else {
		utils.Logger.Warn("MINIO_ENDPOINT not set; image uploads disabled")
	}

	var events services.EventPublisher = services.NoopPublisher{}
	if cfg.AMQPUrl != "" {
		pub, err := services.NewAMQPPublisher(cfg.AMQPUrl, constants.EventsExchange)
		if err != nil {
			utils.Logger.WithError(err).Fatal("Failed to connect to RabbitMQ")
		}
		defer pub.Close()
		events = pub
	}

	// Services
	notificationService := services.NewNotificationService(notificationRepo)
	bookingService := services.NewBookingService(bookingRepo, flatRepo, userRepo, notificationService, payments, mailer, sms, events)
	wishlistService := services.NewWishlistService(favoriteRepo, userRepo, flatRepo)
	chatService := services.NewChatService(chatRepo, userRepo)
	flatService := services.NewFlatService(flatRepo, ratingRepo, userRepo, notificationService, geocoder, cache, images, events)
	adminService := services.NewAdminService(userRepo, flatRepo, bookingRepo, auditRepo, flatService, notificationService)

	// Controllers
	healthDeps := map[string]controllers.Pinger{"postgres": application}
	if cache != nil {
		healthDeps["redis"] = cache
	}
	if pub, ok := events.(*services.AMQPPublisher); ok {
		healthDeps["amqp"] = pub
	}
	healthController := controllers.NewHealthController(healthDeps)
	bookingController := controllers.NewBookingController(bookingService)
	stripeWebhookController := controllers.NewStripeWebhookController(bookingService, cfg.StripeWebhookSecret)
	notificationController := controllers.NewNotificationController(notificationService)
	wishlistController := controllers.NewWishlistController(wishlistService)
	chatController := controllers.NewChatController(chatService)
	flatController := controllers.NewFlatController(flatService)
	adminController := controllers.NewAdminController(adminService)
	assistantController := controllers.NewAssistantController(assistant)

	router := controllers.NewRouter(cfg.JWTSecret, controllers.Handlers{
		Health:        healthController,
		Booking:       bookingController,
		StripeWebhook: stripeWebhookController,
		Notification:  notificationController,
		Wishlist:      wishlistController,
		Chat:          chatController,
		Flat:          flatController,
		Admin:         adminController,
		Assistant:     assistantController,
	})

	// Cron job setup
	c := cron.New(cron.WithLocation(time.UTC))
	_, err = c.AddFunc(constants.ExpirePendingBookingsSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.ExpirePendingBookingsJobTimeout)
		defer cancel()
		if _, err := bookingService.ExpireStalePending(ctx); err != nil {
			utils.Logger.WithError(err).Error("Failed to expire pending bookings")
		}
	})
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule pending booking expiry cron")
	}
	c.Start()
	defer c.Stop()
	utils.Logger.Info("Scheduled pending booking expiry")

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Stripe-Signature"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("marketplace-service failed to start:", err)
	}
}
