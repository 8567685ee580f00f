// File: panditseva/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"panditseva/config"
	"panditseva/cron"
	"panditseva/database"
	bookingRepo "panditseva/database/repository/booking"
	draftRepo "panditseva/database/repository/draft"
	panditRepo "panditseva/database/repository/pandit"
	reconcileRepo "panditseva/database/repository/reconcile"
	"panditseva/database/seed"
	"panditseva/handlers"
	"panditseva/middleware"
	"panditseva/routes"
	"panditseva/services/booking"
	"panditseva/services/tasks"
	"panditseva/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// storage bundles the repositories for the configured driver.
type storage struct {
	pandits    panditRepo.PanditRepository
	bookings   bookingRepo.BookingRepository
	drafts     draftRepo.DraftStore
	review     reconcileRepo.ReviewQueue
	mongo      *mongo.Client
	redis      map[string]*redis.Client
	reconciler booking.Reconciler
	asynq      *asynq.Client
}

func memoryStorage(ctx context.Context, logger *zap.Logger) *storage {
	pandits := panditRepo.NewMemoryPanditRepo()
	if n, err := seed.Load(ctx, pandits, time.Now().UTC()); err != nil {
		logger.Sugar().Fatalf("main: failed to seed in-memory directory: %v", err)
	} else {
		logger.Sugar().Infof("main: in-memory storage seeded with %d pandits", n)
	}
	review := reconcileRepo.NewMemoryReviewQueue()
	return &storage{
		pandits:    pandits,
		bookings:   bookingRepo.NewMemoryBookingRepo(),
		drafts:     draftRepo.NewMemoryDraftStore(),
		review:     review,
		reconciler: tasks.NewReviewReconciler(review, logger),
	}
}

func mongoStorage(logger *zap.Logger) *storage {
	database.InitDB()
	utils.InitRedis()
	db := database.DB()

	mongoPandits, err := panditRepo.NewMongoPanditRepo(db)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize pandit repository: %v", err)
	}
	bookings, err := bookingRepo.NewMongoBookingRepo(db)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize booking repository: %v", err)
	}
	review, err := reconcileRepo.NewMongoReviewQueue(db)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize reconciliation queue: %v", err)
	}

	cfg := config.AppConfig
	client := cron.NewClient(cfg)
	return &storage{
		pandits:    panditRepo.NewCachedPanditRepo(mongoPandits, utils.GetCacheClient(), cfg.DirectoryCacheTTL, logger),
		bookings:   bookings,
		drafts:     draftRepo.NewRedisDraftStore(utils.GetDraftCacheClient()),
		review:     review,
		mongo:      database.MongoClient,
		redis:      map[string]*redis.Client{"drafts": utils.GetDraftCacheClient(), "cache": utils.GetCacheClient()},
		reconciler: tasks.NewAsynqReconciler(client, cfg.ReconcileMaxRetry, logger),
		asynq:      client,
	}
}

func paymentGateway(logger *zap.Logger) booking.PaymentInitiator {
	switch config.AppConfig.PaymentGateway {
	case "stripe":
		if config.AppConfig.StripeKey == "" {
			logger.Sugar().Fatal("main: PAYMENT_GATEWAY=stripe requires STRIPE_KEY")
		}
		stripe.Key = config.AppConfig.StripeKey
		return booking.NewStripeGateway(logger)
	case "mock", "":
		return booking.NewMockGateway(config.AppConfig.MockPaymentDelay, logger)
	default:
		logger.Sugar().Fatalf("main: unknown PAYMENT_GATEWAY %q", config.AppConfig.PaymentGateway)
		return nil
	}
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if cfg.JWTSecret == "" {
		logger.Sugar().Fatal("main: JWT_SECRET must be set")
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	var store *storage
	if config.UsesMemoryStorage() {
		store = memoryStorage(rootCtx, logger)
	} else {
		store = mongoStorage(logger)
	}

	// Reconciliation worker, only when a queue backs the reconciler.
	var worker *asynq.Server
	if store.asynq != nil {
		handler := cron.NewReconcileHandler(store.bookings, store.review, logger)
		worker = cron.StartReconcileWorker(rootCtx, cfg, handler, logger)
	}

	monitor := utils.NewHealthMonitor(store.redis, store.mongo)
	monitor.Start(rootCtx, 30*time.Second)

	// services.
	directory := booking.NewDirectory(store.pandits, cfg.PaymentCurrency, logger)
	submitter := booking.NewSubmitter(store.bookings, store.reconciler, store.review, logger)
	form := booking.NewFormController(directory, store.drafts, paymentGateway(logger), submitter, booking.FormConfig{
		Currency:       cfg.PaymentCurrency,
		DraftTTL:       cfg.DraftTTL,
		SubmitLockTTL:  cfg.SubmitLockTTL,
		ConfirmTimeout: cfg.ConfirmTimeout,
	}, logger)
	lifecycle := booking.NewLifecycle(store.bookings, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Sessions:          utils.NewTokenIssuer(cfg.JWTSecret),
		Pandits:           handlers.NewPanditHandler(directory),
		Booking:           handlers.NewBookingHandler(form, lifecycle),
		Health:            &handlers.HealthHandler{Monitor: monitor},
		OpsAPIKey:         cfg.OpsAPIKey,
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
	}
	if cfg.OpsAPIKey != "" {
		handlerBundle.Ops = handlers.NewOpsHandler(store.review)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s (storage=%s, gateway=%s)...", srv.Addr, cfg.StorageDriver, cfg.PaymentGateway)
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
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	stop()
	if worker != nil {
		worker.Shutdown()
	}
	if store.asynq != nil {
		if err := store.asynq.Close(); err != nil {
			logger.Warn("main: failed to close task client", zap.Error(err))
		}
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}
