package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"stacksphere/internal/adapter/api"
	"stacksphere/internal/adapter/api/handler"
	apimiddleware "stacksphere/internal/adapter/api/middleware"
	"stacksphere/internal/adapter/api/router"
	"stacksphere/internal/adapter/repository"
	"stacksphere/internal/domain/service"
	"stacksphere/internal/infrastructure/cache"
	"stacksphere/internal/infrastructure/firebase"
	"stacksphere/internal/infrastructure/ratelimit"
	"stacksphere/internal/infrastructure/storage"
	"stacksphere/internal/usecase"
	"stacksphere/pkg/config"
	"stacksphere/pkg/logger"
	"stacksphere/pkg/response"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if port != "" {
			cfg.ServerPort = port
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides SERVER_PORT)")
}

func loadConfig() (*config.Config, error) {
	if envFile != "" {
		return config.Load(envFile)
	}
	return config.Load()
}

func serve(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Init(cfg.Environment)
	defer logger.Sync()

	var opt option.ClientOption
	if cfg.FirebaseServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON))
	} else {
		if _, err := os.Stat(cfg.FirebaseServiceAccountPath); os.IsNotExist(err) {
			return errors.New("service account file does not exist: " + cfg.FirebaseServiceAccountPath)
		}
		logger.Info("Using Firebase service account from file: %s", cfg.FirebaseServiceAccountPath)
		opt = option.WithCredentialsFile(cfg.FirebaseServiceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		return err
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return err
	}
	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	var warnings []string
	if cfg.BackendHostsDiverge() {
		msg := "payment backend " + cfg.PaymentBackendURL + " differs from API backend " + cfg.BackendURL
		logger.Warn("Backend hosts diverge: %s", msg)
		warnings = append(warnings, msg)
	}

	apiClient := repository.NewBackendClient(cfg.BackendURL, cfg.BackendTimeout)
	paymentClient := apiClient
	if cfg.BackendHostsDiverge() {
		paymentClient = repository.NewBackendClient(cfg.PaymentBackendURL, cfg.BackendTimeout)
	}
	logger.Info("Backend clients ready: api=%s payments=%s", apiClient.BaseURL(), paymentClient.BaseURL())

	userRepo := repository.NewBackendUserRepository(apiClient)
	productRepo := repository.NewBackendProductRepository(apiClient)
	reviewRepo := repository.NewBackendReviewRepository(apiClient)
	couponRepo := repository.NewBackendCouponRepository(apiClient)
	statsRepo := repository.NewBackendStatisticsRepository(apiClient)
	paymentRepo := repository.NewBackendPaymentRepository(paymentClient)

	checks := map[string]handler.HealthCheck{}

	var roleCache usecase.RoleCache
	if cfg.RedisAddr != "" {
		rdb := cache.NewRedisClient(cfg.RedisAddr)
		defer rdb.Close()
		redisCache := cache.NewRedisRoleCache(rdb)
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("Redis at %s is not reachable yet: %v", cfg.RedisAddr, err)
		}
		checks["redis"] = redisCache.Ping
		roleCache = redisCache
		logger.Info("Using Redis role cache at %s", cfg.RedisAddr)
	} else {
		memoryCache := cache.NewMemoryRoleCache()
		memoryCache.StartSweeper(ctx, time.Minute)
		roleCache = memoryCache
		logger.Info("Using in-memory role cache")
	}

	var fileService service.FileUploadService
	if cfg.StorageBucket != "" {
		storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opt)
		if err != nil {
			return err
		}
		defer storageClient.Close()
		fileService = storageClient
	} else {
		logger.Warn("STORAGE_BUCKET is not set; image uploads are disabled")
	}

	if cfg.StripeSecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY is not set; card confirmation will fail")
	}
	paymentGateway := service.NewStripePaymentService(cfg.StripeSecretKey)

	sessionUseCase := usecase.NewSessionUseCase(userRepo, roleCache, cfg.RoleCacheTTL)
	productUseCase := usecase.NewProductUseCase(productRepo, userRepo)
	moderationUseCase := usecase.NewModerationUseCase(productRepo)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, productRepo)
	adminUseCase := usecase.NewAdminUseCase(userRepo, couponRepo, statsRepo, sessionUseCase)
	couponUseCase := usecase.NewCouponUseCase(couponRepo)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, couponRepo, paymentGateway)

	sessionUseCase.OnLogout(moderationUseCase.Forget)

	handler.Setup(
		sessionUseCase,
		productUseCase,
		moderationUseCase,
		reviewUseCase,
		adminUseCase,
		couponUseCase,
		paymentUseCase,
		firebaseAuthClient,
	)
	handler.SetupFileHandler(fileService, cfg.MaxUploadSize)
	handler.SetupHealthHandler(checks, warnings...)

	limiter := ratelimit.NewRateLimiter(
		ratelimit.Limit{PerMinute: cfg.RateLimitPerMinute, Burst: cfg.RateLimitPerMinute},
		router.ActionLimits(),
	)
	limiter.StartCleanupRoutine(ctx, 10*time.Minute, time.Hour)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = response.HTTPErrorHandler

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient)
	roleMiddleware := apimiddleware.NewRoleMiddleware(sessionUseCase, apimiddleware.DefaultRoleLookupTimeout)

	router.Setup(e, authMiddleware, roleMiddleware, limiter)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
