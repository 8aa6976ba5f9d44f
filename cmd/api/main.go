package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"sanctify-api/internal/ai"
	"sanctify-api/internal/billing"
	"sanctify-api/internal/config"
	"sanctify-api/internal/database"
	"sanctify-api/internal/handlers"
	"sanctify-api/internal/logger"
	"sanctify-api/internal/metrics"
	"sanctify-api/internal/middleware/auth"
	"sanctify-api/internal/middleware/ratelimit"
	"sanctify-api/internal/scripture"
	"sanctify-api/internal/store"
	"sanctify-api/internal/usage"
)

// disabledGenerator stands in for Gemini when no API key is configured.
// Every call fails, so the devotions service serves its canned
// fallbacks instead of real generations.
type disabledGenerator struct{}

func (disabledGenerator) Generate(context.Context, string, []ai.Part, bool) (string, error) {
	return "", errors.New("ai generation is disabled")
}

// disabledPayments stands in for PayPal when credentials are missing.
// Checkout fails, but the simulated-payment path still works.
type disabledPayments struct{}

func (disabledPayments) CreateOrder(context.Context, string, string, string) (string, string, error) {
	return "", "", errors.New("payments are disabled")
}

func (disabledPayments) CaptureOrder(context.Context, string) (string, error) {
	return "", errors.New("payments are disabled")
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Debug)

	ctx := context.Background()

	// Firestore holds profiles, usage counters, and the saved-content
	// archive. The service cannot run without it.
	app, err := database.NewFirebaseApp(ctx, cfg.FirebaseCredentials, cfg.FirebaseProjectID)
	if err != nil {
		logger.Fatal("firebase init failed", "error", err)
	}
	fsClient, err := database.NewFirestoreClient(ctx, app)
	if err != nil {
		logger.Fatal("firestore init failed", "error", err)
	}
	defer fsClient.Close()
	docs := store.NewFirestore(fsClient)

	verifier, err := auth.NewFirebaseVerifier(ctx, app)
	if err != nil {
		logger.Fatal("firebase auth init failed", "error", err)
	}

	// MySQL keeps the billing order rows.
	db, err := database.NewConnection(cfg.DSN)
	if err != nil {
		logger.Fatal("database connection failed", "error", err)
	}
	defer db.Close()
	orderLog := billing.NewMySQLOrderLog(db)
	if err := orderLog.Init(ctx); err != nil {
		logger.Fatal("order table init failed", "error", err)
	}

	// Redis caches scripture chapters. It is a best-effort cache, so a
	// missing Redis degrades to uncached reads rather than a dead
	// service.
	var redisClient *redis.Client
	var chapterCache scripture.Cache
	if rdb, err := database.NewRedisConnection(cfg.RedisURL); err != nil {
		logger.Warn("redis unavailable, chapter caching disabled", "error", err)
	} else {
		redisClient = rdb
		chapterCache = scripture.NewRedisCache(rdb)
		defer rdb.Close()
	}

	var gen ai.Generator
	if cfg.GeminiDisabled || cfg.GeminiAPIKey == "" {
		logger.Warn("ai generation disabled, serving fallback responses")
		gen = disabledGenerator{}
	} else {
		gemini, err := ai.NewGemini(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Fatal("gemini init failed", "error", err)
		}
		gen = gemini
	}
	devotions := ai.NewService(gen, cfg.GeminiFlash, cfg.GeminiPro)

	var payments billing.PaymentClient
	if cfg.PayPalClientID == "" || cfg.PayPalSecret == "" {
		logger.Warn("paypal credentials missing, checkout disabled")
		payments = disabledPayments{}
	} else {
		pp, err := billing.NewPayPal(cfg.PayPalClientID, cfg.PayPalSecret, cfg.PayPalAPIBase)
		if err != nil {
			logger.Fatal("paypal init failed", "error", err)
		}
		payments = pp
	}
	biller := billing.NewService(payments, orderLog, docs, cfg.PremiumPrice, cfg.PayPalAllowSimulate)

	ledger := usage.NewLedger(docs,
		usage.WithLimit(cfg.UsageLimit),
		usage.WithFailOpen(cfg.UsageFailOpen),
	)

	reader := scripture.NewClient(cfg.ScriptureBaseURL, chapterCache)
	rateLimiter := ratelimit.NewRateLimiter(ratelimit.DefaultLimit)
	defer rateLimiter.Stop()

	reg := prometheus.NewRegistry()
	metrics.MustRegister(reg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendOrigin},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	h := handlers.NewHandler(docs, ledger, devotions, biller, reader, rateLimiter)
	h.DBCheck = db.PingContext
	h.StoreCheck = docs.Ping
	if redisClient != nil {
		h.RedisCheck = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	h.Register(e, auth.Middleware(verifier))
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server start failed", "error", err)
		}
	}()
	logger.Info("server started", "port", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("forced shutdown", "error", err)
	}
	logger.Info("server exited")
}
