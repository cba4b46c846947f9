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

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"elaraMarket/app/echo-server/router"
	"elaraMarket/business/assistant"
	"elaraMarket/business/catalog"
	"elaraMarket/business/recommend"
	"elaraMarket/business/search"
	"elaraMarket/business/session"
	"elaraMarket/internal/middleware"
	"elaraMarket/internal/repository/catalogfeed"
	psqlRepo "elaraMarket/internal/repository/postgres"
	redisRepo "elaraMarket/internal/repository/redis"
	"elaraMarket/internal/repository/textcompletion"
	"elaraMarket/internal/rest"
	"elaraMarket/pkg/config"
	"elaraMarket/pkg/database"
	redisdb "elaraMarket/pkg/database/redis"
	"elaraMarket/pkg/logger"
	"elaraMarket/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Elara Search API", "version", cfg.App.Version)

	metrics.Init()

	// The database is optional: without it the collaborative and
	// frequently-bought strategies contribute nothing and the blend falls
	// back to content and popularity.
	var (
		behaviorRepo *psqlRepo.BehaviorRepository
		ordersRepo   *psqlRepo.OrdersRepository
	)
	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Warn("Database unavailable, behavior-driven recommendations disabled", "error", err)
	} else {
		logger.Info("Database connected successfully")
		behaviorRepo = psqlRepo.NewBehaviorRepository(db)
		ordersRepo = psqlRepo.NewOrdersRepository(db)
	}

	// Init catalog feed
	var feed catalog.Feed
	switch cfg.Catalog.Source {
	case "http":
		feed = catalogfeed.NewHTTPFeed(cfg.Catalog.FeedURL)
	default:
		feed = catalogfeed.NewFileFeed(cfg.Catalog.FilePath)
	}

	catalogService := catalog.NewService(feed, cfg.Catalog.TrendingSize)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 60*time.Second)
	if _, err := catalogService.Load(loadCtx); err != nil {
		loadCancel()
		logger.Fatal("Failed to load catalog", "error", err)
	}
	loadCancel()

	// Init session store
	var sessionStore session.Store
	switch cfg.Session.Store {
	case "redis":
		redisClient, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		defer redisdb.CloseRedisClient(redisClient)
		sessionStore = redisRepo.NewSessionStore(redisClient, cfg.Session.IdleTimeout)
	default:
		sessionStore = session.NewMemoryStore(cfg.Session.IdleTimeout)
	}

	// Init assistant backend
	var completion assistant.TextCompletion
	switch cfg.Assistant.Backend {
	case "gemini":
		completion = textcompletion.NewGeminiRepository(textcompletion.GeminiConfig{
			APIKey: cfg.Assistant.GeminiAPIKey,
			Model:  cfg.Assistant.GeminiModel,
		})
	case "deepseek":
		completion = textcompletion.NewDeepSeekRepository(textcompletion.DeepSeekConfig{
			APIKey:  cfg.Assistant.DeepSeekAPIKey,
			BaseURL: cfg.Assistant.DeepSeekURL,
		})
	case "local":
		completion = textcompletion.NewLocalRepository(textcompletion.LocalConfig{
			BaseURL: cfg.Assistant.LocalURL,
			Model:   cfg.Assistant.LocalModel,
		})
	default:
		completion = textcompletion.NewNullRepository()
	}

	// Init service
	searchService := search.NewService(catalogService, sessionStore, search.DefaultWeights())
	recommendService := recommend.NewService(catalogService, repoOrNil(behaviorRepo), ordersOrNil(ordersRepo), recommend.DefaultConfig())
	assistantService := assistant.NewService(completion, searchService, sessionStore, cfg.Assistant.Timeout, cfg.Assistant.MaxTokens)

	// Init handler
	searchHandler := rest.NewSearchHandler(searchService)
	recommendHandler := rest.NewRecommendHandler(recommendService)
	productHandler := rest.NewProductHandler(catalogService)
	assistantHandler := rest.NewAssistantHandler(assistantService)
	behaviorHandler := rest.NewBehaviorHandler(recorderOrNil(behaviorRepo))
	sessionHandler := rest.NewSessionHandler(sessionStore)
	adminHandler := rest.NewAdminHandler(catalogService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	authRequired := middleware.AuthMiddleware(cfg.JWT.SecretKey)
	adminOnly := middleware.AdminOnly()

	api := e.Group("/api/v1")
	router.SetupSearchRoutes(api, searchHandler)
	router.SetupRecommendRoutes(api, recommendHandler)
	router.SetupProductRoutes(api, productHandler)
	router.SetupAssistantRoutes(api, assistantHandler)
	router.SetupBehaviorRoutes(api, behaviorHandler)
	router.SetupSessionRoutes(api, sessionHandler)
	router.SetupAdminRoutes(api, adminHandler, authRequired, adminOnly)

	// Periodic catalog reload
	reloadDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.Catalog.ReloadInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
				if _, err := catalogService.Reload(ctx); err != nil {
					logger.Error("Scheduled catalog reload failed", "error", err)
				}
				cancel()
			case <-reloadDone:
				return
			}
		}
	}()

	// Periodic session sweep
	sweepDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.Session.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				if purged, err := sessionStore.PurgeExpired(ctx); err != nil {
					logger.Error("Session sweep failed", "error", err)
				} else if purged > 0 {
					logger.Debug("Session sweep finished", "purged", purged)
				}
				cancel()
			case <-sweepDone:
				return
			}
		}
	}()

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
	close(reloadDone)
	close(sweepDone)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

// A nil *BehaviorRepository stored in an interface is not a nil interface, so
// the conversions below keep the services' nil checks meaningful.
func repoOrNil(repo *psqlRepo.BehaviorRepository) recommend.BehaviorRepository {
	if repo == nil {
		return nil
	}
	return repo
}

func ordersOrNil(repo *psqlRepo.OrdersRepository) recommend.OrdersRepository {
	if repo == nil {
		return nil
	}
	return repo
}

func recorderOrNil(repo *psqlRepo.BehaviorRepository) rest.BehaviorRecorder {
	if repo == nil {
		return nil
	}
	return repo
}
