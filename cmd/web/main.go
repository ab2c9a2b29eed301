package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/skillbridge-web/api/swagger"
	"github.com/noah-isme/skillbridge-web/internal/handler"
	"github.com/noah-isme/skillbridge-web/internal/middleware"
	"github.com/noah-isme/skillbridge-web/internal/repository"
	"github.com/noah-isme/skillbridge-web/internal/service"
	"github.com/noah-isme/skillbridge-web/internal/view"
	"github.com/noah-isme/skillbridge-web/pkg/apiclient"
	"github.com/noah-isme/skillbridge-web/pkg/cache"
	"github.com/noah-isme/skillbridge-web/pkg/config"
	"github.com/noah-isme/skillbridge-web/pkg/flash"
	"github.com/noah-isme/skillbridge-web/pkg/jobs"
	"github.com/noah-isme/skillbridge-web/pkg/logger"
	corsmiddleware "github.com/noah-isme/skillbridge-web/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/skillbridge-web/pkg/middleware/requestid"
	"github.com/noah-isme/skillbridge-web/pkg/proxy"
)

// @title SkillBridge Web
// @version 1.0.0
// @description Server-rendered SkillBridge pages with auth and API proxies
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	apiClient := apiclient.New(cfg.Backend.APIBaseURL(),
		apiclient.WithTimeout(cfg.Backend.Timeout),
		apiclient.WithLogger(logr.Named("api")),
		apiclient.WithObserver(metrics),
	)
	authClient := apiclient.New(cfg.Backend.URL+"/api/auth",
		apiclient.WithTimeout(cfg.Backend.Timeout),
		apiclient.WithLogger(logr.Named("auth")),
		apiclient.WithObserver(metrics),
	)

	tutorRepo := repository.NewTutorRepository(apiClient)
	categoryRepo := repository.NewCategoryRepository(apiClient)
	bookingRepo := repository.NewBookingRepository(apiClient)
	reviewRepo := repository.NewReviewRepository(apiClient)
	userRepo := repository.NewUserRepository(apiClient)
	adminRepo := repository.NewAdminRepository(apiClient)
	authRepo := repository.NewAuthRepository(authClient)

	checks := map[string]handler.Check{
		"backend": func(ctx context.Context) error { return apiClient.Ping(ctx, "/") },
	}

	var cacheRepo *repository.CacheRepository
	if cfg.Catalog.CacheEnabled {
		redisClient, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, "skillbridge")
			defer cacheRepo.Close() //nolint:errcheck
			checks["redis"] = cacheRepo.Ping
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Catalog.CacheTTL, logr.Named("cache"), cacheRepo != nil)

	validate := validator.New()
	catalogSvc := service.NewCatalogService(tutorRepo, categoryRepo, cacheSvc, metrics, cfg.Catalog.Revalidate, cfg.Catalog.CacheTTL, logr.Named("catalog"))
	queue := jobs.NewQueue("catalog", catalogSvc.HandleJob, jobs.QueueConfig{
		Workers:    cfg.Catalog.Workers,
		MaxRetries: 2,
		RetryDelay: 5 * time.Second,
		Logger:     logr.Named("jobs"),
	})
	if cacheRepo != nil {
		queue.Start(ctx)
		defer queue.Stop()
		catalogSvc.UseQueue(queue)
	}

	sessionSvc := service.NewSessionService(authRepo, logr.Named("session"))
	authSvc := service.NewAuthService(authRepo, validate, cfg.App.URL, logr.Named("auth"))
	tutorSvc := service.NewTutorService(tutorRepo, reviewRepo, validate, logr.Named("tutor"))
	categorySvc := service.NewCategoryService(categoryRepo, tutorRepo, catalogSvc, validate, logr.Named("category"))
	bookingSvc := service.NewBookingService(bookingRepo, validate, logr.Named("booking"))
	reviewSvc := service.NewReviewService(reviewRepo, bookingRepo, validate, logr.Named("review"))
	userSvc := service.NewUserService(userRepo, validate, logr.Named("user"))
	dashboardSvc := service.NewDashboardService(tutorRepo, bookingRepo, logr.Named("dashboard"))
	adminSvc := service.NewAdminService(adminRepo, validate, logr.Named("admin"))
	exportSvc := service.NewExportService(adminRepo, logr.Named("export"))

	proxyCfg := proxy.Config{
		BackendURL: cfg.Backend.URL,
		Timeout:    cfg.Backend.Timeout,
		Logger:     logr.Named("proxy"),
		Observer:   metrics,
	}
	authProxy, err := proxy.NewAuth(proxyCfg)
	if err != nil {
		logr.Fatal("invalid auth proxy config", zap.Error(err))
	}
	apiProxy, err := proxy.NewAPI(proxyCfg)
	if err != nil {
		logr.Fatal("invalid api proxy config", zap.Error(err))
	}

	renderer, err := view.New()
	if err != nil {
		logr.Fatal("failed to parse templates", zap.Error(err))
	}

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(handler.Recovery(logr))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.Flashes(flash.NewStore(cfg.Flash.Secret, cfg.Flash.TTL, cfg.App.SecureCookies)))

	routes := handler.Routes{
		Public:      handler.NewPublicHandler(catalogSvc, tutorSvc, categorySvc, bookingSvc),
		Auth:        handler.NewAuthHandler(authSvc),
		Student:     handler.NewStudentHandler(userSvc, bookingSvc, reviewSvc),
		Tutor:       handler.NewTutorHandler(tutorSvc, dashboardSvc, bookingSvc, categorySvc),
		Admin:       handler.NewAdminHandler(adminSvc, categorySvc, exportSvc),
		Ops:         handler.NewMetricsHandler(metrics, checks),
		AuthProxy:   authProxy,
		APIProxy:    apiProxy,
		Session:     middleware.Session(sessionSvc),
		CORS:        corsmiddleware.New(cfg.CORS.AllowedOrigins),
		AuditLogger: logr.Named("audit"),
		Metrics:     metrics != nil,
		Docs:        cfg.Env != config.EnvProduction,
	}
	if cfg.CSRF.Enabled {
		routes.CSRF = middleware.CSRF(cfg.CSRF.Secret, cfg.App.SecureCookies)
	}
	handler.Register(r, routes)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "backend", cfg.Backend.URL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
