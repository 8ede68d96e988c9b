package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TechXplorers1/comagend-website/internal/blog"
	"github.com/TechXplorers1/comagend-website/internal/cache"
	"github.com/TechXplorers1/comagend-website/internal/config"
	"github.com/TechXplorers1/comagend-website/internal/contact"
	"github.com/TechXplorers1/comagend-website/internal/db"
	"github.com/TechXplorers1/comagend-website/internal/donations"
	"github.com/TechXplorers1/comagend-website/internal/metrics"
	"github.com/TechXplorers1/comagend-website/internal/middleware"
	"github.com/TechXplorers1/comagend-website/internal/programs"
	"github.com/TechXplorers1/comagend-website/internal/transport"
	"github.com/TechXplorers1/comagend-website/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	val := validation.New()
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	programsRepo := programs.NewRepository(cols.Programs)
	programsService := programs.NewService(programsRepo, cfg.Timezone)
	programsHandler := programs.NewHandler(programsService, val, logger, cacheStore, cacheTTL)

	blogRepo := blog.NewRepository(cols.BlogPosts)
	blogService := blog.NewService(blogRepo)
	blogHandler := blog.NewHandler(blogService, logger, cacheStore, cacheTTL)

	contactRepo := contact.NewRepository(cols.ContactMessages)
	contactService := contact.NewService(contactRepo, cfg.Timezone)
	contactHandler := contact.NewHandler(contactService, val, logger, cacheStore, cacheTTL)

	donationsRepo := donations.NewRepository(cols.Donations)
	donationsService := donations.NewService(donationsRepo, cfg.Timezone)
	donationsHandler := donations.NewHandler(donationsService, val, logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	contactLimiter := middleware.NewRateLimiter("contact", cfg.RateLimitContact, time.Duration(cfg.RateLimitWindowSec)*time.Second)
	donationsLimiter := middleware.NewRateLimiter("donations", cfg.RateLimitDonations, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	r.Route("/api", func(api chi.Router) {
		api.Get("/programs", programsHandler.List)
		api.Post("/programs", programsHandler.Create)
		api.Get("/programs/{id}", programsHandler.GetByID)
		api.Patch("/programs/{id}", programsHandler.Update)
		api.Delete("/programs/{id}", programsHandler.Delete)

		api.Get("/blog", blogHandler.List)

		api.Get("/contact-messages", contactHandler.List)
		api.With(contactLimiter.Middleware).Post("/contact", contactHandler.Create)

		api.Get("/donations", donationsHandler.List)
		api.With(donationsLimiter.Middleware).Post("/donations", donationsHandler.Create)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
