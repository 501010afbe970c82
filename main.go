package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// App carries the shared dependencies every handler needs. It is built once
// in main and handed to the router; tests build their own against an
// in-memory database.
type App struct {
	cfg   *ServerConfig
	log   *zap.Logger
	db    *gorm.DB
	store *ImageStore
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := LoadConfig("config.json")
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Perform automatic schema migration
	if err := db.AutoMigrate(&User{}, &ProcessedImage{}); err != nil {
		logger.Fatal("failed to migrate schema", zap.Error(err))
	}

	app := &App{
		cfg:   cfg,
		log:   logger,
		db:    db,
		store: NewImageStore(db),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(SecurityHeadersMiddleware())
	r.Use(CORSMiddleware(cfg.Security.AllowedOrigins))
	r.Use(RequestLogMiddleware(logger))
	r.Use(RateLimitMiddleware(cfg.Security.RateLimitRequests, time.Duration(cfg.Security.RateLimitWindow)*time.Second))

	// Set up session middleware using the secret key
	store := cookie.NewStore([]byte(cfg.Security.SecretKey))
	store.Options(sessions.Options{
		MaxAge:   cfg.Security.SessionMaxAge,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Security.EnableHTTPS,
	})
	r.Use(sessions.Sessions("session", store))

	app.registerRoutes(r)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.startOrphanSweeper(ctx)

	srv := &http.Server{
		Addr:         cfg.Server.Interface,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Server.Interface))
		var serveErr error
		if cfg.Security.EnableHTTPS {
			serveErr = srv.ListenAndServeTLS(cfg.Security.CertFile, cfg.Security.KeyFile)
		} else {
			serveErr = srv.ListenAndServe()
		}
		if serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Fatal("server stopped", zap.Error(serveErr))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
