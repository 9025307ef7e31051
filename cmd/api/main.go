package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/maksido/blog-api/api/swagger"
	"github.com/maksido/blog-api/internal/handler"
	"github.com/maksido/blog-api/internal/middleware"
	"github.com/maksido/blog-api/internal/repository"
	"github.com/maksido/blog-api/internal/service"
	"github.com/maksido/blog-api/pkg/cache"
	"github.com/maksido/blog-api/pkg/config"
	"github.com/maksido/blog-api/pkg/database"
	"github.com/maksido/blog-api/pkg/logger"
	corsmiddleware "github.com/maksido/blog-api/pkg/middleware/cors"
	reqidmiddleware "github.com/maksido/blog-api/pkg/middleware/requestid"
)

// @title Blog API
// @version 1.0.0
// @description REST backend for the blog platform
// @BasePath /api/v1
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

	db, err := database.NewPostgres(cfg.Database, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, post cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, true)
		}
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	tokenSvc := service.NewTokenService(tokenRepo, logr, service.TokenConfig{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
	})
	authSvc := service.NewAuthService(userRepo, tokenSvc, tokenRepo, validate, logr)
	userSvc := service.NewUserService(userRepo, validate, logr)
	postSvc := service.NewPostService(postRepo, commentRepo, cacheSvc, validate, logr)
	commentSvc := service.NewCommentService(commentRepo, postRepo, validate, logr)

	cookieCfg := handler.CookieConfig{
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
		Secure:     cfg.Env == config.EnvProduction,
	}

	authHandler := handler.NewAuthHandler(authSvc, cookieCfg)
	userHandler := handler.NewUserHandler(userSvc)
	postHandler := handler.NewPostHandler(postSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authGate := middleware.Auth(authSvc)

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/registration", authHandler.Registration)
			auth.POST("/login", authHandler.Login)
			auth.GET("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authGate, authHandler.Me)
		}

		users := api.Group("/users", authGate)
		{
			users.PATCH("/update-info", userHandler.UpdateInfo)
			users.PATCH("/update-password", userHandler.UpdatePassword)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", postHandler.List)
			posts.GET("/:id", postHandler.Get)
			posts.POST("", authGate, postHandler.Create)
			posts.PUT("", authGate, postHandler.Update)
			posts.DELETE("/:id", authGate, postHandler.Delete)
		}

		comments := api.Group("/comments")
		{
			comments.GET("/:postId", commentHandler.ListByPost)
			comments.POST("", authGate, commentHandler.Write)
			comments.DELETE("/:id", authGate, commentHandler.Delete)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{
			"code":    "NOT_FOUND",
			"message": fmt.Sprintf("route %s not found", c.Request.URL.Path),
			"status":  http.StatusNotFound,
		}})
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
