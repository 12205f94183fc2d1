package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/edutime/timetable-api/api/swagger"
	"github.com/edutime/timetable-api/db"
	"github.com/edutime/timetable-api/internal/handler"
	"github.com/edutime/timetable-api/internal/middleware"
	"github.com/edutime/timetable-api/internal/models"
	"github.com/edutime/timetable-api/internal/repository"
	"github.com/edutime/timetable-api/internal/service"
	"github.com/edutime/timetable-api/pkg/cache"
	"github.com/edutime/timetable-api/pkg/config"
	"github.com/edutime/timetable-api/pkg/database"
	"github.com/edutime/timetable-api/pkg/logger"
	corsmiddleware "github.com/edutime/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edutime/timetable-api/pkg/middleware/requestid"
)

// @title Timetable API
// @version 1.0.0
// @description Classroom timetable scheduling with parity-aware weekly slots
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

	sqlDB, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer sqlDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, sqlDB, db.Migrations); err != nil {
		cancel()
		logr.Fatal("failed to run migrations", zap.Error(err))
	}
	cancel()

	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(sqlDB)
	teacherRepo := repository.NewTeacherRepository(sqlDB)
	groupRepo := repository.NewGroupRepository(sqlDB)
	subjectRepo := repository.NewSubjectRepository(sqlDB)
	referenceRepo := repository.NewReferenceRepository(sqlDB)
	scheduleRepo := repository.NewScheduleRepository(sqlDB)
	buildingRepo := repository.NewBuildingRepository(sqlDB)
	auditoriumRepo := repository.NewAuditoriumRepository(sqlDB)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, cacheRepo != nil, cfg.Cache.WeeklyTTL, logr).WithMetrics(metricsSvc)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	resolverSvc := service.NewResolverService(teacherRepo, groupRepo, subjectRepo, userRepo, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, resolverSvc, auditoriumRepo, referenceRepo, cacheSvc, validate, logr)
	timetableSvc := service.NewTimetableService(scheduleRepo, auditoriumRepo, buildingRepo, cacheSvc, validate, logr)
	exportSvc := service.NewExportService(timetableSvc, cfg.Export.Enabled, logr)
	buildingSvc := service.NewBuildingService(buildingRepo, validate, logr)
	auditoriumSvc := service.NewAuditoriumService(auditoriumRepo, buildingRepo, validate, logr)
	referenceSvc := service.NewReferenceService(referenceRepo, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, timetableSvc, exportSvc, metricsSvc)
	buildingHandler := handler.NewBuildingHandler(buildingSvc)
	auditoriumHandler := handler.NewAuditoriumHandler(auditoriumSvc)
	referenceHandler := handler.NewReferenceHandler(referenceSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
			auth.POST("/change-password", middleware.JWT(authSvc), authHandler.ChangePassword)
			auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
		}

		schedules := api.Group("/schedules")
		{
			schedules.POST("", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin), scheduleHandler.Create)
			schedules.GET("/weekly", scheduleHandler.Weekly)
			schedules.GET("/weekly/export/csv", middleware.JWT(authSvc), scheduleHandler.ExportCSV)
			schedules.GET("/weekly/export/pdf", middleware.JWT(authSvc), scheduleHandler.ExportPDF)
			schedules.GET("/week", middleware.OptionalJWT(authSvc), scheduleHandler.Week)
			schedules.GET("/:id", scheduleHandler.Get)
		}

		buildings := api.Group("/buildings")
		{
			buildings.GET("", buildingHandler.List)
			buildings.POST("", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin), buildingHandler.Create)
			buildings.GET("/:id", buildingHandler.Get)
			buildings.PUT("/:id", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin), buildingHandler.Update)
			buildings.DELETE("/:id", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin), buildingHandler.Delete)
			buildings.GET("/:id/auditoriums", auditoriumHandler.List)
			buildings.POST("/:id/auditoriums", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin), auditoriumHandler.Create)
		}

		auditoriums := api.Group("/auditoriums")
		{
			auditoriums.GET("/:id", auditoriumHandler.Get)
			auditoriums.PUT("/:id", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin), auditoriumHandler.Update)
			auditoriums.DELETE("/:id", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin), auditoriumHandler.Delete)
		}

		api.GET("/days", referenceHandler.Days)
		api.GET("/time-slots", referenceHandler.TimeSlots)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
}
