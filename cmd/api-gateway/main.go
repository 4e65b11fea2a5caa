package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/okulpanel/rehberlik-api/api/swagger"
	"github.com/okulpanel/rehberlik-api/internal/handler"
	"github.com/okulpanel/rehberlik-api/internal/middleware"
	"github.com/okulpanel/rehberlik-api/internal/provider"
	"github.com/okulpanel/rehberlik-api/internal/repository"
	"github.com/okulpanel/rehberlik-api/internal/service"
	"github.com/okulpanel/rehberlik-api/pkg/cache"
	"github.com/okulpanel/rehberlik-api/pkg/config"
	"github.com/okulpanel/rehberlik-api/pkg/database"
	"github.com/okulpanel/rehberlik-api/pkg/export"
	"github.com/okulpanel/rehberlik-api/pkg/logger"
	corsmiddleware "github.com/okulpanel/rehberlik-api/pkg/middleware/cors"
	reqidmiddleware "github.com/okulpanel/rehberlik-api/pkg/middleware/requestid"
)

// @title Rehberlik API
// @version 1.0.0
// @description Guidance office referral intake and record management
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, roster cache disabled", "error", err)
		redisClient = nil
	}

	ctx := context.Background()

	referralRepo := repository.NewReferralRepository(db)
	rosterRepo := repository.NewRosterRepository(db)
	disciplineRepo := repository.NewDisciplineRepository(db)
	riskRepo := repository.NewRiskRepository(db)
	contactRepo := repository.NewContactRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	var messaging service.MessagingDispatcher
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		telegram, err := provider.NewTelegramClient(cfg.Telegram)
		if err != nil {
			logr.Sugar().Fatalw("failed to init telegram client", "error", err)
		}
		policy := service.PacingPolicy{Interval: cfg.Telegram.PacingInterval, MaxBatch: cfg.Telegram.MaxBatchSize}
		messaging = service.NewMessagingService(telegram, policy, logr)
	} else {
		logr.Sugar().Warnw("telegram not configured, messaging channel disabled")
	}

	var sheets service.SheetAppender
	if cfg.Sheets.SpreadsheetID != "" && cfg.Sheets.CredentialsFile != "" {
		sheetsClient, err := provider.NewSheetsClient(ctx, cfg.Sheets)
		if err != nil {
			logr.Sugar().Fatalw("failed to init sheets client", "error", err)
		}
		sheets = service.NewSheetService(sheetsClient, cfg.Sheets.SheetName, logr)
	} else {
		logr.Sugar().Warnw("google sheets not configured, spreadsheet channel disabled")
	}

	var generator service.TextGenerator
	if cfg.Gemini.APIKey != "" {
		gemini, err := provider.NewGeminiClient(ctx, cfg.Gemini)
		if err != nil {
			logr.Sugar().Fatalw("failed to init gemini client", "error", err)
		}
		generator = gemini
	} else {
		logr.Sugar().Warnw("gemini not configured, document drafting disabled")
	}

	rosterSvc := service.NewRosterService(rosterRepo, cacheRepo, cfg.Roster.CacheTTL, nil, logr)
	resolver := service.NewRosterResolver(cfg.Roster.StrictValidation)
	intakeSvc := service.NewIntakeService(rosterSvc, resolver, messaging, sheets, referralRepo, nil, logr)
	referralSvc := service.NewReferralService(referralRepo, logr)
	disciplineSvc := service.NewDisciplineService(disciplineRepo, nil, logr)
	riskSvc := service.NewRiskService(riskRepo, nil, logr)
	contactSvc := service.NewContactService(contactRepo, nil, logr)
	reminderSvc := service.NewReminderService(reminderRepo, nil, logr)
	taskSvc := service.NewTaskService(taskRepo, nil, logr)
	draftSvc := service.NewDraftService(generator, export.NewPDFRenderer(), nil, logr)
	metricsSvc := service.NewMetricsService()

	intakeHandler := handler.NewIntakeHandler(intakeSvc, metricsSvc)
	referralHandler := handler.NewReferralHandler(referralSvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc)
	disciplineHandler := handler.NewDisciplineHandler(disciplineSvc)
	riskHandler := handler.NewRiskHandler(riskSvc)
	contactHandler := handler.NewContactHandler(contactSvc)
	reminderHandler := handler.NewReminderHandler(reminderSvc)
	taskHandler := handler.NewTaskHandler(taskSvc)
	draftHandler := handler.NewDraftHandler(draftSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)

	r.GET("/ready", func(c *gin.Context) {
		readyCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(readyCtx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	referrals := api.Group("/referrals")
	referrals.POST("", intakeHandler.Submit)
	referrals.GET("", referralHandler.List)
	referrals.GET("/stats", referralHandler.Stats)
	referrals.DELETE("/:id", referralHandler.Delete)

	roster := api.Group("/roster")
	roster.PUT("", rosterHandler.Import)
	roster.GET("/teachers", rosterHandler.Teachers)
	roster.GET("/class-map", rosterHandler.ClassMap)

	discipline := api.Group("/discipline")
	discipline.GET("", disciplineHandler.List)
	discipline.POST("", disciplineHandler.Create)
	discipline.PUT("/:id", disciplineHandler.Update)
	discipline.DELETE("/:id", disciplineHandler.Delete)

	risks := api.Group("/risks")
	risks.GET("", riskHandler.List)
	risks.POST("", riskHandler.Create)
	risks.PUT("/:id", riskHandler.Update)
	risks.DELETE("/:id", riskHandler.Delete)

	contacts := api.Group("/contacts")
	contacts.GET("", contactHandler.List)
	contacts.POST("", contactHandler.Create)
	contacts.PUT("/:id", contactHandler.Update)
	contacts.DELETE("/:id", contactHandler.Delete)

	reminders := api.Group("/reminders")
	reminders.GET("", reminderHandler.List)
	reminders.GET("/due", reminderHandler.Due)
	reminders.POST("", reminderHandler.Create)
	reminders.PUT("/:id", reminderHandler.Update)
	reminders.DELETE("/:id", reminderHandler.Delete)

	tasks := api.Group("/tasks")
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	drafts := api.Group("/drafts")
	drafts.POST("", draftHandler.Draft)
	drafts.POST("/pdf", draftHandler.DraftPDF)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
