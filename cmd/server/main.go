package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/afuentes/roster-api-go/config"
	"github.com/afuentes/roster-api-go/pkg/auth"
	"github.com/afuentes/roster-api-go/pkg/database"
	"github.com/afuentes/roster-api-go/pkg/handlers"
	"github.com/afuentes/roster-api-go/pkg/logger"
	"github.com/afuentes/roster-api-go/pkg/middleware"
	"github.com/afuentes/roster-api-go/pkg/redis"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	cfg, err := config.Load(os.Getenv("ROSTER_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.Connect(&cfg.Database, log)
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}

	if err := auth.EnsureAdminExists(db, &cfg.Auth, log); err != nil {
		log.Fatal("bootstrap admin", zap.Error(err))
	}

	// Redis is optional; without it the login rate limiter is off.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, log)
		if err != nil {
			log.Fatal("connect redis", zap.Error(err))
		}
		defer rdb.Close()
	}

	h, err := handlers.New(db, cfg, log)
	if err != nil {
		log.Fatal("init handlers", zap.Error(err))
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log))

	// Routes
	r.GET("/", h.Index)
	r.GET("/healthz", h.Health)
	r.POST("/admin/login", middleware.RateLimit(rdb, 10, time.Minute), h.Login)

	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/employees", h.CreateEmployee)
		admin.GET("/employees", h.ListEmployees)
		admin.GET("/employees/:id", h.GetEmployee)
		admin.PUT("/employees/:id", h.UpdateEmployee)
		admin.DELETE("/employees/:id", h.DeleteEmployee)

		admin.POST("/availability", h.UpsertAvailability)
		admin.GET("/availability", h.ListAvailability)
		admin.DELETE("/availability/:id", h.DeleteAvailability)

		admin.POST("/requirements", h.UpsertRequirement)
		admin.GET("/requirements", h.ListRequirements)
		admin.DELETE("/requirements/:id", h.DeleteRequirement)

		admin.POST("/templates", h.UpsertTemplateRow)
		admin.GET("/templates", h.ListTemplates)
		admin.POST("/templates/:name/activate", h.ActivateTemplate)
		admin.DELETE("/templates/:id", h.DeleteTemplateRow)

		admin.GET("/schedules", h.ListSchedules)
		admin.POST("/schedules/generate", h.GenerateSchedules)
		admin.POST("/schedules/preview", h.PreviewSchedules)
		admin.GET("/schedules/export", h.ExportSchedules)
		admin.GET("/schedules/stats", h.ScheduleStats)
		admin.PUT("/schedules/:id", h.UpdateSchedule)
		admin.DELETE("/schedules/:id", h.DeleteSchedule)
		admin.DELETE("/schedules", h.DeleteScheduleRange)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatal("could not run server", zap.Error(err))
	}
}
