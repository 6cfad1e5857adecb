package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/afuentes/roster-api-go/config"
	"github.com/afuentes/roster-api-go/pkg/auth"
	"github.com/afuentes/roster-api-go/pkg/database"
)

// Handler contains dependencies for the route handlers.
type Handler struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Auth   *auth.Auth
	Logger *zap.Logger
	Loc    *time.Location
}

// New wires a Handler from its dependencies. The operational timezone
// is resolved once here; every date computation goes through it.
func New(db *gorm.DB, cfg *config.Config, logger *zap.Logger) (*Handler, error) {
	loc, err := time.LoadLocation(cfg.Scheduling.Timezone)
	if err != nil {
		return nil, err
	}
	return &Handler{
		DB:     db,
		Cfg:    cfg,
		Auth:   auth.New(&cfg.Auth),
		Logger: logger,
		Loc:    loc,
	}, nil
}

// AuthMiddleware verifies the JWT token for admin routes.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := h.Auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// Login handles admin login.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user database.AdminUser
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.Auth.CreateToken(user.Username)
	if err != nil {
		h.Logger.Error("create token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// Index returns the service banner.
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Restaurant Roster API",
		"version": "1.2.0",
	})
}

// Health reports liveness of the process and the database.
func (h *Handler) Health(c *gin.Context) {
	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
