package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/afuentes/roster-api-go/config"
	"github.com/afuentes/roster-api-go/pkg/database"
)

// Claims represents the JWT claims issued to admins.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Auth signs and verifies admin tokens.
type Auth struct {
	secret []byte
	ttl    time.Duration
}

var signingMethod = jwt.SigningMethodHS256

// New creates an Auth from the auth section of the config.
func New(cfg *config.AuthConfig) *Auth {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Auth{secret: []byte(cfg.JWTSecret), ttl: ttl}
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateToken creates a new JWT token for an admin.
func (a *Auth) CreateToken(username string) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(signingMethod, claims)
	return token.SignedString(a.secret)
}

// VerifyToken verifies a JWT token and returns its claims.
func (a *Auth) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != signingMethod {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// EnsureAdminExists creates the bootstrap admin from config when the
// admin_users table is empty. With no configured password it refuses
// and leaves the table empty rather than shipping a default credential.
func EnsureAdminExists(db *gorm.DB, cfg *config.AuthConfig, logger *zap.Logger) error {
	var count int64
	if err := db.Model(&database.AdminUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if cfg.AdminPassword == "" {
		logger.Warn("no admin user exists and auth.admin_password is unset; login is disabled until one is created")
		return nil
	}

	hash, err := HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	user := database.AdminUser{
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	logger.Info("bootstrap admin user created", zap.String("username", user.Username))
	return nil
}
