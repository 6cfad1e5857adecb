package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/afuentes/roster-api-go/config"
	"github.com/afuentes/roster-api-go/pkg/models"
)

// AdminUser represents the admin_users table. Admins are the only
// authenticated principals; staff do not log in.
type AdminUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Connect opens the database per config (Postgres when a URL is set,
// local SQLite otherwise) and migrates the schema.
func Connect(cfg *config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	if cfg.URL != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.URL,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
		if err == nil {
			logger.Info("connected to postgres")
		}
	} else {
		path := cfg.Path
		if path == "" {
			path = "roster.db"
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err == nil {
			logger.Info("connected to sqlite", zap.String("path", path))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	}

	if err := db.AutoMigrate(
		&models.Employee{},
		&models.AvailabilityEntry{},
		&models.ShiftRequirement{},
		&models.WeeklyScheduleTemplate{},
		&models.Schedule{},
		&AdminUser{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}
