package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application-wide configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"db"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Log        LogConfig        `mapstructure:"log"`
	Scheduling SchedulingConfig `mapstructure:"scheduling"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug | release
}

// DatabaseConfig selects the backing store. When URL is set the server
// connects to Postgres; otherwise it falls back to a local SQLite file.
type DatabaseConfig struct {
	URL             string `mapstructure:"url"`
	Path            string `mapstructure:"path"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutes
}

// RedisConfig is optional; an empty Addr disables the login rate limiter.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig holds JWT and admin-bootstrap settings.
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	AdminUsername string        `mapstructure:"admin_username"`
	AdminPassword string        `mapstructure:"admin_password"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | console
}

// ShiftWindow is a pair of clock times ("HH:MM") on a shift's date.
type ShiftWindow struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// SchedulingConfig carries the business calendar settings: the
// operational timezone all dates are anchored to, the fallback weekly
// template name, and the shift clock-time table keyed by shift type
// then role (a "default" role entry covers roles without an override).
type SchedulingConfig struct {
	Timezone        string                            `mapstructure:"timezone"`
	DefaultTemplate string                            `mapstructure:"default_template"`
	ShiftTimes      map[string]map[string]ShiftWindow `mapstructure:"shift_times"`
}

// Load reads configuration from an optional yaml file and the
// environment. Precedence: env > file > defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "release")

	v.SetDefault("db.url", "")
	v.SetDefault("db.path", "roster.db")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.admin_username", "admin")
	v.SetDefault("auth.admin_password", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("scheduling.timezone", "America/New_York")
	v.SetDefault("scheduling.default_template", "default")
	v.SetDefault("scheduling.shift_times", map[string]map[string]ShiftWindow{
		"open": {
			"default":   {Start: "09:00", End: "17:00"},
			"cook":      {Start: "08:00", End: "16:00"},
			"bartender": {Start: "10:00", End: "17:00"},
			"barback":   {Start: "10:00", End: "17:00"},
		},
		"close": {
			"default":   {Start: "16:00", End: "00:00"},
			"cook":      {Start: "15:00", End: "23:00"},
			"bartender": {Start: "16:00", End: "00:30"},
			"barback":   {Start: "16:00", End: "00:30"},
		},
	})

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ROSTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Legacy env names kept for parity with older deployments.
	_ = v.BindEnv("db.url", "ROSTER_DB_URL", "DATABASE_URL")
	_ = v.BindEnv("auth.jwt_secret", "ROSTER_AUTH_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv("auth.admin_username", "ROSTER_AUTH_ADMIN_USERNAME", "ADMIN_USERNAME")
	_ = v.BindEnv("auth.admin_password", "ROSTER_AUTH_ADMIN_PASSWORD", "ADMIN_PASSWORD")
	_ = v.BindEnv("server.port", "ROSTER_SERVER_PORT", "PORT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// No file: defaults plus environment only.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings the server cannot run without.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be between 1 and 65535")
	}
	if c.Scheduling.Timezone == "" {
		return fmt.Errorf("config: scheduling.timezone is required")
	}
	return nil
}
