// Package config loads diagnostico settings from a config file, a .env file
// and DIAGNOSTICO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DIAGNOSTICO_SERVER_ADDR.
const EnvPrefix = "DIAGNOSTICO"

// Config is the root configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Dashboard DashboardConfig `mapstructure:"dashboard" yaml:"dashboard"`
	Schedule  ScheduleConfig  `mapstructure:"schedule" yaml:"schedule"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`
}

// LoggerConfig configures zap and the optional rotating log file.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format      string `mapstructure:"format" yaml:"format" validate:"oneof=console json"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name" validate:"required"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size" validate:"gte=0"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age" validate:"gte=0"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// ServerConfig configures the HTTP dashboard.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"gt=0"`
	// Strict rejects score sets that fail catalog validation.
	Strict bool `mapstructure:"strict" yaml:"strict"`
	// TrustedProxies lists the proxy IPs or CIDRs whose forwarding headers
	// are honored. Empty means the peer address is the client.
	TrustedProxies []string `mapstructure:"trusted_proxies" yaml:"trusted_proxies" validate:"dive,ip|cidr"`
}

// DashboardConfig selects what the dashboard shows.
type DashboardConfig struct {
	Profile    string        `mapstructure:"profile" yaml:"profile" validate:"required"`
	ScoresFile string        `mapstructure:"scores_file" yaml:"scores_file"`
	Watch      bool          `mapstructure:"watch" yaml:"watch"`
	Debounce   time.Duration `mapstructure:"debounce" yaml:"debounce" validate:"gte=0"`
}

// ScheduleConfig overrides the profile's scheduling link.
type ScheduleConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url" validate:"omitempty,url"`
}

// RateLimitConfig limits CTA action requests per client IP.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" yaml:"rps" validate:"gt=0"`
	Burst int     `mapstructure:"burst" yaml:"burst" validate:"gte=1"`
}

var validate = validator.New()

// SetDefaults registers every key with its default value. AutomaticEnv only
// resolves keys viper already knows about.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "diagnostico")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.strict", false)
	v.SetDefault("server.trusted_proxies", []string{})

	v.SetDefault("dashboard.profile", "municipal")
	v.SetDefault("dashboard.scores_file", "")
	v.SetDefault("dashboard.watch", false)
	v.SetDefault("dashboard.debounce", 250*time.Millisecond)

	v.SetDefault("schedule.base_url", "")

	v.SetDefault("rate_limit.rps", 2.0)
	v.SetDefault("rate_limit.burst", 5)
}

// Load reads .env (if present), then cfgFile or ./config.yaml, then the
// environment, and validates the result. Flags bound to v before Load take
// precedence over all of these.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if err := loadEnvFile(".env"); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	SetDefaults(v)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config.Load: reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: unmarshal: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
