package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/estatery/estatery/internal/shared/config"
)

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Auth         sharedConfig.AuthConfig         `mapstructure:"auth"`
	OAuth        sharedConfig.OAuthConfig        `mapstructure:"oauth"`
	Email        sharedConfig.EmailConfig        `mapstructure:"email"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	RateLimit    sharedConfig.RateLimitConfig    `mapstructure:"rate_limit"`
	Subscription sharedConfig.SubscriptionConfig `mapstructure:"subscription"`
	Lead         sharedConfig.LeadConfig         `mapstructure:"lead"`
	Upload       sharedConfig.UploadConfig       `mapstructure:"upload"`
	Paystack     sharedConfig.PaystackConfig     `mapstructure:"paystack"`
}

const defaultJWTSecret = "change-me-in-production"

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from configs/config.yaml and ESTATERY_* environment variables.
// A missing config file is not an error; defaults and environment still apply.
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("ESTATERY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	Set(&config)

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Set replaces the global configuration. Used by Load and by tests.
func Set(cfg *Config) {
	appConfigMu.Lock()
	appConfig = cfg
	appConfigMu.Unlock()
}

func (c *Config) validate() error {
	if c.Server.Mode == "release" && c.Auth.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("auth.jwt.secret must be set in release mode")
	}
	if c.Subscription.TrialDays < 0 {
		return fmt.Errorf("subscription.trial_days must not be negative")
	}
	if c.Lead.DedupWindow < 0 {
		return fmt.Errorf("lead.dedup_window must not be negative")
	}
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.base_url", "http://localhost:8080")
	viper.SetDefault("server.frontend_url", "http://localhost:5173")
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	viper.SetDefault("server.timezone", "Africa/Lagos")

	viper.SetDefault("database.driver", "mysql")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "estatery_dev")
	viper.SetDefault("database.sqlite_path", "estatery.db")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	viper.SetDefault("auth.bcrypt_cost", 12)
	viper.SetDefault("auth.reset_expires_minutes", 30)
	viper.SetDefault("auth.jwt.secret", defaultJWTSecret)
	viper.SetDefault("auth.jwt.access_exp_minutes", 60*24)

	viper.SetDefault("oauth.google.client_id", "")
	viper.SetDefault("oauth.google.client_secret", "")
	viper.SetDefault("oauth.google.redirect_url", "http://localhost:5173/auth/google/callback")

	viper.SetDefault("email.smtp_host", "")
	viper.SetDefault("email.smtp_port", 1025)
	viper.SetDefault("email.from_address", "noreply@estatery.local")
	viper.SetDefault("email.from_name", "Estatery")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.limit", 20)
	viper.SetDefault("rate_limit.window", "1m")

	viper.SetDefault("subscription.trial_days", 14)
	viper.SetDefault("subscription.plan_duration_days", 30)
	viper.SetDefault("subscription.currency", "NGN")
	viper.SetDefault("subscription.plans.basic", 500000)
	viper.SetDefault("subscription.plans.premium", 1500000)

	viper.SetDefault("lead.dedup_window", "1h")

	viper.SetDefault("upload.dir", "./uploads")
	viper.SetDefault("upload.public_path", "/uploads")
	viper.SetDefault("upload.max_file_size_mb", 5)
	viper.SetDefault("upload.max_files", 10)

	viper.SetDefault("paystack.base_url", "https://api.paystack.co")
	viper.SetDefault("paystack.secret_key", "")
	viper.SetDefault("paystack.callback_url", "http://localhost:5173/payments/callback")
}
