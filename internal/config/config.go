package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Environment string `mapstructure:"ENV"`
	AppPort     string `mapstructure:"APP_PORT"`

	DBDSN         string `mapstructure:"DB_DSN"`
	MigrationsDir string `mapstructure:"MIGRATIONS_DIR"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	CORSOrigins     string `mapstructure:"CORS_ORIGINS"`
	RateLimitPerMin int    `mapstructure:"RATE_LIMIT_PER_MIN"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`

	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`

	ResendAPIKey string `mapstructure:"RESEND_API_KEY"`
	MailFrom     string `mapstructure:"MAIL_FROM"`

	SubscriptionSweepInterval time.Duration `mapstructure:"SUBSCRIPTION_SWEEP_INTERVAL"`

	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	// DotEnvLoaded true если значения были подгружены из .env
	DotEnvLoaded bool `mapstructure:"-"`
}

var defaults = map[string]any{
	"ENV":                         "development",
	"APP_PORT":                    "5000",
	"DB_DSN":                      "",
	"MIGRATIONS_DIR":              "migrations",
	"JWT_SECRET":                  "",
	"JWT_TTL":                     "24h",
	"CORS_ORIGINS":                "*",
	"RATE_LIMIT_PER_MIN":          100,
	"REDIS_ADDR":                  "",
	"REDIS_PASSWORD":              "",
	"REDIS_DB":                    0,
	"CACHE_TTL":                   "5m",
	"TELEGRAM_TOKEN":              "",
	"RESEND_API_KEY":              "",
	"MAIL_FROM":                   "FitnessHub <noreply@fitnesshub.local>",
	"SUBSCRIPTION_SWEEP_INTERVAL": "1h",
	"ADMIN_EMAIL":                 "",
	"ADMIN_PASSWORD":              "",
}

// Load читает конфигурацию из .env (если файл есть) и переменных окружения
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	// отсутствие .env не ошибка
	loaded := godotenv.Load(envFiles...) == nil

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.DotEnvLoaded = loaded

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.DBDSN == "" {
		errs = append(errs, errors.New("DB_DSN is required but not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required but not set"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.RateLimitPerMin < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MIN must not be negative"))
	}
	return errors.Join(errs...)
}

// AllowedOrigins список источников CORS
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
