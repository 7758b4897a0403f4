// Package config loads the service configuration from the environment and,
// when enabled, from Apollo.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"portfolio-api/internal/logx"
)

var configLogger = logx.GetScope("config")

var validate = validator.New()

// Config holds the application configuration
type Config struct {
	AppEnv string
	Server struct {
		Addr        string `validate:"required"`
		FrontendURL string
		ProxyHeader string // e.g. X-Forwarded-For when running behind a proxy
	}
	Log struct {
		Level  string // debug, info, warn, error
		Format string // text, json
	}
	DB struct {
		Driver       string `validate:"oneof=mongo postgres sqlite"`
		URL          string
		MaxOpenConns int `validate:"gte=1"`
		MaxIdleConns int `validate:"gte=0"`
	}
	Mongo struct {
		URI      string
		Database string
	}
	RateLimit struct {
		Window        time.Duration `validate:"gt=0"`
		Max           int           `validate:"gte=1"`
		ContactWindow time.Duration `validate:"gt=0"`
		ContactMax    int           `validate:"gte=1"`
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Mail struct {
		Host     string
		Port     int `validate:"gte=1,lte=65535"`
		Secure   bool
		Username string
		Password string
		From     string
		To       string
	}
	MQ struct {
		URL      string // RabbitMQ URL
		Exchange string
	}
	ES struct {
		Addrs    string // comma separated
		Username string
		Password string
		Index    string
	}
	Apollo struct {
		Enable    bool
		AppID     string
		Cluster   string
		Namespace string
		Addrs     string
		AccessKey string
	}
}

// IsProduction reports whether internal error details must be hidden.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

// MailEnabled reports whether contact notifications can be delivered.
func (c *Config) MailEnabled() bool {
	return c.Mail.Host != "" && c.Mail.To != ""
}

// Validate checks the invariants a running server relies on.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.DB.Driver != "mongo" && c.DB.URL == "" {
		return fmt.Errorf("invalid config: DATABASE_URL required for driver %q", c.DB.Driver)
	}
	return nil
}

// Load loads config from env, and if enabled, overrides with Apollo values.
// Returns config, its store, optional apollo closer, and error.
func Load() (*Config, *Store, func(), error) {
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	store := NewStore(cfg)

	if cfg.Apollo.Enable {
		closer, err := overrideFromApollo(cfg, store)
		if err != nil {
			configLogger.Sugar().Errorf("apollo override failed: %v", err)
			return cfg, store, closer, err
		}
		return store.Get(), store, closer, nil
	}

	return cfg, store, nil, nil
}

// FromEnv builds a Config from environment variables and defaults only.
func FromEnv() *Config {
	cfg := &Config{}

	cfg.AppEnv = getEnv("APP_ENV", getEnv("NODE_ENV", "development"))
	cfg.Server.Addr = getEnv("SERVER_ADDR", ":"+getEnv("PORT", "5000"))
	cfg.Server.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:5173")
	cfg.Server.ProxyHeader = getEnv("PROXY_HEADER", "")
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "text")

	cfg.DB.Driver = getEnv("DB_DRIVER", "mongo")
	cfg.DB.URL = getEnv("DATABASE_URL", "")
	cfg.DB.MaxOpenConns = getInt("DB_MAX_OPEN", 10)
	cfg.DB.MaxIdleConns = getInt("DB_MAX_IDLE", 5)
	cfg.Mongo.URI = getEnv("MONGODB_URI", "mongodb://localhost:27017")
	cfg.Mongo.Database = getEnv("MONGODB_DATABASE", "portfolio")

	cfg.RateLimit.Window = getMillis("RATE_LIMIT_WINDOW_MS", 15*time.Minute)
	cfg.RateLimit.Max = getInt("RATE_LIMIT_MAX_REQUESTS", 100)
	cfg.RateLimit.ContactWindow = getMillis("CONTACT_RATE_LIMIT_WINDOW_MS", time.Hour)
	cfg.RateLimit.ContactMax = getInt("CONTACT_RATE_LIMIT_MAX", 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getInt("REDIS_DB", 0)

	cfg.Mail.Host = getEnv("EMAIL_HOST", "")
	cfg.Mail.Port = getInt("EMAIL_PORT", 587)
	cfg.Mail.Secure = getBool("EMAIL_SECURE", false)
	cfg.Mail.Username = getEnv("EMAIL_USER", "")
	cfg.Mail.Password = getEnv("EMAIL_PASSWORD", "")
	cfg.Mail.From = getEnv("EMAIL_FROM", "")
	cfg.Mail.To = getEnv("EMAIL_TO", "")

	cfg.MQ.URL = getEnv("RABBITMQ_URL", "")
	cfg.MQ.Exchange = getEnv("RABBITMQ_EXCHANGE", "events")

	cfg.ES.Addrs = getEnv("ES_ADDRS", "")
	cfg.ES.Username = getEnv("ES_USERNAME", "")
	cfg.ES.Password = getEnv("ES_PASSWORD", "")
	cfg.ES.Index = getEnv("ES_INDEX", "projects")

	cfg.Apollo.Enable = getBool("APOLLO_ENABLE", false)
	cfg.Apollo.AppID = getEnv("APOLLO_APP_ID", "")
	cfg.Apollo.Cluster = getEnv("APOLLO_CLUSTER", "default")
	cfg.Apollo.Namespace = getEnv("APOLLO_NAMESPACE", "application")
	cfg.Apollo.Addrs = getEnv("APOLLO_ADDRS", "")
	cfg.Apollo.AccessKey = getEnv("APOLLO_ACCESS_KEY", "")

	return cfg
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	return lo.Ternary(v != "", v, def)
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getMillis(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Duration(n) * time.Millisecond
		}
	}
	return def
}
