package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	App           AppConfig
	Storage       StorageConfig
	DB            DBConfig
	Redis         RedisConfig
	Session       SessionConfig
	CMS           CMSConfig
	Commerce      CommerceConfig
	AuthRateLimit AuthRateLimitConfig
	Metrics       MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env              string   `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port             string   `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel         string   `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack     bool     `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
	DefaultLocale    string   `envconfig:"STOREFRONT_DEFAULT_LOCALE" default:"ka"`
	SupportedLocales []string `envconfig:"STOREFRONT_SUPPORTED_LOCALES" default:"ka,en"`
	AllowedOrigins   []string `envconfig:"STOREFRONT_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects where per-session state (cart ids, local carts,
// customer tokens) is kept.
type StorageConfig struct {
	Driver      string `envconfig:"STOREFRONT_STORAGE_DRIVER" default:"redis"`
	AutoMigrate bool   `envconfig:"STOREFRONT_STORAGE_AUTO_MIGRATE" default:"false"`
}

func (s StorageConfig) UsesSQL() bool {
	driver := strings.ToLower(strings.TrimSpace(s.Driver))
	return driver == StoragePostgres || driver == StorageSQLite
}

type DBConfig struct {
	DSN             string        `envconfig:"STOREFRONT_DB_DSN"`
	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SessionConfig struct {
	Secret       string        `envconfig:"STOREFRONT_SESSION_SECRET" required:"true"`
	Issuer       string        `envconfig:"STOREFRONT_SESSION_ISSUER" default:"hubs-storefront"`
	CookieName   string        `envconfig:"STOREFRONT_SESSION_COOKIE" default:"sf_session"`
	TTL          time.Duration `envconfig:"STOREFRONT_SESSION_TTL" default:"720h"`
	CookieSecure bool          `envconfig:"STOREFRONT_SESSION_COOKIE_SECURE" default:"true"`
}

// CMSConfig points at the headless CMS GraphQL endpoint.
type CMSConfig struct {
	URL      string        `envconfig:"STOREFRONT_CMS_URL" required:"true"`
	APIToken string        `envconfig:"STOREFRONT_CMS_API_TOKEN"`
	Timeout  time.Duration `envconfig:"STOREFRONT_CMS_TIMEOUT" default:"10s"`
}

// CommerceConfig points at the commerce store API.
type CommerceConfig struct {
	URL             string        `envconfig:"STOREFRONT_COMMERCE_URL" required:"true"`
	PublishableKey  string        `envconfig:"STOREFRONT_COMMERCE_PUBLISHABLE_KEY"`
	DefaultRegionID string        `envconfig:"STOREFRONT_COMMERCE_DEFAULT_REGION"`
	EmailProvider   string        `envconfig:"STOREFRONT_COMMERCE_EMAIL_PROVIDER" default:"emailpass"`
	PhoneProvider   string        `envconfig:"STOREFRONT_COMMERCE_PHONE_PROVIDER" default:"phone"`
	Timeout         time.Duration `envconfig:"STOREFRONT_COMMERCE_TIMEOUT" default:"10s"`
}

type AuthRateLimitConfig struct {
	LoginWindow             time.Duration `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIdentifierLimit    int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_LOGIN_IDENTIFIER_LIMIT" default:"5"`
	LoginIPLimit            int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow          time.Duration `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterIdentifierLimit int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_REGISTER_IDENTIFIER_LIMIT" default:"3"`
	RegisterIPLimit         int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
	OTPWindow               time.Duration `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_OTP_WINDOW" default:"10m"`
	OTPIdentifierLimit      int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_OTP_IDENTIFIER_LIMIT" default:"5"`
	OTPIPLimit              int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_OTP_IP_LIMIT" default:"30"`
}

type MetricsConfig struct {
	Enabled   bool   `envconfig:"STOREFRONT_METRICS_ENABLED" default:"true"`
	Namespace string `envconfig:"STOREFRONT_METRICS_NAMESPACE" default:"storefront"`
}

func (c *Config) validate() error {
	driver := strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch driver {
	case StorageRedis:
	case StoragePostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvStorageDriver, driver)
		}
	case StorageSQLite:
		if c.DB.DSN == "" {
			c.DB.DSN = "file:storefront.db?_foreign_keys=on"
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvStorageDriver, c.Storage.Driver)
	}
	c.Storage.Driver = driver

	if len(c.App.SupportedLocales) == 0 {
		c.App.SupportedLocales = []string{c.App.DefaultLocale}
	}
	return nil
}
