package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv = "SIGNQUOTE_APP_ENV"
	EnvPort   = "SIGNQUOTE_APP_PORT"

	EnvDBDSN  = "SIGNQUOTE_DB_DSN"
	EnvDBHost = "SIGNQUOTE_DB_HOST"
	EnvDBUser = "SIGNQUOTE_DB_USER"
	EnvDBName = "SIGNQUOTE_DB_NAME"

	AllocatorBackendDB    = "db"
	AllocatorBackendRedis = "redis"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Quote        QuoteConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Quote.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SIGNQUOTE_APP_ENV" required:"true"`
	Port         string `envconfig:"SIGNQUOTE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SIGNQUOTE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SIGNQUOTE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SIGNQUOTE_DB_DSN"`
	Driver string `envconfig:"SIGNQUOTE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SIGNQUOTE_DB_HOST"`
	LegacyPort     int    `envconfig:"SIGNQUOTE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SIGNQUOTE_DB_USER"`
	LegacyPassword string `envconfig:"SIGNQUOTE_DB_PASSWORD"`
	LegacyName     string `envconfig:"SIGNQUOTE_DB_NAME"`
	LegacySSLMode  string `envconfig:"SIGNQUOTE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SIGNQUOTE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SIGNQUOTE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SIGNQUOTE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SIGNQUOTE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SIGNQUOTE_REDIS_URL"`
	Address      string        `envconfig:"SIGNQUOTE_REDIS_ADDR"`
	Password     string        `envconfig:"SIGNQUOTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SIGNQUOTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SIGNQUOTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SIGNQUOTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SIGNQUOTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SIGNQUOTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SIGNQUOTE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether any redis endpoint was supplied.
func (r RedisConfig) Configured() bool {
	return r.URL != "" || r.Address != ""
}

type QuoteConfig struct {
	TaxRate              string `envconfig:"SIGNQUOTE_QUOTE_TAX_RATE" default:"0.10"`
	NumberPrefix         string `envconfig:"SIGNQUOTE_QUOTE_NUMBER_PREFIX" default:"EST"`
	AllocatorBackend     string `envconfig:"SIGNQUOTE_QUOTE_ALLOCATOR" default:"db"`
	AllocationMaxRetries int    `envconfig:"SIGNQUOTE_QUOTE_ALLOCATION_MAX_RETRIES" default:"5"`
}

// TaxRateDecimal parses the configured tax rate. validate() guarantees it parses.
func (q QuoteConfig) TaxRateDecimal() decimal.Decimal {
	rate, err := decimal.NewFromString(q.TaxRate)
	if err != nil {
		return decimal.Zero
	}
	return rate
}

func (q QuoteConfig) validate() error {
	rate, err := decimal.NewFromString(q.TaxRate)
	if err != nil {
		return fmt.Errorf("invalid tax rate %q: %w", q.TaxRate, err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("tax rate must not be negative, got %s", q.TaxRate)
	}
	switch q.AllocatorBackend {
	case AllocatorBackendDB, AllocatorBackendRedis:
	default:
		return fmt.Errorf("unknown quote allocator backend %q", q.AllocatorBackend)
	}
	if q.AllocationMaxRetries < 1 {
		return fmt.Errorf("allocation max retries must be at least 1, got %d", q.AllocationMaxRetries)
	}
	return nil
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SIGNQUOTE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
