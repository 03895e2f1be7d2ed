package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "KAMALSITE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "KAMALSITE_DB_DSN"
	EnvDBHost = "KAMALSITE_DB_HOST"
	EnvDBUser = "KAMALSITE_DB_USER"
	EnvDBName = "KAMALSITE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Auth         AuthConfig
	Catalog      CatalogConfig
	Session      SessionConfig
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
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"KAMALSITE_APP_ENV" required:"true"`
	Port         string `envconfig:"KAMALSITE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"KAMALSITE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KAMALSITE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"KAMALSITE_DB_DSN"`
	Driver string `envconfig:"KAMALSITE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"KAMALSITE_DB_HOST"`
	LegacyPort     int    `envconfig:"KAMALSITE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"KAMALSITE_DB_USER"`
	LegacyPassword string `envconfig:"KAMALSITE_DB_PASSWORD"`
	LegacyName     string `envconfig:"KAMALSITE_DB_NAME"`
	LegacySSLMode  string `envconfig:"KAMALSITE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"KAMALSITE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"KAMALSITE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"KAMALSITE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KAMALSITE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"KAMALSITE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"KAMALSITE_REDIS_ADDR"`
	Password     string        `envconfig:"KAMALSITE_REDIS_PASSWORD"`
	DB           int           `envconfig:"KAMALSITE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KAMALSITE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KAMALSITE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KAMALSITE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KAMALSITE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KAMALSITE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AuthConfig describes how tokens minted by the external identity provider
// are verified. The storefront never issues credentials itself.
type AuthConfig struct {
	JWTSecret string `envconfig:"KAMALSITE_JWT_SECRET" required:"true"`
	JWTIssuer string `envconfig:"KAMALSITE_JWT_ISSUER" required:"true"`
}

type CatalogConfig struct {
	PageSize int `envconfig:"KAMALSITE_CATALOG_PAGE_SIZE" default:"4"`
}

type SessionConfig struct {
	CookieName string        `envconfig:"KAMALSITE_SESSION_COOKIE" default:"ks_session"`
	TTL        time.Duration `envconfig:"KAMALSITE_SESSION_TTL" default:"720h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"KAMALSITE_AUTO_MIGRATE" default:"false"`
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
