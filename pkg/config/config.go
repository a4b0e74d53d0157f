package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Session       SessionConfig
	JWT           JWTConfig
	Storage       StorageConfig
	Upload        UploadConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"CRAFTLINE_APP_ENV" required:"true"`
	Port         string `envconfig:"CRAFTLINE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CRAFTLINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CRAFTLINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"CRAFTLINE_DB_DSN"`

	LegacyHost     string `envconfig:"CRAFTLINE_DB_HOST"`
	LegacyPort     int    `envconfig:"CRAFTLINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CRAFTLINE_DB_USER"`
	LegacyPassword string `envconfig:"CRAFTLINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"CRAFTLINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"CRAFTLINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CRAFTLINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CRAFTLINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CRAFTLINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CRAFTLINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CRAFTLINE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CRAFTLINE_REDIS_ADDR"`
	Password     string        `envconfig:"CRAFTLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"CRAFTLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CRAFTLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CRAFTLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CRAFTLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CRAFTLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CRAFTLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SessionConfig struct {
	CookieName string        `envconfig:"CRAFTLINE_SESSION_COOKIE_NAME" default:"craftline_session"`
	TTL        time.Duration `envconfig:"CRAFTLINE_SESSION_TTL" default:"720h"`
	Secure     bool          `envconfig:"CRAFTLINE_SESSION_COOKIE_SECURE" default:"true"`
}

// JWTConfig describes how identity-provider access tokens are verified at login.
type JWTConfig struct {
	Secret string `envconfig:"CRAFTLINE_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"CRAFTLINE_JWT_ISSUER" required:"true"`
}

type StorageConfig struct {
	BaseURL         string        `envconfig:"CRAFTLINE_STORAGE_BASE_URL" required:"true"`
	ServiceKey      string        `envconfig:"CRAFTLINE_STORAGE_SERVICE_KEY" required:"true"`
	Bucket          string        `envconfig:"CRAFTLINE_STORAGE_BUCKET" default:"variant_images"`
	SignedURLExpiry time.Duration `envconfig:"CRAFTLINE_STORAGE_SIGNED_URL_EXPIRY" default:"1h"`
}

type UploadConfig struct {
	MaxImageMB    int `envconfig:"CRAFTLINE_UPLOAD_MAX_IMAGE_MB" default:"5"`
	MaxOrderItems int `envconfig:"CRAFTLINE_UPLOAD_MAX_ORDER_ITEMS" default:"20"`
}

// MaxImageBytes returns the configured image cap in bytes.
func (u UploadConfig) MaxImageBytes() int64 {
	return int64(u.MaxImageMB) * 1024 * 1024
}

type AuthRateLimitConfig struct {
	LoginWindow  time.Duration `envconfig:"CRAFTLINE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit int           `envconfig:"CRAFTLINE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CRAFTLINE_AUTO_MIGRATE" default:"false"`
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
