package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Storage      StorageConfig
	Redis        RedisConfig
	RateLimit    RateLimitConfig
	Idempotency  IdempotencyConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
	Films        FilmsConfig
	Friends      FriendsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DriverSQLite
	}
	if cfg.Storage.UsesSQL() && !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"FILMORATE_APP_ENV" required:"true"`
	Port            string        `envconfig:"FILMORATE_APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"FILMORATE_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"FILMORATE_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"FILMORATE_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FILMORATE_DB_DSN"`
	Driver string `envconfig:"FILMORATE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FILMORATE_DB_HOST"`
	LegacyPort     int    `envconfig:"FILMORATE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FILMORATE_DB_USER"`
	LegacyPassword string `envconfig:"FILMORATE_DB_PASSWORD"`
	LegacyName     string `envconfig:"FILMORATE_DB_NAME"`
	LegacySSLMode  string `envconfig:"FILMORATE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FILMORATE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FILMORATE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FILMORATE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FILMORATE_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	// SQLitePath is only read when FeatureFlags.UseSQLite is set.
	SQLitePath string `envconfig:"FILMORATE_SQLITE_PATH" default:"filmorate.db"`
}

// StorageConfig picks the backend that owns films, users and their relations.
type StorageConfig struct {
	Backend string `envconfig:"FILMORATE_STORAGE" default:"sql"`
}

func (s StorageConfig) UsesSQL() bool {
	return strings.EqualFold(strings.TrimSpace(s.Backend), StorageSQL)
}

func (s StorageConfig) UsesMemory() bool {
	return strings.EqualFold(strings.TrimSpace(s.Backend), StorageMemory)
}

func (s StorageConfig) validate() error {
	if s.UsesSQL() || s.UsesMemory() {
		return nil
	}
	return fmt.Errorf("%s must be one of %q or %q, got %q", EnvStorage, StorageSQL, StorageMemory, s.Backend)
}

// RedisConfig is optional. Without a URL or address the API falls back to
// in-process rate limiting and skips idempotent replay.
type RedisConfig struct {
	URL          string        `envconfig:"FILMORATE_REDIS_URL"`
	Address      string        `envconfig:"FILMORATE_REDIS_ADDR"`
	Password     string        `envconfig:"FILMORATE_REDIS_PASSWORD"`
	DB           int           `envconfig:"FILMORATE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FILMORATE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FILMORATE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FILMORATE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FILMORATE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FILMORATE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type RateLimitConfig struct {
	Window     time.Duration `envconfig:"FILMORATE_RATE_LIMIT_WINDOW" default:"1m"`
	WriteLimit int           `envconfig:"FILMORATE_RATE_LIMIT_WRITE_LIMIT" default:"120"`
	// Burst and VisitorTTL only apply to the in-process limiter.
	Burst      int           `envconfig:"FILMORATE_RATE_LIMIT_BURST" default:"20"`
	VisitorTTL time.Duration `envconfig:"FILMORATE_RATE_LIMIT_VISITOR_TTL" default:"5m"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"FILMORATE_IDEMPOTENCY_TTL" default:"24h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"FILMORATE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"FILMORATE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"FILMORATE_AUTO_MIGRATE" default:"false"`
}

type FilmsConfig struct {
	PopularDefault int `envconfig:"FILMORATE_FILMS_POPULAR_DEFAULT" default:"10"`
	PopularMax     int `envconfig:"FILMORATE_FILMS_POPULAR_MAX" default:"0"`
}

type FriendsConfig struct {
	CommonConfirmedOnly bool `envconfig:"FILMORATE_FRIENDS_COMMON_CONFIRMED_ONLY" default:"false"`
}

// UsesSQLite reports whether the gorm client should open the sqlite dialector.
func (db DBConfig) UsesSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
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
