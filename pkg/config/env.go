package config

// EnvPrefix is empty because every field tag carries its full variable name.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StorageSQL    = "sql"
	StorageMemory = "memory"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "FILMORATE_APP_ENV"
	EnvPort     = "FILMORATE_APP_PORT"
	EnvLogLevel = "FILMORATE_LOG_LEVEL"

	EnvDBDSN  = "FILMORATE_DB_DSN"
	EnvDBHost = "FILMORATE_DB_HOST"
	EnvDBUser = "FILMORATE_DB_USER"
	EnvDBName = "FILMORATE_DB_NAME"

	EnvStorage   = "FILMORATE_STORAGE"
	EnvUseSQLite = "FILMORATE_USE_SQLITE"
	EnvRedisURL  = "FILMORATE_REDIS_URL"

	EnvPopularDefault      = "FILMORATE_FILMS_POPULAR_DEFAULT"
	EnvCommonConfirmedOnly = "FILMORATE_FRIENDS_COMMON_CONFIRMED_ONLY"
	EnvCORSAllowedOrigins  = "FILMORATE_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
