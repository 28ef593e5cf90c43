package config

const (
	EnvPrefix = "RETAILOPS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv       = "RETAILOPS_APP_ENV"
	EnvPort         = "RETAILOPS_APP_PORT"
	EnvLogLevel     = "RETAILOPS_LOG_LEVEL"
	EnvLogWarnStack = "RETAILOPS_LOG_WARN_STACK"
	EnvLogFormat    = "RETAILOPS_LOG_FORMAT"
	EnvCORSOrigins  = "RETAILOPS_CORS_ORIGINS"

	EnvDBDSN      = "RETAILOPS_DB_DSN"
	EnvDBDriver   = "RETAILOPS_DB_DRIVER"
	EnvDBHost     = "RETAILOPS_DB_HOST"
	EnvDBPort     = "RETAILOPS_DB_PORT"
	EnvDBUser     = "RETAILOPS_DB_USER"
	EnvDBPassword = "RETAILOPS_DB_PASSWORD"
	EnvDBName     = "RETAILOPS_DB_NAME"
	EnvDBSSLMode  = "RETAILOPS_DB_SSLMODE"

	EnvRedisURL  = "RETAILOPS_REDIS_URL"
	EnvRedisAddr = "RETAILOPS_REDIS_ADDR"

	EnvUseSQLite   = "RETAILOPS_USE_SQLITE"
	EnvSQLitePath  = "RETAILOPS_SQLITE_PATH"
	EnvAutoMigrate = "RETAILOPS_AUTO_MIGRATE"

	EnvInventoryMaxRetries = "RETAILOPS_INVENTORY_MAX_RETRIES"
	EnvRevenueTimezone     = "RETAILOPS_REVENUE_TIMEZONE"
	EnvRevenueCacheTTL     = "RETAILOPS_REVENUE_CACHE_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
