package config

const (
	EnvPrefix = "SCANCART"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvAppEnv   = "SCANCART_APP_ENV"
	EnvPort     = "SCANCART_APP_PORT"
	EnvLogLevel = "SCANCART_LOG_LEVEL"

	EnvDBDSN    = "SCANCART_DB_DSN"
	EnvDBDriver = "SCANCART_DB_DRIVER"
	EnvDBHost   = "MYSQL_HOST"
	EnvDBPort   = "MYSQL_PORT"
	EnvDBUser   = "MYSQL_USERNAME"
	EnvDBPass   = "MYSQL_PASSWORD"
	EnvDBName   = "MYSQL_DATABASE"

	EnvRedisURL = "SCANCART_REDIS_URL"

	EnvJWTSecret = "SCANCART_JWT_SECRET"

	EnvClientBaseURL = "SCANCART_CLIENT_BASE_URL"
	EnvClientAPIKey  = "SCANCART_CLIENT_API_KEY"
	EnvClientUserID  = "SCANCART_CLIENT_USER_ID"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
