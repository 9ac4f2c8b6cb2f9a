package config

const (
	EnvPrefix = "CAPSTUDIO"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverSQLite = "sqlite"

	EnvAppEnv   = "CAPSTUDIO_APP_ENV"
	EnvPort     = "CAPSTUDIO_APP_PORT"
	EnvTimezone = "CAPSTUDIO_APP_TIMEZONE"

	EnvDBDSN  = "CAPSTUDIO_DB_DSN"
	EnvDBHost = "CAPSTUDIO_DB_HOST"
	EnvDBUser = "CAPSTUDIO_DB_USER"
	EnvDBName = "CAPSTUDIO_DB_NAME"

	EnvUseSQLite = "CAPSTUDIO_USE_SQLITE"

	EnvRedisURL = "CAPSTUDIO_REDIS_URL"

	EnvJWTSecret = "CAPSTUDIO_JWT_SECRET"
	EnvJWTIssuer = "CAPSTUDIO_JWT_ISSUER"

	EnvNotifyWebhookURL = "CAPSTUDIO_NOTIFY_WEBHOOK_URL"

	EnvGCPProjectID     = "CAPSTUDIO_GCP_PROJECT_ID"
	EnvPubSubEnabled    = "CAPSTUDIO_PUBSUB_ENABLED"
	EnvPubSubOrderTopic = "CAPSTUDIO_PUBSUB_ORDER_TOPIC"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
