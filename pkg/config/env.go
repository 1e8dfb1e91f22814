package config

// EnvPrefix is passed to envconfig; explicit tags keep variable names stable.
const EnvPrefix = "MOVEMATCH"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "MOVEMATCH_APP_ENV"
	EnvPort     = "MOVEMATCH_APP_PORT"
	EnvDBDSN    = "MOVEMATCH_DB_DSN"
	EnvDBHost   = "MOVEMATCH_DB_HOST"
	EnvDBUser   = "MOVEMATCH_DB_USER"
	EnvDBName   = "MOVEMATCH_DB_NAME"
	EnvRedisURL = "MOVEMATCH_REDIS_URL"

	EnvGCPProjectID         = "MOVEMATCH_GCP_PROJECT_ID"
	EnvPubSubComparisonTop  = "MOVEMATCH_PUBSUB_COMPARISON_TOPIC"
	EnvPubSubComparisonSub  = "MOVEMATCH_PUBSUB_COMPARISON_SUBSCRIPTION"
)

// legacyDBEnvVars are the host/user/name trio required when no DSN is set.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
