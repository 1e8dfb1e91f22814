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
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Comparison   ComparisonConfig
	Cron         CronConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
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
	Env          string `envconfig:"MOVEMATCH_APP_ENV" required:"true"`
	Port         string `envconfig:"MOVEMATCH_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MOVEMATCH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MOVEMATCH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"MOVEMATCH_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"MOVEMATCH_DB_DSN"`
	Driver string `envconfig:"MOVEMATCH_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MOVEMATCH_DB_HOST"`
	LegacyPort     int    `envconfig:"MOVEMATCH_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MOVEMATCH_DB_USER"`
	LegacyPassword string `envconfig:"MOVEMATCH_DB_PASSWORD"`
	LegacyName     string `envconfig:"MOVEMATCH_DB_NAME"`
	LegacySSLMode  string `envconfig:"MOVEMATCH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MOVEMATCH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MOVEMATCH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MOVEMATCH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MOVEMATCH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MOVEMATCH_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MOVEMATCH_REDIS_ADDR"`
	Password     string        `envconfig:"MOVEMATCH_REDIS_PASSWORD"`
	DB           int           `envconfig:"MOVEMATCH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MOVEMATCH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MOVEMATCH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MOVEMATCH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MOVEMATCH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MOVEMATCH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MOVEMATCH_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MOVEMATCH_AUTO_MIGRATE" default:"false"`
}

// ComparisonConfig tunes the comparison engine lifecycle.
type ComparisonConfig struct {
	TTLHours        int           `envconfig:"MOVEMATCH_COMPARISON_TTL_HOURS" default:"48"`
	GenerateLockTTL time.Duration `envconfig:"MOVEMATCH_COMPARISON_GENERATE_LOCK_TTL" default:"30s"`
}

// TTL returns the comparison validity window.
func (c ComparisonConfig) TTL() time.Duration {
	if c.TTLHours <= 0 {
		return 48 * time.Hour
	}
	return time.Duration(c.TTLHours) * time.Hour
}

type CronConfig struct {
	Interval time.Duration `envconfig:"MOVEMATCH_CRON_INTERVAL" default:"1h"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"MOVEMATCH_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"MOVEMATCH_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"MOVEMATCH_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	ComparisonTopic        string `envconfig:"MOVEMATCH_PUBSUB_COMPARISON_TOPIC" required:"true"`
	ComparisonSubscription string `envconfig:"MOVEMATCH_PUBSUB_COMPARISON_SUBSCRIPTION" required:"true"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"MOVEMATCH_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"MOVEMATCH_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"MOVEMATCH_OUTBOX_MAX_ATTEMPTS" default:"10"`
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
