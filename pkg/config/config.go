package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	Tenant       TenantConfig
	Notify       NotifyConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.PubSub.validate(cfg.GCP); err != nil {
		return nil, err
	}
	if _, err := cfg.App.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CAPSTUDIO_APP_ENV" required:"true"`
	Port         string `envconfig:"CAPSTUDIO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CAPSTUDIO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CAPSTUDIO_LOG_WARN_STACK" default:"false"`
	Timezone     string `envconfig:"CAPSTUDIO_APP_TIMEZONE" default:"Asia/Seoul"`
	CORSOrigins  string `envconfig:"CAPSTUDIO_CORS_ALLOWED_ORIGINS" default:"*"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Location resolves the storefront timezone used for order-number dates.
func (a AppConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(a.Timezone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", EnvTimezone, name, err)
	}
	return loc, nil
}

// AllowedOrigins splits the comma separated CORS origin list.
func (a AppConfig) AllowedOrigins() []string {
	var out []string
	for _, part := range strings.Split(a.CORSOrigins, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

type DBConfig struct {
	DSN    string `envconfig:"CAPSTUDIO_DB_DSN"`
	Driver string `envconfig:"CAPSTUDIO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CAPSTUDIO_DB_HOST"`
	LegacyPort     int    `envconfig:"CAPSTUDIO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CAPSTUDIO_DB_USER"`
	LegacyPassword string `envconfig:"CAPSTUDIO_DB_PASSWORD"`
	LegacyName     string `envconfig:"CAPSTUDIO_DB_NAME"`
	LegacySSLMode  string `envconfig:"CAPSTUDIO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CAPSTUDIO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CAPSTUDIO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CAPSTUDIO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CAPSTUDIO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL            string        `envconfig:"CAPSTUDIO_REDIS_URL" required:"true"`
	Address        string        `envconfig:"CAPSTUDIO_REDIS_ADDR"`
	Password       string        `envconfig:"CAPSTUDIO_REDIS_PASSWORD"`
	DB             int           `envconfig:"CAPSTUDIO_REDIS_DB" default:"0"`
	PoolSize       int           `envconfig:"CAPSTUDIO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns   int           `envconfig:"CAPSTUDIO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout    time.Duration `envconfig:"CAPSTUDIO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout    time.Duration `envconfig:"CAPSTUDIO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout   time.Duration `envconfig:"CAPSTUDIO_REDIS_WRITE_TIMEOUT" default:"5s"`
	IdempotencyTTL time.Duration `envconfig:"CAPSTUDIO_IDEMPOTENCY_TTL" default:"24h"`
}

type JWTConfig struct {
	Secret string `envconfig:"CAPSTUDIO_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"CAPSTUDIO_JWT_ISSUER" required:"true"`
}

type RateLimitConfig struct {
	OrderWindow   time.Duration `envconfig:"CAPSTUDIO_RATE_LIMIT_ORDER_WINDOW" default:"1m"`
	OrderIPLimit  int           `envconfig:"CAPSTUDIO_RATE_LIMIT_ORDER_IP_LIMIT" default:"10"`
	ReviewWindow  time.Duration `envconfig:"CAPSTUDIO_RATE_LIMIT_REVIEW_WINDOW" default:"10m"`
	ReviewIPLimit int           `envconfig:"CAPSTUDIO_RATE_LIMIT_REVIEW_IP_LIMIT" default:"5"`
	LookupWindow  time.Duration `envconfig:"CAPSTUDIO_RATE_LIMIT_LOOKUP_WINDOW" default:"1m"`
	LookupIPLimit int           `envconfig:"CAPSTUDIO_RATE_LIMIT_LOOKUP_IP_LIMIT" default:"30"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CAPSTUDIO_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CAPSTUDIO_AUTO_MIGRATE" default:"false"`
}

type TenantConfig struct {
	DefaultID string `envconfig:"CAPSTUDIO_DEFAULT_TENANT_ID" default:"a0000000-0000-0000-0000-000000000001"`
}

type NotifyConfig struct {
	WebhookURL string        `envconfig:"CAPSTUDIO_NOTIFY_WEBHOOK_URL"`
	Timeout    time.Duration `envconfig:"CAPSTUDIO_NOTIFY_TIMEOUT" default:"5s"`
	BufferSize int           `envconfig:"CAPSTUDIO_NOTIFY_BUFFER_SIZE" default:"256"`
	Workers    int           `envconfig:"CAPSTUDIO_NOTIFY_WORKERS" default:"2"`
	DrainGrace time.Duration `envconfig:"CAPSTUDIO_NOTIFY_DRAIN_GRACE" default:"10s"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"CAPSTUDIO_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"CAPSTUDIO_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"CAPSTUDIO_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	Enabled    bool   `envconfig:"CAPSTUDIO_PUBSUB_ENABLED" default:"false"`
	OrderTopic string `envconfig:"CAPSTUDIO_PUBSUB_ORDER_TOPIC" default:"capstudio-order-events"`
}

func (p PubSubConfig) validate(gcp GCPConfig) error {
	if !p.Enabled {
		return nil
	}
	if strings.TrimSpace(gcp.ProjectID) == "" {
		return fmt.Errorf("%s is required when %s is true", EnvGCPProjectID, EnvPubSubEnabled)
	}
	if strings.TrimSpace(p.OrderTopic) == "" {
		return fmt.Errorf("%s is required when %s is true", EnvPubSubOrderTopic, EnvPubSubEnabled)
	}
	return nil
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.Driver == DriverSQLite {
		return fmt.Errorf("%s is required when %s is true", EnvDBDSN, EnvUseSQLite)
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
