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
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	APIKey        APIKeyConfig
	FeatureFlags  FeatureFlagsConfig
	Client        ClientConfig
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

// LoadClient parses only the sections needed by the scanner client, which runs
// without database credentials.
func LoadClient() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix+"_APP", &cfg.App); err != nil {
		return nil, fmt.Errorf("parsing app config: %w", err)
	}
	if err := envconfig.Process(EnvPrefix+"_CLIENT", &cfg.Client); err != nil {
		return nil, fmt.Errorf("parsing client config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"SCANCART_APP_ENV" default:"dev"`
	Port         string   `envconfig:"SCANCART_APP_PORT" default:"3001"`
	LogLevel     string   `envconfig:"SCANCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"SCANCART_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"SCANCART_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SCANCART_DB_DSN"`
	Driver string `envconfig:"SCANCART_DB_DRIVER" default:"mysql"`

	LegacyHost     string `envconfig:"MYSQL_HOST"`
	LegacyPort     int    `envconfig:"MYSQL_PORT" default:"3306"`
	LegacyUser     string `envconfig:"MYSQL_USERNAME"`
	LegacyPassword string `envconfig:"MYSQL_PASSWORD"`
	LegacyName     string `envconfig:"MYSQL_DATABASE"`

	MaxOpenConns    int           `envconfig:"SCANCART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SCANCART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SCANCART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SCANCART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// NormalizedDriver returns the lowercased driver name, defaulting to mysql.
func (db DBConfig) NormalizedDriver() string {
	driver := strings.ToLower(strings.TrimSpace(db.Driver))
	if driver == "" {
		return DriverMySQL
	}
	return driver
}

type RedisConfig struct {
	URL          string        `envconfig:"SCANCART_REDIS_URL"`
	Address      string        `envconfig:"SCANCART_REDIS_ADDR"`
	Password     string        `envconfig:"SCANCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"SCANCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SCANCART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SCANCART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SCANCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SCANCART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SCANCART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"SCANCART_JWT_SECRET"`
	Issuer            string `envconfig:"SCANCART_JWT_ISSUER" default:"scancart"`
	ExpirationMinutes int    `envconfig:"SCANCART_JWT_EXPIRATION_MINUTES" default:"720"`
}

// Enabled reports whether access tokens can be minted.
func (j JWTConfig) Enabled() bool {
	return strings.TrimSpace(j.Secret) != ""
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SCANCART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SCANCART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SCANCART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SCANCART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SCANCART_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"SCANCART_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUserLimit  int           `envconfig:"SCANCART_AUTH_RATE_LIMIT_LOGIN_USER_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"SCANCART_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow  time.Duration `envconfig:"SCANCART_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterIDLimit int           `envconfig:"SCANCART_AUTH_RATE_LIMIT_REGISTER_USER_LIMIT" default:"3"`
	RegisterIPLimit int           `envconfig:"SCANCART_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type APIKeyConfig struct {
	CacheTTL time.Duration `envconfig:"SCANCART_APIKEY_CACHE_TTL" default:"5m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate  bool `envconfig:"SCANCART_AUTO_MIGRATE" default:"false"`
	RequireToken bool `envconfig:"SCANCART_REQUIRE_TOKEN" default:"false"`
}

// ClientConfig configures the scanner client that talks to the cart API.
type ClientConfig struct {
	BaseURL           string        `envconfig:"SCANCART_CLIENT_BASE_URL" default:"http://localhost:3001"`
	APIKey            string        `envconfig:"SCANCART_CLIENT_API_KEY"`
	UserID            string        `envconfig:"SCANCART_CLIENT_USER_ID"`
	Password          string        `envconfig:"SCANCART_CLIENT_PASSWORD"`
	Timeout           time.Duration `envconfig:"SCANCART_CLIENT_TIMEOUT" default:"10s"`
	DeleteConcurrency int           `envconfig:"SCANCART_CLIENT_DELETE_CONCURRENCY" default:"0"`
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

	switch db.NormalizedDriver() {
	case DriverMySQL:
		// user:pass@tcp(host:port)/name?parseTime=true
		auth := db.LegacyUser
		if db.LegacyPassword != "" {
			auth = db.LegacyUser + ":" + db.LegacyPassword
		}
		db.DSN = fmt.Sprintf("%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			auth, db.LegacyHost, db.LegacyPort, db.LegacyName)
	case DriverPostgres:
		userInfo := url.User(db.LegacyUser)
		if db.LegacyPassword != "" {
			userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
		}
		u := &url.URL{
			Scheme:   "postgres",
			User:     userInfo,
			Host:     fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
			Path:     db.LegacyName,
			RawQuery: "sslmode=disable",
		}
		db.DSN = u.String()
	default:
		return fmt.Errorf("%s is required for driver %q", EnvDBDSN, db.Driver)
	}
	return nil
}
