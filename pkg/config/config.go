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
	Admin         AdminConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Cache         CacheConfig
	Catalog       CatalogConfig
	CORS          CORSConfig
	Settings      SettingsConfig
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
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOP_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOP_LOG_WARN_STACK" default:"false"`
	PublicURL    string `envconfig:"SHOP_PUBLIC_URL" default:"http://localhost:8080"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SHOP_DB_DSN"`
	Driver string `envconfig:"SHOP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"SHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHOP_DB_USER"`
	LegacyPassword string `envconfig:"SHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOP_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SHOP_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver targets SQLite.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOP_REDIS_URL"`
	Address      string        `envconfig:"SHOP_REDIS_ADDR"`
	Password     string        `envconfig:"SHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"SHOP_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SHOP_JWT_ISSUER" default:"hidden-springfield"`
	ExpirationMinutes int    `envconfig:"SHOP_JWT_EXPIRATION_MINUTES" default:"1440"`
	CookieName        string `envconfig:"SHOP_JWT_COOKIE_NAME" default:"auth-token"`
}

// TTL returns the access token lifetime.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// AdminConfig carries the bootstrap admin credentials. When both are set they take
// precedence over the admins table.
type AdminConfig struct {
	Username string `envconfig:"SHOP_ADMIN_USERNAME"`
	Password string `envconfig:"SHOP_ADMIN_PASSWORD"`
	// SetupKey guards the first-admin setup endpoint. Empty disables it.
	SetupKey string `envconfig:"SHOP_ADMIN_SETUP_KEY"`
}

func (a AdminConfig) Configured() bool {
	return a.Username != "" && a.Password != ""
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SHOP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SHOP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SHOP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SHOP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SHOP_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SHOP_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit       int           `envconfig:"SHOP_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"10"`
	LoginUsernameLimit int           `envconfig:"SHOP_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
}

type CacheConfig struct {
	DefaultTTL      time.Duration `envconfig:"SHOP_CACHE_DEFAULT_TTL" default:"5m"`
	SettingsTTL     time.Duration `envconfig:"SHOP_CACHE_SETTINGS_TTL" default:"720h"`
	CartTTL         time.Duration `envconfig:"SHOP_CACHE_CART_TTL" default:"168h"`
	// RefreshInterval drives the settings reload and catalog warm jobs. Zero disables them.
	RefreshInterval time.Duration `envconfig:"SHOP_CACHE_REFRESH_INTERVAL" default:"5m"`
}

type CatalogConfig struct {
	Backend string `envconfig:"SHOP_CATALOG_BACKEND" default:"db"`
}

func (c CatalogConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Backend)) {
	case CatalogBackendDB, CatalogBackendStatic:
		return nil
	}
	return fmt.Errorf("%s must be one of %q or %q", EnvCatalogBackend, CatalogBackendDB, CatalogBackendStatic)
}

// IsStatic reports whether the catalog is served from the built-in arrays only.
func (c CatalogConfig) IsStatic() bool {
	return strings.EqualFold(strings.TrimSpace(c.Backend), CatalogBackendStatic)
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SHOP_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// SettingsConfig points the theme store at a remote settings endpoint. When
// RemoteURL is empty the store reads the local database.
type SettingsConfig struct {
	RemoteURL     string        `envconfig:"SHOP_SETTINGS_REMOTE_URL"`
	RemoteToken   string        `envconfig:"SHOP_SETTINGS_REMOTE_TOKEN"`
	RemoteRetries uint64        `envconfig:"SHOP_SETTINGS_REMOTE_RETRIES" default:"3"`
	RemoteBackoff time.Duration `envconfig:"SHOP_SETTINGS_REMOTE_BACKOFF" default:"200ms"`
}

// Remote reports whether settings are served by another instance.
func (s SettingsConfig) Remote() bool {
	return strings.TrimSpace(s.RemoteURL) != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SHOP_AUTO_MIGRATE" default:"false"`
	AllowSetup  bool `envconfig:"SHOP_ALLOW_ADMIN_SETUP" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.IsSQLite() {
		db.DSN = DefaultSQLiteDSN
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
