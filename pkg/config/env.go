package config

const EnvPrefix = "SHOP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	DefaultSQLiteDSN = "file:shop.db?cache=shared"
)

const (
	CatalogBackendDB     = "db"
	CatalogBackendStatic = "static"
)

const (
	EnvAppEnv         = "SHOP_APP_ENV"
	EnvPort           = "SHOP_APP_PORT"
	EnvDBDSN          = "SHOP_DB_DSN"
	EnvDBDriver       = "SHOP_DB_DRIVER"
	EnvDBHost         = "SHOP_DB_HOST"
	EnvDBUser         = "SHOP_DB_USER"
	EnvDBName         = "SHOP_DB_NAME"
	EnvRedisURL       = "SHOP_REDIS_URL"
	EnvJWTSecret      = "SHOP_JWT_SECRET"
	EnvAdminUsername  = "SHOP_ADMIN_USERNAME"
	EnvAdminPassword  = "SHOP_ADMIN_PASSWORD"
	EnvCatalogBackend = "SHOP_CATALOG_BACKEND"
	EnvCORSOrigins    = "SHOP_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
