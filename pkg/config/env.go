package config

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv         = "STOREFRONT_APP_ENV"
	EnvPort           = "STOREFRONT_APP_PORT"
	EnvStorageDriver  = "STOREFRONT_STORAGE_DRIVER"
	EnvDBDSN          = "STOREFRONT_DB_DSN"
	EnvRedisURL       = "STOREFRONT_REDIS_URL"
	EnvSessionSecret  = "STOREFRONT_SESSION_SECRET"
	EnvCMSURL         = "STOREFRONT_CMS_URL"
	EnvCommerceURL    = "STOREFRONT_COMMERCE_URL"
	EnvSupportedLangs = "STOREFRONT_SUPPORTED_LOCALES"
)
