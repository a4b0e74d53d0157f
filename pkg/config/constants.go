package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "CRAFTLINE_DB_DSN"
	EnvDBHost = "CRAFTLINE_DB_HOST"
	EnvDBUser = "CRAFTLINE_DB_USER"
	EnvDBName = "CRAFTLINE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
