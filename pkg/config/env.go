package config

// EnvPrefix is the envconfig prefix shared by every binary.
const EnvPrefix = "RASOILINK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvDBDSN  = "RASOILINK_DB_DSN"
	EnvDBHost = "RASOILINK_DB_HOST"
	EnvDBUser = "RASOILINK_DB_USER"
	EnvDBName = "RASOILINK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
