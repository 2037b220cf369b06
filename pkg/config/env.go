package config

// EnvPrefix is passed to envconfig; individual fields carry the full
// variable name so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvDBDSN  = "WARELINE_DB_DSN"
	EnvDBHost = "WARELINE_DB_HOST"
	EnvDBUser = "WARELINE_DB_USER"
	EnvDBName = "WARELINE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
