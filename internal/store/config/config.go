package config

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

type Config struct {
	Driver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDsn  string `envconfig:"DB_DSN" default:"swad_orders.db"`
}
