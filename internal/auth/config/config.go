package config

type Config struct {
	// пустой секрет отключает проверку
	Secret string `envconfig:"DASHBOARD_TOKEN_SECRET"`
}
