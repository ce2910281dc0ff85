package config

type Config struct {
	ServerAddr string `envconfig:"DASHBOARD_ADDR" default:":5001"`
}
