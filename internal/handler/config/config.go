package config

type Config struct {
	ServerAddr  string `envconfig:"BOT_ADDR" default:":5000"`
	VerifyToken string `envconfig:"WA_VERIFY_TOKEN"`
}
