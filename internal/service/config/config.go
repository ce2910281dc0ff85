package config

import "time"

// Config - параметры WhatsApp Cloud API
type Config struct {
	APIBase       string        `envconfig:"WA_API_BASE" default:"https://graph.facebook.com"`
	APIVersion    string        `envconfig:"WA_API_VERSION" default:"v21.0"`
	AccessToken   string        `envconfig:"WA_ACCESS_TOKEN"`
	PhoneNumberID string        `envconfig:"WA_PHONE_NUMBER_ID"`
	Timeout       time.Duration `envconfig:"WA_TIMEOUT" default:"10s"`
}
