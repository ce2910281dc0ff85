package config

import (
	"github.com/kelseyhightower/envconfig"

	authConfig "github.com/iurnickita/swadbot/internal/auth/config"
	dashboardConfig "github.com/iurnickita/swadbot/internal/dashboard/config"
	handlerConfig "github.com/iurnickita/swadbot/internal/handler/config"
	loggerConfig "github.com/iurnickita/swadbot/internal/logger/config"
	serviceConfig "github.com/iurnickita/swadbot/internal/service/config"
	storeConfig "github.com/iurnickita/swadbot/internal/store/config"
)

type Config struct {
	Handler   handlerConfig.Config
	Service   serviceConfig.Config
	Store     storeConfig.Config
	Logger    loggerConfig.Config
	Dashboard dashboardConfig.Config
	Auth      authConfig.Config
}

// GetConfig reads every section from the process environment. Each section
// is processed without a prefix so variable names stay exactly as tagged.
func GetConfig() (Config, error) {
	var cfg Config
	sections := []interface{}{
		&cfg.Handler,
		&cfg.Service,
		&cfg.Store,
		&cfg.Logger,
		&cfg.Dashboard,
		&cfg.Auth,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// MissingSecrets lists the WhatsApp variables that are not set.
func (cfg Config) MissingSecrets() []string {
	var missing []string
	if cfg.Service.AccessToken == "" {
		missing = append(missing, "WA_ACCESS_TOKEN")
	}
	if cfg.Service.PhoneNumberID == "" {
		missing = append(missing, "WA_PHONE_NUMBER_ID")
	}
	if cfg.Handler.VerifyToken == "" {
		missing = append(missing, "WA_VERIFY_TOKEN")
	}
	return missing
}
