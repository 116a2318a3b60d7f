package config

import (
	"github.com/dmitrijs2005/talksy/internal/flagx"
)

// JSONConfig is the on-disk shape of the config file. Pointer fields tell
// "absent" from a zero value, so a partial file only overrides what it names.
type JSONConfig struct {
	HTTPAddr             *string         `json:"http_addr"`
	GRPCAddr             *string         `json:"grpc_addr"`
	DatabaseDriver       *string         `json:"database_driver"`
	DatabaseDSN          *string         `json:"database_dsn"`
	SecretKey            *string         `json:"secret_key"`
	TokenTTL             *flagx.Duration `json:"token_ttl"`
	Production           *bool           `json:"production"`
	CookieName           *string         `json:"cookie_name"`
	AllowedOrigin        *string         `json:"allowed_origin"`
	ConcealUserExistence *bool           `json:"conceal_user_existence"`
	RunMigrations        *bool           `json:"run_migrations"`
	Debug                *bool           `json:"debug"`
}

// parseJSON overlays the file named by -c/-config in args, if any.
func parseJSON(cfg *Config, args []string) error {
	c := &JSONConfig{}
	if err := flagx.LoadJSONFile(flagx.JSONConfigPath(args), c); err != nil {
		return err
	}

	setString(&cfg.HTTPAddr, c.HTTPAddr)
	setString(&cfg.GRPCAddr, c.GRPCAddr)
	setString(&cfg.DatabaseDriver, c.DatabaseDriver)
	setString(&cfg.DatabaseDSN, c.DatabaseDSN)
	setString(&cfg.SecretKey, c.SecretKey)
	if c.TokenTTL != nil {
		cfg.TokenTTL = c.TokenTTL.Duration
	}
	setBool(&cfg.Production, c.Production)
	setString(&cfg.CookieName, c.CookieName)
	setString(&cfg.AllowedOrigin, c.AllowedOrigin)
	setBool(&cfg.ConcealUserExistence, c.ConcealUserExistence)
	setBool(&cfg.RunMigrations, c.RunMigrations)
	setBool(&cfg.Debug, c.Debug)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
