package config

import "github.com/dmitrijs2005/talksy/internal/flagx"

// JSONConfig is the on-disk shape of the CLI config file.
type JSONConfig struct {
	ServerURL *string `json:"server_url"`
	StateDir  *string `json:"state_dir"`
}

func parseJSON(cfg *Config, args []string) error {
	c := &JSONConfig{}
	if err := flagx.LoadJSONFile(flagx.JSONConfigPath(args), c); err != nil {
		return err
	}
	if c.ServerURL != nil {
		cfg.ServerURL = *c.ServerURL
	}
	if c.StateDir != nil {
		cfg.StateDir = *c.StateDir
	}
	return nil
}
