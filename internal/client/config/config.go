package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dmitrijs2005/talksy/internal/common"
)

// Config holds runtime settings for the CLI.
//
// StateDir is where the session cookie file lives between invocations.
// Session identifies the client session; cookies the server sent without
// an expiry survive only while it stays the same. It defaults to the
// parent process, so a plain login lasts as long as the shell.
type Config struct {
	ServerURL string `env:"TALKSY_SERVER_URL"`
	StateDir  string `env:"TALKSY_STATE_DIR"`
	Session   string `env:"TALKSY_SESSION"`
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:3000"
	c.StateDir = defaultStateDir()
	c.Session = "ppid-" + strconv.Itoa(os.Getppid())
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "talksy")
	}
	return ".talksy"
}

// Validate checks that the server URL is usable and a state dir is set.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: server url %q must be an http(s) URL", common.ErrConfiguration, c.ServerURL)
	}
	if c.StateDir == "" {
		return fmt.Errorf("%w: state dir is empty", common.ErrConfiguration)
	}
	return nil
}

// CookieFile is the path of the persisted cookie jar.
func (c *Config) CookieFile() string {
	return filepath.Join(c.StateDir, "cookies.json")
}

// LoadConfig applies defaults, then the JSON file named in args, then the
// environment. Flags are overlaid by the caller.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
