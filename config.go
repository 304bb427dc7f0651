// CLAUDE:SUMMARY Configuration struct, defaults, and YAML loader for the reprise shell.
package reprise

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all reprise configuration.
type Config struct {
	// DBPath is the SQLite file holding persisted state.
	DBPath string `yaml:"db_path"`
	// ListenAddr is the local control API address. Loopback by default:
	// the API drives one user's player, it is not a network service.
	ListenAddr string `yaml:"listen_addr"`
	// RecentCap bounds the recent list length.
	RecentCap int `yaml:"recent_cap"`
	// ResolveTTL bounds how long resolved bookmark paths are memoized.
	ResolveTTL time.Duration `yaml:"resolve_ttl"`
}

func (c *Config) defaults() {
	if c.DBPath == "" {
		c.DBPath = "reprise.db"
	}
	if c.ListenAddr == "" {
		c.ListenAddr = "127.0.0.1:8099"
	}
	if c.RecentCap <= 0 {
		c.RecentCap = 10
	}
	if c.ResolveTTL <= 0 {
		c.ResolveTTL = 5 * time.Minute
	}
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.defaults()
	return cfg
}

// LoadConfigFile reads a YAML config file and applies defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.defaults()
	return cfg, nil
}
