package config

import (
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds the file-backed part of the configuration. Every field can
// be overridden through the matching JOBBOARD_* environment variable.
type Settings struct {
	Listen          string   `toml:"listen"`
	Port            int      `toml:"port"`
	DBPath          string   `toml:"db_path"`
	RedisAddr       string   `toml:"redis_addr"`
	RedisPassword   string   `toml:"redis_password"`
	AuthRateLimit   int      `toml:"auth_rate_limit"`
	AuthRateWindow  int      `toml:"auth_rate_window_seconds"`
	CORSOrigins     []string `toml:"cors_origins"`
	SessionTokenTTL int      `toml:"session_token_ttl_hours"`
}

var (
	settings     *Settings
	settingsOnce sync.Once
)

func defaultSettings() *Settings {
	return &Settings{
		Listen:         "",
		Port:           8080,
		AuthRateLimit:  10,
		AuthRateWindow: 60,
		CORSOrigins:    []string{"*"},
	}
}

// GetSettings loads the TOML settings file once and caches it. A missing
// file is not an error, defaults apply.
func GetSettings() *Settings {
	settingsOnce.Do(func() {
		settings = defaultSettings()
		path := os.Getenv("JOBBOARD_CONFIG")
		if path == "" {
			path = "jobboard.toml"
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return
		}
		if err := toml.Unmarshal(data, settings); err != nil {
			// A broken settings file should not take the process down
			// with a confusing half-applied state.
			settings = defaultSettings()
		}
	})
	return settings
}
