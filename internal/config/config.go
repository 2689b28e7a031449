package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration
type Config struct {
	// Backend connection
	API APIConfig `json:"api"`

	// Feed engine tuning
	Feed FeedConfig `json:"feed"`

	// UI Preferences
	UI UIConfig `json:"ui"`

	// Local data paths. Empty means the defaults under ~/.zivo.
	HistoryDB string `json:"history_db,omitempty"`
	EventLog  string `json:"event_log,omitempty"`
}

// APIConfig holds the backend endpoint and credentials
type APIConfig struct {
	BaseURL string `json:"base_url"`
	Token   string `json:"token,omitempty"`
	UserID  string `json:"user_id"`
}

// FeedConfig holds the engine thresholds and windows
type FeedConfig struct {
	VisibleRatio     float64 `json:"visible_ratio"`      // viewport ratio that makes a row a candidate
	DwellMs          int     `json:"dwell_ms"`           // candidate stability window before activation
	WatchTimerS      int     `json:"watch_timer_s"`      // static media completion window, seconds
	SearchDebounceMs int     `json:"search_debounce_ms"` // quiet period before a search term commits
	PrefetchWorkers  int     `json:"prefetch_workers"`   // concurrent thumbnail warms
}

// UIConfig holds UI preferences
type UIConfig struct {
	Theme       string `json:"theme"`
	ShowRewards bool   `json:"show_rewards"`
	DensityMode string `json:"density_mode"` // "comfortable" or "compact"
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			UserID:  "1",
		},
		Feed: FeedConfig{
			VisibleRatio:     0.5,
			DwellMs:          100,
			WatchTimerS:      10,
			SearchDebounceMs: 500,
			PrefetchWorkers:  4,
		},
		UI: UIConfig{
			Theme:       "dark",
			ShowRewards: true,
			DensityMode: "comfortable",
		},
	}
}

// Dir returns the zivo data directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".zivo")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(Dir(), "config.json")
}

// HistoryDBPath returns the watch history database path.
func (c *Config) HistoryDBPath() string {
	if c.HistoryDB != "" {
		return c.HistoryDB
	}
	return filepath.Join(Dir(), "history.db")
}

// EventLogPath returns the JSONL event log path.
func (c *Config) EventLogPath() string {
	if c.EventLog != "" {
		return c.EventLog
	}
	return filepath.Join(Dir(), "events.jsonl")
}

// Load reads config from disk, or returns defaults. Environment variables
// override the file in either case.
func Load() (*Config, error) {
	return loadFrom(ConfigPath())
}

func loadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		cfg = DefaultConfig()
	}
	cfg.applyEnv()
	return cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600) // Restrictive permissions for the token
}

// applyEnv overrides file values from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv("ZIVO_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("ZIVO_TOKEN"); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv("ZIVO_USER_ID"); v != "" {
		c.API.UserID = v
	}
}
