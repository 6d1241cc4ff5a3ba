package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "FILMRIDDLES_CONFIG"
	subredditEnv   = "FILMRIDDLES_SUBREDDIT"
	sourceRelayEnv = "FILMRIDDLES_SOURCE_RELAY"
	posterRelayEnv = "FILMRIDDLES_POSTER_RELAY"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Source  SourceConfig  `yaml:"source"`
	Poster  PosterConfig  `yaml:"poster"`
	Display DisplayConfig `yaml:"display"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SourceConfig describes the listing/thread endpoints for the riddle pool.
type SourceConfig struct {
	Subreddit string `yaml:"subreddit"`
	BaseURL   string `yaml:"baseUrl"`
	RelayURL  string `yaml:"relayUrl"`
	PageSize  int    `yaml:"pageSize"`
	MaxPages  int    `yaml:"maxPages"`
	UserAgent string `yaml:"userAgent"`
}

// PosterConfig describes the image-search provider used for enrichment.
type PosterConfig struct {
	Provider       string   `yaml:"provider"`
	SearchURL      string   `yaml:"searchUrl"`
	RelayURL       string   `yaml:"relayUrl"`
	Keyword        string   `yaml:"keyword"`
	MaxDecoyHeight int      `yaml:"maxDecoyHeight"`
	PathBlocklist  []string `yaml:"pathBlocklist"`
}

// DisplayConfig carries the collaborator-facing defaults (sort mode, count).
type DisplayConfig struct {
	Sort  string `yaml:"sort"`
	Count int    `yaml:"count"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(subredditEnv); v != "" {
		c.Source.Subreddit = v
	}

	if v := os.Getenv(sourceRelayEnv); v != "" {
		c.Source.RelayURL = v
	}

	if v := os.Getenv(posterRelayEnv); v != "" {
		c.Poster.RelayURL = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Source.Subreddit != "" {
		base.Source.Subreddit = override.Source.Subreddit
	}
	if override.Source.BaseURL != "" {
		base.Source.BaseURL = override.Source.BaseURL
	}
	if override.Source.RelayURL != "" {
		base.Source.RelayURL = override.Source.RelayURL
	}
	if override.Source.PageSize > 0 {
		base.Source.PageSize = override.Source.PageSize
	}
	if override.Source.MaxPages > 0 {
		base.Source.MaxPages = override.Source.MaxPages
	}
	if override.Source.UserAgent != "" {
		base.Source.UserAgent = override.Source.UserAgent
	}

	if override.Poster.Provider != "" {
		base.Poster.Provider = override.Poster.Provider
	}
	if override.Poster.SearchURL != "" {
		base.Poster.SearchURL = override.Poster.SearchURL
	}
	if override.Poster.RelayURL != "" {
		base.Poster.RelayURL = override.Poster.RelayURL
	}
	if override.Poster.Keyword != "" {
		base.Poster.Keyword = override.Poster.Keyword
	}
	if override.Poster.MaxDecoyHeight > 0 {
		base.Poster.MaxDecoyHeight = override.Poster.MaxDecoyHeight
	}
	if len(override.Poster.PathBlocklist) > 0 {
		base.Poster.PathBlocklist = override.Poster.PathBlocklist
	}

	if override.Display.Sort != "" {
		base.Display.Sort = override.Display.Sort
	}
	if override.Display.Count > 0 {
		base.Display.Count = override.Display.Count
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Source: SourceConfig{
			Subreddit: "ExplainAFilmPlotBadly",
			BaseURL:   "https://www.reddit.com",
			RelayURL:  "",
			PageSize:  100,
			MaxPages:  5,
			UserAgent: "FilmRiddles/1.0",
		},
		Poster: PosterConfig{
			Provider:       "startpage",
			SearchURL:      "https://www.startpage.com/sp/search",
			RelayURL:       "https://cors.eu.org/",
			Keyword:        "MOVIE POSTER",
			MaxDecoyHeight: 50,
			PathBlocklist:  []string{"thumbnail", "logo", "icon"},
		},
		Display: DisplayConfig{Sort: "all", Count: 1},
	}
}
