// Package config loads bot configuration from a TOML file and the environment.
//
// The Discord token is read from the environment only and never from the
// config file. Every other setting has a default matching the stock corpus
// set, so the bot runs with no config file at all.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/FocuswithJustin/CedarVerse/core/errors"
	"github.com/FocuswithJustin/CedarVerse/core/text"
)

// TokenEnv is the environment variable holding the Discord bot token.
const TokenEnv = "DISCORD_TOKEN"

// Text configures one work to preload.
type Text struct {
	Title   string `toml:"title"`
	Source  string `toml:"source"`            // "bundled" or "api"
	URL     string `toml:"url,omitempty"`     // bundled: archive URL
	Format  string `toml:"format,omitempty"`  // bundled: "plaintext" (default) or "zefania"
	Service string `toml:"service,omitempty"` // api: bible-api, sefaria, alquran, nephi
	// KeyEnv optionally names an environment variable whose value is sent as
	// a bearer token to the content API.
	KeyEnv string `toml:"key_env,omitempty"`
}

// ID returns the canonical identifier derived from the title.
func (t Text) ID() string {
	return text.Normalize(t.Title)
}

// Config holds the full bot configuration.
type Config struct {
	CacheDir     string `toml:"cache_dir"`
	GuildID      string `toml:"guild_id,omitempty"` // register commands on one guild; empty = global
	MessageLimit int    `toml:"message_limit"`
	SearchLimit  int    `toml:"search_limit"`
	// HTTPTimeoutRaw is a duration string ("30s", "1m"); TOML has no native
	// duration type, so it is parsed into HTTPTimeout during Load.
	HTTPTimeoutRaw string `toml:"http_timeout,omitempty"`
	Texts          []Text `toml:"texts"`

	// Resolved fields, never serialized.
	HTTPTimeout time.Duration `toml:"-"`
	Token       string        `toml:"-"`
}

// Default returns the stock configuration: three Gutenberg corpora and five
// API corpora, cached under ./texts.
func Default() Config {
	return Config{
		CacheDir:     "texts",
		MessageLimit: 2000,
		SearchLimit:  5,
		HTTPTimeout:  30 * time.Second,
		Texts: []Text{
			{Title: "Bhagavad Gita", Source: "bundled", URL: "https://www.gutenberg.org/files/2388/2388-0.txt"},
			{Title: "Upanishads", Source: "bundled", URL: "https://www.gutenberg.org/files/23455/23455-0.txt"},
			{Title: "Dhammapada", Source: "bundled", URL: "https://www.gutenberg.org/files/159/159-0.txt"},
			{Title: "World English Bible", Source: "api", Service: "bible-api"},
			{Title: "KJV", Source: "api", Service: "bible-api"},
			{Title: "Tanakh (JPS 1917)", Source: "api", Service: "sefaria"},
			{Title: "Quran (Pickthall)", Source: "api", Service: "alquran"},
			{Title: "Book of Mormon", Source: "api", Service: "nephi"},
		},
	}
}

// Load reads configuration from path, falling back to defaults when path is
// empty or the file does not exist. The Discord token is taken from the
// environment in all cases.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, errors.Wrapf(err, "reading config %s", path)
			}
		} else {
			// A config file that lists texts replaces the default set entirely.
			var fileCfg Config
			if err := toml.Unmarshal(data, &fileCfg); err != nil {
				return Config{}, errors.Wrapf(err, "parsing config %s", path)
			}
			cfg = merge(cfg, fileCfg)
		}
	}

	cfg.Token = os.Getenv(TokenEnv)

	if cfg.HTTPTimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.HTTPTimeoutRaw)
		if err != nil {
			return Config{}, errors.NewValidation("http_timeout", "invalid duration: "+cfg.HTTPTimeoutRaw)
		}
		cfg.HTTPTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// merge overlays non-zero fields from overlay onto base.
func merge(base, overlay Config) Config {
	if overlay.CacheDir != "" {
		base.CacheDir = overlay.CacheDir
	}
	if overlay.GuildID != "" {
		base.GuildID = overlay.GuildID
	}
	if overlay.MessageLimit > 0 {
		base.MessageLimit = overlay.MessageLimit
	}
	if overlay.SearchLimit > 0 {
		base.SearchLimit = overlay.SearchLimit
	}
	if overlay.HTTPTimeoutRaw != "" {
		base.HTTPTimeoutRaw = overlay.HTTPTimeoutRaw
	}
	if len(overlay.Texts) > 0 {
		base.Texts = overlay.Texts
	}
	return base
}

// knownServices are the content API services the provider layer implements.
var knownServices = map[string]bool{
	"bible-api": true,
	"sefaria":   true,
	"alquran":   true,
	"nephi":     true,
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if len(c.Texts) == 0 {
		return errors.NewValidation("texts", "at least one text must be configured")
	}
	if c.MessageLimit < 1 {
		return errors.NewValidation("message_limit", "must be positive")
	}

	seen := make(map[string]bool)
	for _, t := range c.Texts {
		if strings.TrimSpace(t.Title) == "" {
			return errors.NewValidation("texts.title", "title must not be empty")
		}
		id := t.ID()
		if seen[id] {
			return errors.NewValidation("texts.title", "duplicate text: "+t.Title)
		}
		seen[id] = true

		switch t.Source {
		case "bundled":
			if !strings.HasPrefix(t.URL, "http://") && !strings.HasPrefix(t.URL, "https://") {
				return errors.NewValidation("texts.url", "bundled text "+t.Title+" needs an http(s) url")
			}
			switch t.Format {
			case "", "plaintext", "zefania":
			default:
				return errors.NewValidation("texts.format", "unknown format "+t.Format+" for "+t.Title)
			}
		case "api":
			if !knownServices[t.Service] {
				return errors.NewValidation("texts.service", "unknown service "+t.Service+" for "+t.Title)
			}
		default:
			return errors.NewValidation("texts.source", "source must be bundled or api for "+t.Title)
		}
	}
	return nil
}

// APIKey resolves the optional bearer token for an API text.
func (t Text) APIKey() string {
	if t.KeyEnv == "" {
		return ""
	}
	return os.Getenv(t.KeyEnv)
}
