// Command cedarverse is the scripture bot daemon.
// It preloads every configured text into an in-memory passage index and
// serves slash commands over the Discord gateway.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/CedarVerse/internal/bot"
	"github.com/FocuswithJustin/CedarVerse/internal/cachestore"
	"github.com/FocuswithJustin/CedarVerse/internal/config"
	"github.com/FocuswithJustin/CedarVerse/internal/logging"
	"github.com/FocuswithJustin/CedarVerse/internal/provider"
	"github.com/FocuswithJustin/CedarVerse/internal/router"
)

const version = "0.1.0"

// CLI defines the command-line interface for cedarverse.
var CLI struct {
	// Global flags
	Config    string `name:"config" short:"c" help:"Path to TOML config file" type:"path" default:"cedarverse.toml"`
	CacheDir  string `name:"cache-dir" help:"Override the corpus cache directory" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"info"`
	LogFormat string `name:"log-format" help:"Log format (text, json)" default:"text"`

	Serve   ServeCmd   `cmd:"" help:"Preload all texts and serve slash commands"`
	Preload PreloadCmd `cmd:"" help:"Preload all texts and exit (warms the cache)"`
	Texts   TextsGroup `cmd:"" help:"Configured text operations"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// TextsGroup contains operations over the configured text set.
type TextsGroup struct {
	List TextsListCmd `cmd:"" help:"List configured texts and their sources"`
}

// loadConfig resolves configuration from the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return config.Config{}, err
	}
	if CLI.CacheDir != "" {
		cfg.CacheDir = CLI.CacheDir
	}
	return cfg, nil
}

// newLoader opens the cache store and builds the preload loader.
func newLoader(cfg config.Config) (*provider.Loader, *cachestore.Store, error) {
	store, err := cachestore.New(cfg.CacheDir)
	if err != nil {
		return nil, nil, err
	}
	return provider.NewLoader(cfg, store), store, nil
}

// ServeCmd preloads all texts and runs the Discord bot.
type ServeCmd struct{}

func (c *ServeCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader, _, err := newLoader(cfg)
	if err != nil {
		return err
	}

	logging.Info("preloading texts", "count", len(cfg.Texts), "cache_dir", cfg.CacheDir)
	idx, err := loader.PreloadAll(ctx, cfg.Texts)
	if err != nil {
		return err
	}
	logging.Info("all texts loaded", "texts", idx.Len())

	r := router.New(idx, cfg.MessageLimit, cfg.SearchLimit)
	app, err := bot.New(cfg.Token, cfg.GuildID, r)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

// PreloadCmd preloads all texts without connecting to Discord.
type PreloadCmd struct{}

func (c *PreloadCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader, store, err := newLoader(cfg)
	if err != nil {
		return err
	}

	idx, err := loader.PreloadAll(ctx, cfg.Texts)
	if err != nil {
		return err
	}

	for _, info := range idx.Titles() {
		digest, _ := store.Digest(info.ID)
		if len(digest) > 12 {
			digest = digest[:12]
		}
		fmt.Printf("%-25s %-8s %6d passages  %s\n", info.Title, info.Source, info.Passages, digest)
	}
	return nil
}

// TextsListCmd prints the configured texts without loading them.
type TextsListCmd struct{}

func (c *TextsListCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("%-25s %-8s %s\n", "TITLE", "SOURCE", "LOCATION")
	fmt.Printf("%-25s %-8s %s\n", "-----", "------", "--------")
	for _, t := range cfg.Texts {
		location := t.URL
		if t.Source == "api" {
			location = t.Service
		}
		fmt.Printf("%-25s %-8s %s\n", t.Title, t.Source, location)
	}
	fmt.Printf("\nTotal: %d texts\n", len(cfg.Texts))
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("cedarverse version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("cedarverse"),
		kong.Description("CedarVerse - scripture passage bot for Discord"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))

	// Preload failures and config errors exit non-zero here.
	ctx.FatalIfErrorf(ctx.Run())
}
