// Package cli implements the griddeck command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/griddeck/griddeck/pkg/buildinfo"
	"github.com/griddeck/griddeck/pkg/store"
	"github.com/griddeck/griddeck/pkg/widget"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "griddeck"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the default config file location (--config).
	ConfigPath string

	// Widgets is the registry of known widget kinds.
	Widgets *widget.Registry
}

// New creates a new CLI instance with a default logger and the built-in
// widget registry.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:  newLogger(w, level),
		Widgets: widget.Builtin(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "griddeck",
		Short:        "Griddeck is a terminal grid dashboard with movable widgets",
		Long:         `Griddeck hosts widgets on a column grid: drag them around, resize them from any edge, and the layout persists across sessions.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: ~/.config/griddeck/config.toml)")

	root.AddCommand(c.openCommand())
	root.AddCommand(c.widgetCommand())
	root.AddCommand(c.themeCommand())
	root.AddCommand(c.gridCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.resetCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Store Factory
// =============================================================================

// newStore builds a store from the configured backend and loads its state.
func (c *CLI) newStore(ctx context.Context) (*store.Store, *Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	backend, err := c.newBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	st := store.New(store.Options{
		Backend:        backend,
		Logger:         c.Logger,
		PreventOverlap: cfg.PreventOverlap,
		DefaultGrid:    cfg.gridConfig(),
	})
	st.Load(ctx)
	return st, cfg, nil
}

func (c *CLI) newBackend(ctx context.Context, cfg *Config) (store.Backend, error) {
	switch cfg.Backend {
	case "", BackendFile:
		dir, err := dataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		return store.NewFileBackend(dir)
	case BackendMemory:
		return store.NewMemoryBackend(), nil
	case BackendRedis:
		return store.NewRedisBackend(ctx, store.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
		})
	case BackendMongo:
		return store.NewMongoBackend(ctx, store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
			Key:        cfg.Mongo.Key,
		})
	}
	return nil, fmt.Errorf("unknown backend %q (available: file, memory, redis, mongo)", cfg.Backend)
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard
// (~/.config/griddeck/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// dataDir returns the data directory using XDG standard
// (~/.local/share/griddeck/). The persisted layout lives here.
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
