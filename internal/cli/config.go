package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/griddeck/griddeck/pkg/grid"
	"github.com/griddeck/griddeck/pkg/store"
)

// Backend names accepted in the config file.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config is the application configuration, read from
// ~/.config/griddeck/config.toml. A missing file means all defaults.
type Config struct {
	// Backend selects where the layout persists: file (default), memory,
	// redis, or mongo.
	Backend string `toml:"backend"`

	// PreventOverlap enables the collision search on drag, resize, and
	// keyboard movement.
	PreventOverlap bool `toml:"prevent_overlap"`

	// Theme overrides the persisted theme on startup when set.
	Theme string `toml:"theme"`

	Grid  GridConfig  `toml:"grid"`
	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// GridConfig is the default grid geometry for fresh dashboards.
type GridConfig struct {
	Cols      int     `toml:"cols"`
	RowHeight float64 `toml:"row_height"`
	Gap       float64 `toml:"gap"`
}

// RedisConfig holds the redis backend settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Key      string `toml:"key"`
}

// MongoConfig holds the mongo backend settings.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
	Key        string `toml:"key"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() *Config {
	gc := grid.DefaultConfig()
	return &Config{
		Backend:        BackendFile,
		PreventOverlap: true,
		Grid:           GridConfig{Cols: gc.Cols, RowHeight: gc.RowHeight, Gap: gc.Gap},
		Redis:          RedisConfig{Addr: "localhost:6379"},
	}
}

// loadConfig reads the config file, or returns defaults when it does not
// exist. An explicit --config path that cannot be read is an error; the
// default location is allowed to be absent.
func (c *CLI) loadConfig() (*Config, error) {
	path := c.ConfigPath
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return defaultConfig(), nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		c.Logger.Warn("unknown config keys ignored", "keys", undecoded, "file", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	switch cfg.Backend {
	case "", BackendFile, BackendMemory, BackendRedis, BackendMongo:
	default:
		return fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if cfg.Theme != "" && !store.Theme(cfg.Theme).Valid() {
		return fmt.Errorf("unknown theme %q", cfg.Theme)
	}
	if err := cfg.gridConfig().Validate(); err != nil {
		return err
	}
	return nil
}

// gridConfig converts the config's grid section to the engine's type.
func (cfg *Config) gridConfig() grid.Config {
	gc := grid.DefaultConfig()
	if cfg.Grid.Cols != 0 {
		gc.Cols = cfg.Grid.Cols
	}
	if cfg.Grid.RowHeight != 0 {
		gc.RowHeight = cfg.Grid.RowHeight
	}
	if cfg.Grid.Gap != 0 {
		gc.Gap = cfg.Grid.Gap
	}
	return gc
}
