// Package config loads shelf configuration from layered JSONC files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/tailscale/hujson"
)

// FileName is the project config file name.
const FileName = ".shelf.json"

// DefaultCatalog is the catalog path used when no config sets one.
const DefaultCatalog = "library_data.json"

// Errors returned by Load.
var (
	ErrFileNotFound = errors.New("config file not found")
	ErrFileRead     = errors.New("cannot read config file")
	ErrInvalid      = errors.New("invalid config file")
	ErrCatalogEmpty = errors.New("catalog cannot be empty")
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	Catalog string `json:"catalog"`
	History string `json:"history,omitempty"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd string `json:"-"`
	CatalogAbs   string `json:"-"`
	HistoryAbs   string `json:"-"`

	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // path to global config if loaded
	Project string // path to project or explicit config if loaded
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Catalog: DefaultCatalog,
	}
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride string            // -C/--cwd; os.Getwd() if empty
	ConfigPath      string            // -c/--config; must exist if set
	CatalogOverride string            // --catalog; empty means no override
	Env             map[string]string // environment variables
}

// Load resolves configuration with the following precedence (highest wins):
//  1. Defaults
//  2. Global user config ($XDG_CONFIG_HOME/shelf/config.json or ~/.config/shelf/config.json)
//  3. Project config (.shelf.json in the work dir) or the explicit config file
//  4. CLI overrides
//
// Paths in the returned Config are resolved against the work dir.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return Config{}, fmt.Errorf("resolve working directory: %w", err)
	}

	cfg := Default()

	globalPath := globalConfigPath(input.Env)
	if globalPath != "" {
		globalCfg, loaded, loadErr := loadFile(globalPath, false)
		if loadErr != nil {
			return Config{}, loadErr
		}

		if loaded {
			cfg.Sources.Global = globalPath
			cfg = merge(cfg, globalCfg)
		}
	}

	projectPath, mustExist := filepath.Join(workDir, FileName), false
	if input.ConfigPath != "" {
		projectPath, mustExist = resolve(workDir, input.ConfigPath), true
	}

	projectCfg, loaded, err := loadFile(projectPath, mustExist)
	if err != nil {
		return Config{}, err
	}

	if loaded {
		cfg.Sources.Project = projectPath
		cfg = merge(cfg, projectCfg)
	}

	if input.CatalogOverride != "" {
		cfg.Catalog = input.CatalogOverride
	}

	cfg.EffectiveCwd = workDir
	cfg.CatalogAbs = resolve(workDir, cfg.Catalog)

	if cfg.History != "" {
		cfg.HistoryAbs = resolve(workDir, cfg.History)
	}

	return cfg, nil
}

// globalConfigPath returns the global config path, or "" if neither
// XDG_CONFIG_HOME nor HOME is set.
func globalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "shelf", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "shelf", "config.json")
	}

	return ""
}

// loadFile loads a config file. If mustExist is false, a missing file
// returns loaded=false and no error.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return Config{}, false, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}

			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s: %w", ErrFileRead, path, err)
	}

	cfg, parseErr := parse(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var raw struct {
		Catalog *string `json:"catalog"`
		History *string `json:"history"`
	}

	err = json.Unmarshal(standardized, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	var cfg Config

	if raw.Catalog != nil {
		if *raw.Catalog == "" {
			return Config{}, ErrCatalogEmpty
		}

		cfg.Catalog = *raw.Catalog
	}

	if raw.History != nil {
		cfg.History = *raw.History
	}

	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.Catalog != "" {
		base.Catalog = overlay.Catalog
	}

	if overlay.History != "" {
		base.History = overlay.History
	}

	return base
}

func resolve(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}
