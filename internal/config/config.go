package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/plotsync/internal/logging"
)

// Config holds the plotsync server settings.
type Config struct {
	Listen             string
	Path               string
	LogLevel           string
	LogDir             string
	ModelModule        string
	ModelModuleVersion string
}

const (
	defaultConfigPath         = "~/.config/plotsync/config.toml"
	defaultListen             = "127.0.0.1:8765"
	defaultPath               = "/comm"
	defaultLogLevel           = "info"
	defaultLogDir             = "~/.local/share/plotsync/logs"
	defaultModelModule        = "bqplot"
	defaultModelModuleVersion = "^0.4.1"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Listen:             defaultListen,
		Path:               defaultPath,
		LogLevel:           defaultLogLevel,
		LogDir:             mustExpand(defaultLogDir),
		ModelModule:        defaultModelModule,
		ModelModuleVersion: defaultModelModuleVersion,
	}
}

// Load locates and parses the plotsync config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Listen             string `toml:"listen"`
		Path               string `toml:"path"`
		LogLevel           string `toml:"log_level"`
		LogDir             string `toml:"log_dir"`
		ModelModule        string `toml:"model_module"`
		ModelModuleVersion string `toml:"model_module_version"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Config{
		Listen:             orDefault(raw.Listen, defaultListen),
		Path:               orDefault(raw.Path, defaultPath),
		LogLevel:           strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel)),
		LogDir:             mustExpand(orDefault(raw.LogDir, defaultLogDir)),
		ModelModule:        orDefault(raw.ModelModule, defaultModelModule),
		ModelModuleVersion: orDefault(raw.ModelModuleVersion, defaultModelModuleVersion),
	}
	if !strings.HasPrefix(cfg.Path, "/") {
		cfg.Path = "/" + cfg.Path
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("log_level: %w", err)
	}
	return cfg, nil
}

// LogPath returns the path of the server log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/plotsync.log")
	}
	return filepath.Join(c.LogDir, "plotsync.log")
}

func orDefault(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
