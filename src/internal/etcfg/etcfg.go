package etcfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// EnvConfig overrides the path of the config file.
	EnvConfig = "ET_CONFIG"
	// EnvDB overrides Config.DBPath.
	EnvDB = "ET_DB"
)

// Config configures the et command.
type Config struct {
	// DBPath is the path of the timestamp store.
	DBPath string `json:"db_path"`
	// Format is the output format used when no --format flag is given.
	Format string `json:"format"`
}

// Default returns the configuration used when there is no config file.
func Default() Config {
	return Config{
		DBPath: filepath.Join(configDir(), "stamps.db"),
		Format: "text",
	}
}

// DefaultPath is where the config file is looked for when EnvConfig is not set.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.json")
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "et")
}

// Load returns the Default config, overlaid with the config file and then the environment.
// A missing file at DefaultPath is not an error. A missing file named by EnvConfig is.
func Load(getenv func(string) string) (*Config, error) {
	p := getenv(EnvConfig)
	explicit := p != ""
	if !explicit {
		p = DefaultPath()
	}
	cfg := Default()
	data, err := os.ReadFile(p)
	switch {
	case err == nil:
		if err := Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", p, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, err
	}
	if v := getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	return &cfg, nil
}

func Marshal(x any) []byte {
	data, err := json.MarshalIndent(x, "", "  ")
	if err != nil {
		panic(err)
	}
	return data
}

func Unmarshal[T any](data []byte, x *T) error {
	return json.Unmarshal(data, x)
}

// CreateFile writes cfg to p, failing if p already exists.
func CreateFile[T any](p string, cfg T) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(Marshal(cfg)); err != nil {
		return err
	}
	return f.Sync()
}
