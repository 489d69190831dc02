package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/blockboard/pkg/errors"
	"github.com/matzehuels/blockboard/pkg/session"
)

// Config is the on-disk configuration. Every field has a default, so an
// absent file is valid.
type Config struct {
	Viewport ViewportConfig `toml:"viewport"`
	Serve    ServeConfig    `toml:"serve"`
	Render   RenderConfig   `toml:"render"`
}

// ViewportConfig is the initial viewport size in pixels for new editors.
type ViewportConfig struct {
	Width  float64 `toml:"width" validate:"gt=0"`
	Height float64 `toml:"height" validate:"gt=0"`
}

// ServeConfig configures the HTTP front-end.
type ServeConfig struct {
	Addr       string        `toml:"addr" validate:"required"`
	SessionTTL time.Duration `toml:"session_ttl" validate:"min=1s"`
	// MaxBodyBytes caps the size of an event request body.
	MaxBodyBytes int64 `toml:"max_body_bytes" validate:"min=1024"`
}

// RenderConfig configures SVG output.
type RenderConfig struct {
	Grid bool `toml:"grid"`
}

func defaultConfig() Config {
	return Config{
		Viewport: ViewportConfig{Width: 1280, Height: 800},
		Serve: ServeConfig{
			Addr:         ":8080",
			SessionTTL:   session.DefaultTTL,
			MaxBodyBytes: 64 << 10,
		},
		Render: RenderConfig{Grid: true},
	}
}

// configFile returns the config path using the XDG standard
// (~/.config/blockboard/config.toml).
func configFile() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads path over the defaults. An empty path selects the XDG
// location, where a missing file is not an error; a missing file named
// explicitly is.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := configFile()
		if err != nil {
			return cfg, nil
		}
		path = p
	}
	if err := errors.ValidatePath(path); err != nil {
		return cfg, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			if !explicit {
				return cfg, nil
			}
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config")
	}
	defer f.Close()

	md, err := toml.NewDecoder(f).Decode(&cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, keys[0].String())
	}
	if err := errors.ValidateStruct(errors.ErrCodeInvalidConfig, cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
