package config

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/efa2d19/dailynator/pkg/domain/model"
)

// AppConfig is the optional TOML application configuration: report
// appearance and the question list seeded into newly subscribed channels.
type AppConfig struct {
	Palette          []string `toml:"palette"`
	SkipTokens       []string `toml:"skip_tokens"`
	DefaultQuestions []string `toml:"default_questions"`
}

// Validate checks the configured values
func (a *AppConfig) Validate() error {
	for _, color := range a.Palette {
		if !strings.HasPrefix(color, "#") || len(color) != 7 {
			return goerr.Wrap(ErrInvalidConfig, "palette entries must be #rrggbb colors", goerr.V("color", color))
		}
	}
	for _, token := range a.SkipTokens {
		if strings.TrimSpace(token) == "" {
			return goerr.Wrap(ErrInvalidConfig, "skip tokens must be non-empty")
		}
	}
	for _, q := range a.DefaultQuestions {
		if strings.TrimSpace(q) == "" {
			return goerr.Wrap(ErrInvalidConfig, "default questions must be non-empty")
		}
	}
	return nil
}

// App holds the CLI flag pointing at the optional TOML config file
type App struct {
	path string
}

func (x *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to TOML application config (palette, skip tokens, default questions)",
			Category:    "App",
			Sources:     cli.EnvVars("DAILYNATOR_CONFIG"),
			Destination: &x.path,
		},
	}
}

// Configure loads the TOML file when one is configured; otherwise the
// defaults apply
func (x *App) Configure() (*AppConfig, error) {
	cfg := &AppConfig{
		Palette:    model.DefaultPalette,
		SkipTokens: model.DefaultSkipTokens,
	}
	if x.path == "" {
		return cfg, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(x.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", x.path))
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", x.path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", x.path))
	}

	return cfg, nil
}
