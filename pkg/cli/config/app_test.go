package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/efa2d19/dailynator/pkg/cli/config"
	"github.com/efa2d19/dailynator/pkg/domain/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dailynator.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestAppConfigValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := &config.AppConfig{
			Palette:          []string{"#e8aeb7", "#b8e1ff"},
			SkipTokens:       []string{"-", "skip"},
			DefaultQuestions: []string{"What did you do?"},
		}
		gt.NoError(t, cfg.Validate())
	})

	t.Run("malformed palette color", func(t *testing.T) {
		cfg := &config.AppConfig{Palette: []string{"red"}}
		gt.Error(t, cfg.Validate())
	})

	t.Run("blank skip token", func(t *testing.T) {
		cfg := &config.AppConfig{SkipTokens: []string{"  "}}
		gt.Error(t, cfg.Validate())
	})
}

func TestAppConfigure(t *testing.T) {
	t.Run("no file returns defaults", func(t *testing.T) {
		var app config.App
		cfg, err := app.Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, cfg.Palette).Equal(model.DefaultPalette)
		gt.Value(t, cfg.SkipTokens).Equal(model.DefaultSkipTokens)
		gt.Array(t, cfg.DefaultQuestions).Length(0)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
palette = ["#112233"]
skip_tokens = ["skip"]
default_questions = ["What did you do?", "Any blockers?"]
`)
		app := config.NewAppWithPath(path)
		cfg, err := app.Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, cfg.Palette).Equal([]string{"#112233"})
		gt.Value(t, cfg.SkipTokens).Equal([]string{"skip"})
		gt.Array(t, cfg.DefaultQuestions).Length(2)
	})

	t.Run("partial file keeps remaining defaults", func(t *testing.T) {
		path := writeConfig(t, `default_questions = ["What did you do?"]`)
		app := config.NewAppWithPath(path)
		cfg, err := app.Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, cfg.Palette).Equal(model.DefaultPalette)
		gt.Array(t, cfg.DefaultQuestions).Length(1)
	})

	t.Run("broken TOML is an error", func(t *testing.T) {
		path := writeConfig(t, `palette = [`)
		app := config.NewAppWithPath(path)
		_, err := app.Configure()
		gt.Error(t, err)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := writeConfig(t, `palette = ["red"]`)
		app := config.NewAppWithPath(path)
		_, err := app.Configure()
		gt.Error(t, err)
	})
}
