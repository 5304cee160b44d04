package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kzmshx/php-graph/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phpgraph.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
extensions = [".php", ".inc"]
exclude = ["vendor/"]
break_cycles = true
format = "dot"
cache = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{
		Extensions:  []string{".php", ".inc"},
		Exclude:     []string{"vendor/"},
		BreakCycles: true,
		Format:      FormatDOT,
		Cache:       false,
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `exclude = ["tests/"]`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Format != FormatPlantUML || !cfg.Cache || len(cfg.Extensions) != 1 {
		t.Errorf("Load() = %+v, want defaults for unset keys", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", `extensions = [".php"`, errors.ErrCodeInvalidConfig},
		{"unknown key", `formt = "dot"`, errors.ErrCodeInvalidConfig},
		{"bad format", `format = "png"`, errors.ErrCodeInvalidFormat},
		{"bad extension", `extensions = ["php"]`, errors.ErrCodeInvalidInput},
		{"no extensions", `extensions = []`, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoad_MissingExplicit(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}
