// Package config loads phpgraph settings from an optional TOML file.
package config

import (
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kzmshx/php-graph/pkg/errors"
	"github.com/kzmshx/php-graph/pkg/scan"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "phpgraph.toml"

// Output formats accepted by the dependents command.
const (
	FormatPlantUML = "plantuml"
	FormatDOT      = "dot"
	FormatSVG      = "svg"
	FormatJSON     = "json"
)

// Formats lists every supported output format.
var Formats = []string{FormatPlantUML, FormatDOT, FormatSVG, FormatJSON}

// Config holds settings shared by the scanning commands.
type Config struct {
	Extensions  []string `toml:"extensions"`
	Exclude     []string `toml:"exclude"`
	BreakCycles bool     `toml:"break_cycles"`
	Format      string   `toml:"format"`
	Cache       bool     `toml:"cache"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Extensions: []string{scan.DefaultExtension},
		Format:     FormatPlantUML,
		Cache:      true,
	}
}

// Load reads path, or DefaultFile if path is empty, on top of Default.
//
// A missing DefaultFile is not an error; a missing explicit path is.
// Unknown keys are rejected so that typos do not silently fall back to
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks extensions and format.
func (c Config) Validate() error {
	if len(c.Extensions) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "at least one extension is required")
	}
	for _, ext := range c.Extensions {
		if err := errors.ValidateExtension(ext); err != nil {
			return err
		}
	}
	return ValidateFormat(c.Format)
}

// ValidateFormat checks that f is one of Formats.
func ValidateFormat(f string) error {
	if !slices.Contains(Formats, f) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", f, strings.Join(Formats, ", "))
	}
	return nil
}

// DiscoverOptions converts the scanning settings for [scan.Discover].
func (c Config) DiscoverOptions() scan.DiscoverOptions {
	return scan.DiscoverOptions{Extensions: c.Extensions, Exclude: c.Exclude}
}
