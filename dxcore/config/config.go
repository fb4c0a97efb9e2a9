/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads dxbump settings with koanf.
//
// Sources are layered in increasing priority:
//
//  1. built-in defaults
//  2. the YAML file named by LoadOptions.Path, or .dxbump.yaml in
//     LoadOptions.Dir when it exists
//  3. DXBUMP_ environment variables, where "__" separates nesting levels:
//     DXBUMP_CHANGELOG__INCLUDE_ALL=true sets changelog.include_all
//
// The merged result is validated once; every invalid key is reported.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dirpx.dev/rxmerr"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"dirpx.dev/dxbump/dxcore/changelog"
	dxerrors "dirpx.dev/dxbump/dxcore/errors"
	"dirpx.dev/dxbump/dxcore/model"
	"dirpx.dev/dxbump/dxcore/model/change"
	"dirpx.dev/dxbump/dxcore/model/conventional"
)

const (
	// FileName is the project config file looked up in the working directory.
	FileName = ".dxbump.yaml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "DXBUMP_"

	// Log formats.
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config is the merged dxbump configuration.
type Config struct {
	Changelog ChangelogConfig `koanf:"changelog"`
	Bump      BumpConfig      `koanf:"bump"`

	// Links selects the changelog link builder: auto, plain or github.
	Links string `koanf:"links"`

	// Remote names the git remote whose URL feeds the link builder.
	Remote string `koanf:"remote"`

	// RemoteURL overrides the URL read from Remote.
	RemoteURL string `koanf:"remote_url"`

	// VersionFile is an optional plain-text manifest that receives the
	// released version.
	VersionFile string `koanf:"version_file"`

	Log LogConfig `koanf:"log"`
}

// ChangelogConfig controls changelog rendering.
type ChangelogConfig struct {
	Dir        string `koanf:"dir"`
	IncludeAll bool   `koanf:"include_all"`
}

// BumpConfig controls the version decision.
type BumpConfig struct {
	Strategy   string   `koanf:"strategy"`
	PatchTypes []string `koanf:"patch_types"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// LoadOptions selects the config sources.
type LoadOptions struct {
	// Path is an explicit config file. It must exist when set.
	Path string

	// Dir is searched for FileName when Path is empty. Empty means the
	// current directory.
	Dir string
}

// Defaults returns the built-in values keyed by their dotted path.
func Defaults() map[string]any {
	return map[string]any{
		"changelog.dir":         ".",
		"changelog.include_all": false,
		"bump.strategy":         model.MaxSeverityStr,
		"bump.patch_types":      []string{conventional.FixStr},
		"links":                 changelog.LinksAuto,
		"remote":                "origin",
		"remote_url":            "",
		"version_file":          "",
		"log.level":             zerolog.InfoLevel.String(),
		"log.format":            FormatConsole,
	}
}

// Load merges defaults, the config file and the environment, then validates
// the result.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	path, err := configPath(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configPath(opts LoadOptions) (string, error) {
	if opts.Path != "" {
		if _, err := os.Stat(opts.Path); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return opts.Path, nil
	}

	path := filepath.Join(opts.Dir, FileName)
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return path, nil
	case errors.Is(err, os.ErrNotExist):
		return "", nil
	default:
		return "", fmt.Errorf("config file: %w", err)
	}
}

// envValue maps DXBUMP_BUMP__PATCH_TYPES=fix,perf to
// bump.patch_types=[fix perf].
func envValue(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")

	if key == "bump.patch_types" {
		var types []string
		for _, t := range strings.Split(value, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
		return key, types
	}
	return key, value
}

// Validate reports every unusable setting as a *errors.ConfigError.
func (c *Config) Validate() error {
	errs := rxmerr.NewCollector()

	if strings.TrimSpace(c.Changelog.Dir) == "" {
		errs.Append(&dxerrors.ConfigError{Key: "changelog.dir", Reason: "must not be empty"})
	}
	if _, err := model.ParseStrategy(c.Bump.Strategy); err != nil {
		errs.Append(&dxerrors.ConfigError{Key: "bump.strategy", Value: c.Bump.Strategy, Reason: "must be max-severity or sequential"})
	}
	for _, t := range c.Bump.PatchTypes {
		if _, err := conventional.ParseType(t); err != nil {
			errs.Append(&dxerrors.ConfigError{Key: "bump.patch_types", Value: t, Reason: "unknown commit type"})
		}
	}
	switch c.Links {
	case changelog.LinksAuto, changelog.LinksPlain, changelog.LinksGitHub:
	default:
		errs.Append(&dxerrors.ConfigError{Key: "links", Value: c.Links, Reason: "must be auto, plain or github"})
	}
	if c.Remote == "" && c.RemoteURL == "" && c.Links == changelog.LinksGitHub {
		errs.Append(&dxerrors.ConfigError{Key: "remote", Reason: "github links need a remote or remote_url"})
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs.Append(&dxerrors.ConfigError{Key: "log.level", Value: c.Log.Level, Reason: err.Error()})
	}
	if c.Log.Format != FormatConsole && c.Log.Format != FormatJSON {
		errs.Append(&dxerrors.ConfigError{Key: "log.format", Value: c.Log.Format, Reason: "must be console or json"})
	}

	return errs.Err()
}

// Policy builds the bump policy from the bump section.
func (c *Config) Policy() (change.Policy, error) {
	strategy, err := model.ParseStrategy(c.Bump.Strategy)
	if err != nil {
		return change.Policy{}, &dxerrors.ConfigError{Key: "bump.strategy", Value: c.Bump.Strategy, Reason: err.Error()}
	}

	p := change.Policy{Strategy: strategy}
	for _, name := range c.Bump.PatchTypes {
		t, err := conventional.ParseType(name)
		if err != nil {
			return change.Policy{}, &dxerrors.ConfigError{Key: "bump.patch_types", Value: name, Reason: err.Error()}
		}
		p.PatchTypes = append(p.PatchTypes, t)
	}
	return p, p.Validate()
}

// ChangelogDir resolves changelog.dir against base unless it is absolute.
func (c *Config) ChangelogDir(base string) string {
	if filepath.IsAbs(c.Changelog.Dir) {
		return c.Changelog.Dir
	}
	return filepath.Join(base, c.Changelog.Dir)
}
