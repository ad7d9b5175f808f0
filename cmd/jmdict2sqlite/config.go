// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/urfave/cli/v2"
)

// Config holds conversion settings.
type Config struct {
	License        string   `yaml:"license"         env:"JMDICT_LICENSE"`
	GlossLanguages []string `yaml:"gloss_languages" env:"JMDICT_GLOSS_LANGUAGES" env-separator:","`
	EscapeHTML     bool     `yaml:"escape_html"     env:"JMDICT_ESCAPE_HTML"`
	LogLevel       string   `yaml:"log_level"       env:"JMDICT_LOG_LEVEL"       env-default:"info"`
	LogFormat      string   `yaml:"log_format"      env:"JMDICT_LOG_FORMAT"      env-default:"text"`
}

// LoadConfig reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: config file %s not found", ErrJMdict, path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%w: read config %s: %w", ErrJMdict, path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%w: read env: %w", ErrJMdict, err)
	}

	return &cfg, nil
}

// loadConfig loads the configuration and applies flags set on the command
// line on top of it.
func loadConfig(c *cli.Context) (*Config, error) {
	cfg, err := LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("license") {
		cfg.License = c.String("license")
	}
	if c.IsSet("lang") {
		cfg.GlossLanguages = c.StringSlice("lang")
	}
	if c.IsSet("escape-html") {
		cfg.EscapeHTML = c.Bool("escape-html")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}

	return cfg, nil
}
