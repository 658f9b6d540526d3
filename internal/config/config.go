// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads skkdict command configuration.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Config is the skkdict command configuration.
type Config struct {
	// Path is the jisyo file path. A leading "~" is expanded.
	Path string `yaml:"path" env:"SKKDICT_PATH" env-default:"~/.skk/SKK-JISYO.L"`

	// Encoding is the jisyo file text encoding.
	Encoding string `yaml:"encoding" env:"SKKDICT_ENCODING" env-default:"euc-jp"`

	// NoCache disables writing the serialized cache.
	NoCache bool `yaml:"no_cache" env:"SKKDICT_NO_CACHE"`

	// LogLevel is the minimum log level.
	LogLevel string `yaml:"log_level" env:"SKKDICT_LOG_LEVEL" env-default:"warn"`

	// LogDev enables human readable development logging.
	LogDev bool `yaml:"log_dev" env:"SKKDICT_LOG_DEV"`
}

// Load reads configuration from the YAML file named by SKKDICT_CONFIG, if
// set, and the environment. Priority: ENV > YAML > defaults.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("SKKDICT_CONFIG"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if _, err := cfg.TextEncoding(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}
	return &cfg, nil
}

// TextEncoding returns the configured jisyo encoding.
func (c *Config) TextEncoding() (encoding.Encoding, error) {
	enc, err := htmlindex.Get(c.Encoding)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", c.Encoding, err)
	}
	return enc, nil
}

// Logger builds a logger for the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if c.LogDev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log, nil
}
