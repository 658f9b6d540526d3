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

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-skkdict"
	"github.com/ianlewis/go-skkdict/agent"
	"github.com/ianlewis/go-skkdict/internal/config"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError

	// ExitCodeNotFound is the exit code when a reading has no candidates.
	ExitCodeNotFound
)

// ErrSkkdict is a parent error for all command errors.
var ErrSkkdict = errors.New("skkdict")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrSkkdict)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

func newSkkdictApp(cfg *config.Config, log *zap.Logger) *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Look up words in SKK dictionaries.",
		Description: strings.Join([]string{
			"SKK dictionary utility written in Go.",
			"http://github.com/ianlewis/go-skkdict",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dict",
				Usage:   "read the jisyo file at `PATH`",
				Aliases: []string{"d"},
				Value:   cfg.Path,
			},
			&cli.StringFlag{
				Name:    "encoding",
				Usage:   "jisyo file text `ENCODING`",
				Aliases: []string{"e"},
				Value:   cfg.Encoding,
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "do not write the serialized cache",
				Value: cfg.NoCache,
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			lookupCommand(cfg, log),
			buildCommand(cfg, log),
			compressCommand(),
		},
	}
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, `%s %s
Copyright (c) %s

This program is free software; you can redistribute it and/or modify it under
the terms of the Apache License 2.0.
`, c.App.Name, versionInfo.GitVersion, c.App.Copyright)
	if err != nil {
		return fmt.Errorf("%w: printing version: %w", ErrSkkdict, err)
	}
	return nil
}

// jisyoPath returns the expanded jisyo path given on the command line or in
// the configuration. When the default path does not exist the platform's
// dictionary locations are searched.
func jisyoPath(c *cli.Context) (string, error) {
	path, err := agent.ExpandPath(c.String("dict"))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFlagParse, err)
	}
	if c.IsSet("dict") || exists(path) {
		return path, nil
	}
	for _, p := range dictLocations() {
		if exists(p) {
			return p, nil
		}
	}
	return path, nil
}

func exists(path string) bool {
	for _, p := range append([]string{path, skkdict.CachePath(path)}, skkdict.CompressedPaths(path)...) {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}

// loadOptions returns the load options for the command line flags.
func loadOptions(c *cli.Context, cfg *config.Config, log *zap.Logger) (*skkdict.Options, error) {
	encCfg := *cfg
	encCfg.Encoding = c.String("encoding")
	enc, err := encCfg.TextEncoding()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}
	return &skkdict.Options{
		Logger:   log,
		Encoding: enc,
		NoCache:  c.Bool("no-cache"),
	}, nil
}
