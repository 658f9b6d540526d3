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
	"io/fs"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ianlewis/go-skkdict"
	"github.com/ianlewis/go-skkdict/internal/config"
)

func buildCommand(cfg *config.Config, log *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Rebuild the serialized dictionary cache",
		Description: `Parse the jisyo file and write a new serialized cache next to it.
Any existing cache is removed first.`,
		Action: func(c *cli.Context) error {
			path, err := jisyoPath(c)
			if err != nil {
				return err
			}
			opts, err := loadOptions(c, cfg, log)
			if err != nil {
				return err
			}
			opts.NoCache = false

			cachePath := skkdict.CachePath(path)
			if err := os.Remove(cachePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%w: removing cache: %w", ErrSkkdict, err)
			}

			d, err := skkdict.Load(path, opts)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrSkkdict, err)
			}
			if _, err := os.Stat(cachePath); err != nil {
				return fmt.Errorf("%w: cache not written: %w", ErrSkkdict, err)
			}

			_, err = fmt.Fprintf(c.App.Writer, "%s: %d entries\n", cachePath, d.Entries())
			if err != nil {
				return fmt.Errorf("%w: %w", ErrSkkdict, err)
			}
			return nil
		},
	}
}
