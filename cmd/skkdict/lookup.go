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
	"fmt"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ianlewis/go-skkdict/agent"
	"github.com/ianlewis/go-skkdict/dict"
	"github.com/ianlewis/go-skkdict/internal/config"
)

func lookupCommand(cfg *config.Config, log *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "Look up candidates for readings",
		ArgsUsage: "READING...",
		Description: `Look up conversion candidates. An okuri-ari reading ends with
its inflection marker, e.g. "わたr".`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "offset",
				Usage: "skip the first `N` candidates",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "print at most `N` candidates per reading",
				Value: 100,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("%w: missing reading", ErrFlagParse)
			}

			path, err := jisyoPath(c)
			if err != nil {
				return err
			}
			opts, err := loadOptions(c, cfg, log)
			if err != nil {
				return err
			}

			a := agent.New(&agent.Options{
				Logger: log,
				Load:   opts,
			})
			if r := a.Build(path); r != agent.Success {
				return fmt.Errorf("%w: %s: %q", ErrSkkdict, r, path)
			}
			a.Wait()
			if err := a.Err(); err != nil {
				return fmt.Errorf("%w: %w", ErrSkkdict, err)
			}

			tbl := table.New("Reading", "#", "Candidate").WithWriter(c.App.Writer)
			var missing []string
			for _, key := range c.Args().Slice() {
				reading, m := dict.SplitKey(key)
				if a.Lookup(reading, m) == 0 {
					missing = append(missing, key)
					continue
				}
				offset := c.Int("offset")
				for i, cand := range a.Results(offset, c.Int("limit")) {
					tbl.AddRow(key, offset+i+1, cand)
				}
			}
			tbl.Print()

			if len(missing) > 0 {
				return cli.Exit(fmt.Sprintf("%s: no candidates for %q", c.App.Name, missing), ExitCodeNotFound)
			}
			return nil
		},
	}
}
