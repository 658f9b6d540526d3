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
	"io"
	"os"

	"github.com/ianlewis/go-dictzip"
	"github.com/urfave/cli/v2"
)

func compressCommand() *cli.Command {
	return &cli.Command{
		Name:  "compress",
		Usage: "Write a dictzip compressed copy of the jisyo file",
		Description: `Compress the jisyo file into a .dz file next to it. The compressed
file is read in place of the jisyo file when no cache is present.`,
		Action: func(c *cli.Context) error {
			path, err := jisyoPath(c)
			if err != nil {
				return err
			}

			dzPath, err := compressJisyo(path)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrSkkdict, err)
			}

			_, err = fmt.Fprintln(c.App.Writer, dzPath)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrSkkdict, err)
			}
			return nil
		},
	}
}

// compressJisyo writes path + ".dz" and returns its path.
func compressJisyo(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening jisyo: %w", err)
	}
	defer src.Close()

	dzPath := path + ".dz"
	dst, err := os.Create(dzPath)
	if err != nil {
		return "", fmt.Errorf("creating %q: %w", dzPath, err)
	}
	defer dst.Close()

	z, err := dictzip.NewWriter(dst)
	if err != nil {
		return "", fmt.Errorf("creating dictzip writer: %w", err)
	}
	if _, err := io.Copy(z, src); err != nil {
		return "", fmt.Errorf("compressing %q: %w", path, err)
	}
	if err := z.Close(); err != nil {
		return "", fmt.Errorf("compressing %q: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("closing %q: %w", dzPath, err)
	}
	return dzPath, nil
}
