// Copyright (C) 2017 Google Inc.
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

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/robotpy/cxxheaderparser/options"
	"github.com/robotpy/cxxheaderparser/simple"
)

// newParseCmd is a quiet "does this parse" check: no tree is printed, only
// a non-zero exit and a located error message on failure. Useful as a
// pre-commit/CI gate over a header tree without paying for a full dump.
func newParseCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "parse <header-glob>...",
		Short: "Check that the given headers parse without error",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandGlobs(args)
			if err != nil {
				return err
			}

			opts := options.NewDefault()
			opts.Verbose = verbose

			var failed int
			for _, f := range files {
				if _, err := simple.ParseFile(f, opts); err != nil {
					failed++
					fmt.Fprintln(cmd.ErrOrStderr(), errors.Wrapf(err, "%s", f).Error())
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\n", f)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed to parse", failed, len(files))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace parse errors to stderr")
	return cmd
}
