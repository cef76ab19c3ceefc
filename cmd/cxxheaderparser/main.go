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

// Command cxxheaderparser is the CLI front end: an external collaborator
// per the parser's own scope (§1), consuming the simple package's
// aggregated tree and dumping it as JSON, YAML, or a lipgloss-rendered
// tree.
package main

import (
	"fmt"
	"os"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

// run wraps rootCmd().Execute the way core/app.Run wraps a daemon's main
// task: recover a panic, translate it to a process exit code, and leave
// everything else (flag parsing, subcommand dispatch) to cobra.
func run() int {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "cxxheaderparser: panic: %v\n", r)
			os.Exit(exitFailure)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		return exitFailure
	}
	return exitSuccess
}

func main() {
	os.Exit(run())
}
