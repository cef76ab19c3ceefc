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
	"encoding/json"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/robotpy/cxxheaderparser/options"
	"github.com/robotpy/cxxheaderparser/simple"
)

func newDumpCmd() *cobra.Command {
	var (
		format     string
		verbose    bool
		preprocess string
	)

	cmd := &cobra.Command{
		Use:   "dump <header-glob>...",
		Short: "Parse one or more headers and dump the resulting AST",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandGlobs(args)
			if err != nil {
				return err
			}

			opts := options.NewDefault()
			opts.Verbose = verbose
			if preprocess != "" {
				opts.Preprocessor = shellPreprocessor(preprocess)
			}

			for _, f := range files {
				data, err := simple.ParseFile(f, opts)
				if err != nil {
					return errors.Wrapf(err, "parsing %s", f)
				}
				if err := printData(cmd, format, f, data); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "pretty", "output format: json, yaml, or pretty")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace parse errors to stderr")
	cmd.Flags().StringVar(&preprocess, "preprocess", "", "shell out to this preprocessor binary (e.g. gcc, clang) with -E before parsing")

	return cmd
}

// expandGlobs resolves doublestar patterns (supporting "**") against the
// filesystem, preserving the pack-grounded multi-file input convenience
// named in SPEC_FULL.md's DOMAIN STACK (EngFlow/gazelle_cc,
// bufbuild/protocompile both take glob-expanded file lists this way).
func expandGlobs(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, pat := range patterns {
		matches, err := doublestar.FilepathGlob(pat)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid glob %q", pat)
		}
		if len(matches) == 0 {
			// not a glob pattern, or a glob that matched nothing: treat
			// as a literal path so "cxxheaderparser dump foo.hpp" still
			// works without escaping.
			matches = []string{pat}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// shellPreprocessor is a best-effort options.Preprocessor instantiation
// shelling out to an external `gcc -E`/`clang -E`-style binary, per
// SPEC_FULL.md's "Preprocessor passthrough hook" supplemented feature. It
// is not part of the library's contract -- only this CLI wires it.
func shellPreprocessor(bin string) options.Preprocessor {
	return func(filename, text string) (string, error) {
		cmd := exec.Command(bin, "-E", "-x", "c++", "-")
		cmd.Stdin = strings.NewReader(text)
		out, err := cmd.Output()
		if err != nil {
			return "", errors.Wrapf(err, "running %s -E on %s", bin, filename)
		}
		return string(out), nil
	}
}

func printData(cmd *cobra.Command, format, filename string, data *simple.ParsedData) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case "yaml":
		b, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		_, err = out.Write(b)
		return err
	case "pretty":
		fmt.Fprintln(out, prettyStyle.Render(filename))
		fmt.Fprintln(out, renderNamespaceTree(data.Namespace, 0))
		return nil
	default:
		return fmt.Errorf("unknown --format %q (want json, yaml, or pretty)", format)
	}
}

var (
	prettyStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	nsStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	classStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	leafStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// renderNamespaceTree renders ns and its children as an indented tree --
// the "pretty" mode's analogue of the original dumper's pprint.pprint
// output, but readable as a tree rather than a nested dict literal.
func renderNamespaceTree(ns *simple.NamespaceScope, depth int) string {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	name := ns.Name
	if name == "" {
		name = "(global)"
	}
	s := fmt.Sprintf("%s%s %s\n", indent, nsStyle.Render("namespace"), name)

	for _, c := range ns.Classes {
		s += renderClassTree(c, depth+1)
	}
	for _, fn := range ns.Functions {
		s += fmt.Sprintf("%s  %s %s\n", indent, leafStyle.Render("function"), fn.Name.Name())
	}
	for _, v := range ns.Variables {
		s += fmt.Sprintf("%s  %s %s\n", indent, leafStyle.Render("variable"), v.Name.Name())
	}
	for _, e := range ns.Enums {
		s += fmt.Sprintf("%s  %s %s\n", indent, leafStyle.Render("enum"), e.Typename.Name())
	}
	for _, td := range ns.Typedefs {
		s += fmt.Sprintf("%s  %s %s\n", indent, leafStyle.Render("typedef"), td.Name)
	}
	for _, child := range sortedNamespaceNames(ns.Namespaces) {
		s += renderNamespaceTree(ns.Namespaces[child], depth+1)
	}
	return s
}

func renderClassTree(cs *simple.ClassScope, depth int) string {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	s := fmt.Sprintf("%s%s %s\n", indent, classStyle.Render(string(cs.ClassDecl.ClasskeyOf())), cs.ClassDecl.Typename.Name())
	for _, f := range cs.Fields {
		s += fmt.Sprintf("%s  %s %s\n", indent, leafStyle.Render("field"), f.Name)
	}
	for _, m := range cs.Methods {
		s += fmt.Sprintf("%s  %s %s\n", indent, leafStyle.Render("method"), m.Name.Name())
	}
	for _, nested := range cs.Classes {
		s += renderClassTree(nested, depth+1)
	}
	return s
}

func sortedNamespaceNames(m map[string]*simple.NamespaceScope) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
