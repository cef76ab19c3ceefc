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

// Package options holds the parser's configuration record.
package options

// Preprocessor is an optional callable applied to the raw source text before
// lexing. It must emit #line directives for any location remapping it wants
// the lexer to honor (§6 "Preprocessor contract").
type Preprocessor func(filename, text string) (string, error)

// ParserOptions configures a single parse.
type ParserOptions struct {
	// Verbose enables diagnostic tracing (internal/xlog) on parse errors.
	Verbose bool

	// ConvertVoidToZeroParams normalizes a single `(void)` parameter list
	// to an empty parameter list. Defaults to true in NewDefault.
	ConvertVoidToZeroParams bool

	// Preprocessor, if set, is run over the source text before the lexer
	// ever sees it.
	Preprocessor Preprocessor
}

// NewDefault returns the default options: ConvertVoidToZeroParams true,
// everything else off.
func NewDefault() *ParserOptions {
	return &ParserOptions{ConvertVoidToZeroParams: true}
}

// OrDefault returns o if non-nil, else NewDefault().
func OrDefault(o *ParserOptions) *ParserOptions {
	if o == nil {
		return NewDefault()
	}
	return o
}
