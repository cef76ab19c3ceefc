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

// Package cxxerrors defines the two error kinds the parser ever raises:
// LexError (the classifier saw input it cannot tokenize) and ParseError (a
// well-formed token in an unexpected position, or a failed semantic
// precondition). Both render as "file:line: message", the same
// "%s:%v:%v: %s" idiom core/text/parse.Error.Format uses, and both support
// errors.Cause via github.com/pkg/errors so callers can unwrap to an
// underlying cause the way core/app.doRun checks errors.Cause(err).
package cxxerrors

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/robotpy/cxxheaderparser/token"
)

// LexError is raised when the classifier encounters input it cannot
// recognize: an unterminated string, a bad character constant, an invalid
// octal constant, an unmatched quote, or an illegal character.
type LexError struct {
	Message  string
	Location token.Location
	cause    error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: lex error: %s", e.Location, e.Message)
}

// Cause implements the interface github.com/pkg/errors.Cause dispatches on.
func (e *LexError) Cause() error { return e.cause }

// NewLexError wraps cause (which may be nil) as a LexError at loc.
func NewLexError(msg string, loc token.Location, cause error) *LexError {
	return &LexError{Message: msg, Location: loc, cause: cause}
}

// ParseError is raised when the parser sees a well-formed token in an
// unexpected position, or a semantic precondition fails (friend outside a
// class, mutable on a non-field, and similar checks named in §7).
type ParseError struct {
	Message  string
	Token    token.Token
	Location token.Location
	cause    error
}

func (e *ParseError) Error() string {
	tok := e.Token.Text
	if tok == "" {
		tok = e.Token.Kind.String()
	}
	return fmt.Sprintf("%s: parse error evaluating '%s': %s", e.Location, tok, e.Message)
}

func (e *ParseError) Cause() error { return e.cause }

// NewParseError builds a ParseError for the given offending token.
func NewParseError(msg string, tok token.Token) *ParseError {
	return &ParseError{Message: msg, Token: tok, Location: tok.Location}
}

// Wrap attaches a ParseError context to an existing error the way
// errors.Wrap does, preserving the original as Cause().
func Wrap(err error, msg string, tok token.Token) error {
	if err == nil {
		return nil
	}
	return &ParseError{
		Message:  msg + ": " + err.Error(),
		Token:    tok,
		Location: tok.Location,
		cause:    err,
	}
}

// Cause is a re-export of github.com/pkg/errors.Cause for callers that only
// import this package.
func Cause(err error) error { return errors.Cause(err) }
