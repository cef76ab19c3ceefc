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

// Package lexer buffers a token.Classifier into an unbounded-lookahead token
// source, tracks #line-adjusted source locations, accrues Doxygen comments,
// and provides the scoped-substream facility the parser uses for bounded
// speculative re-parsing.
package lexer

import (
	"regexp"
	"strings"

	"github.com/robotpy/cxxheaderparser/token"
)

// discarded reports the kinds that are never returned to the parser from
// Token/TokenEOFOK; their side effects (doc-comment accrual, line counting) are all that matter.
func discarded(k token.Kind) bool {
	return k == token.Newline || k == token.CommentSingleLine || k == token.CommentMultiLine
}

var lineDirectiveRe = regexp.MustCompile(`^#line (\d+) "(.*)"$`)

// Lexer is a single-use, single-threaded token source over one translation
// unit's worth of source text.
type Lexer struct {
	filename   string
	classifier *token.Classifier

	lineOffset int

	// lookahead is the front-of-stream pushback/lookahead buffer; tokens
	// are appended to its back by fill and removed from its front by
	// Token. lookaheadStack holds outer lookaheads saved by
	// PushTokenGroup, mirroring the original lexer's lookahead_stack of
	// deques.
	lookahead      []token.Token
	lookaheadStack [][]token.Token

	// groupDepth > 0 means the current lookahead is a scoped substream
	// (see PushTokenGroup): running out of tokens is a recoverable
	// condition the parser turns into "not parseable as a type", not an
	// ordinary EOF.
	groupDepth int

	comments []string
}

// New returns a Lexer over data, reporting locations under filename until a
// #line directive changes it.
func New(filename, data string) *Lexer {
	return &Lexer{
		filename:   filename,
		classifier: token.NewClassifier(data),
	}
}

// CurrentLocation is the location that would be reported for the next token
// produced from the underlying classifier (not the lookahead buffer).
func (l *Lexer) CurrentLocation() token.Location {
	return token.Location{Filename: l.filename, Line: l.classifier.Line() - l.lineOffset}
}

// ErrEOF is returned by raw token production at end of input.
type ErrEOF struct{}

func (ErrEOF) Error() string { return "unexpected end of file" }

// ErrGroupExhausted is raised when a scoped substream (see PushTokenGroup)
// runs out of tokens; the parser catches this to mean "this substream does
// not parse as a type", not a hard failure.
type ErrGroupExhausted struct{}

func (ErrGroupExhausted) Error() string { return "token group exhausted" }

// fill pulls raw tokens from the classifier (or raises ErrGroupExhausted if
// inside an empty scoped substream), handling #line remap, doc-comment
// accrual, and discard-kind filtering, until one retained token has been
// appended to the lookahead buffer.
func (l *Lexer) fill() error {
	for {
		if l.groupDepth > 0 {
			return ErrGroupExhausted{}
		}
		raw, err := l.classifier.Next()
		if err != nil {
			return &LexRawError{Err: err, Location: l.CurrentLocation()}
		}
		if raw.Kind == token.EOF {
			l.lookahead = append(l.lookahead, token.Token{Kind: token.EOF, Location: l.CurrentLocation()})
			return nil
		}

		loc := token.Location{Filename: l.filename, Line: raw.Line - l.lineOffset}

		switch raw.Kind {
		case token.PrecompMacro:
			if m := lineDirectiveRe.FindStringSubmatch(raw.Text); m != nil {
				n := atoiSafe(m[1])
				l.filename = m[2]
				l.lineOffset = 1 + (raw.Line) - n
				continue
			}
		case token.CommentSingleLine:
			text := strings.TrimRight(raw.Text, "\n")
			if strings.HasPrefix(text, "///") || strings.HasPrefix(text, "//!") {
				l.comments = append(l.comments, strings.TrimLeft(text, "\t "))
			}
			continue
		case token.CommentMultiLine:
			if strings.HasPrefix(raw.Text, "/**") || strings.HasPrefix(raw.Text, "/*!") {
				l.comments = token.CleanDoxygenBlock(raw.Text)
			}
			continue
		case token.Newline:
			l.comments = nil
			continue
		}

		l.lookahead = append(l.lookahead, token.Token{Kind: raw.Kind, Text: raw.Text, Location: loc})
		return nil
	}
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// LexRawError wraps a token.ErrClassify with the location it occurred at.
// ErrGroupExhausted is returned as is, not wrapped in a LexRawError.
type LexRawError struct {
	Err      error
	Location token.Location
}

func (e *LexRawError) Error() string { return e.Err.Error() }
func (e *LexRawError) Unwrap() error { return e.Err }

func (l *Lexer) ensure(n int) error {
	for len(l.lookahead) <= n {
		if err := l.fill(); err != nil {
			return err
		}
	}
	return nil
}

// Token returns and consumes the next non-discarded token, failing if input
// is exhausted.
func (l *Lexer) Token() (token.Token, error) {
	if err := l.ensure(0); err != nil {
		return token.Token{}, err
	}
	t := l.lookahead[0]
	l.lookahead = l.lookahead[1:]
	if t.Kind == token.EOF {
		return t, &ErrEOF{}
	}
	return t, nil
}

// TokenEOFOK is Token but returns the EOF token instead of failing.
func (l *Lexer) TokenEOFOK() (token.Token, error) {
	if err := l.ensure(0); err != nil {
		return token.Token{}, err
	}
	t := l.lookahead[0]
	l.lookahead = l.lookahead[1:]
	return t, nil
}

// Peek returns, without consuming, the next token.
func (l *Lexer) Peek() (token.Token, error) {
	return l.PeekN(0)
}

// PeekN returns, without consuming, the token n positions ahead (0 = next).
func (l *Lexer) PeekN(n int) (token.Token, error) {
	if err := l.ensure(n); err != nil {
		return token.Token{}, err
	}
	return l.lookahead[n], nil
}

// ReturnToken pushes t back to the front of the lookahead.
func (l *Lexer) ReturnToken(t token.Token) {
	l.lookahead = append([]token.Token{t}, l.lookahead...)
}

// ReturnTokens pushes ts back to the front of the lookahead, preserving
// their order.
func (l *Lexer) ReturnTokens(ts []token.Token) {
	l.lookahead = append(append([]token.Token{}, ts...), l.lookahead...)
}

// TokenIf consumes and returns the next token if its Kind is one of kinds;
// otherwise it is pushed back and ok is false.
func (l *Lexer) TokenIf(kinds ...token.Kind) (t token.Token, ok bool, err error) {
	t, err = l.TokenEOFOK()
	if err != nil {
		return token.Token{}, false, err
	}
	for _, k := range kinds {
		if t.Kind == k {
			return t, true, nil
		}
	}
	l.ReturnToken(t)
	return token.Token{}, false, nil
}

// TokenIfNot is TokenIf's complement: consumes and returns the next token if
// its Kind is none of kinds.
func (l *Lexer) TokenIfNot(kinds ...token.Kind) (t token.Token, ok bool, err error) {
	t, err = l.TokenEOFOK()
	if err != nil {
		return token.Token{}, false, err
	}
	if t.Kind == token.EOF {
		l.ReturnToken(t)
		return token.Token{}, false, nil
	}
	for _, k := range kinds {
		if t.Kind == k {
			l.ReturnToken(t)
			return token.Token{}, false, nil
		}
	}
	return t, true, nil
}

// TokenIfVal consumes and returns the next token if its Text is one of vals
// (used for keyword/punctuator spellings, e.g. TokenIfVal("const", "volatile")).
func (l *Lexer) TokenIfVal(vals ...string) (t token.Token, ok bool, err error) {
	t, err = l.TokenEOFOK()
	if err != nil {
		return token.Token{}, false, err
	}
	for _, v := range vals {
		if t.Text == v && t.Kind != token.EOF {
			return t, true, nil
		}
	}
	l.ReturnToken(t)
	return token.Token{}, false, nil
}

// TokenIfInSet consumes and returns the next token if its Text is in set.
func (l *Lexer) TokenIfInSet(set map[string]bool) (t token.Token, ok bool, err error) {
	t, err = l.TokenEOFOK()
	if err != nil {
		return token.Token{}, false, err
	}
	if t.Kind != token.EOF && set[t.Text] {
		return t, true, nil
	}
	l.ReturnToken(t)
	return token.Token{}, false, nil
}

// TokenPeekIf peeks (without consuming) whether the next token's Kind is one
// of kinds.
func (l *Lexer) TokenPeekIf(kinds ...token.Kind) (bool, error) {
	t, err := l.Peek()
	if err != nil {
		return false, err
	}
	for _, k := range kinds {
		if t.Kind == k {
			return true, nil
		}
	}
	return false, nil
}

// GetDoxygen returns any pending preceding doc comment. If none is pending,
// it probes forward (without permanently consuming non-matching tokens) for
// a trailing same-statement "///"/"//!" comment, matching §4.2/§9's
// two-phase lookup: (1) accumulated comments before the statement, (2) a
// single-token lookahead for a trailing comment on the same logical line.
func (l *Lexer) GetDoxygen() string {
	if len(l.comments) != 0 {
		s := strings.Join(l.comments, "\n")
		l.comments = nil
		return s
	}
	// Phase 2: probe one token ahead without disturbing pending comments
	// gathered by reading it (a NEWLINE between here and the next real
	// token means there was no trailing same-line comment).
	if err := l.ensure(0); err != nil {
		return ""
	}
	if len(l.comments) != 0 {
		s := strings.Join(l.comments, "\n")
		l.comments = nil
		return s
	}
	return ""
}

// PhonyEnding is a sentinel the parser appends to a token run before
// PushTokenGroup-ing it for a speculative type-id parse (§4.5 "Template
// argument ambiguity"). Its Kind/Text never match any real lookahead test
// (TokenIfInSet, TokenIfVal, a literal "NAME"/punctuator compare), so a
// speculative parse that peeks one token past its real content sees it sit
// harmlessly in the buffer rather than triggering ErrGroupExhausted; the
// caller then requires it as the parse's explicit terminator, matching
// lexer.py's PhonyEnding/parser.py's _next_token_must_be(PhonyEnding.type).
var PhonyEnding = token.Token{Kind: token.Invalid, Text: "\x00phony-ending\x00"}

// PushTokenGroup enters a scoped substream: for the lifetime of the scope,
// the lookahead is replaced by toks, and exhausting it raises
// ErrGroupExhausted instead of ordinary EOF. Used by the parser to
// speculatively re-parse a collected token run as a type-id (§4.5 "Template
// argument ambiguity").
func (l *Lexer) PushTokenGroup(toks []token.Token) {
	l.lookaheadStack = append(l.lookaheadStack, l.lookahead)
	l.lookahead = append([]token.Token{}, toks...)
	l.groupDepth++
}

// PopTokenGroup exits a scope entered by PushTokenGroup, discarding any
// unconsumed tokens from the inner group and restoring the outer lookahead.
func (l *Lexer) PopTokenGroup() {
	n := len(l.lookaheadStack)
	outer := l.lookaheadStack[n-1]
	l.lookaheadStack = l.lookaheadStack[:n-1]
	l.lookahead = outer
	l.groupDepth--
}

// InGroup reports whether the lexer is currently inside a scoped substream.
func (l *Lexer) InGroup() bool { return l.groupDepth > 0 }

// Remaining drains and returns every token left in the current lookahead.
// The parser does not call it: it detects leftover tokens after a
// speculative type parse by requiring the PhonyEnding sentinel instead.
func (l *Lexer) Remaining() []token.Token {
	out := l.lookahead
	l.lookahead = nil
	return out
}
