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

// Package parser is the recursive-descent declaration parser: it drives a
// lexer.Lexer token-at-a-time, maintains the parserstate scope-frame stack,
// and emits completed declarations through a visitor.Visitor. It never
// builds an expression AST and never evaluates a preprocessor directive; it
// only recognizes declaration syntax well enough to produce the structural
// model named in the data model.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/robotpy/cxxheaderparser/ast"
	"github.com/robotpy/cxxheaderparser/cxxerrors"
	"github.com/robotpy/cxxheaderparser/internal/xlog"
	"github.com/robotpy/cxxheaderparser/lexer"
	"github.com/robotpy/cxxheaderparser/options"
	"github.com/robotpy/cxxheaderparser/parserstate"
	"github.com/robotpy/cxxheaderparser/token"
	"github.com/robotpy/cxxheaderparser/visitor"
)

// CxxParser is a single-use parser over one translation unit's worth of
// source text. Create one with New and call Parse once.
type CxxParser struct {
	filename string
	lex      *lexer.Lexer
	visitor  visitor.Visitor
	options  *options.ParserOptions

	state            parserstate.State
	currentNamespace ast.NamespaceDecl

	anonID int

	log xlog.Logger
}

// New builds a parser over content, running options.Preprocessor over it
// first if one is set.
func New(filename, content string, v visitor.Visitor, opts *options.ParserOptions) (*CxxParser, error) {
	opts = options.OrDefault(opts)
	if opts.Preprocessor != nil {
		out, err := opts.Preprocessor(filename, content)
		if err != nil {
			return nil, err
		}
		content = out
	}

	globalNS := ast.NamespaceDecl{}
	p := &CxxParser{
		filename:         filename,
		lex:              lexer.New(filename, content),
		visitor:          v,
		options:          opts,
		currentNamespace: globalNS,
		log:              xlog.New(opts.Verbose, nil),
	}
	p.state = parserstate.NewNamespaceBlockState(nil, token.Location{Filename: filename}, globalNS)
	return p, nil
}

// Parse parses the entire translation unit, invoking the visitor as
// declarations are recognized. It returns the first parse or lex error
// encountered; cxxerrors.Cause unwraps to the originating error when one
// exists.
func (p *CxxParser) Parse() error {
	dispatch := map[string]func(token.Token, string) error{
		"__attribute__": func(tok token.Token, _ string) error { return p.consumeGCCAttribute(tok) },
		"__declspec":    func(tok token.Token, _ string) error { return p.consumeDeclspec(tok) },
		"alignas":       func(tok token.Token, _ string) error { return p.consumeAttributeSpecifierSeq(tok) },
		"extern":        p.parseExtern,
		"friend":        func(tok token.Token, dox string) error { return p.parseFriendDecl(tok, dox, nil) },
		"inline":        p.parseInline,
		"namespace":     func(tok token.Token, dox string) error { return p.parseNamespace(tok, dox, false) },
		"private":       p.processAccessSpecifier,
		"protected":     p.processAccessSpecifier,
		"public":        p.processAccessSpecifier,
		"static_assert": func(tok token.Token, _ string) error { return p.consumeStaticAssert() },
		"template":      p.parseTemplate,
		"typedef":       p.parseTypedef,
		"using":         func(tok token.Token, dox string) error { return p.parseUsing(tok, dox, nil) },
		"{":             func(tok token.Token, _ string) error { return p.onEmptyBlockStart() },
		"}":             func(tok token.Token, _ string) error { return p.onBlockEnd() },
		"[[":            func(tok token.Token, _ string) error { return p.consumeAttributeSpecifierSeq(tok) },
		";":             func(token.Token, string) error { return nil },
	}

	for {
		tok, err := p.lex.TokenEOFOK()
		if err != nil {
			return p.wrapLexErr(err)
		}
		if tok.IsEOF() {
			return nil
		}

		doxygen := p.lex.GetDoxygen()

		if tok.Kind == token.PrecompMacro {
			p.processPreprocessorToken(tok)
			continue
		}

		if fn, ok := dispatch[tok.Text]; ok {
			if err := fn(tok, doxygen); err != nil {
				return p.contextualize(err, tok)
			}
			continue
		}

		if err := p.parseDeclarations(tok, doxygen, nil, false, false); err != nil {
			return p.contextualize(err, tok)
		}
	}
}

func (p *CxxParser) contextualize(err error, tok token.Token) error {
	p.log.At(xlog.Error).Printf("%s: %v", tok.Location, err)
	if _, ok := err.(*cxxerrors.ParseError); ok {
		return err
	}
	if _, ok := err.(*cxxerrors.LexError); ok {
		return err
	}
	return cxxerrors.Wrap(err, fmt.Sprintf("parsing near '%s'", tok.Text), tok)
}

func (p *CxxParser) wrapLexErr(err error) error {
	p.log.At(xlog.Error).Printf("%s: %v", p.lex.CurrentLocation(), err)
	return cxxerrors.NewLexError(err.Error(), p.lex.CurrentLocation(), err)
}

//
// State management
//

func (p *CxxParser) pushState(s parserstate.State) parserstate.State {
	if ns, ok := s.(*parserstate.NamespaceBlockState); ok {
		p.currentNamespace = ns.Namespace
	}
	p.state = s
	return s
}

// popState pops the current frame, dispatching its matching visitor
// end-callback (the parserstate/visitor import-cycle avoidance named in
// package parserstate's doc comment), and returns the popped frame.
func (p *CxxParser) popState() (parserstate.State, error) {
	prev := p.state
	switch s := prev.(type) {
	case *parserstate.EmptyBlockState:
		p.visitor.OnEmptyBlockEnd(s)
	case *parserstate.ExternBlockState:
		p.visitor.OnExternBlockEnd(s)
	case *parserstate.NamespaceBlockState:
		p.visitor.OnNamespaceEnd(s)
	case *parserstate.ClassBlockState:
		p.visitor.OnClassEnd(s)
	}

	parent := prev.Parent()
	if parent == nil {
		return nil, fmt.Errorf("internal error: unbalanced parser state stack")
	}
	if ns, ok := parent.(*parserstate.NamespaceBlockState); ok {
		p.currentNamespace = ns.Namespace
	}
	p.state = parent
	return prev, nil
}

func (p *CxxParser) currentAccess() ast.Access {
	access, _ := parserstate.Access(p.state)
	return access
}

//
// Utility parsing functions used by the rest of the code
//

func (p *CxxParser) parseErr(tok token.Token, expected string) error {
	if expected != "" {
		expected = fmt.Sprintf(", expected '%s'", expected)
	}
	return cxxerrors.NewParseError(fmt.Sprintf("unexpected '%s'%s", tok.Text, expected), tok)
}

// tokMatches reports whether tok satisfies the pseudo-matcher want: "NAME",
// "NUMBER", and "STRING_LITERAL" test Kind; anything else tests Text.
func tokMatches(tok token.Token, want string) bool {
	switch want {
	case "NAME":
		return tok.Kind == token.Name
	case "NUMBER":
		switch tok.Kind {
		case token.IntConstDec, token.IntConstHex, token.IntConstOct, token.IntConstBin, token.IntConstChar,
			token.FloatConst, token.HexFloatConst:
			return true
		}
		return false
	case "STRING_LITERAL":
		switch tok.Kind {
		case token.StringLiteral, token.WStringLiteral, token.U8StringLiteral, token.U16StringLiteral, token.U32StringLiteral:
			return true
		}
		return false
	default:
		return tok.Text == want
	}
}

func (p *CxxParser) nextTokenMustBe(wants ...string) (token.Token, error) {
	tok, err := p.lex.Token()
	if err != nil {
		return token.Token{}, p.wrapLexErr(err)
	}
	for _, w := range wants {
		if tokMatches(tok, w) {
			return tok, nil
		}
	}
	return token.Token{}, p.parseErr(tok, strings.Join(wants, "' or '"))
}

func (p *CxxParser) tokenIf(wants ...string) (token.Token, bool, error) {
	tok, err := p.lex.TokenEOFOK()
	if err != nil {
		return token.Token{}, false, err
	}
	if !tok.IsEOF() {
		for _, w := range wants {
			if tokMatches(tok, w) {
				return tok, true, nil
			}
		}
	}
	p.lex.ReturnToken(tok)
	return token.Token{}, false, nil
}

func (p *CxxParser) tokenPeekIf(wants ...string) (bool, error) {
	tok, err := p.lex.Peek()
	if err != nil {
		return false, err
	}
	for _, w := range wants {
		if tokMatches(tok, w) {
			return true, nil
		}
	}
	return false, nil
}

func isPqnameStart(tok token.Token) bool {
	if tok.Kind == token.Name {
		return true
	}
	return pqnameStartTokens[tok.Text] || fundamentals[tok.Text] || nameCompoundStart[tok.Text]
}

func (p *CxxParser) tokenIfPqnameStart() (token.Token, bool, error) {
	tok, err := p.lex.TokenEOFOK()
	if err != nil {
		return token.Token{}, false, err
	}
	if !tok.IsEOF() && isPqnameStart(tok) {
		return tok, true, nil
	}
	p.lex.ReturnToken(tok)
	return token.Token{}, false, nil
}

// consumeUntil collects tokens, via TokenIfNot-equivalent Text comparison,
// until one matching a type in stop is seen (not consumed, not included).
func (p *CxxParser) consumeUntil(rtoks []token.Token, stops ...string) ([]token.Token, error) {
	for {
		tok, err := p.lex.TokenEOFOK()
		if err != nil {
			return rtoks, err
		}
		if tok.IsEOF() {
			p.lex.ReturnToken(tok)
			return rtoks, nil
		}
		for _, s := range stops {
			if tokMatches(tok, s) {
				p.lex.ReturnToken(tok)
				return rtoks, nil
			}
		}
		rtoks = append(rtoks, tok)
	}
}

// consumeValueUntil is consumeUntil, except any balanced-bracket opener it
// encounters along the way is consumed whole via consumeBalancedTokens
// rather than stopped on (so a "," inside a template argument list or a
// parenthesized initializer does not end the scan prematurely).
func (p *CxxParser) consumeValueUntil(rtoks []token.Token, stops ...string) ([]token.Token, error) {
	for {
		tok, err := p.lex.TokenEOFOK()
		if err != nil {
			return rtoks, err
		}
		if tok.IsEOF() {
			p.lex.ReturnToken(tok)
			return rtoks, nil
		}
		stopped := false
		for _, s := range stops {
			if tokMatches(tok, s) {
				stopped = true
				break
			}
		}
		if stopped {
			p.lex.ReturnToken(tok)
			return rtoks, nil
		}

		if _, ok := balancedTokenMap[tok.Text]; ok {
			balanced, err := p.consumeBalancedTokens(tok)
			if err != nil {
				return rtoks, err
			}
			rtoks = append(rtoks, balanced...)
		} else {
			rtoks = append(rtoks, tok)
		}
	}
}

var endBalancedTokens = map[string]bool{">": true, "}": true, "]": true, ")": true, "]]": true}

var balancedTokenMap = map[string]string{
	"<":  ">",
	"{":  "}",
	"(":  ")",
	"[":  "]",
	"[[": "]]",
}

// consumeBalancedTokens consumes a run of brackets starting with init
// (already consumed by the caller) through its matching close, handling
// nesting and a right shift written as two ">" tokens (the lexer never
// produces ">>") where a different closer is expected.
func (p *CxxParser) consumeBalancedTokens(init ...token.Token) ([]token.Token, error) {
	consumed := append([]token.Token{}, init...)
	var matchStack []string
	for _, tok := range consumed {
		matchStack = append(matchStack, balancedTokenMap[tok.Text])
	}

	for {
		tok, err := p.lex.Token()
		if err != nil {
			return nil, p.wrapLexErr(err)
		}
		consumed = append(consumed, tok)

		if endBalancedTokens[tok.Text] {
			expected := matchStack[len(matchStack)-1]
			matchStack = matchStack[:len(matchStack)-1]
			if tok.Text != expected {
				// a ">" arrived while a different closer was expected:
				// if another ">" follows, take the pair as a right shift
				// and keep waiting for the expected closer; otherwise the
				// brackets do not balance.
				if tok.Text == ">" {
					if next, ok, err := p.tokenIf(">"); err != nil {
						return nil, err
					} else if ok {
						consumed = append(consumed, next)
						matchStack = append(matchStack, expected)
						continue
					}
				}
				return nil, p.parseErr(tok, expected)
			}
			if len(matchStack) == 0 {
				return consumed, nil
			}
			continue
		}

		if next, ok := balancedTokenMap[tok.Text]; ok {
			matchStack = append(matchStack, next)
		}
	}
}

// discardContents discards everything between a just-consumed startType
// token and its matching endType, without retaining any of it -- used for
// function bodies, whose contents are never represented in the AST.
func (p *CxxParser) discardContents(startType, endType string) error {
	level := 1
	for {
		tok, err := p.lex.Token()
		if err != nil {
			return p.wrapLexErr(err)
		}
		switch tok.Text {
		case startType:
			level++
		case endType:
			level--
			if level == 0 {
				return nil
			}
		}
	}
}

func createValue(toks []token.Token) *ast.Value {
	return &ast.Value{Tokens: append([]token.Token{}, toks...)}
}

//
// Preprocessor directives
//

var preprocessorCompressRe = regexp.MustCompile(`^#[\t ]+`)
var preprocessorSplitRe = regexp.MustCompile(`[\t ]+`)

func (p *CxxParser) processPreprocessorToken(tok token.Token) {
	value := preprocessorCompressRe.ReplaceAllString(tok.Text, "#")
	parts := preprocessorSplitRe.Split(value, 2)
	if len(parts) != 2 {
		return
	}
	p.state.SetLocation(tok.Location)
	macro := strings.ReplaceAll(strings.ToLower(parts[0]), " ", "")
	switch {
	case strings.HasPrefix(macro, "#include"):
		p.visitor.OnInclude(p.state, parts[1])
	case strings.HasPrefix(macro, "#define"):
		p.visitor.OnDefine(p.state, parts[1])
	case strings.HasPrefix(macro, "#pragma"):
		p.visitor.OnPragma(p.state, parts[1])
	}
}

//
// Various
//

var msvcConventions = map[string]bool{
	"__cdecl": true, "__clrcall": true, "__stdcall": true,
	"__fastcall": true, "__thiscall": true, "__vectorcall": true,
}

func (p *CxxParser) tokenIfMSVCConvention() (token.Token, bool, error) {
	tok, err := p.lex.TokenEOFOK()
	if err != nil {
		return token.Token{}, false, err
	}
	if !tok.IsEOF() && msvcConventions[tok.Text] {
		return tok, true, nil
	}
	p.lex.ReturnToken(tok)
	return token.Token{}, false, nil
}
