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

package parser

import (
	"github.com/robotpy/cxxheaderparser/ast"
	"github.com/robotpy/cxxheaderparser/cxxerrors"
	"github.com/robotpy/cxxheaderparser/parserstate"
	"github.com/robotpy/cxxheaderparser/token"
)

// parseInline handles a top-level "inline" token: an inline namespace
// definition ("inline namespace Lib { ... }"), matching parser.py's
// _parse_inline, which peeks for "namespace" and otherwise falls through to
// an ordinary declaration (e.g. "inline int f() { ... }").
func (p *CxxParser) parseInline(tok token.Token, doxygen string) error {
	if _, ok, err := p.tokenIf("namespace"); err != nil {
		return err
	} else if ok {
		return p.parseNamespace(tok, doxygen, true)
	}
	return p.parseDeclarations(tok, doxygen, nil, false, false)
}

// parseNamespace handles a top-level "namespace" token (or, when isInline is
// set, the "namespace" following a leading "inline" consumed by parseInline):
// a definition (possibly nested via "namespace A::B {", possibly anonymous),
// or a namespace-alias ("namespace Alias = Target::Path;"). tok is the blame
// token for the nested-inline-namespace error below: the original "inline"
// token when isInline is set, otherwise unused.
func (p *CxxParser) parseNamespace(tok token.Token, doxygen string, isInline bool) error {
	var names []string
	for {
		ntok, err := p.nextTokenMustBe("NAME", "{")
		if err != nil {
			return err
		}
		if ntok.Text == "{" {
			p.lex.ReturnToken(ntok)
			break
		}
		names = append(names, ntok.Text)

		if _, ok, err := p.tokenIf("="); err != nil {
			return err
		} else if ok {
			return p.parseNamespaceAlias(names[0])
		}

		if _, ok, err := p.tokenIf("::"); err != nil {
			return err
		} else if !ok {
			break
		}
	}

	if isInline && len(names) > 1 {
		return cxxerrors.NewParseError("a nested namespace definition cannot be inline", tok)
	}

	if _, err := p.nextTokenMustBe("{"); err != nil {
		return err
	}

	ns := ast.NamespaceDecl{Names: names, Inline: isInline}
	loc := p.lex.CurrentLocation()
	nsState := parserstate.NewNamespaceBlockState(p.state, loc, ns)
	p.pushState(nsState)
	p.visitor.OnNamespaceStart(nsState)
	return nil
}

func (p *CxxParser) parseNamespaceAlias(alias string) error {
	pqname, _, err := p.parsePqname(nil, false, false, false)
	if err != nil {
		return err
	}
	if _, err := p.nextTokenMustBe(";"); err != nil {
		return err
	}

	var target []string
	for _, seg := range pqname.Segments {
		if ns, ok := seg.(*ast.NameSpecifier); ok {
			target = append(target, ns.Name)
		}
	}
	p.visitor.OnNamespaceAlias(p.state, &ast.NamespaceAlias{Alias: alias, Target: target})
	return nil
}

// parseExtern handles a top-level "extern" token: a linkage-specification
// block ("extern \"C\" { ... }"), an unbraced single declaration ("extern
// \"C\" void f();"), or (when no string literal follows) an ordinary
// "extern"-modified declaration ("extern int x;").
func (p *CxxParser) parseExtern(tok token.Token, doxygen string) error {
	strtok, ok, err := p.tokenIf("STRING_LITERAL")
	if err != nil {
		return err
	}
	if !ok {
		return p.parseDeclarations(tok, doxygen, nil, false, false)
	}
	linkage := strtok.Text

	if _, ok, err := p.tokenIf("{"); err != nil {
		return err
	} else if ok {
		loc := p.lex.CurrentLocation()
		es := parserstate.NewExternBlockState(p.state, loc, linkage)
		p.pushState(es)
		p.visitor.OnExternBlockStart(es)
		return nil
	}

	ntok, err := p.lex.Token()
	if err != nil {
		return p.wrapLexErr(err)
	}

	loc := p.lex.CurrentLocation()
	es := parserstate.NewExternBlockState(p.state, loc, linkage)
	p.pushState(es)
	p.visitor.OnExternBlockStart(es)

	if err := p.parseDeclarations(ntok, doxygen, nil, false, false); err != nil {
		return err
	}
	_, err = p.popState()
	return err
}

// parseFriendDecl handles a "friend" token, legal only inside a class body:
// either a friend class forward-declaration ("friend class Foo;") or a
// friend function, which is parsed as an ordinary declaration with
// isFriend set so the resulting Function/Method is routed to OnClassFriend
// instead of OnClassMethod/OnFunction.
func (p *CxxParser) parseFriendDecl(tok token.Token, doxygen string, template *ast.TemplateDecl) error {
	classState, ok := p.state.(*parserstate.ClassBlockState)
	if !ok {
		return p.parseErr(tok, "")
	}

	pt, err := p.lex.Peek()
	if err != nil {
		return err
	}
	if nameCompoundStart[pt.Text] {
		ctok, err := p.lex.Token()
		if err != nil {
			return p.wrapLexErr(err)
		}
		pqname, _, err := p.parsePqname(&ctok, false, true, false)
		if err != nil {
			return err
		}
		if _, err := p.nextTokenMustBe(";"); err != nil {
			return err
		}
		p.visitor.OnClassFriend(classState, &ast.FriendDecl{
			Cls: &ast.ForwardDecl{Typename: &pqname, Template: template, Doxygen: doxygen, Access: classState.Access},
		})
		return nil
	}

	ntok, err := p.lex.Token()
	if err != nil {
		return p.wrapLexErr(err)
	}
	return p.parseDeclarations(ntok, doxygen, template, false, true)
}

func (p *CxxParser) parseTypedef(tok token.Token, doxygen string) error {
	ntok, err := p.lex.Token()
	if err != nil {
		return p.wrapLexErr(err)
	}
	return p.parseDeclarations(ntok, doxygen, nil, true, false)
}

func (p *CxxParser) consumeStaticAssert() error {
	tok, err := p.nextTokenMustBe("(")
	if err != nil {
		return err
	}
	if _, err := p.consumeBalancedTokens(tok); err != nil {
		return err
	}
	_, err = p.nextTokenMustBe(";")
	return err
}

func (p *CxxParser) onEmptyBlockStart() error {
	loc := p.lex.CurrentLocation()
	es := parserstate.NewEmptyBlockState(p.state, loc)
	p.pushState(es)
	p.visitor.OnEmptyBlockStart(es)
	return nil
}

// onBlockEnd pops the current scope frame on a bare '}'. When that frame
// was a class/struct/union body, the closing brace may still be followed
// by a trailing declarator list sharing the class as its type (e.g.
// "struct Point { int x, y; } origin;"), which finishClassOrEnum handles.
func (p *CxxParser) onBlockEnd() error {
	popped, err := p.popState()
	if err != nil {
		return err
	}
	if cs, ok := popped.(*parserstate.ClassBlockState); ok {
		return p.finishClassOrEnum(cs.ClassDecl.Typename, cs.Typedef)
	}
	return nil
}
