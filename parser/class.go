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
	"github.com/robotpy/cxxheaderparser/parserstate"
	"github.com/robotpy/cxxheaderparser/token"
)

// maybeParseClassEnumDecl peeks far enough ahead (without committing) to
// tell a class/struct/union/enum *declaration* apart from one merely used
// as a type-specifier (e.g. "struct stat buf;"): a declaration's name is
// eventually followed by '{', ':', "final", or a bare ';'. When it isn't,
// this returns handled=false having consumed nothing, so the caller can
// reparse tok as an ordinary type.
func (p *CxxParser) maybeParseClassEnumDecl(tok token.Token, doxygen string, template *ast.TemplateDecl, isTypedef bool) (bool, error) {
	n := 0
	if tok.Text == "enum" {
		if t, err := p.lex.PeekN(n); err != nil {
			return false, err
		} else if t.Text == "class" || t.Text == "struct" {
			n++
		}
	}

	t, err := p.lex.PeekN(n)
	if err != nil {
		return false, err
	}
	if tokMatches(t, "NAME") {
		n++
		t, err = p.lex.PeekN(n)
		if err != nil {
			return false, err
		}
		// a qualified class head such as "class N::C {"
		for t.Text == "::" {
			if nt, err := p.lex.PeekN(n + 1); err != nil {
				return false, err
			} else if !tokMatches(nt, "NAME") {
				break
			}
			n += 2
			if t, err = p.lex.PeekN(n); err != nil {
				return false, err
			}
		}
	}

	isDecl := t.Text == "{" || t.Text == ";" || t.Text == "final" || t.Text == ":"
	if !isDecl {
		return false, nil
	}

	pqname, _, err := p.parsePqname(&tok, false, true, false)
	if err != nil {
		return false, err
	}

	if tok.Text == "enum" {
		return true, p.finishEnumDecl(pqname, doxygen, template, isTypedef)
	}

	ntok, err := p.lex.Token()
	if err != nil {
		return false, p.wrapLexErr(err)
	}

	if ntok.Text == ";" {
		p.visitor.OnForwardDecl(p.state, &ast.ForwardDecl{
			Typename: &pqname, Template: template, Doxygen: doxygen, Access: p.currentAccess(),
		})
		return true, nil
	}

	p.lex.ReturnToken(ntok)
	return true, p.parseClassDecl(pqname, doxygen, template, isTypedef)
}

func (p *CxxParser) parseClassDecl(pqname ast.PQName, doxygen string, template *ast.TemplateDecl, isTypedef bool) error {
	defaultAccess := ast.AccessPublic
	if pqname.Classkey == ast.ClasskeyClass {
		defaultAccess = ast.AccessPrivate
	}

	final := false
	if _, ok, err := p.tokenIf("final"); err != nil {
		return err
	} else if ok {
		final = true
	}

	var bases []ast.BaseClass
	if _, ok, err := p.tokenIf(":"); err != nil {
		return err
	} else if ok {
		var err error
		bases, err = p.parseClassDeclBaseClause(defaultAccess)
		if err != nil {
			return err
		}
	}

	if !final {
		if _, ok, err := p.tokenIf("final"); err != nil {
			return err
		} else if ok {
			final = true
		}
	}

	decl := &ast.ClassDecl{
		Typename: pqname, Bases: bases, Template: template,
		Final: final, Doxygen: doxygen, Access: p.currentAccess(),
	}

	if _, err := p.nextTokenMustBe("{"); err != nil {
		return err
	}

	loc := p.lex.CurrentLocation()
	cs := parserstate.NewClassBlockState(p.state, loc, decl, defaultAccess, isTypedef, parserstate.NewParsedTypeModifiers())
	p.pushState(cs)
	p.visitor.OnClassStart(cs)
	return nil
}

func (p *CxxParser) parseClassDeclBaseClause(defaultAccess ast.Access) ([]ast.BaseClass, error) {
	var bases []ast.BaseClass
	for {
		access := defaultAccess
		virtual := false
		for {
			tok, ok, err := p.tokenIf("public", "private", "protected", "virtual")
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			if tok.Text == "virtual" {
				virtual = true
			} else {
				access = ast.Access(tok.Text)
			}
		}

		pqname, _, err := p.parsePqname(nil, false, false, true)
		if err != nil {
			return nil, err
		}

		paramPack := false
		if _, ok, err := p.tokenIf("..."); err != nil {
			return nil, err
		} else if ok {
			paramPack = true
		}

		bases = append(bases, ast.BaseClass{Access: access, Typename: pqname, Virtual: virtual, ParamPack: paramPack})

		tok, err := p.nextTokenMustBe(",", "{", "final")
		if err != nil {
			return nil, err
		}
		if tok.Text != "," {
			p.lex.ReturnToken(tok)
			break
		}
	}
	return bases, nil
}

// discardCtorInitializer discards a constructor's mem-initializer list and
// the function body that follows it; entry is just after the initializer
// list's leading ':'.
func (p *CxxParser) discardCtorInitializer() error {
	for {
		if _, _, err := p.parsePqname(nil, false, false, true); err != nil {
			return err
		}

		tok, err := p.nextTokenMustBe("(", "{")
		if err != nil {
			return err
		}
		if _, err := p.consumeBalancedTokens(tok); err != nil {
			return err
		}

		ntok, err := p.nextTokenMustBe(",", "{")
		if err != nil {
			return err
		}
		if ntok.Text == "{" {
			return p.discardContents("{", "}")
		}
	}
}

func (p *CxxParser) processAccessSpecifier(tok token.Token, _ string) error {
	cs, ok := p.state.(*parserstate.ClassBlockState)
	if !ok {
		return p.parseErr(tok, "")
	}
	if _, err := p.nextTokenMustBe(":"); err != nil {
		return err
	}
	cs.SetAccess(ast.Access(tok.Text))
	return nil
}

//
// Enums
//

func (p *CxxParser) finishEnumDecl(pqname ast.PQName, doxygen string, template *ast.TemplateDecl, isTypedef bool) error {
	var base *ast.PQName
	if _, ok, err := p.tokenIf(":"); err != nil {
		return err
	} else if ok {
		btok, err := p.lex.Token()
		if err != nil {
			return p.wrapLexErr(err)
		}
		bpqname, _, err := p.parsePqname(&btok, false, false, true)
		if err != nil {
			return err
		}
		base = &bpqname
	}

	ntok, err := p.lex.Token()
	if err != nil {
		return p.wrapLexErr(err)
	}

	if ntok.Text == ";" {
		p.visitor.OnForwardDecl(p.state, &ast.ForwardDecl{
			Typename: &pqname, Template: template, Doxygen: doxygen, EnumBase: base, Access: p.currentAccess(),
		})
		return nil
	}
	if ntok.Text != "{" {
		return p.parseErr(ntok, "{")
	}

	values, err := p.parseEnumeratorList()
	if err != nil {
		return err
	}

	p.visitor.OnEnum(p.state, &ast.EnumDecl{
		Typename: pqname, Values: values, Base: base, Doxygen: doxygen, Access: p.currentAccess(),
	})

	return p.finishClassOrEnum(pqname, isTypedef)
}

func (p *CxxParser) parseEnumeratorList() ([]ast.Enumerator, error) {
	var values []ast.Enumerator
	if _, ok, err := p.tokenIf("}"); err != nil {
		return nil, err
	} else if ok {
		return values, nil
	}

	for {
		doxygen := p.lex.GetDoxygen()
		ntok, err := p.nextTokenMustBe("NAME")
		if err != nil {
			return nil, err
		}

		var value *ast.Value
		if _, ok, err := p.tokenIf("="); err != nil {
			return nil, err
		} else if ok {
			toks, err := p.consumeValueUntil(nil, ",", "}")
			if err != nil {
				return nil, err
			}
			value = createValue(toks)
		}

		values = append(values, ast.Enumerator{Name: ntok.Text, Value: value, Doxygen: doxygen})

		tok, err := p.nextTokenMustBe(",", "}")
		if err != nil {
			return nil, err
		}
		if tok.Text == "}" {
			break
		}
		if _, ok, err := p.tokenIf("}"); err != nil {
			return nil, err
		} else if ok {
			break
		}
	}
	return values, nil
}

// finishClassOrEnum consumes whatever follows a class/enum body's closing
// '}': either a bare ';' or one or more comma-separated declarators sharing
// pqname as their base type (e.g. "struct { int x; } anon, *anonPtr;").
func (p *CxxParser) finishClassOrEnum(pqname ast.PQName, isTypedef bool) error {
	tok, err := p.lex.Token()
	if err != nil {
		return p.wrapLexErr(err)
	}
	if tok.Text == ";" {
		return nil
	}

	baseType := &ast.Type{Typename: pqname}
	mods := parserstate.NewParsedTypeModifiers()
	return p.parseDeclaratorList(&tok, baseType, mods, nil, "", isTypedef, false)
}
