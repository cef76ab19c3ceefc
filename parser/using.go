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
	"github.com/robotpy/cxxheaderparser/token"
)

// parseUsing dispatches the three forms following a "using" keyword:
// using-directive ("using namespace NS;"), type alias ("using X = T;",
// possibly templated, passed down from parseTemplate), or using-declaration
// ("using NS::Name;").
func (p *CxxParser) parseUsing(tok token.Token, doxygen string, template *ast.TemplateDecl) error {
	if _, ok, err := p.tokenIf("namespace"); err != nil {
		return err
	} else if ok {
		if template != nil {
			return cxxParseErrorf("using-directive may not be templated")
		}
		return p.parseUsingDirective()
	}

	if ntok, ok, err := p.tokenIf("NAME"); err != nil {
		return err
	} else if ok {
		if _, ok, err := p.tokenIf("="); err != nil {
			return err
		} else if ok {
			return p.parseUsingTypealias(ntok, doxygen, template)
		}
		p.lex.ReturnToken(ntok)
	}

	if template != nil {
		return cxxParseErrorf("using-declaration may not be templated")
	}
	return p.parseUsingDeclaration()
}

func (p *CxxParser) parseUsingDirective() error {
	pqname, _, err := p.parsePqname(nil, false, false, false)
	if err != nil {
		return err
	}
	if _, err := p.nextTokenMustBe(";"); err != nil {
		return err
	}

	var names []string
	for _, seg := range pqname.Segments {
		if ns, ok := seg.(*ast.NameSpecifier); ok {
			names = append(names, ns.Name)
		}
	}
	p.visitor.OnUsingNamespace(p.state, names)
	return nil
}

func (p *CxxParser) parseUsingDeclaration() error {
	pqname, _, err := p.parsePqname(nil, false, false, false)
	if err != nil {
		return err
	}
	if _, err := p.nextTokenMustBe(";"); err != nil {
		return err
	}
	p.visitor.OnUsingDeclaration(p.state, &ast.UsingDecl{Typename: pqname, Access: p.currentAccess()})
	return nil
}

func (p *CxxParser) parseUsingTypealias(nametok token.Token, doxygen string, template *ast.TemplateDecl) error {
	tok, err := p.lex.Token()
	if err != nil {
		return p.wrapLexErr(err)
	}
	parsedType, mods, err := p.parseType(&tok, false)
	if err != nil {
		return err
	}
	if parsedType == nil {
		return p.parseErr(tok, "")
	}
	if err := mods.Validate(false, false, "parsing using type alias"); err != nil {
		return err
	}

	dtype, err := p.parseCvPtr(parsedType)
	if err != nil {
		return err
	}
	if _, err := p.nextTokenMustBe(";"); err != nil {
		return err
	}

	p.visitor.OnUsingAlias(p.state, &ast.UsingAlias{
		Alias: nametok.Text, Type: dtype, Template: template, Access: p.currentAccess(),
	})
	return nil
}
