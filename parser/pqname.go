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
	"strings"

	"github.com/robotpy/cxxheaderparser/ast"
	"github.com/robotpy/cxxheaderparser/token"
)

var nameCompoundStart = map[string]bool{"struct": true, "enum": true, "class": true, "union": true}

var compoundFundamentals = map[string]bool{
	"unsigned": true, "signed": true, "short": true, "int": true,
	"long": true, "float": true, "double": true, "char": true,
}

var fundamentals = func() map[string]bool {
	m := map[string]bool{
		"bool": true, "char16_t": true, "char32_t": true,
		"nullptr_t": true, "wchar_t": true, "void": true,
	}
	for k := range compoundFundamentals {
		m[k] = true
	}
	return m
}()

var pqnameStartTokens = map[string]bool{
	"auto": true, "decltype": true, "operator": true, "template": true,
	"typename": true, "::": true, "final": true,
}

func (p *CxxParser) parsePqnameDecltypeSpecifier() (*ast.DecltypeSpecifier, error) {
	tok, err := p.nextTokenMustBe("(")
	if err != nil {
		return nil, err
	}
	toks, err := p.consumeBalancedTokens(tok)
	if err != nil {
		return nil, err
	}
	return &ast.DecltypeSpecifier{Tokens: toks[1 : len(toks)-1]}, nil
}

func (p *CxxParser) parsePqnameFundamental(tokValue string) (*ast.FundamentalSpecifier, error) {
	names := []string{tokValue}
	if compoundFundamentals[tokValue] {
		for {
			tok, ok, err := p.lex.TokenIfInSet(compoundFundamentals)
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			names = append(names, tok.Text)
		}
	}
	return &ast.FundamentalSpecifier{Name: strings.Join(names, " ")}, nil
}

func (p *CxxParser) parsePqnameNameOperator() ([]token.Token, error) {
	tok, err := p.lex.Token()
	if err != nil {
		return nil, p.wrapLexErr(err)
	}
	parts := []token.Token{tok}
	if tok.Text == "(" {
		ctok, err := p.nextTokenMustBe(")")
		if err != nil {
			return nil, err
		}
		parts = append(parts, ctok)
		return parts, nil
	}
	parts, err = p.consumeUntil(parts, "(")
	if err != nil {
		return nil, err
	}
	return parts, nil
}

func (p *CxxParser) parsePqnameName(tokValue string) (*ast.NameSpecifier, string, error) {
	var name, op string
	if tokValue == "operator" {
		parts, err := p.parsePqnameNameOperator()
		if err != nil {
			return nil, "", err
		}
		var sb strings.Builder
		for _, t := range parts {
			sb.WriteString(t.Text)
		}
		op = sb.String()
		name = "operator" + op
	} else {
		name = tokValue
	}

	var spec *ast.TemplateSpecialization
	if _, ok, err := p.tokenIf("<"); err != nil {
		return nil, "", err
	} else if ok {
		spec, err = p.parseTemplateSpecialization()
		if err != nil {
			return nil, "", err
		}
	}
	return &ast.NameSpecifier{Name: name, Specialization: spec}, op, nil
}

// parsePqname parses a possibly-qualified name, stopping (without consuming)
// at the first unexpected token. fnOK permits a trailing operator-function
// name, compoundOK permits a leading class/struct/union/enum keyword,
// fundOK permits a fundamental-type segment.
func (p *CxxParser) parsePqname(tok *token.Token, fnOK, compoundOK, fundOK bool) (ast.PQName, string, error) {
	var classkey ast.Classkey
	var segments []ast.PQNameSegment
	var op string
	hasTypename := false

	var cur token.Token
	var err error
	if tok != nil {
		cur = *tok
	} else {
		cur, err = p.lex.Token()
		if err != nil {
			return ast.PQName{}, "", p.wrapLexErr(err)
		}
	}

	if !isPqnameStart(cur) {
		return ast.PQName{}, "", p.parseErr(cur, "")
	}

	if cur.Text == "auto" {
		return ast.PQName{Segments: []ast.PQNameSegment{&ast.AutoSpecifier{}}}, "", nil
	}

	if nameCompoundStart[cur.Text] {
		if !compoundOK {
			return ast.PQName{}, "", p.parseErr(cur, "")
		}
		classkey = ast.Classkey(cur.Text)
		if classkey == "enum" {
			if ctok, ok, err := p.tokenIf("class", "struct"); err != nil {
				return ast.PQName{}, "", err
			} else if ok {
				classkey = ast.Classkey("enum " + ctok.Text)
			}
		}
		if atok, ok, err := p.lex.TokenIfInSet(attributeStartTokens); err != nil {
			return ast.PQName{}, "", err
		} else if ok {
			if err := p.consumeAttribute(atok); err != nil {
				return ast.PQName{}, "", err
			}
		}

		ntok, ok, err := p.tokenIf("NAME", "::")
		if err != nil {
			return ast.PQName{}, "", err
		}
		if !ok {
			p.anonID++
			segments = append(segments, &ast.AnonymousName{ID: p.anonID})
			return ast.PQName{Segments: segments, Classkey: classkey}, "", nil
		}
		cur = ntok
	} else if cur.Text == "typename" {
		hasTypename = true
		cur, err = p.lex.Token()
		if err != nil {
			return ast.PQName{}, "", p.wrapLexErr(err)
		}
		if !isPqnameStart(cur) {
			return ast.PQName{}, "", p.parseErr(cur, "")
		}
	}

	if cur.Text == "::" {
		segments = append(segments, &ast.NameSpecifier{Name: ""})
		cur, err = p.nextTokenMustBe("NAME", "template", "operator")
		if err != nil {
			return ast.PQName{}, "", err
		}
	}

	for {
		tokValue := cur.Text

		switch {
		case tokValue == "decltype":
			seg, err := p.parsePqnameDecltypeSpecifier()
			if err != nil {
				return ast.PQName{}, "", err
			}
			segments = append(segments, seg)

		case fundamentals[tokValue]:
			if !fundOK {
				return ast.PQName{}, "", p.parseErr(cur, "")
			}
			seg, err := p.parsePqnameFundamental(tokValue)
			if err != nil {
				return ast.PQName{}, "", err
			}
			segments = append(segments, seg)
			// no additional parts after fundamentals
			return ast.PQName{Segments: segments, Classkey: classkey, HasTypename: hasTypename}, op, nil

		default:
			if tokValue == "[[" {
				if err := p.consumeAttributeSpecifierSeq(cur); err != nil {
					return ast.PQName{}, "", err
				}
			}
			if tokValue == "template" {
				cur, err = p.nextTokenMustBe("NAME")
				if err != nil {
					return ast.PQName{}, "", err
				}
				tokValue = cur.Text
			}

			name, nop, err := p.parsePqnameName(tokValue)
			if err != nil {
				return ast.PQName{}, "", err
			}
			segments = append(segments, name)
			if nop != "" {
				op = nop
				if !fnOK {
					return ast.PQName{}, "", p.parseErr(cur, "NAME")
				}
				return ast.PQName{Segments: segments, Classkey: classkey, HasTypename: hasTypename}, op, nil
			}
		}

		if _, ok, err := p.tokenIf("::"); err != nil {
			return ast.PQName{}, "", err
		} else if !ok {
			break
		}

		cur, err = p.nextTokenMustBe("NAME", "operator", "template", "decltype")
		if err != nil {
			return ast.PQName{}, "", err
		}
	}

	return ast.PQName{Segments: segments, Classkey: classkey, HasTypename: hasTypename}, op, nil
}
