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

import "github.com/robotpy/cxxheaderparser/token"

// attributeStartTokens is every token that can begin an attribute-like
// annotation: GNU/MSVC extensions plus the standard [[...]] form.
var attributeStartTokens = map[string]bool{
	"__attribute__": true,
	"__declspec":    true,
	"alignas":       true,
	"[[":            true,
}

func (p *CxxParser) consumeGCCAttribute(tok token.Token) error {
	ptok, err := p.nextTokenMustBe("(")
	if err != nil {
		return err
	}
	_, err = p.consumeBalancedTokens(ptok)
	return err
}

func (p *CxxParser) consumeDeclspec(tok token.Token) error {
	ptok, err := p.nextTokenMustBe("(")
	if err != nil {
		return err
	}
	_, err = p.consumeBalancedTokens(ptok)
	return err
}

func (p *CxxParser) consumeAttributeSpecifierSeq(tok token.Token) error {
	_, err := p.consumeBalancedTokens(tok)
	return err
}

// consumeAttribute consumes a single attribute-like annotation starting at
// tok: __attribute__((...)), __declspec(...), alignas(...), or [[...]].
func (p *CxxParser) consumeAttribute(tok token.Token) error {
	switch tok.Text {
	case "__attribute__":
		return p.consumeGCCAttribute(tok)
	case "__declspec":
		return p.consumeDeclspec(tok)
	case "alignas":
		ptok, err := p.nextTokenMustBe("(")
		if err != nil {
			return err
		}
		_, err = p.consumeBalancedTokens(ptok)
		return err
	case "[[":
		return p.consumeAttributeSpecifierSeq(tok)
	default:
		return p.parseErr(tok, "")
	}
}

// consumeAttributeSpecifierSeqIfPresent consumes zero or more attribute
// annotations in a row, stopping at the first token that doesn't start one.
func (p *CxxParser) consumeAttributeSpecifierSeqIfPresent() error {
	for {
		tok, ok, err := p.lex.TokenIfInSet(attributeStartTokens)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := p.consumeAttribute(tok); err != nil {
			return err
		}
	}
}
