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
	"github.com/robotpy/cxxheaderparser/lexer"
	"github.com/robotpy/cxxheaderparser/token"
)

func (p *CxxParser) parseTemplateTypeParameter(tok token.Token) (*ast.TemplateTypeParam, error) {
	typekey := tok.Text // "class" or "typename"

	paramPack := false
	if _, ok, err := p.tokenIf("..."); err != nil {
		return nil, err
	} else if ok {
		paramPack = true
	}

	var name string
	if ntok, ok, err := p.tokenIf("NAME"); err != nil {
		return nil, err
	} else if ok {
		name = ntok.Text
	}

	var def *ast.Value
	if _, ok, err := p.tokenIf("="); err != nil {
		return nil, err
	} else if ok {
		toks, err := p.consumeValueUntil(nil, ",", ">")
		if err != nil {
			return nil, err
		}
		def = createValue(toks)
	}

	return &ast.TemplateTypeParam{Typekey: typekey, Name: name, ParamPack: paramPack, Default: def}, nil
}

// parseTemplateDecl parses one `<...>` template parameter list; entry is
// before the opening "<".
func (p *CxxParser) parseTemplateDecl() (*ast.TemplateDecl, error) {
	if _, err := p.nextTokenMustBe("<"); err != nil {
		return nil, err
	}

	if _, ok, err := p.tokenIf(">"); err != nil {
		return nil, err
	} else if ok {
		return &ast.TemplateDecl{}, nil
	}

	var params []ast.TemplateParam
	for {
		tok, err := p.lex.Token()
		if err != nil {
			return nil, p.wrapLexErr(err)
		}

		var param ast.TemplateParam
		switch tok.Text {
		case "template":
			inner, err := p.parseTemplateDecl()
			if err != nil {
				return nil, err
			}
			ctok, err := p.nextTokenMustBe("class", "typename")
			if err != nil {
				return nil, err
			}
			ttparam, err := p.parseTemplateTypeParameter(ctok)
			if err != nil {
				return nil, err
			}
			ttparam.Template = inner
			param = ttparam
		case "class", "typename":
			ttparam, err := p.parseTemplateTypeParameter(tok)
			if err != nil {
				return nil, err
			}
			param = ttparam
		default:
			ntparam, err := p.parseTemplateNonTypeParam(&tok)
			if err != nil {
				return nil, err
			}
			param = ntparam
		}
		params = append(params, param)

		stok, err := p.nextTokenMustBe(",", ">")
		if err != nil {
			return nil, err
		}
		if stok.Text == ">" {
			break
		}
	}

	return &ast.TemplateDecl{Params: params}, nil
}

// parseTemplate handles a top-level "template" token: parses the parameter
// list, then dispatches on whatever follows (a using-alias, a friend decl,
// a concept, or an ordinary declaration).
func (p *CxxParser) parseTemplate(tok token.Token, doxygen string) error {
	template, err := p.parseTemplateDecl()
	if err != nil {
		return err
	}

	// A template parameter list may itself be followed by another
	// "template <...>" header (partial specialization of a member
	// template); collapse any further headers into the same decl.
	for {
		if _, ok, err := p.tokenIf("template"); err != nil {
			return err
		} else if !ok {
			break
		}
		more, err := p.parseTemplateDecl()
		if err != nil {
			return err
		}
		template.Params = append(template.Params, more.Params...)
	}

	ntok, err := p.lex.Token()
	if err != nil {
		return p.wrapLexErr(err)
	}

	switch ntok.Text {
	case "using":
		return p.parseUsing(ntok, doxygen, template)
	case "friend":
		return p.parseFriendDecl(ntok, doxygen, template)
	case "concept":
		return p.parseConceptDecl(ntok, doxygen, template)
	default:
		return p.parseDeclarations(ntok, doxygen, template, false, false)
	}
}

func (p *CxxParser) parseConceptDecl(tok token.Token, doxygen string, template *ast.TemplateDecl) error {
	ntok, err := p.nextTokenMustBe("NAME")
	if err != nil {
		return err
	}
	if _, err := p.nextTokenMustBe("="); err != nil {
		return err
	}
	toks, err := p.consumeValueUntil(nil, ";")
	if err != nil {
		return err
	}
	if _, err := p.nextTokenMustBe(";"); err != nil {
		return err
	}
	p.visitor.OnConcept(p.state, &ast.Concept{
		Name: ntok.Text, Template: template, Constraint: createValue(toks), Doxygen: doxygen,
	})
	return nil
}

//
// Template argument speculative parsing
//

// parseTemplateSpecialization parses the '<...>' of a template-id; entry is
// just after the opening "<" was consumed by the caller.
func (p *CxxParser) parseTemplateSpecialization() (*ast.TemplateSpecialization, error) {
	if _, ok, err := p.tokenIf(">"); err != nil {
		return nil, err
	} else if ok {
		return &ast.TemplateSpecialization{}, nil
	}

	var args []ast.TemplateArgument
	for {
		arg, paramPack, err := p.parseTemplateArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, ast.TemplateArgument{Arg: arg, ParamPack: paramPack})

		tok, err := p.nextTokenMustBe(",", ">")
		if err != nil {
			return nil, err
		}
		if tok.Text == ">" {
			break
		}
	}

	return &ast.TemplateSpecialization{Args: args}, nil
}

// parseTemplateArgument collects one comma-separated argument's tokens
// verbatim, then speculatively tries to reparse them as a type-id in a
// scoped substream; if that fails, or leaves tokens over, the argument is
// instead recorded as a raw Value (a non-type template argument, or one the
// grammar doesn't let us disambiguate without semantic analysis).
func (p *CxxParser) parseTemplateArgument() (interface{}, bool, error) {
	toks, err := p.consumeValueUntil(nil, ",", ">")
	if err != nil {
		return nil, false, err
	}

	paramPack := false
	if len(toks) > 0 && toks[len(toks)-1].Text == "..." {
		paramPack = true
		toks = toks[:len(toks)-1]
	}
	if len(toks) == 0 {
		return nil, false, p.parseErr(token.Token{}, "template argument")
	}

	if arg, ok := p.tryParseTemplateArgAsType(toks); ok {
		return arg, paramPack, nil
	}

	return createValue(toks), paramPack, nil
}

// tryParseTemplateArgAsType speculatively reparses toks as a type-id, per
// parser.py's _parse_template_argument_list: a PhonyEnding sentinel is
// appended to the pushed group so that decl-specifier/pqname parsing's
// routine one-token lookahead (fundamental coalescing, the "<" template-id
// peek, the cv/ptr-or-fn loop) never runs the scoped substream dry and
// raises ErrGroupExhausted mid-speculation; the speculative parse is only
// accepted if it consumes exactly up to, and then the sentinel itself.
func (p *CxxParser) tryParseTemplateArgAsType(toks []token.Token) (arg interface{}, ok bool) {
	grouped := append(append([]token.Token{}, toks...), lexer.PhonyEnding)
	p.lex.PushTokenGroup(grouped)
	defer p.lex.PopTokenGroup()

	parsedType, mods, err := p.parseType(nil, false)
	if err != nil || parsedType == nil {
		return nil, false
	}
	if err := mods.Validate(false, false, ""); err != nil {
		return nil, false
	}

	dtype, err := p.parseCvPtrOrFn(parsedType, true)
	if err != nil {
		return nil, false
	}

	if _, err := p.nextTokenMustBe(lexer.PhonyEnding.Text); err != nil {
		return nil, false
	}

	if ft, isFT := dtype.(*ast.FunctionType); isFT {
		return ft, true
	}
	dt, isDT := asDecoratedType(dtype)
	if !isDT {
		return nil, false
	}
	return dt, true
}
