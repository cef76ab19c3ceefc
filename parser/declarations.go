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

// parseDeclarations is the top-level ambiguous-declaration driver: it
// recognizes a class/enum definition or forward-decl up front, then falls
// back to "base type followed by a comma-separated declarator list"
// (variables, fields, functions, typedefs), which is how the bulk of a
// header's content is expressed.
func (p *CxxParser) parseDeclarations(tok token.Token, doxygen string, template *ast.TemplateDecl, isTypedef, isFriend bool) error {
	if nameCompoundStart[tok.Text] {
		handled, err := p.maybeParseClassEnumDecl(tok, doxygen, template, isTypedef)
		if err != nil {
			return err
		}
		if handled {
			return nil
		}
	}

	parsedType, mods, err := p.parseType(&tok, true)
	if err != nil {
		return err
	}

	_, isClassBlock := p.state.(*parserstate.ClassBlockState)
	if err := mods.Validate(true, isClassBlock, "parsing declaration"); err != nil {
		return err
	}

	if parsedType == nil {
		ntok, err := p.lex.Token()
		if err != nil {
			return p.wrapLexErr(err)
		}
		switch ntok.Text {
		case "~":
			return p.parseDestructorDecl(mods, doxygen, template, isFriend)
		case "operator":
			return p.parseOperatorConversion(mods, doxygen, template, isFriend)
		default:
			return p.parseErr(ntok, "")
		}
	}

	return p.parseDeclaratorList(nil, parsedType, mods, template, doxygen, isTypedef, isFriend)
}

// parseDeclaratorList parses one or more comma-separated declarators that
// all share the same base type and modifier set, terminated by ';'. The
// first declarator's lead token is firstTok if one was already consumed by
// the caller (finishClassOrEnum's trailing-declarator case), nil otherwise.
func (p *CxxParser) parseDeclaratorList(firstTok *token.Token, parsedType *ast.Type, mods parserstate.ParsedTypeModifiers, template *ast.TemplateDecl, doxygen string, isTypedef, isFriend bool) error {
	state := p.state
	classState, isClassBlock := state.(*parserstate.ClassBlockState)

	tok := firstTok
	for {
		dtype, pqname, op, constructor, msvcConvention, err := p.parseDecl(tok, parsedType, state)
		tok = nil
		if err != nil {
			return err
		}

		if _, ok, err := p.tokenIf("("); err != nil {
			return err
		} else if ok {
			loc := p.lex.CurrentLocation()
			consumedBody, err := p.parseFunction(mods, dtype, pqname, op, template, doxygen, loc, constructor, false, isFriend, isTypedef, msvcConvention)
			if err != nil {
				return err
			}
			if consumedBody {
				p.tokenIf(";") //nolint:errcheck // trailing ';' after a definition is optional and harmless either way
				return nil
			}
		} else {
			if err := p.finishVariableOrField(state, classState, isClassBlock, dtype, pqname, mods, template, doxygen, isTypedef); err != nil {
				return err
			}
		}

		stok, err := p.nextTokenMustBe(",", ";")
		if err != nil {
			return err
		}
		if stok.Text == ";" {
			return nil
		}
		doxygen = ""
	}
}

// parseDecl builds one declarator's type and name: pointer/reference/array
// chain plus the declared name, or (when firstTok is nil, we're directly
// inside a class body, the base type has no cv-qualifiers, and its name
// matches the enclosing class) the special no-return-type constructor
// shape.
func (p *CxxParser) parseDecl(firstTok *token.Token, parsedType *ast.Type, state parserstate.State) (ast.DecoratedType, ast.PQName, string, bool, string, error) {
	classState, isClassBlock := state.(*parserstate.ClassBlockState)

	if firstTok == nil && isClassBlock && !parsedType.Const && !parsedType.Volatile {
		if name := parsedType.Typename.Name(); name != "" && name == classState.ClassDecl.Typename.Name() {
			if peek, err := p.tokenPeekIf("("); err != nil {
				return nil, ast.PQName{}, "", false, "", err
			} else if peek {
				return nil, parsedType.Typename, "", true, "", nil
			}
		}
	}

	if firstTok != nil {
		p.lex.ReturnToken(*firstTok)
	}

	var msvcConvention string
	if mtok, ok, err := p.tokenIfMSVCConvention(); err != nil {
		return nil, ast.PQName{}, "", false, "", err
	} else if ok {
		msvcConvention = mtok.Text
	}

	dtype, err := p.parseCvPtr(parsedType)
	if err != nil {
		return nil, ast.PQName{}, "", false, "", err
	}

	if mtok, ok, err := p.tokenIfMSVCConvention(); err != nil {
		return nil, ast.PQName{}, "", false, "", err
	} else if ok && msvcConvention == "" {
		msvcConvention = mtok.Text
	}

	var pqname ast.PQName
	var op string
	if ntok, ok, err := p.tokenIfPqnameStart(); err != nil {
		return nil, ast.PQName{}, "", false, "", err
	} else if ok {
		pqname, op, err = p.parsePqname(&ntok, true, false, false)
		if err != nil {
			return nil, ast.PQName{}, "", false, "", err
		}
	}

	if atok, ok, err := p.tokenIf("["); err != nil {
		return nil, ast.PQName{}, "", false, "", err
	} else if ok {
		arr, err := p.parseArrayType(atok, dtype)
		if err != nil {
			return nil, ast.PQName{}, "", false, "", err
		}
		dtype = arr
	}

	return dtype, pqname, op, false, msvcConvention, nil
}

func (p *CxxParser) parseDestructorDecl(mods parserstate.ParsedTypeModifiers, doxygen string, template *ast.TemplateDecl, isFriend bool) error {
	ntok, err := p.nextTokenMustBe("NAME")
	if err != nil {
		return err
	}
	pqname := ast.PQName{Segments: []ast.PQNameSegment{&ast.NameSpecifier{Name: "~" + ntok.Text}}}
	if _, err := p.nextTokenMustBe("("); err != nil {
		return err
	}

	loc := p.lex.CurrentLocation()
	consumedBody, err := p.parseFunction(mods, nil, pqname, "", template, doxygen, loc, false, true, isFriend, false, "")
	if err != nil {
		return err
	}
	if consumedBody {
		return nil
	}
	_, err = p.nextTokenMustBe(";")
	return err
}

func (p *CxxParser) parseOperatorConversion(mods parserstate.ParsedTypeModifiers, doxygen string, template *ast.TemplateDecl, isFriend bool) error {
	parsedType, rmods, err := p.parseType(nil, false)
	if err != nil {
		return err
	}
	if parsedType == nil {
		return p.parseErr(token.Token{}, "")
	}
	if err := rmods.Validate(false, false, "parsing conversion operator return type"); err != nil {
		return err
	}

	dtype, err := p.parseCvPtr(parsedType)
	if err != nil {
		return err
	}

	pqname := ast.PQName{Segments: []ast.PQNameSegment{&ast.NameSpecifier{Name: "operator"}}}
	if _, err := p.nextTokenMustBe("("); err != nil {
		return err
	}

	loc := p.lex.CurrentLocation()
	consumedBody, err := p.parseFunction(mods, dtype, pqname, "conversion", template, doxygen, loc, false, false, isFriend, false, "")
	if err != nil {
		return err
	}
	if consumedBody {
		return nil
	}
	_, err = p.nextTokenMustBe(";")
	return err
}

// finishVariableOrField emits a declarator that turned out not to have a
// '(' following it: a typedef name, a class data member, or a free/static
// variable, including its optional bit-field width and initializer.
func (p *CxxParser) finishVariableOrField(
	state parserstate.State, classState *parserstate.ClassBlockState, isClassBlock bool,
	dtype ast.DecoratedType, pqname ast.PQName, mods parserstate.ParsedTypeModifiers,
	template *ast.TemplateDecl, doxygen string, isTypedef bool,
) error {
	name := pqname.Name()

	if isTypedef {
		p.visitor.OnTypedef(state, &ast.Typedef{Type: dtype, Name: name, Access: p.currentAccess()})
		return nil
	}

	var bits *ast.Value
	if _, ok, err := p.tokenIf(":"); err != nil {
		return err
	} else if ok {
		toks, err := p.consumeValueUntil(nil, ",", ";", "=")
		if err != nil {
			return err
		}
		bits = createValue(toks)
	}

	var value *ast.Value
	if _, ok, err := p.tokenIf("="); err != nil {
		return err
	} else if ok {
		toks, err := p.consumeValueUntil(nil, ",", ";")
		if err != nil {
			return err
		}
		value = createValue(toks)
	}

	if isClassBlock {
		field := &ast.Field{
			Access: classState.Access, Type: dtype, Name: name, Value: value, Bits: bits,
			Constexpr: hasMod(mods.Both, "constexpr"),
			Mutable:   hasMod(mods.Vars, "mutable"),
			Static:    hasMod(mods.Both, "static"),
			Inline:    hasMod(mods.Both, "inline"),
			Doxygen:   doxygen,
		}
		p.visitor.OnClassField(classState, field)
		return nil
	}

	v := &ast.Variable{
		Name: pqname, Type: dtype, Value: value,
		Constexpr: hasMod(mods.Both, "constexpr"),
		Extern:    hasMod(mods.Both, "extern"),
		Static:    hasMod(mods.Both, "static"),
		Inline:    hasMod(mods.Both, "inline"),
		Template:  template,
		Doxygen:   doxygen,
	}
	p.visitor.OnVariable(state, v)
	return nil
}
