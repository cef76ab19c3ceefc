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
	"fmt"

	"github.com/robotpy/cxxheaderparser/ast"
	"github.com/robotpy/cxxheaderparser/parserstate"
	"github.com/robotpy/cxxheaderparser/token"
)

func hasMod(m map[string]token.Token, key string) bool {
	_, ok := m[key]
	return ok
}

// parsedParamFields is the field set shared by a function parameter and a
// template non-type parameter; parseParameter and parseTemplateNonTypeParam
// are thin wrappers over parseParameterFields, mirroring the original's
// single generic _parse_parameter.
type parsedParamFields struct {
	Type      ast.DecoratedType
	Name      string
	Default   *ast.Value
	ParamPack bool
}

func (p *CxxParser) parseParameterFields(tok *token.Token, end string) (parsedParamFields, error) {
	var f parsedParamFields

	parsedType, mods, err := p.parseType(tok, false)
	if err != nil {
		return f, err
	}
	if parsedType == nil {
		return f, p.parseErr(token.Token{}, "")
	}
	if err := mods.Validate(false, false, "parsing parameter"); err != nil {
		return f, err
	}

	dtype, err := p.parseCvPtr(parsedType)
	if err != nil {
		return f, err
	}
	f.Type = dtype

	if _, ok, err := p.tokenIf("..."); err != nil {
		return f, err
	} else if ok {
		f.ParamPack = true
	}

	if gtok, ok, err := p.tokenIf("("); err != nil {
		return f, err
	} else if ok {
		toks, err := p.consumeBalancedTokens(gtok)
		if err != nil {
			return f, err
		}
		p.lex.ReturnTokens(toks[1 : len(toks)-1])
	}

	if ntok, ok, err := p.tokenIf("NAME", "final"); err != nil {
		return f, err
	} else if ok {
		f.Name = ntok.Text
	}

	if atok, ok, err := p.tokenIf("["); err != nil {
		return f, err
	} else if ok {
		arr, err := p.parseArrayType(atok, f.Type)
		if err != nil {
			return f, err
		}
		f.Type = arr
	}

	if _, ok, err := p.tokenIf("="); err != nil {
		return f, err
	} else if ok {
		toks, err := p.consumeValueUntil(nil, ",", end)
		if err != nil {
			return f, err
		}
		f.Default = createValue(toks)
	}

	return f, nil
}

func (p *CxxParser) parseParameter(tok *token.Token) (*ast.Parameter, error) {
	f, err := p.parseParameterFields(tok, ")")
	if err != nil {
		return nil, err
	}
	return &ast.Parameter{Type: f.Type, Name: f.Name, Default: f.Default, ParamPack: f.ParamPack}, nil
}

func (p *CxxParser) parseTemplateNonTypeParam(tok *token.Token) (*ast.TemplateNonTypeParam, error) {
	f, err := p.parseParameterFields(tok, ">")
	if err != nil {
		return nil, err
	}
	return &ast.TemplateNonTypeParam{Type: f.Type, Name: f.Name, Default: f.Default, ParamPack: f.ParamPack}, nil
}

func (p *CxxParser) parseParameters() ([]*ast.Parameter, bool, error) {
	// starting after the "("
	if _, ok, err := p.tokenIf(")"); err != nil {
		return nil, false, err
	} else if ok {
		return nil, false, nil
	}

	var params []*ast.Parameter
	vararg := false

	for {
		if _, ok, err := p.tokenIf("..."); err != nil {
			return nil, false, err
		} else if ok {
			vararg = true
			if _, err := p.nextTokenMustBe(")"); err != nil {
				return nil, false, err
			}
			break
		}

		param, err := p.parseParameter(nil)
		if err != nil {
			return nil, false, err
		}
		params = append(params, param)

		tok, err := p.nextTokenMustBe(",", ")")
		if err != nil {
			return nil, false, err
		}
		if tok.Text == ")" {
			break
		}
	}

	if p.options.ConvertVoidToZeroParams && len(params) == 1 {
		if t, ok := params[0].Type.(*ast.Type); ok {
			if len(t.Typename.Segments) == 1 {
				if fs, ok := t.Typename.Segments[0].(*ast.FundamentalSpecifier); ok && fs.Name == "void" {
					params = nil
				}
			}
		}
	}

	return params, vararg, nil
}

var autoReturnTypename = ast.PQName{Segments: []ast.PQNameSegment{&ast.AutoSpecifier{}}}

// fnOrMethod is implemented by *ast.Function and *ast.Method so
// parseTrailingReturnType can operate on either.
type fnOrMethod interface {
	setReturnType(ast.DecoratedType)
	returnType() ast.DecoratedType
	setHasTrailingReturn(bool)
}

func (p *CxxParser) parseTrailingReturnType(fn fnOrMethod) error {
	// entry: "->" just consumed
	rt, ok := fn.returnType().(*ast.Type)
	if !ok || rt.Const || rt.Volatile || !pqnameEqual(rt.Typename, autoReturnTypename) {
		return cxxParseErrorf("function with trailing return type must specify return type of 'auto'")
	}

	parsedType, mods, err := p.parseType(nil, false)
	if err != nil {
		return err
	}
	if parsedType == nil {
		return p.parseErr(token.Token{}, "")
	}
	if err := mods.Validate(false, false, "parsing trailing return type"); err != nil {
		return err
	}

	dtype, err := p.parseCvPtr(parsedType)
	if err != nil {
		return err
	}

	fn.setHasTrailingReturn(true)
	fn.setReturnType(dtype)
	return nil
}

// pqnameEqual reports whether a is the single-segment 'auto' placeholder
// name (the only shape parseTrailingReturnType needs to recognize: b is
// always autoReturnTypename).
func pqnameEqual(a, b ast.PQName) bool {
	if len(a.Segments) != 1 || len(b.Segments) != 1 {
		return len(a.Segments) == len(b.Segments)
	}
	_, ok := a.Segments[0].(*ast.AutoSpecifier)
	return ok
}

func (p *CxxParser) parseFnEnd(fn *ast.Function) error {
	if _, ok, err := p.tokenIf("throw"); err != nil {
		return err
	} else if ok {
		tok, err := p.nextTokenMustBe("(")
		if err != nil {
			return err
		}
		toks, err := p.consumeBalancedTokens(tok)
		if err != nil {
			return err
		}
		fn.Throw = createValue(toks)
	} else if _, ok, err := p.tokenIf("noexcept"); err != nil {
		return err
	} else if ok {
		var toks []token.Token
		if otok, ok, err := p.tokenIf("("); err != nil {
			return err
		} else if ok {
			all, err := p.consumeBalancedTokens(otok)
			if err != nil {
				return err
			}
			toks = all[1 : len(all)-1]
		}
		fn.Noexcept = createValue(toks)
	}

	if _, ok, err := p.tokenIf("->"); err != nil {
		return err
	} else if ok {
		if err := p.parseTrailingReturnType(functionAdapter{fn}); err != nil {
			return err
		}
	}

	if _, ok, err := p.tokenIf("{"); err != nil {
		return err
	} else if ok {
		if err := p.discardContents("{", "}"); err != nil {
			return err
		}
		fn.HasBody = true
	}
	return nil
}

func (p *CxxParser) parseMethodEnd(method *ast.Method) error {
	for {
		tok, err := p.lex.Token()
		if err != nil {
			return p.wrapLexErr(err)
		}
		switch tok.Text {
		case ":", "{":
			method.HasBody = true
			if tok.Text == ":" {
				if err := p.discardCtorInitializer(); err != nil {
					return err
				}
			} else {
				if err := p.discardContents("{", "}"); err != nil {
					return err
				}
			}
			return nil
		case "=":
			vtok, err := p.lex.Token()
			if err != nil {
				return p.wrapLexErr(err)
			}
			switch vtok.Text {
			case "0":
				method.PureVirtual = true
			case "delete":
				method.Deleted = true
			case "default":
				method.Default = true
			default:
				return p.parseErr(vtok, "0/delete/default")
			}
			return nil
		case "const":
			method.Const = true
		case "volatile":
			method.Volatile = true
		case "override":
			method.Override = true
		case "final":
			method.Final = true
		case "&", "&&":
			method.RefQualifier = tok.Text
		case "->":
			if err := p.parseTrailingReturnType(methodAdapter{method}); err != nil {
				return err
			}
		case "throw":
			ttok, err := p.nextTokenMustBe("(")
			if err != nil {
				return err
			}
			toks, err := p.consumeBalancedTokens(ttok)
			if err != nil {
				return err
			}
			method.Throw = createValue(toks)
		case "noexcept":
			var toks []token.Token
			if otok, ok, err := p.tokenIf("("); err != nil {
				return err
			} else if ok {
				all, err := p.consumeBalancedTokens(otok)
				if err != nil {
					return err
				}
				toks = all[1 : len(all)-1]
			}
			method.Noexcept = createValue(toks)
		default:
			p.lex.ReturnToken(tok)
			return nil
		}
	}
}

// parseFunction assumes the caller has already consumed the return type and
// name; it consumes the rest of the function including its definition, if
// present. It reports whether the declarator list ends here: true when a
// body was consumed or a trailing return type was parsed, after which the
// caller accepts only an optional ';'.
func (p *CxxParser) parseFunction(
	mods parserstate.ParsedTypeModifiers,
	returnType ast.DecoratedType,
	pqname ast.PQName,
	op string,
	template *ast.TemplateDecl,
	doxygen string,
	location token.Location,
	constructor, destructor, isFriend, isTypedef bool,
	msvcConvention string,
) (bool, error) {
	if _, ok := lastSegmentName(pqname); !ok {
		return false, p.parseErr(token.Token{}, "")
	}

	state := p.state
	state.SetLocation(location)
	classState, isClassBlock := state.(*parserstate.ClassBlockState)

	params, vararg, err := p.parseParameters()
	if err != nil {
		return false, err
	}

	if isClassBlock && !isTypedef {
		access := classState.Access

		base := ast.Function{
			ReturnType: returnType, Name: pqname, Parameters: params, Vararg: vararg,
			Doxygen: doxygen, Template: template,
			Constexpr: hasMod(mods.Both, "constexpr"),
			Extern:    hasMod(mods.Both, "extern"),
			Static:    hasMod(mods.Both, "static"),
			Inline:    hasMod(mods.Both, "inline"),
		}

		baseMethod := ast.Method{
			Function: base, Access: access,
			Constructor: constructor, Destructor: destructor,
			Explicit: hasMod(mods.Meths, "explicit"),
			Virtual:  hasMod(mods.Meths, "virtual"),
		}
		if msvcConvention != "" {
			baseMethod.MSVCConvention = msvcConvention
		}

		var method *ast.Method
		var operator *ast.Operator
		if op != "" {
			operator = &ast.Operator{Method: baseMethod, OperatorName: op}
			method = &operator.Method
		} else {
			method = &baseMethod
		}

		if err := p.parseMethodEnd(method); err != nil {
			return false, err
		}

		if isFriend {
			classSt, _ := state.(*parserstate.ClassBlockState)
			p.visitor.OnClassFriend(classSt, &ast.FriendDecl{Fn: &method.Function})
		} else {
			if len(pqname.Segments) > 1 {
				if first, ok := pqname.Segments[0].(*ast.NameSpecifier); !ok || first.Name != "operator" {
					return false, p.parseErr(token.Token{}, "")
				}
			}
			p.visitor.OnClassMethod(classState, method)
		}

		return method.HasBody || method.HasTrailingReturn, nil
	}

	fn := &ast.Function{
		ReturnType: returnType, Name: pqname, Parameters: params, Vararg: vararg,
		Doxygen: doxygen, Template: template,
		Constexpr: hasMod(mods.Both, "constexpr"),
		Extern:    hasMod(mods.Both, "extern"),
		Static:    hasMod(mods.Both, "static"),
		Inline:    hasMod(mods.Both, "inline"),
	}
	if msvcConvention != "" {
		fn.MSVCConvention = msvcConvention
	}
	if err := p.parseFnEnd(fn); err != nil {
		return false, err
	}

	if isTypedef {
		if len(pqname.Segments) != 1 {
			return false, cxxParseErrorf("typedef name may not be a nested-name-specifier")
		}
		name, _ := lastSegmentName(pqname)
		if name == "" {
			return false, cxxParseErrorf("typedef function must have a name")
		}
		if fn.Constexpr || fn.Extern || fn.Static || fn.Inline || fn.HasBody || fn.Template != nil {
			return false, cxxParseErrorf("typedef function may not be constexpr/extern/static/inline/a definition/templated")
		}
		if fn.ReturnType == nil {
			return false, cxxParseErrorf("typedef function must have return type")
		}
		fntype := &ast.FunctionType{
			ReturnType: fn.ReturnType, Parameters: fn.Parameters, Vararg: fn.Vararg,
			HasTrailingReturn: fn.HasTrailingReturn, Noexcept: fn.Noexcept, MSVCConvention: fn.MSVCConvention,
		}
		p.visitor.OnTypedef(state, &ast.Typedef{Type: fntype, Name: name, Access: p.currentAccess()})
		return false, nil
	}

	p.visitor.OnFunction(state, fn)
	return fn.HasBody || fn.HasTrailingReturn, nil
}

func lastSegmentName(pqname ast.PQName) (string, bool) {
	if len(pqname.Segments) == 0 {
		return "", false
	}
	ns, ok := pqname.Segments[len(pqname.Segments)-1].(*ast.NameSpecifier)
	if !ok {
		return "", false
	}
	return ns.Name, true
}

func cxxParseErrorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

//
// function/method adapters for parseTrailingReturnType
//

type functionAdapter struct{ fn *ast.Function }

func (a functionAdapter) setReturnType(t ast.DecoratedType) { a.fn.ReturnType = t }
func (a functionAdapter) returnType() ast.DecoratedType     { return a.fn.ReturnType }
func (a functionAdapter) setHasTrailingReturn(b bool)       { a.fn.HasTrailingReturn = b }

type methodAdapter struct{ m *ast.Method }

func (a methodAdapter) setReturnType(t ast.DecoratedType) { a.m.ReturnType = t }
func (a methodAdapter) returnType() ast.DecoratedType     { return a.m.ReturnType }
func (a methodAdapter) setHasTrailingReturn(b bool)       { a.m.HasTrailingReturn = b }
