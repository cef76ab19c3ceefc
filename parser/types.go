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

//
// Decorated type parsing
//

func asPointerTarget(v interface{}) (ast.PointerTarget, bool) {
	switch t := v.(type) {
	case *ast.Type:
		return t, true
	case *ast.Pointer:
		return t, true
	case *ast.Array:
		return t, true
	case *ast.FunctionType:
		return t, true
	default:
		return nil, false
	}
}

func asRefTarget(v interface{}) (ast.RefTarget, bool) {
	switch t := v.(type) {
	case *ast.Type:
		return t, true
	case *ast.Pointer:
		return t, true
	case *ast.Array:
		return t, true
	case *ast.FunctionType:
		return t, true
	default:
		return nil, false
	}
}

func asArrayOfTarget(v interface{}) (ast.ArrayOfTarget, bool) {
	switch t := v.(type) {
	case *ast.Type:
		return t, true
	case *ast.Pointer:
		return t, true
	case *ast.Array:
		return t, true
	default:
		return nil, false
	}
}

func asDecoratedType(v interface{}) (ast.DecoratedType, bool) {
	switch t := v.(type) {
	case *ast.Type:
		return t, true
	case *ast.Pointer:
		return t, true
	case *ast.Reference:
		return t, true
	case *ast.MoveReference:
		return t, true
	case *ast.Array:
		return t, true
	default:
		return nil, false
	}
}

type functionTypeAdapter struct{ ft *ast.FunctionType }

func (a functionTypeAdapter) setReturnType(t ast.DecoratedType) { a.ft.ReturnType = t }
func (a functionTypeAdapter) returnType() ast.DecoratedType     { return a.ft.ReturnType }
func (a functionTypeAdapter) setHasTrailingReturn(b bool)       { a.ft.HasTrailingReturn = b }

func (p *CxxParser) parseArrayType(tok token.Token, dtype ast.DecoratedType) (*ast.Array, error) {
	switch dtype.(type) {
	case *ast.Reference, *ast.MoveReference:
		return nil, cxxParseErrorf("arrays of references are illegal")
	}

	toks, err := p.consumeBalancedTokens(tok)
	if err != nil {
		return nil, err
	}

	var arr *ast.Array
	if otok, ok, err := p.tokenIf("["); err != nil {
		return nil, err
	} else if ok {
		// recurses because array types are right to left
		inner, err := p.parseArrayType(otok, dtype)
		if err != nil {
			return nil, err
		}
		dtype = inner
	}

	inner := toks[1 : len(toks)-1]
	var size *ast.Value
	if len(inner) > 0 {
		size = createValue(inner)
	}

	arrOf, ok := asArrayOfTarget(dtype)
	if !ok {
		return nil, cxxParseErrorf("internal error: invalid array element type")
	}
	arr = &ast.Array{ArrayOf: arrOf, Size: size}
	return arr, nil
}

// parseCvPtr is parseCvPtrOrFn with nonptrFn=false, erroring if the result
// is a bare (non-pointer) function type.
func (p *CxxParser) parseCvPtr(dtype ast.DecoratedType) (ast.DecoratedType, error) {
	result, err := p.parseCvPtrOrFn(dtype, false)
	if err != nil {
		return nil, err
	}
	dt, ok := asDecoratedType(result)
	if !ok {
		return nil, cxxParseErrorf("unexpected function type")
	}
	return dt, nil
}

// parseCvPtrOrFn consumes the pointer/reference/cv-qualifier/array/function
// declarator chain following a base type. nonptrFn is set only when parsing
// a template argument's speculative type-id, where a bare (non-pointer)
// function type is a legal result (e.g. the template argument in
// Foo<void(int)>).
func (p *CxxParser) parseCvPtrOrFn(dtype interface{}, nonptrFn bool) (interface{}, error) {
outer:
	for {
		tok, ok, err := p.tokenIf("*", "const", "volatile", "(")
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		switch tok.Text {
		case "*":
			pt, ok := asPointerTarget(dtype)
			if !ok {
				return nil, p.parseErr(tok, "")
			}
			dtype = &ast.Pointer{PtrTo: pt}

		case "const":
			switch d := dtype.(type) {
			case *ast.Pointer:
				d.Const = true
			case *ast.Type:
				d.Const = true
			default:
				return nil, p.parseErr(tok, "")
			}

		case "volatile":
			switch d := dtype.(type) {
			case *ast.Pointer:
				d.Volatile = true
			case *ast.Type:
				d.Volatile = true
			default:
				return nil, p.parseErr(tok, "")
			}

		default: // "("
			if nonptrFn {
				for {
					gtok, ok, err := p.tokenIf("(")
					if err != nil {
						return nil, err
					}
					if !ok {
						break
					}
					toks, err := p.consumeBalancedTokens(gtok)
					if err != nil {
						return nil, err
					}
					p.lex.ReturnTokens(toks[1 : len(toks)-1])
				}

				rt, ok := asDecoratedType(dtype)
				if !ok {
					return nil, p.parseErr(tok, "")
				}
				fnParams, vararg, err := p.parseParameters()
				if err != nil {
					return nil, err
				}
				ft := &ast.FunctionType{ReturnType: rt, Parameters: fnParams, Vararg: vararg}
				dtype = ft
				if _, ok, err := p.tokenIf("->"); err != nil {
					return nil, err
				} else if ok {
					if err := p.parseTrailingReturnType(functionTypeAdapter{ft}); err != nil {
						return nil, err
					}
				}
			} else {
				var msvcConvention string
				if mtok, ok, err := p.tokenIfMSVCConvention(); err != nil {
					return nil, err
				} else if ok {
					msvcConvention = mtok.Text
				}

				// Check to see if this is a grouping paren or something else
				if peek, err := p.tokenPeekIf("*", "&"); err != nil {
					return nil, err
				} else if !peek {
					p.lex.ReturnToken(tok)
					break outer
				}

				// this is a grouping paren, so consume it
				toks, err := p.consumeBalancedTokens(tok)
				if err != nil {
					return nil, err
				}

				// Now check to see if we have either an array or a
				// function pointer
				if aptok, ok, err := p.tokenIf("[", "("); err != nil {
					return nil, err
				} else if ok {
					switch aptok.Text {
					case "[":
						arr, err := p.parseArrayType(aptok, mustDecoratedType(dtype))
						if err != nil {
							return nil, err
						}
						dtype = arr
					case "(":
						fnParams, vararg, err := p.parseParameters()
						if err != nil {
							return nil, err
						}
						rt, ok := asDecoratedType(dtype)
						if !ok {
							return nil, p.parseErr(aptok, "")
						}
						dtype = &ast.FunctionType{ReturnType: rt, Parameters: fnParams, Vararg: vararg, MSVCConvention: msvcConvention}
						// TODO member function pointer
					}
				}

				p.lex.ReturnTokens(toks[1 : len(toks)-1])
				dtype, err = p.parseCvPtrOrFn(dtype, nonptrFn)
				if err != nil {
					return nil, err
				}
				break outer
			}
		}
	}

	if tok, ok, err := p.tokenIf("&", "&&"); err != nil {
		return nil, err
	} else if ok {
		rt, ok := asRefTarget(dtype)
		if !ok {
			return nil, p.parseErr(tok, "")
		}
		if tok.Text == "&" {
			dtype = &ast.Reference{RefTo: rt}
		} else {
			dtype = &ast.MoveReference{MoveRefTo: rt}
		}

		if peek, err := p.tokenPeekIf("("); err != nil {
			return nil, err
		} else if peek {
			var err error
			dtype, err = p.parseCvPtrOrFn(dtype, nonptrFn)
			if err != nil {
				return nil, err
			}
		}
	}

	return dtype, nil
}

func mustDecoratedType(v interface{}) ast.DecoratedType {
	dt, _ := asDecoratedType(v)
	return dt
}

var typeKwdBoth = map[string]bool{"const": true, "constexpr": true, "extern": true, "inline": true, "static": true}
var typeKwdMeth = map[string]bool{"explicit": true, "virtual": true}
var typePtrRefParen = map[string]bool{"*": true, "&": true, "&&": true, "(": true}

// parseType parses a base type (decl-specifier-seq) and stops at the first
// token it doesn't understand -- it never parses pointers, references, or
// the declarator chain. operatorOK permits a bare "operator" token to stand
// in for a conversion-operator's omitted return type, in which case the
// returned Type is nil.
func (p *CxxParser) parseType(tok *token.Token, operatorOK bool) (*ast.Type, parserstate.ParsedTypeModifiers, error) {
	mods := parserstate.NewParsedTypeModifiers()

	const_, volatile := false, false

	var cur token.Token
	var err error
	if tok != nil {
		cur = *tok
	} else {
		cur, err = p.lex.Token()
		if err != nil {
			return nil, mods, p.wrapLexErr(err)
		}
	}

	var pqname *ast.PQName
	pqnameOptional := false

	for {
		switch {
		case isPqnameStart(cur):
			if pqname != nil {
				goto doneLoop
			}
			if operatorOK && cur.Text == "operator" {
				pqnameOptional = true
				goto doneLoop
			}
			n, _, err := p.parsePqname(&cur, false, true, true)
			if err != nil {
				return nil, mods, err
			}
			pqname = &n

		case typePtrRefParen[cur.Text]:
			if pqname == nil {
				return nil, mods, p.parseErr(cur, "")
			}
			goto doneLoop

		case cur.Text == "const":
			const_ = true

		case typeKwdBoth[cur.Text]:
			if cur.Text == "extern" {
				if _, _, err := p.tokenIf("STRING_LITERAL"); err != nil {
					return nil, mods, err
				}
			}
			mods.Both[cur.Text] = cur

		case typeKwdMeth[cur.Text]:
			mods.Meths[cur.Text] = cur

		case cur.Text == "mutable":
			mods.Vars["mutable"] = cur

		case cur.Text == "volatile":
			volatile = true

		case attributeStartTokens[cur.Text]:
			if err := p.consumeAttribute(cur); err != nil {
				return nil, mods, err
			}

		default:
			goto doneLoop
		}

		cur, err = p.lex.Token()
		if err != nil {
			return nil, mods, p.wrapLexErr(err)
		}
	}

doneLoop:
	var parsedType *ast.Type
	if pqname == nil {
		if !pqnameOptional {
			return nil, mods, p.parseErr(cur, "")
		}
	} else {
		parsedType = &ast.Type{Typename: *pqname, Const: const_, Volatile: volatile}
	}

	p.lex.ReturnToken(cur)

	return parsedType, mods, nil
}
