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

// Package parserstate is the parser's explicit scope-frame stack: namespace,
// extern-linkage, class, and free-standing "empty" blocks. Each frame
// variant is a distinct Go type implementing State; the parser dispatches
// the matching visitor end-callback itself when a frame is popped, rather
// than each frame knowing how to call back into the visitor (which would
// require this package to import package visitor, and visitor to import
// this one for its callback signatures).
package parserstate

import (
	"github.com/robotpy/cxxheaderparser/ast"
	"github.com/robotpy/cxxheaderparser/token"
)

// State is one frame of the parser's scope stack.
type State interface {
	Parent() State
	Location() token.Location
	SetLocation(token.Location)
	isState()
}

type base struct {
	parent   State
	location token.Location
}

func (b *base) Parent() State            { return b.parent }
func (b *base) Location() token.Location { return b.location }
func (b *base) SetLocation(l token.Location) { b.location = l }

// Access returns the current access level for state, and whether state is a
// ClassBlockState (the only frame that carries one).
func Access(state State) (ast.Access, bool) {
	if c, ok := state.(*ClassBlockState); ok {
		return c.Access, true
	}
	return "", false
}

// EmptyBlockState is a free-standing `{ ... }` block with no semantic
// meaning of its own, tracked only so its end can be reported to the
// visitor.
type EmptyBlockState struct {
	base
}

func (*EmptyBlockState) isState() {}

// NewEmptyBlockState pushes a new empty-block frame.
func NewEmptyBlockState(parent State, loc token.Location) *EmptyBlockState {
	return &EmptyBlockState{base{parent, loc}}
}

// ExternBlockState is `extern "C" { ... }` or an unbraced `extern "C" decl;`.
type ExternBlockState struct {
	base
	Linkage string
}

func (*ExternBlockState) isState() {}

func NewExternBlockState(parent State, loc token.Location, linkage string) *ExternBlockState {
	return &ExternBlockState{base{parent, loc}, linkage}
}

// NamespaceBlockState is a `namespace ... { ... }` block. Namespace carries
// only this block's own (possibly multi-segment, possibly anonymous) name;
// the full nested path is the chain of parent NamespaceBlockStates.
type NamespaceBlockState struct {
	base
	Namespace ast.NamespaceDecl
}

func (*NamespaceBlockState) isState() {}

func NewNamespaceBlockState(parent State, loc token.Location, ns ast.NamespaceDecl) *NamespaceBlockState {
	return &NamespaceBlockState{base{parent, loc}, ns}
}

// ClassBlockState is a class/struct/union body.
type ClassBlockState struct {
	base
	ClassDecl *ast.ClassDecl
	Access    ast.Access
	Typedef   bool
	Mods      ParsedTypeModifiers
}

func (*ClassBlockState) isState() {}

func NewClassBlockState(parent State, loc token.Location, decl *ast.ClassDecl, access ast.Access, typedef bool, mods ParsedTypeModifiers) *ClassBlockState {
	return &ClassBlockState{base{parent, loc}, decl, access, typedef, mods}
}

// SetAccess updates the current access level (on an access-specifier label
// like `public:`).
func (c *ClassBlockState) SetAccess(access ast.Access) { c.Access = access }

// ParsedTypeModifiers is the three-way partition of decl-specifier keywords
// collected while parsing a base type: keywords legal only on variables,
// only on methods, or on both. Partitioning them lets the caller report a
// precise ParseError naming the offending keyword's own location once it
// learns whether a variable or a method followed.
type ParsedTypeModifiers struct {
	Vars  map[string]token.Token
	Both  map[string]token.Token
	Meths map[string]token.Token
}

// NewParsedTypeModifiers returns an empty modifier bundle.
func NewParsedTypeModifiers() ParsedTypeModifiers {
	return ParsedTypeModifiers{
		Vars:  map[string]token.Token{},
		Both:  map[string]token.Token{},
		Meths: map[string]token.Token{},
	}
}

// ModifierError reports a decl-specifier keyword that is not legal in the
// position Validate was called for.
type ModifierError struct {
	Message string
	Token   token.Token
}

func (e *ModifierError) Error() string {
	return e.Message + ": unexpected '" + e.Token.Text + "'"
}

// Validate checks that only keywords legal in the current position were
// collected: varOK permits variable-only modifiers, methOK permits
// method-only modifiers; "both" modifiers are only legal when at least one
// of varOK/methOK is true, matching the original's three-way check.
func (m ParsedTypeModifiers) Validate(varOK, methOK bool, msg string) error {
	if !varOK {
		for _, t := range m.Vars {
			return &ModifierError{Message: msg, Token: t}
		}
	}
	if !methOK {
		for _, t := range m.Meths {
			return &ModifierError{Message: msg, Token: t}
		}
	}
	if !methOK && !varOK {
		for _, t := range m.Both {
			return &ModifierError{Message: msg, Token: t}
		}
	}
	return nil
}
