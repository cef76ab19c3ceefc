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

// Package visitor defines the callback contract the parser emits
// declarations through. The "simple" package (cxxheaderparser's reference
// consumer) implements this interface to build a NamespaceScope/ClassScope
// tree; callers needing something else (an indexer, a binding generator)
// implement it directly instead of post-processing an AST.
package visitor

import (
	"github.com/robotpy/cxxheaderparser/ast"
	"github.com/robotpy/cxxheaderparser/parserstate"
)

// Visitor is the full set of events the parser emits as it recognizes
// declarations. Every method receives the current scope-stack frame so
// implementations can read the enclosing access level and scope without
// maintaining their own shadow stack.
type Visitor interface {
	OnDefine(state parserstate.State, content string)
	OnPragma(state parserstate.State, content string)
	OnInclude(state parserstate.State, filename string)

	OnEmptyBlockStart(state *parserstate.EmptyBlockState)
	OnEmptyBlockEnd(state *parserstate.EmptyBlockState)

	OnExternBlockStart(state *parserstate.ExternBlockState)
	OnExternBlockEnd(state *parserstate.ExternBlockState)

	OnNamespaceStart(state *parserstate.NamespaceBlockState)
	OnNamespaceEnd(state *parserstate.NamespaceBlockState)
	OnNamespaceAlias(state parserstate.State, alias *ast.NamespaceAlias)

	OnForwardDecl(state parserstate.State, fdecl *ast.ForwardDecl)
	OnVariable(state parserstate.State, v *ast.Variable)
	OnFunction(state parserstate.State, fn *ast.Function)
	OnTypedef(state parserstate.State, td *ast.Typedef)

	OnUsingNamespace(state parserstate.State, namespace []string)
	OnUsingAlias(state parserstate.State, using *ast.UsingAlias)
	OnUsingDeclaration(state parserstate.State, using *ast.UsingDecl)

	OnEnum(state parserstate.State, enum *ast.EnumDecl)

	OnClassStart(state *parserstate.ClassBlockState)
	OnClassField(state *parserstate.ClassBlockState, f *ast.Field)
	OnClassFriend(state *parserstate.ClassBlockState, friend *ast.FriendDecl)
	OnClassMethod(state *parserstate.ClassBlockState, method *ast.Method)
	OnClassEnd(state *parserstate.ClassBlockState)

	OnConcept(state parserstate.State, concept *ast.Concept)
}

// NopVisitor implements Visitor with no-op methods; embed it to implement
// only the callbacks a particular consumer cares about.
type NopVisitor struct{}

func (NopVisitor) OnDefine(parserstate.State, string)  {}
func (NopVisitor) OnPragma(parserstate.State, string)  {}
func (NopVisitor) OnInclude(parserstate.State, string) {}

func (NopVisitor) OnEmptyBlockStart(*parserstate.EmptyBlockState) {}
func (NopVisitor) OnEmptyBlockEnd(*parserstate.EmptyBlockState)   {}

func (NopVisitor) OnExternBlockStart(*parserstate.ExternBlockState) {}
func (NopVisitor) OnExternBlockEnd(*parserstate.ExternBlockState)   {}

func (NopVisitor) OnNamespaceStart(*parserstate.NamespaceBlockState) {}
func (NopVisitor) OnNamespaceEnd(*parserstate.NamespaceBlockState)   {}
func (NopVisitor) OnNamespaceAlias(parserstate.State, *ast.NamespaceAlias) {}

func (NopVisitor) OnForwardDecl(parserstate.State, *ast.ForwardDecl) {}
func (NopVisitor) OnVariable(parserstate.State, *ast.Variable)       {}
func (NopVisitor) OnFunction(parserstate.State, *ast.Function)       {}
func (NopVisitor) OnTypedef(parserstate.State, *ast.Typedef)         {}

func (NopVisitor) OnUsingNamespace(parserstate.State, []string)        {}
func (NopVisitor) OnUsingAlias(parserstate.State, *ast.UsingAlias)     {}
func (NopVisitor) OnUsingDeclaration(parserstate.State, *ast.UsingDecl) {}

func (NopVisitor) OnEnum(parserstate.State, *ast.EnumDecl) {}

func (NopVisitor) OnClassStart(*parserstate.ClassBlockState)                  {}
func (NopVisitor) OnClassField(*parserstate.ClassBlockState, *ast.Field)      {}
func (NopVisitor) OnClassFriend(*parserstate.ClassBlockState, *ast.FriendDecl) {}
func (NopVisitor) OnClassMethod(*parserstate.ClassBlockState, *ast.Method)    {}
func (NopVisitor) OnClassEnd(*parserstate.ClassBlockState)                   {}

func (NopVisitor) OnConcept(parserstate.State, *ast.Concept) {}

var _ Visitor = NopVisitor{}
