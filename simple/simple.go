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

// Package simple is the reference Visitor implementation: it aggregates
// every callback into a tree of NamespaceScope/ClassScope values rooted at
// a global NamespaceScope, plus top-level #include/#define/#pragma lists.
// Most consumers that do not need their own scope bookkeeping should call
// ParseString or ParseFile rather than driving parser.CxxParser directly.
//
// Names are not resolved: a declaration is stored in the scope it is
// textually found in. A class defined out-of-line as "namespace N { class
// C; } class N::C { ... };" stores the forward declaration under N but the
// ClassDecl itself under the global namespace, exactly as the scope stack
// saw it.
package simple

import (
	"io"
	"os"

	"github.com/robotpy/cxxheaderparser/ast"
	"github.com/robotpy/cxxheaderparser/options"
	"github.com/robotpy/cxxheaderparser/parser"
	"github.com/robotpy/cxxheaderparser/parserstate"
	"github.com/robotpy/cxxheaderparser/visitor"
)

// ClassScope holds everything collected for a single class/struct/union
// body. Nested classes appear in Classes.
type ClassScope struct {
	ClassDecl *ast.ClassDecl

	Classes      []*ClassScope
	Enums        []*ast.EnumDecl
	Fields       []*ast.Field
	Friends      []*ast.FriendDecl
	Methods      []*ast.Method
	Typedefs     []*ast.Typedef
	ForwardDecls []*ast.ForwardDecl
	Using        []*ast.UsingDecl
	UsingAlias   []*ast.UsingAlias
}

// UsingNamespace is a `using namespace NS;` directive, recorded as the
// fully joined "::"-separated name.
type UsingNamespace struct {
	NS string
}

// NamespaceScope holds everything collected for a single namespace. Nested
// namespaces live in Namespaces, keyed by their own (unqualified) name; an
// anonymous namespace is keyed by "".
type NamespaceScope struct {
	Name   string
	Inline bool

	Classes    []*ClassScope
	Enums      []*ast.EnumDecl
	Functions  []*ast.Function
	Typedefs   []*ast.Typedef
	Variables  []*ast.Variable
	Concepts   []*ast.Concept

	ForwardDecls []*ast.ForwardDecl
	Using        []*ast.UsingDecl
	UsingNS      []*UsingNamespace
	UsingAlias   []*ast.UsingAlias

	Namespaces map[string]*NamespaceScope
}

func newNamespaceScope(name string) *NamespaceScope {
	return &NamespaceScope{Name: name, Namespaces: map[string]*NamespaceScope{}}
}

// block is the union of *ClassScope and *NamespaceScope, the two kinds of
// frame the collector's block stack ever holds.
type block interface {
	isBlock()
}

func (*ClassScope) isBlock()     {}
func (*NamespaceScope) isBlock() {}

// Define is a `#define` directive's content, verbatim.
type Define struct{ Content string }

// Pragma is a `#pragma` directive's content, verbatim.
type Pragma struct{ Content string }

// Include is a `#include` directive's target, including its surrounding
// `<>` or `"`.
type Include struct{ Filename string }

// ParsedData is everything SimpleVisitor collected from one translation
// unit.
type ParsedData struct {
	Namespace *NamespaceScope

	Defines  []Define
	Pragmas  []Pragma
	Includes []Include
}

// SimpleVisitor implements visitor.Visitor by aggregating every callback
// into a ParsedData tree. Construct one with NewSimpleVisitor, or just call
// ParseString/ParseFile.
type SimpleVisitor struct {
	data      *ParsedData
	namespace *NamespaceScope
	curBlock  block

	nsStack    []*NamespaceScope
	blockStack []block
}

// NewSimpleVisitor returns a visitor whose Data() starts empty and is
// populated as the parser drives it.
func NewSimpleVisitor() *SimpleVisitor {
	ns := newNamespaceScope("")
	return &SimpleVisitor{
		data:      &ParsedData{Namespace: ns},
		namespace: ns,
		curBlock:  ns,
	}
}

// Data returns the (possibly still-being-populated) parsed tree.
func (s *SimpleVisitor) Data() *ParsedData { return s.data }

func (s *SimpleVisitor) OnDefine(_ parserstate.State, content string) {
	s.data.Defines = append(s.data.Defines, Define{Content: content})
}

func (s *SimpleVisitor) OnPragma(_ parserstate.State, content string) {
	s.data.Pragmas = append(s.data.Pragmas, Pragma{Content: content})
}

func (s *SimpleVisitor) OnInclude(_ parserstate.State, filename string) {
	s.data.Includes = append(s.data.Includes, Include{Filename: filename})
}

// Empty blocks carry no semantic meaning the simple collector needs; if
// you care about that level of detail, a hand-written Visitor is a better
// fit than post-processing this tree.
func (s *SimpleVisitor) OnEmptyBlockStart(*parserstate.EmptyBlockState) {}
func (s *SimpleVisitor) OnEmptyBlockEnd(*parserstate.EmptyBlockState)   {}

func (s *SimpleVisitor) OnExternBlockStart(*parserstate.ExternBlockState) {}
func (s *SimpleVisitor) OnExternBlockEnd(*parserstate.ExternBlockState)   {}

func (s *SimpleVisitor) OnNamespaceStart(state *parserstate.NamespaceBlockState) {
	parentNS := s.namespace
	s.blockStack = append(s.blockStack, s.curBlock)
	s.nsStack = append(s.nsStack, parentNS)

	names := state.Namespace.Names
	if len(names) == 0 {
		// all anonymous namespaces in a translation unit are the same one
		names = []string{""}
	}

	var ns *NamespaceScope
	for _, name := range names {
		child, ok := parentNS.Namespaces[name]
		if !ok {
			child = newNamespaceScope(name)
			parentNS.Namespaces[name] = child
		}
		ns = child
		parentNS = child
	}
	ns.Inline = state.Namespace.Inline

	s.curBlock = ns
	s.namespace = ns
}

func (s *SimpleVisitor) OnNamespaceEnd(*parserstate.NamespaceBlockState) {
	n := len(s.blockStack)
	s.curBlock = s.blockStack[n-1]
	s.blockStack = s.blockStack[:n-1]

	m := len(s.nsStack)
	s.namespace = s.nsStack[m-1]
	s.nsStack = s.nsStack[:m-1]
}

func (s *SimpleVisitor) OnNamespaceAlias(_ parserstate.State, alias *ast.NamespaceAlias) {
	// Namespace aliases have no dedicated list in the original simple
	// collector (it predates them); they resolve to nothing actionable
	// without name resolution, which this package deliberately never
	// does, so they are dropped silently here the same way an unhandled
	// declaration kind would be.
	_ = alias
}

func (s *SimpleVisitor) OnForwardDecl(_ parserstate.State, fdecl *ast.ForwardDecl) {
	switch b := s.curBlock.(type) {
	case *ClassScope:
		b.ForwardDecls = append(b.ForwardDecls, fdecl)
	case *NamespaceScope:
		b.ForwardDecls = append(b.ForwardDecls, fdecl)
	}
}

func (s *SimpleVisitor) OnVariable(_ parserstate.State, v *ast.Variable) {
	ns := s.curBlock.(*NamespaceScope)
	ns.Variables = append(ns.Variables, v)
}

func (s *SimpleVisitor) OnFunction(_ parserstate.State, fn *ast.Function) {
	ns := s.curBlock.(*NamespaceScope)
	ns.Functions = append(ns.Functions, fn)
}

func (s *SimpleVisitor) OnTypedef(_ parserstate.State, td *ast.Typedef) {
	switch b := s.curBlock.(type) {
	case *ClassScope:
		b.Typedefs = append(b.Typedefs, td)
	case *NamespaceScope:
		b.Typedefs = append(b.Typedefs, td)
	}
}

func (s *SimpleVisitor) OnUsingNamespace(_ parserstate.State, namespace []string) {
	ns := s.curBlock.(*NamespaceScope)
	joined := ""
	for i, n := range namespace {
		if i > 0 {
			joined += "::"
		}
		joined += n
	}
	ns.UsingNS = append(ns.UsingNS, &UsingNamespace{NS: joined})
}

func (s *SimpleVisitor) OnUsingAlias(_ parserstate.State, using *ast.UsingAlias) {
	switch b := s.curBlock.(type) {
	case *ClassScope:
		b.UsingAlias = append(b.UsingAlias, using)
	case *NamespaceScope:
		b.UsingAlias = append(b.UsingAlias, using)
	}
}

func (s *SimpleVisitor) OnUsingDeclaration(_ parserstate.State, using *ast.UsingDecl) {
	switch b := s.curBlock.(type) {
	case *ClassScope:
		b.Using = append(b.Using, using)
	case *NamespaceScope:
		b.Using = append(b.Using, using)
	}
}

func (s *SimpleVisitor) OnEnum(_ parserstate.State, enum *ast.EnumDecl) {
	switch b := s.curBlock.(type) {
	case *ClassScope:
		b.Enums = append(b.Enums, enum)
	case *NamespaceScope:
		b.Enums = append(b.Enums, enum)
	}
}

func (s *SimpleVisitor) OnClassStart(state *parserstate.ClassBlockState) {
	cs := &ClassScope{ClassDecl: state.ClassDecl}
	switch b := s.curBlock.(type) {
	case *ClassScope:
		b.Classes = append(b.Classes, cs)
	case *NamespaceScope:
		b.Classes = append(b.Classes, cs)
	}
	s.blockStack = append(s.blockStack, s.curBlock)
	s.curBlock = cs
}

func (s *SimpleVisitor) OnClassField(_ *parserstate.ClassBlockState, f *ast.Field) {
	cs := s.curBlock.(*ClassScope)
	cs.Fields = append(cs.Fields, f)
}

func (s *SimpleVisitor) OnClassMethod(_ *parserstate.ClassBlockState, method *ast.Method) {
	cs := s.curBlock.(*ClassScope)
	cs.Methods = append(cs.Methods, method)
}

func (s *SimpleVisitor) OnClassFriend(_ *parserstate.ClassBlockState, friend *ast.FriendDecl) {
	cs := s.curBlock.(*ClassScope)
	cs.Friends = append(cs.Friends, friend)
}

func (s *SimpleVisitor) OnClassEnd(*parserstate.ClassBlockState) {
	n := len(s.blockStack)
	s.curBlock = s.blockStack[n-1]
	s.blockStack = s.blockStack[:n-1]
}

func (s *SimpleVisitor) OnConcept(_ parserstate.State, concept *ast.Concept) {
	ns := s.curBlock.(*NamespaceScope)
	ns.Concepts = append(ns.Concepts, concept)
}

var _ visitor.Visitor = (*SimpleVisitor)(nil)

// ParseString parses content (using "<str>" as the diagnostic filename
// unless overridden) and returns the aggregated tree.
func ParseString(filename, content string, opts *options.ParserOptions) (*ParsedData, error) {
	if filename == "" {
		filename = "<str>"
	}
	v := NewSimpleVisitor()
	p, err := parser.New(filename, content, v, opts)
	if err != nil {
		return nil, err
	}
	if err := p.Parse(); err != nil {
		return nil, err
	}
	return v.Data(), nil
}

// ParseFile reads filename (or stdin, if filename is "-") and parses its
// contents.
func ParseFile(filename string, opts *options.ParserOptions) (*ParsedData, error) {
	var content []byte
	var err error
	if filename == "-" {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, err
	}
	return ParseString(filename, string(content), opts)
}
