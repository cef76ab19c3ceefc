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

package ast

import "github.com/robotpy/cxxheaderparser/token"

// PQNameSegment is one '::'-separated component of a possibly-qualified
// name. Exactly one of NameSpecifier, FundamentalSpecifier,
// DecltypeSpecifier, AutoSpecifier, or AnonymousName.
type PQNameSegment interface {
	isPQNameSegment()
}

// NameSpecifier is a plain identifier segment, optionally followed by a
// template specialization: Foo in Foo::Bar, or Foo<int> in Foo<int>::Bar.
type NameSpecifier struct {
	Name           string
	Specialization *TemplateSpecialization // nil if not a template-id
}

func (*NameSpecifier) isPQNameSegment() {}

// FundamentalSpecifier is a normalized fundamental type spelling, e.g.
// "unsigned long long" or "char16_t". No further segment may follow one.
type FundamentalSpecifier struct {
	Name string
}

func (*FundamentalSpecifier) isPQNameSegment() {}

// DecltypeSpecifier holds the verbatim tokens inside decltype(...).
type DecltypeSpecifier struct {
	Tokens []token.Token
}

func (*DecltypeSpecifier) isPQNameSegment() {}

// AutoSpecifier is the placeholder segment for the 'auto' return type.
type AutoSpecifier struct{}

func (*AutoSpecifier) isPQNameSegment() {}

// AnonymousName is a parser-unique id assigned to an unnamed
// class/union/struct/enum. Two AnonymousName segments sharing an ID refer
// to the same anonymous type; ids are unique within a single parse (§9
// "Global per-parser counter").
type AnonymousName struct {
	ID int
}

func (*AnonymousName) isPQNameSegment() {}

// Classkey is the token that introduced a user-defined type.
type Classkey string

const (
	ClasskeyNone       Classkey = ""
	ClasskeyClass      Classkey = "class"
	ClasskeyStruct     Classkey = "struct"
	ClasskeyUnion      Classkey = "union"
	ClasskeyEnum       Classkey = "enum"
	ClasskeyEnumClass  Classkey = "enum class"
	ClasskeyEnumStruct Classkey = "enum struct"
)

// PQName is a possibly-qualified name: an ordered, non-empty list of
// segments. Only the first segment may be empty (an empty leading
// NameSpecifier denotes global '::' qualification).
type PQName struct {
	Segments    []PQNameSegment
	Classkey    Classkey
	HasTypename bool
}

// Name returns the unqualified spelling of the final segment's name, or ""
// if the final segment is not a NameSpecifier.
func (n PQName) Name() string {
	if len(n.Segments) == 0 {
		return ""
	}
	if ns, ok := n.Segments[len(n.Segments)-1].(*NameSpecifier); ok {
		return ns.Name
	}
	return ""
}

// TemplateArgument is a single argument inside Foo<int, Bar...>. Arg is one
// of DecoratedType, *FunctionType, or *Value.
type TemplateArgument struct {
	Arg       interface{}
	ParamPack bool
}

// TemplateSpecialization is the '<...>' portion following a NameSpecifier.
type TemplateSpecialization struct {
	Args []TemplateArgument
}
