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

// NamespaceDecl names a (possibly nested, possibly anonymous) namespace
// definition. An anonymous namespace has an empty Names list.
type NamespaceDecl struct {
	Names  []string
	Inline bool
}

// NamespaceAlias is "namespace Alias = Target::Path;". Not present in the
// snapshot of the original Python implementation this port is otherwise
// grounded on (it predates the feature); designed directly from this
// specification, following the same shape as UsingAlias.
type NamespaceAlias struct {
	Alias  string
	Target []string
}

// BaseClass is one entry of a class's base-clause.
type BaseClass struct {
	Access    Access
	Typename  PQName
	Virtual   bool
	ParamPack bool
}

// ClassDecl is a class/struct/union declaration's head.
type ClassDecl struct {
	Typename PQName
	Bases    []BaseClass
	Template *TemplateDecl

	Explicit bool
	Final    bool

	Doxygen string
	Access  Access
}

// Classkey is a convenience accessor mirroring the original's classkey
// property.
func (c *ClassDecl) ClasskeyOf() Classkey { return c.Typename.Classkey }

// ForwardDecl is a forward declaration of a user-defined type, optionally
// an enum's forward declaration carrying its base type.
type ForwardDecl struct {
	Typename *PQName
	Template *TemplateDecl
	Doxygen  string
	EnumBase *PQName
	Access   Access
}

// Enumerator is a single `name [= value]` entry of an EnumDecl.
type Enumerator struct {
	Name    string
	Value   *Value
	Doxygen string
}

// EnumDecl is an enum/enum class/enum struct declaration.
type EnumDecl struct {
	Typename PQName
	Values   []Enumerator
	Base     *PQName
	Doxygen  string
	Access   Access
}

// Parameter is one parameter of a function/method/FunctionType.
type Parameter struct {
	Type      DecoratedType
	Name      string
	Default   *Value
	ParamPack bool
}

// TemplateNonTypeParam is a non-type template parameter, e.g. `template
// <int T>` or `template <auto T>`.
type TemplateNonTypeParam struct {
	Type      DecoratedType
	Name      string
	Default   *Value
	ParamPack bool
}

func (*TemplateNonTypeParam) isTemplateParam() {}

// TemplateTypeParam is a type template parameter, e.g. `template
// <typename T>`, possibly itself a template-template parameter.
type TemplateTypeParam struct {
	Typekey   string // "class" or "typename"
	Name      string
	ParamPack bool
	Default   *Value
	Template  *TemplateDecl // set for a template-template parameter
}

func (*TemplateTypeParam) isTemplateParam() {}

// TemplateParam is the union of TemplateNonTypeParam and TemplateTypeParam.
type TemplateParam interface {
	isTemplateParam()
}

// TemplateDecl is a `template <...>` header decorating the declaration that
// follows it.
type TemplateDecl struct {
	Params []TemplateParam
}

// Function is a free function declaration, potentially with a body (whose
// contents are discarded, never represented in the AST).
type Function struct {
	ReturnType DecoratedType // nil for constructors/destructors
	Name       PQName
	Parameters []*Parameter
	Vararg     bool

	Doxygen string

	Constexpr bool
	Extern    bool
	Static    bool
	Inline    bool

	HasBody           bool
	HasTrailingReturn bool

	Template *TemplateDecl

	Throw    *Value
	Noexcept *Value

	MSVCConvention string
}

// Method extends Function with the member-function-only flags. A Method may
// only appear inside a class scope (§3 invariants).
type Method struct {
	Function

	Access Access

	Const    bool
	Volatile bool

	// RefQualifier is "&", "&&", or "" if absent.
	RefQualifier string

	Constructor bool
	Explicit    bool
	Default     bool
	Deleted     bool

	Destructor bool

	PureVirtual bool
	Virtual     bool
	Final       bool
	Override    bool
}

// Operator extends Method with the operator spelling, e.g. "+=", "[]",
// "()", or "conversion" for a conversion operator (whose target type is
// Method.Function.ReturnType).
type Operator struct {
	Method
	OperatorName string
}

// FriendDecl wraps exactly one of a forward-declared type or a function,
// declared `friend` inside a class body.
type FriendDecl struct {
	Cls *ForwardDecl
	Fn  *Function
}

// Typedef introduces an alias name for a DecoratedType or FunctionType.
type Typedef struct {
	Type   interface{} // DecoratedType or *FunctionType
	Name   string
	Access Access
}

// Variable is a non-member or static-member data declaration.
type Variable struct {
	Name  PQName
	Type  DecoratedType
	Value *Value

	Constexpr bool
	Extern    bool
	Static    bool
	Inline    bool

	Template *TemplateDecl

	Doxygen string
}

// Field is a class data member.
type Field struct {
	Access Access

	Type DecoratedType
	Name string

	Value *Value
	Bits  *Value // bit-field width, preserved verbatim (§9 open question resolved: unify on Value)

	Constexpr bool
	Mutable   bool
	Static    bool
	Inline    bool

	Doxygen string
}

// UsingDecl is `using NS::Name;`.
type UsingDecl struct {
	Typename PQName
	Access   Access
}

// UsingAlias is `using Alias = Type;`, optionally templated (an alias
// template).
type UsingAlias struct {
	Alias    string
	Type     DecoratedType
	Template *TemplateDecl
	Access   Access
}

// Concept is `concept Name = constraint-expression;`. Absent from the
// original_source snapshot this port is grounded on (predates the
// `concept` keyword); designed from this specification directly, following
// the doc/access/template conventions of the neighboring declaration types.
type Concept struct {
	Name       string
	Template   *TemplateDecl
	Constraint *Value
	Doxygen    string
}
