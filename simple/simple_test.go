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

package simple

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/robotpy/cxxheaderparser/ast"
)

func TestParseStringVariable(t *testing.T) {
	data, err := ParseString("", "int x = 1;", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Namespace.Variables) != 1 {
		t.Fatalf("got %d variables, want 1", len(data.Namespace.Variables))
	}
	v := data.Namespace.Variables[0]
	if v.Name.Name() != "x" {
		t.Errorf("variable name = %q, want x", v.Name.Name())
	}
	if v.Value == nil {
		t.Fatal("expected a value")
	}
}

func TestParseStringNestedNamespace(t *testing.T) {
	data, err := ParseString("", "namespace a::b { int y; }", nil)
	if err != nil {
		t.Fatal(err)
	}
	a, ok := data.Namespace.Namespaces["a"]
	if !ok {
		t.Fatal("missing namespace a")
	}
	b, ok := a.Namespaces["b"]
	if !ok {
		t.Fatal("missing namespace a::b")
	}
	if len(b.Variables) != 1 || b.Variables[0].Name.Name() != "y" {
		t.Errorf("b.Variables = %+v, want [y]", b.Variables)
	}
}

func TestParseStringClassWithBase(t *testing.T) {
	data, err := ParseString("", "class A : public B, virtual C {};", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Namespace.Classes) != 1 {
		t.Fatalf("got %d classes, want 1", len(data.Namespace.Classes))
	}
	cls := data.Namespace.Classes[0].ClassDecl
	if cls.Typename.Name() != "A" {
		t.Errorf("class name = %q, want A", cls.Typename.Name())
	}
	if len(cls.Bases) != 2 {
		t.Fatalf("got %d bases, want 2", len(cls.Bases))
	}
	if cls.Bases[0].Access != ast.AccessPublic {
		t.Errorf("base[0].Access = %v, want public", cls.Bases[0].Access)
	}
	if cls.Bases[0].Typename.Name() != "B" {
		t.Errorf("base[0].Typename = %q, want B", cls.Bases[0].Typename.Name())
	}
	if !cls.Bases[1].Virtual {
		t.Errorf("base[1].Virtual = false, want true")
	}
	if cls.Bases[1].Typename.Name() != "C" {
		t.Errorf("base[1].Typename = %q, want C", cls.Bases[1].Typename.Name())
	}
}

func TestParseStringEnumClassWithBaseAndValue(t *testing.T) {
	data, err := ParseString("", "enum class E : int { A, B = 2 };", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Namespace.Enums) != 1 {
		t.Fatalf("got %d enums, want 1", len(data.Namespace.Enums))
	}
	e := data.Namespace.Enums[0]
	if e.Typename.Classkey != ast.ClasskeyEnumClass {
		t.Errorf("Classkey = %q, want enum class", e.Typename.Classkey)
	}
	var baseFS *ast.FundamentalSpecifier
	if e.Base != nil && len(e.Base.Segments) == 1 {
		baseFS, _ = e.Base.Segments[0].(*ast.FundamentalSpecifier)
	}
	if baseFS == nil || baseFS.Name != "int" {
		t.Errorf("Base = %+v, want fundamental int", e.Base)
	}
	if len(e.Values) != 2 {
		t.Fatalf("got %d enumerators, want 2", len(e.Values))
	}
	if e.Values[0].Name != "A" || e.Values[0].Value != nil {
		t.Errorf("Values[0] = %+v, want {A <nil>}", e.Values[0])
	}
	if e.Values[1].Name != "B" || e.Values[1].Value == nil {
		t.Errorf("Values[1] = %+v, want B with a value", e.Values[1])
	}
}

func TestParseStringUsingAlias(t *testing.T) {
	data, err := ParseString("", "using V = std::vector<int>;", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Namespace.UsingAlias) != 1 {
		t.Fatalf("got %d using-aliases, want 1", len(data.Namespace.UsingAlias))
	}
	alias := data.Namespace.UsingAlias[0]
	if alias.Alias != "V" {
		t.Errorf("Alias = %q, want V", alias.Alias)
	}

	typ, ok := alias.Type.(*ast.Type)
	if !ok {
		t.Fatalf("Type = %T, want *ast.Type", alias.Type)
	}
	segs := typ.Typename.Segments
	if len(segs) != 2 {
		t.Fatalf("got %d name segments, want 2 (std, vector<int>)", len(segs))
	}
	vec, ok := segs[1].(*ast.NameSpecifier)
	if !ok || vec.Name != "vector" {
		t.Fatalf("segs[1] = %+v, want NameSpecifier{Name: vector}", segs[1])
	}
	if vec.Specialization == nil || len(vec.Specialization.Args) != 1 {
		t.Fatalf("Specialization = %+v, want one template argument", vec.Specialization)
	}
	argType, ok := vec.Specialization.Args[0].Arg.(*ast.Type)
	if !ok {
		t.Fatalf("template arg = %T, want *ast.Type (the speculative type parse must succeed for a bare fundamental)", vec.Specialization.Args[0].Arg)
	}
	fs, ok := argType.Typename.Segments[0].(*ast.FundamentalSpecifier)
	if !ok || fs.Name != "int" {
		t.Errorf("template arg type = %+v, want FundamentalSpecifier{Name: int}", argType.Typename.Segments)
	}
}

func TestParseStringNestedTemplateTypeArgs(t *testing.T) {
	data, err := ParseString("", "A<B<C>> x;", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Namespace.Variables) != 1 {
		t.Fatalf("got %d variables, want 1", len(data.Namespace.Variables))
	}
	typ, ok := data.Namespace.Variables[0].Type.(*ast.Type)
	if !ok {
		t.Fatalf("Type = %T, want *ast.Type", data.Namespace.Variables[0].Type)
	}
	a, ok := typ.Typename.Segments[0].(*ast.NameSpecifier)
	if !ok || a.Name != "A" || a.Specialization == nil || len(a.Specialization.Args) != 1 {
		t.Fatalf("Typename = %+v, want A<...> with one arg", typ.Typename.Segments)
	}
	bType, ok := a.Specialization.Args[0].Arg.(*ast.Type)
	if !ok {
		t.Fatalf("A's template arg = %T, want *ast.Type (nested B<C>)", a.Specialization.Args[0].Arg)
	}
	b, ok := bType.Typename.Segments[0].(*ast.NameSpecifier)
	if !ok || b.Name != "B" || b.Specialization == nil || len(b.Specialization.Args) != 1 {
		t.Fatalf("B's Typename = %+v, want B<...> with one arg", bType.Typename.Segments)
	}
	cType, ok := b.Specialization.Args[0].Arg.(*ast.Type)
	if !ok {
		t.Fatalf("B's template arg = %T, want *ast.Type (C)", b.Specialization.Args[0].Arg)
	}
	c, ok := cType.Typename.Segments[0].(*ast.NameSpecifier)
	if !ok || c.Name != "C" {
		t.Errorf("C's Typename = %+v, want NameSpecifier{Name: C}", cType.Typename.Segments)
	}
}

func TestParseStringFunctionTrailingReturn(t *testing.T) {
	data, err := ParseString("", "auto f() -> int;", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Namespace.Functions) != 1 {
		t.Fatalf("got %d functions, want 1", len(data.Namespace.Functions))
	}
	fn := data.Namespace.Functions[0]
	if !fn.HasTrailingReturn {
		t.Errorf("HasTrailingReturn = false, want true")
	}
	if fn.Name.Name() != "f" {
		t.Errorf("Name = %q, want f", fn.Name.Name())
	}
}

func TestParseStringBitfield(t *testing.T) {
	data, err := ParseString("", "struct S { unsigned x : 4; };", nil)
	if err != nil {
		t.Fatal(err)
	}
	cls := data.Namespace.Classes[0]
	if len(cls.Fields) != 1 {
		t.Fatalf("got %d fields, want 1", len(cls.Fields))
	}
	f := cls.Fields[0]
	if f.Name != "x" {
		t.Errorf("Name = %q, want x", f.Name)
	}
	if f.Bits == nil {
		t.Fatal("expected a bit-field width")
	}
}

func TestParseStringAnonymousBitfield(t *testing.T) {
	data, err := ParseString("", "struct S { unsigned a : 3, : 2, b : 6; };", nil)
	if err != nil {
		t.Fatal(err)
	}
	cls := data.Namespace.Classes[0]
	if len(cls.Fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(cls.Fields))
	}
	if cls.Fields[0].Name != "a" || cls.Fields[0].Bits == nil {
		t.Errorf("Fields[0] = %+v, want named field a with a width", cls.Fields[0])
	}
	if cls.Fields[1].Name != "" || cls.Fields[1].Bits == nil {
		t.Errorf("Fields[1] = %+v, want an unnamed field with a width", cls.Fields[1])
	}
	if cls.Fields[2].Name != "b" || cls.Fields[2].Bits == nil {
		t.Errorf("Fields[2] = %+v, want named field b with a width", cls.Fields[2])
	}
}

func TestParseStringInlineNamespace(t *testing.T) {
	data, err := ParseString("", "namespace Lib { inline namespace Lib_1 { class A; } }", nil)
	if err != nil {
		t.Fatal(err)
	}
	lib, ok := data.Namespace.Namespaces["Lib"]
	if !ok {
		t.Fatal("missing namespace Lib")
	}
	lib1, ok := lib.Namespaces["Lib_1"]
	if !ok {
		t.Fatal("missing namespace Lib::Lib_1")
	}
	if !lib1.Inline {
		t.Errorf("Lib_1.Inline = false, want true")
	}
	if len(lib1.ForwardDecls) != 1 || lib1.ForwardDecls[0].Typename.Name() != "A" {
		t.Errorf("Lib_1.ForwardDecls = %+v, want [A]", lib1.ForwardDecls)
	}
}

func TestParseStringInvalidInlineNestedNamespaceIsError(t *testing.T) {
	_, err := ParseString("", "inline namespace a::b {}", nil)
	if err == nil {
		t.Fatal("expected a parse error for an inline nested namespace definition")
	}
	want := "<str>:1: parse error evaluating 'inline': a nested namespace definition cannot be inline"
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err.Error(), want)
	}
}

func TestParseStringMultiDeclarator(t *testing.T) {
	data, err := ParseString("", "struct X { } a, *b;", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Namespace.Classes) != 1 {
		t.Fatalf("got %d classes, want 1", len(data.Namespace.Classes))
	}
	if len(data.Namespace.Variables) != 2 {
		t.Fatalf("got %d variables, want 2", len(data.Namespace.Variables))
	}
	if data.Namespace.Variables[0].Name.Name() != "a" {
		t.Errorf("Variables[0].Name = %q, want a", data.Namespace.Variables[0].Name.Name())
	}
	if _, ok := data.Namespace.Variables[1].Type.(*ast.Pointer); !ok {
		t.Errorf("Variables[1].Type = %T, want *ast.Pointer", data.Namespace.Variables[1].Type)
	}
}

func TestParseStringTypedefEnum(t *testing.T) {
	data, err := ParseString("", "typedef enum { A, B } E;", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Namespace.Enums) != 1 {
		t.Fatalf("got %d enums, want 1", len(data.Namespace.Enums))
	}
	if len(data.Namespace.Typedefs) != 1 {
		t.Fatalf("got %d typedefs, want 1", len(data.Namespace.Typedefs))
	}
	if data.Namespace.Typedefs[0].Name != "E" {
		t.Errorf("Typedef.Name = %q, want E", data.Namespace.Typedefs[0].Name)
	}
}

func TestParseStringConversionOperator(t *testing.T) {
	data, err := ParseString("", "struct S { operator bool() const; };", nil)
	if err != nil {
		t.Fatal(err)
	}
	cls := data.Namespace.Classes[0]
	if len(cls.Methods) != 1 {
		t.Fatalf("got %d methods, want 1", len(cls.Methods))
	}
	m := cls.Methods[0]
	if !m.Const {
		t.Errorf("Const = false, want true")
	}
}

func TestParseStringTemplateFunction(t *testing.T) {
	data, err := ParseString("", "template<class T> T f(T t);", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Namespace.Functions) != 1 {
		t.Fatalf("got %d functions, want 1", len(data.Namespace.Functions))
	}
	fn := data.Namespace.Functions[0]
	if fn.Template == nil || len(fn.Template.Params) != 1 {
		t.Fatalf("Template = %+v, want one param", fn.Template)
	}
	tp, ok := fn.Template.Params[0].(*ast.TemplateTypeParam)
	if !ok {
		t.Fatalf("Params[0] = %T, want *ast.TemplateTypeParam", fn.Template.Params[0])
	}
	if tp.Name != "T" || tp.Typekey != "class" {
		t.Errorf("Params[0] = %+v, want {Name: T, Typekey: class}", tp)
	}
}

func TestParseStringFriendOutsideClassIsError(t *testing.T) {
	_, err := ParseString("", "friend class X;", nil)
	if err == nil {
		t.Fatal("expected a parse error for friend outside a class body")
	}
}

func TestParseStringDefinesPragmasIncludes(t *testing.T) {
	src := "#include <foo.h>\n#define FOO 1\n#pragma once\nint x;"
	data, err := ParseString("", src, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Includes) != 1 || data.Includes[0].Filename != "<foo.h>" {
		t.Errorf("Includes = %+v", data.Includes)
	}
	if len(data.Defines) != 1 {
		t.Errorf("Defines = %+v, want 1 entry", data.Defines)
	}
	if len(data.Pragmas) != 1 {
		t.Errorf("Pragmas = %+v, want 1 entry", data.Pragmas)
	}
}

func TestParseStringUsingNamespace(t *testing.T) {
	data, err := ParseString("", "using namespace std;", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Namespace.UsingNS) != 1 || data.Namespace.UsingNS[0].NS != "std" {
		t.Errorf("UsingNS = %+v, want [std]", data.Namespace.UsingNS)
	}
}

func TestParseStringMultipleIncludesPreserveOrder(t *testing.T) {
	src := "#include <a.h>\n#include \"b.h\"\n#include <c.h>\n"
	data, err := ParseString("", src, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []Include{{Filename: "<a.h>"}, {Filename: "\"b.h\""}, {Filename: "<c.h>"}}
	if diff := cmp.Diff(want, data.Includes); diff != "" {
		t.Errorf("Includes mismatch (-want +got):\n%s", diff)
	}
}
