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

// DecoratedType is a type expression built by composing pointer, reference,
// array, and cv-qualification around a base Type (or, inside a Pointer
// chain, a FunctionType for function pointers). Composition order is
// innermost-applied-first; the Go value nesting mirrors the declarator
// chain exactly (outermost struct is the head of the declarator).
type DecoratedType interface {
	isDecoratedType()
}

// PointerTarget is anything a Pointer may point to: Array, *FunctionType,
// *Pointer, or *Type.
type PointerTarget interface {
	isPointerTarget()
}

// RefTarget is anything a Reference/MoveReference may bind to: Array,
// *FunctionType, or *Pointer, or *Type.
type RefTarget interface {
	isRefTarget()
}

// ArrayOfTarget is anything an Array's element type may be: *Array,
// *Pointer, or *Type.
type ArrayOfTarget interface {
	isArrayOfTarget()
}

// Type is a PQName decorated with top-level cv-qualifiers.
type Type struct {
	Typename PQName
	Const    bool
	Volatile bool
}

func (*Type) isDecoratedType() {}
func (*Type) isPointerTarget()  {}
func (*Type) isRefTarget()      {}
func (*Type) isArrayOfTarget()  {}

// Pointer is a pointer to a DecoratedType or FunctionType.
type Pointer struct {
	PtrTo    PointerTarget
	Const    bool
	Volatile bool
}

func (*Pointer) isDecoratedType() {}
func (*Pointer) isPointerTarget()  {}
func (*Pointer) isRefTarget()      {}
func (*Pointer) isArrayOfTarget()  {}

// Reference is an lvalue (&) reference.
type Reference struct {
	RefTo RefTarget
}

func (*Reference) isDecoratedType() {}

// MoveReference is an rvalue (&&) reference.
type MoveReference struct {
	MoveRefTo RefTarget
}

func (*MoveReference) isDecoratedType() {}

// Array is an element type plus an optional size expression; multi-
// dimensional arrays nest as Array-of-Array.
type Array struct {
	ArrayOf ArrayOfTarget
	Size    *Value // nil if unsized, e.g. "int x[]"
}

func (*Array) isDecoratedType() {}
func (*Array) isPointerTarget()  {}
func (*Array) isRefTarget()      {}
func (*Array) isArrayOfTarget()  {}

// FunctionType is a function signature, used standalone for a Typedef of a
// function type or nested inside a Pointer for a function pointer. It is
// not itself a DecoratedType (per the original data model's note: a
// DecoratedType chain holds exactly one of FunctionType or Type, never
// both at the top level).
type FunctionType struct {
	ReturnType        DecoratedType
	Parameters        []*Parameter
	Vararg            bool
	HasTrailingReturn bool
	Noexcept          *Value
	MSVCConvention    string // "" unless an explicit calling convention was seen
}

func (*FunctionType) isPointerTarget() {}
func (*FunctionType) isRefTarget()     {}
