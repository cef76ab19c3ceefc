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

// Package ast is the tagged-variant data model the parser emits: PQNames,
// DecoratedTypes, and every declaration kind named in the specification.
// Sum types are modeled as Go interfaces with an unexported marker method,
// the way gapil/ast models its own expression and type nodes, rather than
// as a class hierarchy; the visitor (package visitor) dispatches on the
// concrete type.
package ast

import "github.com/robotpy/cxxheaderparser/token"

// Value is a verbatim list of tokens preserved exactly as the lexer
// produced them: initializers, default arguments, bit-field widths,
// enumerator values, and the contents of throw(...)/noexcept(...). The
// parser never evaluates these; only tokfmt ever looks inside.
type Value struct {
	Tokens []token.Token
}

func (v *Value) isTemplateArgValue() {}

// Access is a class-member access level.
type Access string

const (
	AccessPublic    Access = "public"
	AccessPrivate   Access = "private"
	AccessProtected Access = "protected"
)
