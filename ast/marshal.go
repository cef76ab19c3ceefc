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

import "encoding/json"

// MarshalJSON implementations for this package's tagged-variant interfaces.
// Every sum type (PQNameSegment, DecoratedType, TemplateParam) gets a
// "kind" discriminator field alongside its own fields, flattened into one
// object -- the json dump mode of cmd/cxxheaderparser is the only consumer
// that ever needs this (gopkg.in/yaml.v3 does not call MarshalJSON, so the
// yaml dump mode carries no discriminator); the parser and visitor never
// marshal an AST, they only build and consume it.

func (n *NameSpecifier) MarshalJSON() ([]byte, error) {
	type alias NameSpecifier
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{"name", (*alias)(n)})
}

func (n *FundamentalSpecifier) MarshalJSON() ([]byte, error) {
	type alias FundamentalSpecifier
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{"fundamental", (*alias)(n)})
}

func (n *DecltypeSpecifier) MarshalJSON() ([]byte, error) {
	type alias DecltypeSpecifier
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{"decltype", (*alias)(n)})
}

func (n *AutoSpecifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
	}{"auto"})
}

func (n *AnonymousName) MarshalJSON() ([]byte, error) {
	type alias AnonymousName
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{"anonymous", (*alias)(n)})
}

func (t *Type) MarshalJSON() ([]byte, error) {
	type alias Type
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{"type", (*alias)(t)})
}

func (t *Pointer) MarshalJSON() ([]byte, error) {
	type alias Pointer
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{"pointer", (*alias)(t)})
}

func (t *Reference) MarshalJSON() ([]byte, error) {
	type alias Reference
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{"reference", (*alias)(t)})
}

func (t *MoveReference) MarshalJSON() ([]byte, error) {
	type alias MoveReference
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{"move_reference", (*alias)(t)})
}

func (t *Array) MarshalJSON() ([]byte, error) {
	type alias Array
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{"array", (*alias)(t)})
}

func (t *FunctionType) MarshalJSON() ([]byte, error) {
	type alias FunctionType
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{"function_type", (*alias)(t)})
}

func (t *TemplateNonTypeParam) MarshalJSON() ([]byte, error) {
	type alias TemplateNonTypeParam
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{"non_type", (*alias)(t)})
}

func (t *TemplateTypeParam) MarshalJSON() ([]byte, error) {
	type alias TemplateTypeParam
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{"type", (*alias)(t)})
}
