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

// Package tokfmt reconstructs a readable source-text spelling from a
// Value's verbatim token list. It is the one place in this module that
// cares about whitespace: it exists purely so the round-trip law (§8) and
// the CLI's dumpers have something to print, not as part of the parser's
// own semantics.
package tokfmt

import (
	"strings"

	"github.com/robotpy/cxxheaderparser/ast"
	"github.com/robotpy/cxxheaderparser/token"
)

type spacing struct{ left, right int }

var wantSpacingByKind = map[token.Kind]spacing{
	token.IntConstDec:       {2, 2},
	token.IntConstHex:       {2, 2},
	token.IntConstOct:       {2, 2},
	token.IntConstBin:       {2, 2},
	token.IntConstChar:      {2, 2},
	token.FloatConst:        {2, 2},
	token.HexFloatConst:     {2, 2},
	token.CharConst:         {2, 2},
	token.WCharConst:        {2, 2},
	token.U8CharConst:       {2, 2},
	token.U16CharConst:      {2, 2},
	token.U32CharConst:      {2, 2},
	token.StringLiteral:     {2, 2},
	token.WStringLiteral:    {2, 2},
	token.U8StringLiteral:   {2, 2},
	token.U16StringLiteral:  {2, 2},
	token.U32StringLiteral:  {2, 2},
	token.Name:              {2, 2},
	token.Keyword:           {2, 2},
}

var wantSpacingByText = map[string]spacing{
	"...": {2, 2},
	">":   {0, 2},
	")":   {0, 1},
	"(":   {1, 0},
	",":   {0, 3},
	"*":   {1, 2},
	"&":   {0, 2},
}

// Format reconstructs a readable spelling of toks, matching the original
// tokfmt: tokens are joined with a single space wherever the adjoining
// tokens' combined spacing weight reaches 3, and otherwise packed tight.
func Format(toks []token.Token) string {
	var b strings.Builder
	last := 0
	for _, tok := range toks {
		var l, r int
		if tok.Text == "operator" {
			l, r = 2, 0
		} else if sp, ok := wantSpacingByText[tok.Text]; ok {
			l, r = sp.left, sp.right
		} else if sp, ok := wantSpacingByKind[tok.Kind]; ok {
			l, r = sp.left, sp.right
		}
		if l+last >= 3 {
			b.WriteByte(' ')
		}
		last = r
		b.WriteString(tok.Text)
	}
	return b.String()
}

// FormatValue is a convenience wrapper over Format for an *ast.Value.
func FormatValue(v *ast.Value) string {
	if v == nil {
		return ""
	}
	return Format(v.Tokens)
}
