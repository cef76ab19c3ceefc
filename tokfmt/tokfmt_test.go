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

package tokfmt

import (
	"testing"

	"github.com/robotpy/cxxheaderparser/ast"
	"github.com/robotpy/cxxheaderparser/token"
)

func toks(pairs ...interface{}) []token.Token {
	var out []token.Token
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, token.Token{Kind: pairs[i].(token.Kind), Text: pairs[i+1].(string)})
	}
	return out
}

func TestFormatSimpleIntLiteral(t *testing.T) {
	got := Format(toks(token.IntConstDec, "1"))
	if got != "1" {
		t.Errorf("Format = %q, want %q", got, "1")
	}
}

func TestFormatFunctionCall(t *testing.T) {
	// NAME's own spacing weight pulls a space in front of '(' just as the
	// original tokfmt does -- this is the weight table's behavior, not a
	// special case for calls.
	got := Format(toks(
		token.Name, "f",
		token.Punct, "(",
		token.IntConstDec, "1",
		token.Punct, ",",
		token.IntConstDec, "2",
		token.Punct, ")",
	))
	want := "f (1, 2)"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatPointerDeclarator(t *testing.T) {
	got := Format(toks(
		token.Keyword, "int",
		token.Punct, "*",
		token.Name, "p",
	))
	want := "int * p"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatTemplateCloseNoSpaceBeforeGT(t *testing.T) {
	got := Format(toks(
		token.Name, "vector",
		token.Punct, "<",
		token.Keyword, "int",
		token.Punct, ">",
	))
	want := "vector<int>"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatValueNil(t *testing.T) {
	if got := FormatValue(nil); got != "" {
		t.Errorf("FormatValue(nil) = %q, want empty", got)
	}
}

func TestFormatValueWrapsTokens(t *testing.T) {
	v := &ast.Value{Tokens: toks(token.IntConstDec, "42")}
	if got := FormatValue(v); got != "42" {
		t.Errorf("FormatValue = %q, want 42", got)
	}
}
